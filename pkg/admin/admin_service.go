package admin

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/entities"
	"Lost-Found-Registry/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/crypto/bcrypt"
)

type (
	AdminService interface {
		Login(ctx context.Context, req domain.AdminLoginRequest) (domain.AdminLoginResponse, error)
		CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (*entities.Admin, error)
	}

	adminService struct {
		adminRepository AdminRepository
		jwtService      jwt.JWTService
	}
)

func NewAdminService(adminRepository AdminRepository, jwtService jwt.JWTService) AdminService {
	return &adminService{
		adminRepository: adminRepository,
		jwtService:      jwtService,
	}
}

func (s *adminService) Login(ctx context.Context, req domain.AdminLoginRequest) (domain.AdminLoginResponse, error) {
	admin, err := s.adminRepository.GetAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return domain.AdminLoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warnw("admin login rejected", "email", admin.Email)
			return domain.AdminLoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AdminLoginResponse{}, err
	}

	token, err := s.jwtService.GenerateTokenAdmin(admin.ID.String(), domain.RoleAdmin)
	if err != nil {
		return domain.AdminLoginResponse{}, err
	}

	return domain.AdminLoginResponse{
		Token: token,
		Name:  admin.Name,
		Email: admin.Email,
	}, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (*entities.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.adminRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &entities.Admin{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.adminRepository.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}

	log.Infow("admin created", "admin_id", admin.ID, "email", admin.Email)
	return admin, nil
}
