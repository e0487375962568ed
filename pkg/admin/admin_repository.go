package admin

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		CreateAdmin(ctx context.Context, admin *entities.Admin) error
		GetAdminByEmail(ctx context.Context, email string) (*entities.Admin, error)
		CheckEmailExists(ctx context.Context, email string) (bool, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) CreateAdmin(ctx context.Context, admin *entities.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) GetAdminByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	var admin entities.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
