package admin

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/database"
	"Lost-Found-Registry/pkg/jwt"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (AdminService, jwt.JWTService) {
	t.Helper()
	jwtService, err := jwt.NewJWTServiceWithSecret("secret", time.Hour)
	require.NoError(t, err)
	return NewAdminService(NewAdminRepository(database.NewTestDB(t)), jwtService), jwtService
}

func TestCreateAdminAndLogin(t *testing.T) {
	svc, jwtService := newService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, domain.CreateAdminRequest{
		Name:     "Front Desk",
		Email:    " Desk@Example.com ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "desk@example.com", admin.Email)
	assert.NotEqual(t, "correct-horse", admin.PasswordHash)

	res, err := svc.Login(ctx, domain.AdminLoginRequest{Email: "desk@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", res.Name)

	id, role, err := jwtService.GetAdminIDByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), id)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestCreateAdminDuplicate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	req := domain.CreateAdminRequest{Name: "A", Email: "a@example.com", Password: "password1"}

	_, err := svc.CreateAdmin(ctx, req)
	require.NoError(t, err)
	_, err = svc.CreateAdmin(ctx, req)
	assert.ErrorIs(t, err, domain.ErrAdminExists)
}

func TestLoginRejected(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, domain.CreateAdminRequest{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.AdminLoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.AdminLoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
