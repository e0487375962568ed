package domain

import "errors"

var (
	MessageSuccessLogin = "login successful"
	MessageFailedLogin  = "failed to login"

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminExists        = errors.New("admin already exists")
)

type (
	AdminLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AdminLoginResponse struct {
		Token string `json:"token"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	CreateAdminRequest struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}
)
