package domain

import "errors"

const (
	RoleAdmin = "admin"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MesaageUserNotAllowed       = "user not allowed"

	ErrValidation     = errors.New("validation failed")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")

	ErrJWTSecretMissing = errors.New("JWT_SECRET is not configured")
)
