package presenters

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/utils/storage"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFor maps a service error onto the HTTP status reported to the client.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrAdminExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrMalformedToken),
		errors.Is(err, domain.ErrTokenSignature),
		errors.Is(err, domain.ErrUnreadableArtifact),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrClaimFieldsRequired),
		errors.Is(err, domain.ErrEmptyDescription),
		errors.Is(err, domain.ErrInvalidItemID),
		errors.Is(err, domain.ErrInvalidItemDate),
		errors.Is(err, domain.ErrInvalidItemStatus),
		errors.Is(err, domain.ErrSearchQueryRequired),
		errors.Is(err, storage.ErrFileType):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
