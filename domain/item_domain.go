package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateItem   = "item created successfully"
	MessageSuccessGetItems     = "items retrieved successfully"
	MessageSuccessGetItem      = "item retrieved successfully"
	MessageSuccessUpdateItem   = "item updated successfully"
	MessageSuccessDeleteItem   = "item deleted successfully"
	MessageSuccessMarkReturned = "item marked as returned"

	MessageFailedCreateItem   = "error creating item"
	MessageFailedGetItems     = "error fetching items"
	MessageFailedGetItem      = "error fetching item"
	MessageFailedUpdateItem   = "error updating item"
	MessageFailedDeleteItem   = "error deleting item"
	MessageFailedSearchItems  = "error searching items"
	MessageFailedFilterItems  = "error filtering items"
	MessageFailedMarkReturned = "error marking item as returned"

	// DefaultDescription replaces an empty description before an item is saved.
	DefaultDescription = "No description provided"

	ErrItemNotFound            = errors.New("item not found")
	ErrEmptyDescription        = errors.New("description is required")
	ErrInvalidItemID           = errors.New("item id must not contain line breaks")
	ErrInvalidItemDate         = errors.New("invalid item date")
	ErrInvalidItemStatus       = errors.New("invalid item status")
	ErrInvalidStatusTransition = errors.New("invalid item status transition")
	ErrSearchQueryRequired     = errors.New("search query is required")
)

type (
	CreateItemRequest struct {
		Title        string                  `json:"title" form:"title" validate:"required"`
		Description  string                  `json:"description" form:"description"`
		DetailedInfo string                  `json:"detailedInfo" form:"detailedInfo"`
		Category     string                  `json:"category" form:"category" validate:"required,oneof=Electronics Clothing Documents Accessories Other"`
		Status       string                  `json:"status" form:"status" validate:"omitempty,oneof=lost found"`
		Location     string                  `json:"location" form:"location" validate:"required"`
		Date         string                  `json:"date" form:"date" validate:"required"`
		FirstName    string                  `json:"firstName" form:"firstName"`
		LastName     string                  `json:"lastName" form:"lastName"`
		Email        string                  `json:"email" form:"email" validate:"omitempty,email"`
		Phone        string                  `json:"phone" form:"phone"`
		Images       []*multipart.FileHeader `json:"-" form:"-"`
	}

	UpdateItemRequest struct {
		Title       string `json:"title" validate:"omitempty"`
		Description string `json:"description" validate:"omitempty"`
		Category    string `json:"category" validate:"omitempty,oneof=Electronics Clothing Documents Accessories Other"`
		Status      string `json:"status" validate:"omitempty,oneof=lost found claimed returned"`
		Location    string `json:"location" validate:"omitempty"`
		Date        string `json:"date" validate:"omitempty"`
	}

	ItemFilter struct {
		Category string `query:"category"`
		Status   string `query:"status"`
		Location string `query:"location"`
	}

	ContactResponse struct {
		FirstName string `json:"firstName,omitempty"`
		LastName  string `json:"lastName,omitempty"`
		Email     string `json:"email,omitempty"`
		Phone     string `json:"phone,omitempty"`
	}

	ClaimantResponse struct {
		FirstName string    `json:"firstName"`
		LastName  string    `json:"lastName"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		ClaimDate time.Time `json:"claimDate"`
	}

	QRCodeResponse struct {
		Base64    string    `json:"base64"`
		CreatedAt time.Time `json:"createdAt"`
	}

	ItemResponse struct {
		ID          string            `json:"id"`
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Category    string            `json:"category"`
		Status      string            `json:"status"`
		Location    string            `json:"location"`
		Date        time.Time         `json:"date"`
		Images      []string          `json:"images"`
		Reporter    ContactResponse   `json:"reporter"`
		Claimant    *ClaimantResponse `json:"claimant,omitempty"`
		QRCode      *QRCodeResponse   `json:"qrCode,omitempty"`
		CreatedAt   time.Time         `json:"createdAt"`
		UpdatedAt   time.Time         `json:"updatedAt"`
	}
)
