package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessSendVerification = "QR code and text file sent successfully"
	MessageSuccessVerifyClaim      = "Item claimed successfully"

	MessageFailedSendVerification = "Error sending QR code and text file"
	MessageFailedVerifyClaim      = "Error verifying claim"

	ErrMalformedToken      = errors.New("invalid QR code format")
	ErrTokenSignature      = errors.New("QR code verification failed")
	ErrAlreadyClaimed      = errors.New("item has already been claimed")
	ErrArtifactGeneration  = errors.New("failed to generate QR code")
	ErrUnreadableArtifact  = errors.New("failed to read QR code image")
	ErrMissingField        = errors.New("missing required email fields")
	ErrMailConfiguration   = errors.New("email sender is not configured")
	ErrDeliveryFailure     = errors.New("failed to send email")
	ErrClaimFieldsRequired = errors.New("all fields are required")
)

type (
	SendVerificationRequest struct {
		ItemID string `json:"itemId" validate:"required"`
		Email  string `json:"email" validate:"required,email"`
	}

	// VerifyClaimRequest carries the scanned token text in QRData, or an uploaded
	// QR image in QRCode which is decoded to text before redemption.
	VerifyClaimRequest struct {
		QRData      string                `json:"qrData" form:"qrData"`
		QRCode      *multipart.FileHeader `json:"-" form:"-"`
		FirstName   string                `json:"firstName" form:"firstName" validate:"required"`
		LastName    string                `json:"lastName" form:"lastName" validate:"required"`
		Email       string                `json:"email" form:"email" validate:"required,email"`
		PhoneNumber string                `json:"phoneNumber" form:"phoneNumber" validate:"required"`
	}

	ClaimedItemResponse struct {
		ID       string           `json:"id"`
		Title    string           `json:"title"`
		Status   string           `json:"status"`
		Claimant ClaimantResponse `json:"claimant"`
	}

	VerifyClaimResponse struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Item    ClaimedItemResponse `json:"item"`
	}
)
