package handlers

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/api/presenters"
	"Lost-Found-Registry/pkg/claim"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	ClaimHandler interface {
		SendVerification(c *fiber.Ctx) error
		VerifyClaim(c *fiber.Ctx) error
	}

	claimHandler struct {
		claimService claim.ClaimService
		validator    *validator.Validate
	}
)

func NewClaimHandler(claimService claim.ClaimService, validator *validator.Validate) ClaimHandler {
	return &claimHandler{
		claimService: claimService,
		validator:    validator,
	}
}

func (h *claimHandler) SendVerification(c *fiber.Ctx) error {
	req := new(domain.SendVerificationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendVerification, errors.Join(domain.ErrMissingField, err))
	}

	if err := h.claimService.IssueClaimToken(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedSendVerification, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendVerification)
}

// VerifyClaim accepts the scanned token text as qrData, or a multipart upload
// of the QR image in the qrCode field.
func (h *claimHandler) VerifyClaim(c *fiber.Ctx) error {
	req := new(domain.VerifyClaimRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if file, err := c.FormFile("qrCode"); err == nil {
			req.QRCode = file
		}
	}

	if req.QRCode != nil && strings.TrimSpace(req.QRData) == "" {
		f, err := req.QRCode.Open()
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyClaim, err)
		}
		defer f.Close()

		text, err := h.claimService.ReadArtifact(f)
		if err != nil {
			log.Warnw("uploaded QR code could not be read", "file", req.QRCode.Filename, "error", err)
			return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedVerifyClaim, err)
		}
		req.QRData = text
	}

	if strings.TrimSpace(req.QRData) == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyClaim, domain.ErrClaimFieldsRequired)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyClaim, errors.Join(domain.ErrClaimFieldsRequired, err))
	}

	res, err := h.claimService.RedeemClaim(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedVerifyClaim, err)
	}

	return c.Status(fiber.StatusOK).JSON(domain.VerifyClaimResponse{
		Success: true,
		Message: domain.MessageSuccessVerifyClaim,
		Item:    res,
	})
}
