// Package claim issues claim tokens for items and redeems them.
//
// Issuance encodes the item descriptor, renders it as a QR code and emails both
// to the requester; the artifact is recorded on the item only once the email
// has been delivered. Redemption decodes a scanned token and moves the item to
// claimed with a single conditional update, so concurrent redemptions of one
// item yield exactly one success.
package claim

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/entities"
	"Lost-Found-Registry/internal/utils/mailing"
	"Lost-Found-Registry/pkg/item"
	"Lost-Found-Registry/pkg/qr"
	"Lost-Found-Registry/pkg/token"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

type (
	ClaimService interface {
		IssueClaimToken(ctx context.Context, req domain.SendVerificationRequest) error
		RedeemClaim(ctx context.Context, req domain.VerifyClaimRequest) (domain.ClaimedItemResponse, error)
		ReadArtifact(r io.Reader) (string, error)
	}

	claimService struct {
		itemRepository item.ItemRepository
		codec          token.Codec
		generator      qr.Generator
		reader         qr.Reader
		mailer         mailing.Mailer
		workDir        string
	}
)

// NewClaimService wires the claim workflow. workDir holds the short-lived files
// attached to claim emails; an empty value uses the system temp dir.
func NewClaimService(
	itemRepository item.ItemRepository,
	codec token.Codec,
	generator qr.Generator,
	reader qr.Reader,
	mailer mailing.Mailer,
	workDir string,
) ClaimService {
	return &claimService{
		itemRepository: itemRepository,
		codec:          codec,
		generator:      generator,
		reader:         reader,
		mailer:         mailer,
		workDir:        workDir,
	}
}

func (s *claimService) IssueClaimToken(ctx context.Context, req domain.SendVerificationRequest) error {
	it, err := s.itemRepository.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return err
	}

	text := s.codec.Encode(it)

	artifact, err := s.generator.Generate(text)
	if err != nil {
		log.Errorw("claim artifact rendering failed", "item_id", it.ID, "error", err)
		if !errors.Is(err, domain.ErrArtifactGeneration) {
			err = fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
		}
		return err
	}

	if s.workDir != "" {
		if err := os.MkdirAll(s.workDir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
		}
	}
	dir, err := os.MkdirTemp(s.workDir, "claim-")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
	}
	defer os.RemoveAll(dir)

	issuedAt := time.Now()
	stem := fmt.Sprintf("%s_%d", unsafeFileChars.ReplaceAllString(it.ID, "_"), issuedAt.UnixMilli())
	txtPath := filepath.Join(dir, "item_"+stem+".txt")
	qrPath := filepath.Join(dir, "qr_"+stem+".png")

	if err := os.WriteFile(txtPath, []byte(text), 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
	}
	if err := os.WriteFile(qrPath, artifact.PNG, 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
	}

	body, err := renderClaimMail(it, mailing.ContentID(qrPath))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
	}

	err = s.mailer.Send(ctx, mailing.Mail{
		To:       req.Email,
		Subject:  claimMailSubject,
		HTMLBody: body,
		Attachments: []mailing.Attachment{
			{Path: qrPath, Inline: true},
			{Path: txtPath},
		},
	})
	if err != nil {
		return err
	}

	if err := s.itemRepository.SaveQRCode(ctx, it.ID, entities.QRArtifact{
		Base64:   artifact.Base64,
		IssuedAt: &issuedAt,
	}); err != nil {
		return err
	}

	log.Infow("claim token issued", "item_id", it.ID, "email", req.Email)
	return nil
}

func (s *claimService) RedeemClaim(ctx context.Context, req domain.VerifyClaimRequest) (domain.ClaimedItemResponse, error) {
	if strings.TrimSpace(req.QRData) == "" || req.FirstName == "" || req.LastName == "" || req.Email == "" || req.PhoneNumber == "" {
		return domain.ClaimedItemResponse{}, domain.ErrClaimFieldsRequired
	}

	itemID, err := s.codec.Decode(req.QRData)
	if err != nil {
		return domain.ClaimedItemResponse{}, err
	}

	claimDate := time.Now()
	claimed, err := s.itemRepository.ClaimItem(ctx, itemID, entities.Claimant{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.PhoneNumber,
		ClaimDate: &claimDate,
	})
	if err != nil {
		return domain.ClaimedItemResponse{}, err
	}

	it, err := s.itemRepository.GetItemByID(ctx, itemID)
	if err != nil {
		return domain.ClaimedItemResponse{}, err
	}
	if !claimed {
		log.Warnw("claim rejected, item already claimed", "item_id", itemID, "status", it.Status)
		return domain.ClaimedItemResponse{}, domain.ErrAlreadyClaimed
	}

	log.Infow("item claimed", "item_id", itemID, "claimant_email", req.Email)
	return domain.ClaimedItemResponse{
		ID:       it.ID,
		Title:    it.Title,
		Status:   string(it.Status),
		Claimant: item.NewClaimantResponse(it.Claimant),
	}, nil
}

func (s *claimService) ReadArtifact(r io.Reader) (string, error) {
	return s.reader.Read(r)
}
