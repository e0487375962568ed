package item

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/entities"
	"Lost-Found-Registry/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

type (
	ItemService interface {
		CreateItem(ctx context.Context, req domain.CreateItemRequest) (domain.ItemResponse, error)
		GetItems(ctx context.Context) ([]domain.ItemResponse, error)
		GetItemByID(ctx context.Context, id string) (domain.ItemResponse, error)
		GetAdminItem(ctx context.Context, id string) (domain.ItemResponse, error)
		SearchItems(ctx context.Context, query string) ([]domain.ItemResponse, error)
		FilterItems(ctx context.Context, filter domain.ItemFilter) ([]domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (domain.ItemResponse, error)
		DeleteItem(ctx context.Context, id string) error
		MarkReturned(ctx context.Context, id string) (domain.ItemResponse, error)
	}

	itemService struct {
		itemRepository ItemRepository
		s3             storage.AwsS3
	}
)

func NewItemService(itemRepository ItemRepository, s3 storage.AwsS3) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		s3:             s3,
	}
}

func (s *itemService) CreateItem(ctx context.Context, req domain.CreateItemRequest) (domain.ItemResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return domain.ItemResponse{}, err
	}

	status := entities.ItemStatusLost
	if req.Status != "" {
		status = entities.ItemStatus(req.Status)
		if status.IsClaimed() || !status.Valid() {
			return domain.ItemResponse{}, domain.ErrInvalidItemStatus
		}
	}

	description := firstNonEmpty(req.Description, req.DetailedInfo, domain.DefaultDescription)

	item := &entities.Item{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: description,
		Category:    req.Category,
		Status:      status,
		Location:    req.Location,
		Date:        date,
		Reporter: entities.Contact{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
	}
	item.Images = s.uploadImages(ctx, item.ID, req)

	if err := s.itemRepository.CreateItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	log.Infow("item reported", "item_id", item.ID, "status", item.Status, "images", len(item.Images))
	return NewItemResponse(item), nil
}

// uploadImages stores the report's images. Any failure drops all of them and the
// report is saved without images.
func (s *itemService) uploadImages(ctx context.Context, itemID string, req domain.CreateItemRequest) []string {
	urls := []string{}
	var keys []string

	for i, file := range req.Images {
		objectKey, err := s.s3.UploadFile(ctx, fmt.Sprintf("item-%s-%d", itemID, i), file, "items", storage.AllowImage...)
		if err != nil {
			log.Warnw("image upload failed, continuing without images", "item_id", itemID, "error", err)
			for _, key := range keys {
				_ = s.s3.DeleteFile(ctx, key)
			}
			return []string{}
		}
		keys = append(keys, objectKey)
		urls = append(urls, s.s3.GetPublicLinkKey(objectKey))
	}
	return urls
}

func (s *itemService) GetItems(ctx context.Context) ([]domain.ItemResponse, error) {
	items, err := s.itemRepository.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	return NewItemResponses(items), nil
}

func (s *itemService) GetItemByID(ctx context.Context, id string) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	return NewItemResponse(item), nil
}

// GetAdminItem includes the issued claim QR code, which public views leave out.
func (s *itemService) GetAdminItem(ctx context.Context, id string) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	return NewAdminItemResponse(item), nil
}

func (s *itemService) SearchItems(ctx context.Context, query string) ([]domain.ItemResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrSearchQueryRequired
	}

	items, err := s.itemRepository.SearchItems(ctx, query)
	if err != nil {
		return nil, err
	}
	return NewItemResponses(items), nil
}

func (s *itemService) FilterItems(ctx context.Context, filter domain.ItemFilter) ([]domain.ItemResponse, error) {
	items, err := s.itemRepository.FilterItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	return NewItemResponses(items), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	read := item.Status

	if req.Title != "" {
		item.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Location != "" {
		item.Location = req.Location
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		item.Date = date
	}

	if req.Status != "" {
		next := entities.ItemStatus(req.Status)
		// claimed is only reachable through redemption, which records the claimant.
		if next != item.Status && (next == entities.ItemStatusClaimed || !item.Status.CanTransitionTo(next)) {
			return domain.ItemResponse{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, item.Status, next)
		}
		item.Status = next
	}

	ok, err := s.itemRepository.UpdateItem(ctx, item, read)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	if !ok {
		// the item changed since it was read, usually a redemption landing first.
		current, err := s.itemRepository.GetItemByID(ctx, id)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		log.Warnw("item edit rejected, status changed concurrently", "item_id", id, "read", read, "current", current.Status)
		if current.Status.IsClaimed() && !read.IsClaimed() {
			return domain.ItemResponse{}, domain.ErrAlreadyClaimed
		}
		return domain.ItemResponse{}, fmt.Errorf("%w: status changed from %s to %s", domain.ErrInvalidStatusTransition, read, current.Status)
	}

	updated, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	return NewItemResponse(updated), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return err
	}

	for _, link := range item.Images {
		if objectKey := s.s3.GetObjectKeyFromLink(link); objectKey != "" {
			if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
				log.Warnw("failed to delete item image", "item_id", id, "object_key", objectKey, "error", err)
			}
		}
	}

	if err := s.itemRepository.DeleteItem(ctx, id); err != nil {
		return err
	}
	log.Infow("item deleted", "item_id", id)
	return nil
}

func (s *itemService) MarkReturned(ctx context.Context, id string) (domain.ItemResponse, error) {
	ok, err := s.itemRepository.MarkReturned(ctx, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}

	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	if !ok {
		return domain.ItemResponse{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, item.Status, entities.ItemStatusReturned)
	}

	log.Infow("item returned", "item_id", id)
	return NewItemResponse(item), nil
}

func NewItemResponse(item *entities.Item) domain.ItemResponse {
	res := domain.ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Status:      string(item.Status),
		Location:    item.Location,
		Date:        item.Date,
		Images:      item.Images,
		Reporter: domain.ContactResponse{
			FirstName: item.Reporter.FirstName,
			LastName:  item.Reporter.LastName,
			Email:     item.Reporter.Email,
			Phone:     item.Reporter.Phone,
		},
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if res.Images == nil {
		res.Images = []string{}
	}

	if item.Status.IsClaimed() {
		claimant := NewClaimantResponse(item.Claimant)
		res.Claimant = &claimant
	}
	return res
}

// NewAdminItemResponse is NewItemResponse plus the claim QR code. The QR code
// redeems the item, so it is only served behind the admin gate.
func NewAdminItemResponse(item *entities.Item) domain.ItemResponse {
	res := NewItemResponse(item)
	if item.QRCode.Base64 != "" {
		qr := domain.QRCodeResponse{Base64: item.QRCode.Base64}
		if item.QRCode.IssuedAt != nil {
			qr.CreatedAt = *item.QRCode.IssuedAt
		}
		res.QRCode = &qr
	}
	return res
}

func NewItemResponses(items []*entities.Item) []domain.ItemResponse {
	res := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, NewItemResponse(item))
	}
	return res
}

func NewClaimantResponse(c entities.Claimant) domain.ClaimantResponse {
	res := domain.ClaimantResponse{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
	if c.ClaimDate != nil {
		res.ClaimDate = *c.ClaimDate
	}
	return res
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Join(domain.ErrInvalidItemDate, fmt.Errorf("unrecognised date %q", value))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
