package item

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/entities"
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	unclaimedStatuses = []string{string(entities.ItemStatusLost), string(entities.ItemStatusFound)}

	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

type (
	ItemRepository interface {
		CreateItem(ctx context.Context, item *entities.Item) error
		GetItemByID(ctx context.Context, id string) (*entities.Item, error)
		GetItems(ctx context.Context) ([]*entities.Item, error)
		SearchItems(ctx context.Context, query string) ([]*entities.Item, error)
		FilterItems(ctx context.Context, filter domain.ItemFilter) ([]*entities.Item, error)
		// UpdateItem writes the editable columns of item while the stored status
		// still equals expected; false when the row no longer matches.
		UpdateItem(ctx context.Context, item *entities.Item, expected entities.ItemStatus) (bool, error)
		DeleteItem(ctx context.Context, id string) error

		// SaveQRCode stores a generated claim artifact on the item.
		SaveQRCode(ctx context.Context, id string, qrCode entities.QRArtifact) error
		// ClaimItem moves an unclaimed item to claimed in one conditional update.
		// It reports false when no unclaimed item with that id exists.
		ClaimItem(ctx context.Context, id string, claimant entities.Claimant) (bool, error)
		// MarkReturned moves a claimed item to returned; false when the item is not claimed.
		MarkReturned(ctx context.Context, id string) (bool, error)
	}

	itemRepository struct {
		db *gorm.DB
	}
)

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func validateItem(item *entities.Item) error {
	if strings.TrimSpace(item.Description) == "" {
		return domain.ErrEmptyDescription
	}
	return nil
}

func (r *itemRepository) CreateItem(ctx context.Context, item *entities.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	// the id is carried on a single line of the claim token.
	if strings.ContainsAny(item.ID, "\r\n") {
		return domain.ErrInvalidItemID
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	var item entities.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetItems(ctx context.Context) ([]*entities.Item, error) {
	var items []*entities.Item
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) SearchItems(ctx context.Context, query string) ([]*entities.Item, error) {
	var items []*entities.Item
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	if err := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FilterItems(ctx context.Context, filter domain.ItemFilter) ([]*entities.Item, error) {
	var items []*entities.Item

	query := r.db.WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item *entities.Item, expected entities.ItemStatus) (bool, error) {
	if err := validateItem(item); err != nil {
		return false, err
	}

	// claimant and qr columns belong to the claim workflow and are never written here.
	res := r.db.WithContext(ctx).Model(&entities.Item{}).
		Where("id = ? AND status = ?", item.ID, string(expected)).
		Updates(map[string]interface{}{
			"title":       item.Title,
			"description": item.Description,
			"category":    item.Category,
			"location":    item.Location,
			"date":        item.Date,
			"status":      string(item.Status),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) SaveQRCode(ctx context.Context, id string, qrCode entities.QRArtifact) error {
	res := r.db.WithContext(ctx).Model(&entities.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"qr_base64":    qrCode.Base64,
			"qr_issued_at": qrCode.IssuedAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) ClaimItem(ctx context.Context, id string, claimant entities.Claimant) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Item{}).
		Where("id = ? AND status IN ?", id, unclaimedStatuses).
		Updates(map[string]interface{}{
			"status":              string(entities.ItemStatusClaimed),
			"claimant_first_name": claimant.FirstName,
			"claimant_last_name":  claimant.LastName,
			"claimant_email":      claimant.Email,
			"claimant_phone":      claimant.Phone,
			"claimant_claim_date": claimant.ClaimDate,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *itemRepository) MarkReturned(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Item{}).
		Where("id = ? AND status = ?", id, string(entities.ItemStatusClaimed)).
		Updates(map[string]interface{}{
			"status":     string(entities.ItemStatusReturned),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
