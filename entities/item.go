package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemStatus string

const (
	ItemStatusLost     ItemStatus = "lost"
	ItemStatusFound    ItemStatus = "found"
	ItemStatusClaimed  ItemStatus = "claimed"
	ItemStatusReturned ItemStatus = "returned"
)

// rank orders statuses along lost/found -> claimed -> returned.
func (s ItemStatus) rank() int {
	switch s {
	case ItemStatusLost, ItemStatusFound:
		return 0
	case ItemStatusClaimed:
		return 1
	case ItemStatusReturned:
		return 2
	default:
		return -1
	}
}

func (s ItemStatus) Valid() bool {
	return s.rank() >= 0
}

// IsClaimed reports whether the item has been claimed or returned.
func (s ItemStatus) IsClaimed() bool {
	return s.rank() >= 1
}

// CanTransitionTo reports whether moving from s to next keeps the status monotone.
// lost and found may be swapped freely while the item is still unclaimed.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.rank() == 0 && next.rank() == 0 {
		return true
	}
	return next.rank() == s.rank()+1
}

var ItemCategories = []string{"Electronics", "Clothing", "Documents", "Accessories", "Other"}

type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Claimant struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	ClaimDate *time.Time `json:"claimDate,omitempty"`
}

// QRArtifact is the last claim artifact issued for an item. A field named CreatedAt
// here would be filled by gorm as an auto-create timestamp.
type QRArtifact struct {
	Base64   string     `gorm:"type:text" json:"base64,omitempty"`
	IssuedAt *time.Time `json:"createdAt,omitempty"`
}

type Item struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    string     `gorm:"index;not null" json:"category"`
	Status      ItemStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	Location    string     `json:"location"`
	Date        time.Time  `gorm:"type:timestamp" json:"date"`
	Images      []string   `gorm:"type:text;serializer:json" json:"images"`

	Reporter Contact    `gorm:"embedded;embeddedPrefix:reporter_" json:"reporter"`
	Claimant Claimant   `gorm:"embedded;embeddedPrefix:claimant_" json:"claimant"`
	QRCode   QRArtifact `gorm:"embedded;embeddedPrefix:qr_" json:"qrCode"`

	Timestamp
}

func (i *Item) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = ItemStatusLost
	}
	return nil
}
