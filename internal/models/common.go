// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate assigns the id when the database has no uuid default (sqlite).
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Business constants
const (
	DailyAdLimit         = 10 // ads a user may post per calendar day
	FavoriteLimit        = 30 // favorites a user may hold
	AdLifetimeDays       = 7  // days until a fresh ad expires
	DefaultMaxExtensions = 3  // extension events per ad
	MinAdsWatched        = 1
	MaxAdsWatched        = 3
	MinAdImages          = 1
	MaxAdImages          = 5
	DefaultPageSize      = 20
	MaxPageSize          = 50
)

// Enums
type AdStatus string

const (
	AdStatusPending  AdStatus = "pending"
	AdStatusApproved AdStatus = "approved"
	AdStatusRejected AdStatus = "rejected"
	AdStatusExpired  AdStatus = "expired"
	AdStatusSold     AdStatus = "sold"
)

// adTransitions is the closed transition table for ad statuses. Expiry is
// enforced lazily through expires_at at read time, so the expired entries only
// cover an explicit status flip by a background job.
var adTransitions = map[AdStatus][]AdStatus{
	AdStatusPending:  {AdStatusApproved, AdStatusRejected, AdStatusExpired},
	AdStatusApproved: {AdStatusPending, AdStatusSold, AdStatusExpired},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition. Terminal statuses (rejected, expired, sold) allow nothing.
func (s AdStatus) CanTransitionTo(next AdStatus) bool {
	for _, allowed := range adTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s AdStatus) IsValid() bool {
	switch s {
	case AdStatusPending, AdStatusApproved, AdStatusRejected, AdStatusExpired, AdStatusSold:
		return true
	}
	return false
}
