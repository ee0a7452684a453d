// internal/models/favorite.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is a (user, ad) pair. Rows are hard-deleted so a user can favorite
// the same ad again after removing it; the composite unique index backs the
// duplicate check.
type Favorite struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_ad"`
	AdID      uuid.UUID `json:"ad_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_ad"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Ad *Ad `json:"ad,omitempty" gorm:"foreignKey:AdID"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
