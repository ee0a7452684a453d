// internal/models/ad.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ad struct {
	BaseModel
	UserID             uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	CategoryID         uuid.UUID  `json:"category_id" gorm:"type:uuid;not null;index"`
	Title              string     `json:"title" gorm:"size:200;not null"`
	Description        string     `json:"description" gorm:"type:text;not null"`
	Price              float64    `json:"price" gorm:"type:decimal(12,2);not null"`
	ContactPhone       string     `json:"contact_phone" gorm:"size:20;not null"`
	ContactName        string     `json:"contact_name" gorm:"size:100"`
	Status             AdStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ExpiresAt          time.Time  `json:"expires_at" gorm:"not null;index"`
	ExtensionCount     int        `json:"extension_count" gorm:"default:0"`
	MaxExtensions      int        `json:"max_extensions" gorm:"default:3"`
	ViewCount          int64      `json:"view_count" gorm:"default:0"`
	PhoneClickCount    int64      `json:"phone_click_count" gorm:"default:0"`
	WhatsappClickCount int64      `json:"whatsapp_click_count" gorm:"default:0"`
	ApprovedBy         *uuid.UUID `json:"approved_by,omitempty" gorm:"type:uuid"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`

	// Relationships
	Category   Category          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images     []AdImage         `json:"images,omitempty" gorm:"foreignKey:AdID"`
	Properties []AdPropertyValue `json:"properties,omitempty" gorm:"foreignKey:AdID"`
	Extensions []AdExtension     `json:"extensions,omitempty" gorm:"foreignKey:AdID"`
}

// AdImage references an uploaded file by its opaque id; file content lives in
// the storage subsystem. Position is the display order, exactly one image per
// ad carries IsCover.
type AdImage struct {
	BaseModel
	AdID     uuid.UUID `json:"ad_id" gorm:"type:uuid;not null;index"`
	FileID   uuid.UUID `json:"file_id" gorm:"type:uuid;not null"`
	Position int       `json:"position" gorm:"not null"`
	IsCover  bool      `json:"is_cover" gorm:"default:false"`
}

// AdPropertyValue stores a free-text value for a category-declared property.
// The engine never coerces or type-checks the value.
type AdPropertyValue struct {
	BaseModel
	AdID       uuid.UUID `json:"ad_id" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null"`
	Value      string    `json:"value" gorm:"size:500;not null"`
}

// AdExtension is the append-only audit record of a renewal event. Rows are
// never mutated after creation.
type AdExtension struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	AdID        uuid.UUID `json:"ad_id" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	AdsWatched  int       `json:"ads_watched" gorm:"not null"`
	DaysGranted int       `json:"days_granted" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *AdExtension) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
