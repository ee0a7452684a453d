// internal/models/category.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Category is a node in the two-level category tree. Ads may only be filed
// under leaf categories (nodes without children).
type Category struct {
	BaseModel
	Name      string     `json:"name" gorm:"size:100;not null"`
	Slug      string     `json:"slug" gorm:"size:120;uniqueIndex;not null"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	SortOrder int        `json:"sort_order" gorm:"default:0"`

	// Relationships
	Children   []Category         `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Properties []CategoryProperty `json:"properties,omitempty" gorm:"foreignKey:CategoryID"`
}

// CategoryProperty declares a custom field for ads in a category. It only
// labels stored AdPropertyValue rows; requiredness and type are not enforced
// by the engine.
type CategoryProperty struct {
	BaseModel
	CategoryID uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`
	Name       string         `json:"name" gorm:"size:100;not null"`
	FieldType  string         `json:"field_type" gorm:"size:20;default:'text'"`
	Options    pq.StringArray `json:"options,omitempty" gorm:"type:text"`
	Required   bool           `json:"required" gorm:"default:false"`
	SortOrder  int            `json:"sort_order" gorm:"default:0"`
}
