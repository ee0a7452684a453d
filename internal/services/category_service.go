// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beldeapp/belde-backend/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ValidateLeafCategory checks that the category exists, is active and has no
// children. Pure read, no side effects.
func (s *CategoryService) ValidateLeafCategory(categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if !category.IsActive {
		return nil, ErrInvalidCategory
	}

	var children int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", category.ID).Count(&children).Error; err != nil {
		return nil, fmt.Errorf("failed to count child categories: %w", err)
	}
	if children > 0 {
		return nil, ErrNotLeafCategory
	}

	return &category, nil
}

// RollupIDs returns the category id plus the ids of its direct children, the
// one-level rollup used by ad discovery (filtering by a parent matches ads in
// any of its leaves).
func (s *CategoryService) RollupIDs(categoryID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{categoryID}

	var children []models.Category
	if err := s.db.Select("id").Where("parent_id = ?", categoryID).Find(&children).Error; err != nil {
		return nil, fmt.Errorf("failed to load child categories: %w", err)
	}
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	return ids, nil
}

// ListCategories returns the active category tree with declared properties.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.
		Where("parent_id IS NULL AND is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Preload("Children", "is_active = ?", true).
		Preload("Children.Properties", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Properties", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}
