// internal/services/favorite_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beldeapp/belde-backend/internal/models"
	"github.com/beldeapp/belde-backend/internal/utils"
)

type FavoriteService struct {
	db           *gorm.DB
	quotaService *QuotaService
}

func NewFavoriteService(db *gorm.DB, quotaService *QuotaService) *FavoriteService {
	return &FavoriteService{db: db, quotaService: quotaService}
}

// AddFavorite records the (user, ad) pair. Only approved ads can be
// favorited; a duplicate pair is an error, not a no-op.
func (s *FavoriteService) AddFavorite(adID uuid.UUID, userID uuid.UUID) (*models.Favorite, error) {
	var ad models.Ad
	err := s.db.Where("id = ? AND status = ?", adID, models.AdStatusApproved).First(&ad).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing int64
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND ad_id = ?", userID, adID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyFavorited
	}

	if err := s.quotaService.CheckFavoriteQuota(userID); err != nil {
		return nil, err
	}

	favorite := &models.Favorite{UserID: userID, AdID: adID}
	if err := s.db.Create(favorite).Error; err != nil {
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}
	return favorite, nil
}

// RemoveFavorite deletes the pair. Removing a favorite that does not exist is
// an error by design, not an idempotent no-op.
func (s *FavoriteService) RemoveFavorite(adID uuid.UUID, userID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND ad_id = ?", userID, adID).Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *FavoriteService) ListFavorites(userID uuid.UUID, params utils.PaginationParams) ([]models.Favorite, int64, error) {
	query := s.db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	var favorites []models.Favorite
	err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("Ad").
		Preload("Ad.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	return favorites, total, nil
}
