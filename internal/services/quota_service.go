// internal/services/quota_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beldeapp/belde-backend/internal/models"
)

// QuotaService holds the advisory pre-checks for per-user ceilings. The
// checks are plain counts and are not serialized against the mutation that
// follows them; two concurrent requests from the same user can both pass
// before either commits. Accepted for the low per-user write volume here.
type QuotaService struct {
	db *gorm.DB
}

func NewQuotaService(db *gorm.DB) *QuotaService {
	return &QuotaService{db: db}
}

// CheckDailyPostQuota counts the user's non-deleted ads created since the
// start of the current calendar day (server local time).
func (s *QuotaService) CheckDailyPostQuota(userID uuid.UUID) error {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	if err := s.db.Model(&models.Ad{}).
		Where("user_id = ? AND created_at >= ?", userID, dayStart).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count daily ads: %w", err)
	}

	if count >= models.DailyAdLimit {
		return ErrDailyLimitExceeded
	}
	return nil
}

// CheckFavoriteQuota counts the user's existing favorites.
func (s *QuotaService) CheckFavoriteQuota(userID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count favorites: %w", err)
	}

	if count >= models.FavoriteLimit {
		return ErrFavoriteLimitExceeded
	}
	return nil
}
