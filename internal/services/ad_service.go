// internal/services/ad_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beldeapp/belde-backend/internal/database"
	"github.com/beldeapp/belde-backend/internal/models"
	"github.com/beldeapp/belde-backend/internal/utils"
)

type AdService struct {
	db              *gorm.DB
	categoryService *CategoryService
	quotaService    *QuotaService
}

func NewAdService(db *gorm.DB, categoryService *CategoryService, quotaService *QuotaService) *AdService {
	return &AdService{
		db:              db,
		categoryService: categoryService,
		quotaService:    quotaService,
	}
}

type AdPropertyInput struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Value      string    `json:"value" validate:"required,max=500"`
}

type CreateAdRequest struct {
	CategoryID   uuid.UUID         `json:"category_id" validate:"required"`
	Title        string            `json:"title" validate:"required,min=5,max=200"`
	Description  string            `json:"description" validate:"required,min=10,max=2000,plaintext"`
	Price        float64           `json:"price" validate:"min=0"`
	ContactPhone string            `json:"contact_phone" validate:"required,trmobile"`
	ContactName  string            `json:"contact_name" validate:"omitempty,max=100"`
	ImageIDs     []uuid.UUID       `json:"image_ids" validate:"required,min=1,max=5"`
	CoverImageID uuid.UUID         `json:"cover_image_id" validate:"required"`
	Properties   []AdPropertyInput `json:"properties,omitempty" validate:"omitempty,dive"`
}

// UpdateAdRequest is a partial patch: nil means "leave the field alone".
// Images are fixed at creation and have no consumer-facing mutation path;
// Properties, when present, replace the stored set wholesale.
type UpdateAdRequest struct {
	CategoryID   *uuid.UUID        `json:"category_id,omitempty"`
	Title        *string           `json:"title,omitempty" validate:"omitempty,min=5,max=200"`
	Description  *string           `json:"description,omitempty" validate:"omitempty,min=10,max=2000,plaintext"`
	Price        *float64          `json:"price,omitempty" validate:"omitempty,min=0"`
	ContactPhone *string           `json:"contact_phone,omitempty" validate:"omitempty,trmobile"`
	ContactName  *string           `json:"contact_name,omitempty" validate:"omitempty,max=100"`
	Properties   []AdPropertyInput `json:"properties,omitempty" validate:"omitempty,dive"`
}

type CreateAdResult struct {
	ID        uuid.UUID       `json:"id"`
	Status    models.AdStatus `json:"status"`
	Title     string          `json:"title"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type ExtensionResult struct {
	ExpiresAt           time.Time `json:"expires_at"`
	ExtensionCount      int       `json:"extension_count"`
	RemainingExtensions int       `json:"remaining_extensions"`
}

type AdSearchParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
}

func (s *AdService) CreateAd(userID uuid.UUID, req *CreateAdRequest) (*CreateAdResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.quotaService.CheckDailyPostQuota(userID); err != nil {
		return nil, err
	}

	if _, err := s.categoryService.ValidateLeafCategory(req.CategoryID); err != nil {
		return nil, err
	}

	coverFound := false
	for _, fileID := range req.ImageIDs {
		if fileID == req.CoverImageID {
			coverFound = true
			break
		}
	}
	if !coverFound {
		return nil, ErrInvalidCoverImage
	}

	ad := &models.Ad{
		UserID:        userID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		ContactPhone:  req.ContactPhone,
		ContactName:   req.ContactName,
		Status:        models.AdStatusPending,
		ExpiresAt:     time.Now().AddDate(0, 0, models.AdLifetimeDays),
		MaxExtensions: models.DefaultMaxExtensions,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(ad).Error; err != nil {
			return fmt.Errorf("failed to create ad: %w", err)
		}

		coverSet := false
		for position, fileID := range req.ImageIDs {
			image := models.AdImage{
				AdID:     ad.ID,
				FileID:   fileID,
				Position: position,
				IsCover:  !coverSet && fileID == req.CoverImageID,
			}
			if image.IsCover {
				coverSet = true
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to create ad image: %w", err)
			}
		}

		for _, prop := range req.Properties {
			value := models.AdPropertyValue{
				AdID:       ad.ID,
				PropertyID: prop.PropertyID,
				Value:      prop.Value,
			}
			if err := tx.Create(&value).Error; err != nil {
				return fmt.Errorf("failed to create ad property: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateAdResult{
		ID:        ad.ID,
		Status:    ad.Status,
		Title:     ad.Title,
		ExpiresAt: ad.ExpiresAt,
	}, nil
}

func (s *AdService) UpdateAd(adID uuid.UUID, userID uuid.UUID, req *UpdateAdRequest) (*models.Ad, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var ad models.Ad
	if err := s.db.Where("id = ?", adID).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if ad.UserID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}

	if req.CategoryID != nil && *req.CategoryID != ad.CategoryID {
		if _, err := s.categoryService.ValidateLeafCategory(*req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}

	// Approved content is never trusted after mutation; any edit to a live ad
	// sends it back through moderation. Other statuses pass through unchanged.
	if ad.Status == models.AdStatusApproved {
		updates["status"] = models.AdStatusPending
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&ad).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update ad: %w", err)
			}
		}

		if req.Properties != nil {
			if err := tx.Where("ad_id = ?", ad.ID).Delete(&models.AdPropertyValue{}).Error; err != nil {
				return fmt.Errorf("failed to clear ad properties: %w", err)
			}
			for _, prop := range req.Properties {
				value := models.AdPropertyValue{
					AdID:       ad.ID,
					PropertyID: prop.PropertyID,
					Value:      prop.Value,
				}
				if err := tx.Create(&value).Error; err != nil {
					return fmt.Errorf("failed to create ad property: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.preloadAd().Where("id = ?", ad.ID).First(&ad).Error; err != nil {
		return nil, fmt.Errorf("failed to reload ad: %w", err)
	}
	return &ad, nil
}

// DeleteAd soft-deletes the ad and removes its favorites; the record stays
// around for audit but disappears from every read path.
func (s *AdService) DeleteAd(adID uuid.UUID, userID uuid.UUID) error {
	var ad models.Ad
	if err := s.db.Where("id = ?", adID).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if ad.UserID != userID {
		return ErrForbidden
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("ad_id = ?", ad.ID).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		if err := tx.Delete(&ad).Error; err != nil {
			return fmt.Errorf("failed to delete ad: %w", err)
		}
		return nil
	})
}

// GetAd is the public fetch: approved ads only. Every successful read bumps
// view_count by one with no per-viewer de-duplication.
func (s *AdService) GetAd(adID uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	err := s.preloadAd().
		Where("id = ? AND status = ?", adID, models.AdStatusApproved).
		First(&ad).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&models.Ad{}).Where("id = ?", ad.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, fmt.Errorf("failed to increment view count: %w", err)
	}

	return &ad, nil
}

// ExtendAd pushes the expiry back by one day per watched ad, stacking onto
// the current expires_at. The extension counter tracks events, not days: one
// call consumes one of max_extensions regardless of how many days it grants.
func (s *AdService) ExtendAd(adID uuid.UUID, userID uuid.UUID, adsWatched int) (*ExtensionResult, error) {
	var ad models.Ad
	if err := s.db.Where("id = ?", adID).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if ad.UserID != userID {
		return nil, ErrForbidden
	}

	if ad.ExtensionCount >= ad.MaxExtensions {
		return nil, ErrMaxExtensionsReached
	}

	daysGranted := adsWatched // one watched ad grants one day
	newExpiry := ad.ExpiresAt.AddDate(0, 0, daysGranted)

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&ad).Updates(map[string]interface{}{
			"expires_at":      newExpiry,
			"extension_count": gorm.Expr("extension_count + 1"),
		}).Error; err != nil {
			return fmt.Errorf("failed to extend ad: %w", err)
		}

		record := models.AdExtension{
			AdID:        ad.ID,
			UserID:      userID,
			AdsWatched:  adsWatched,
			DaysGranted: daysGranted,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record extension: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	extensionCount := ad.ExtensionCount + 1
	return &ExtensionResult{
		ExpiresAt:           newExpiry,
		ExtensionCount:      extensionCount,
		RemainingExtensions: ad.MaxExtensions - extensionCount,
	}, nil
}

// MarkSold moves an approved ad to its terminal sold status.
func (s *AdService) MarkSold(adID uuid.UUID, userID uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	if err := s.db.Where("id = ?", adID).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if ad.UserID != userID {
		return nil, ErrForbidden
	}

	if !ad.Status.CanTransitionTo(models.AdStatusSold) {
		return nil, ErrInvalidTransition
	}

	if err := s.db.Model(&ad).Update("status", models.AdStatusSold).Error; err != nil {
		return nil, fmt.Errorf("failed to mark ad sold: %w", err)
	}
	return &ad, nil
}

func (s *AdService) TrackPhoneClick(adID uuid.UUID) error {
	return s.trackClick(adID, "phone_click_count")
}

func (s *AdService) TrackWhatsappClick(adID uuid.UUID) error {
	return s.trackClick(adID, "whatsapp_click_count")
}

func (s *AdService) trackClick(adID uuid.UUID, column string) error {
	result := s.db.Model(&models.Ad{}).
		Where("id = ? AND status = ?", adID, models.AdStatusApproved).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to track click: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAdNotFound
	}
	return nil
}

// adSortColumns maps the exposed sort tokens to order clauses. "most viewed"
// has no ascending variant.
var adSortColumns = map[string]string{
	"-created_at": "created_at DESC",
	"price":       "price ASC",
	"-price":      "price DESC",
	"view_count":  "view_count DESC",
}

// SearchAds is the public discovery query: approved, unexpired ads with
// AND-combined optional filters. Expiry is enforced here at read time rather
// than by a background status sweep.
func (s *AdService) SearchAds(params AdSearchParams) ([]models.Ad, int64, error) {
	query := s.db.Model(&models.Ad{}).
		Where("status = ? AND expires_at > ?", models.AdStatusApproved, time.Now())

	if params.CategoryID != nil {
		categoryIDs, err := s.categoryService.RollupIDs(*params.CategoryID)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("category_id IN ?", categoryIDs)
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ads: %w", err)
	}

	order, ok := adSortColumns[params.Sort]
	if !ok {
		order = adSortColumns["-created_at"]
	}
	query = utils.ApplyPagination(query.Order(order), params.PaginationParams)

	var ads []models.Ad
	if err := query.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&ads).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ads: %w", err)
	}

	return ads, total, nil
}

// GetMyAds lists the owner's ads regardless of status or expiry, with an
// optional status filter.
func (s *AdService) GetMyAds(userID uuid.UUID, status *models.AdStatus, params utils.PaginationParams) ([]models.Ad, int64, error) {
	query := s.db.Model(&models.Ad{}).Where("user_id = ?", userID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ads: %w", err)
	}

	var ads []models.Ad
	err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&ads).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ads: %w", err)
	}

	return ads, total, nil
}

func (s *AdService) preloadAd() *gorm.DB {
	return s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Properties")
}
