// internal/services/setup_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beldeapp/belde-backend/internal/models"
)

var slugSeq int

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.CategoryProperty{},
		&models.Ad{},
		&models.AdImage{},
		&models.AdPropertyValue{},
		&models.AdExtension{},
		&models.Favorite{},
	))
	return db
}

func newAdService(db *gorm.DB) *AdService {
	return NewAdService(db, NewCategoryService(db), NewQuotaService(db))
}

func createCategory(t *testing.T, db *gorm.DB, name string, parentID *uuid.UUID) *models.Category {
	slugSeq++
	category := &models.Category{
		Name:     name,
		Slug:     fmt.Sprintf("%s-%d", name, slugSeq),
		ParentID: parentID,
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createLeafCategory(t *testing.T, db *gorm.DB) *models.Category {
	return createCategory(t, db, "elektronik", nil)
}

func validCreateReq(categoryID uuid.UUID) *CreateAdRequest {
	imageID := uuid.New()
	return &CreateAdRequest{
		CategoryID:   categoryID,
		Title:        "Sahibinden temiz bisiklet",
		Description:  "Az kullanilmis, bakimlari yeni yapilmis sehir bisikleti.",
		Price:        1500,
		ContactPhone: "05321234567",
		ContactName:  "Ayse",
		ImageIDs:     []uuid.UUID{imageID},
		CoverImageID: imageID,
	}
}

func createAd(t *testing.T, db *gorm.DB, userID, categoryID uuid.UUID, status models.AdStatus) *models.Ad {
	ad := &models.Ad{
		UserID:        userID,
		CategoryID:    categoryID,
		Title:         "Sahibinden temiz bisiklet",
		Description:   "Az kullanilmis, bakimlari yeni yapilmis sehir bisikleti.",
		Price:         1500,
		ContactPhone:  "05321234567",
		Status:        status,
		ExpiresAt:     time.Now().AddDate(0, 0, models.AdLifetimeDays),
		MaxExtensions: models.DefaultMaxExtensions,
	}
	require.NoError(t, db.Create(ad).Error)
	return ad
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
