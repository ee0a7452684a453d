// internal/handlers/setup_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beldeapp/belde-backend/internal/middleware"
	"github.com/beldeapp/belde-backend/internal/models"
	"github.com/beldeapp/belde-backend/internal/services"
	"github.com/beldeapp/belde-backend/internal/utils"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	userID uuid.UUID
	token  string
}

var categorySeq int

func setupHandlerTest(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("handler-test-secret")

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

	categoryService := services.NewCategoryService(db)
	quotaService := services.NewQuotaService(db)
	adService := services.NewAdService(db, categoryService, quotaService)
	favoriteService := services.NewFavoriteService(db, quotaService)

	adHandler := NewAdHandler(adService)
	favoriteHandler := NewFavoriteHandler(favoriteService)
	categoryHandler := NewCategoryHandler(categoryService)

	r := gin.New()
	v1 := r.Group("/v1")

	ads := v1.Group("/ads")
	ads.GET("", adHandler.SearchAds)
	ads.GET("/:id", adHandler.GetAd)
	ads.POST("/:id/phone-click", adHandler.TrackPhoneClick)
	ads.POST("/:id/whatsapp-click", adHandler.TrackWhatsappClick)

	protected := ads.Group("")
	protected.Use(middleware.AuthRequired())
	protected.GET("/my", adHandler.GetMyAds)
	protected.POST("", adHandler.CreateAd)
	protected.PUT("/:id", adHandler.UpdateAd)
	protected.DELETE("/:id", adHandler.DeleteAd)
	protected.POST("/:id/extend", adHandler.ExtendAd)
	protected.POST("/:id/sold", adHandler.MarkSold)
	protected.POST("/:id/favorite", favoriteHandler.AddFavorite)
	protected.DELETE("/:id/favorite", favoriteHandler.RemoveFavorite)

	favorites := v1.Group("/favorites")
	favorites.Use(middleware.AuthRequired())
	favorites.GET("", favoriteHandler.ListFavorites)

	v1.GET("/categories", categoryHandler.ListCategories)

	userID := uuid.New()
	token, err := utils.GenerateJWT(userID, 1)
	require.NoError(t, err)

	return &testEnv{router: r, db: db, userID: userID, token: token}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func (e *testEnv) createLeafCategory(t *testing.T) *models.Category {
	categorySeq++
	category := &models.Category{
		Name:     "elektronik",
		Slug:     fmt.Sprintf("elektronik-%d", categorySeq),
		IsActive: true,
	}
	require.NoError(t, e.db.Create(category).Error)
	return category
}

func (e *testEnv) createAd(t *testing.T, userID, categoryID uuid.UUID, status models.AdStatus) *models.Ad {
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
	require.NoError(t, e.db.Create(ad).Error)
	return ad
}

func otherUser() uuid.UUID { return uuid.New() }

func validCreatePayload(categoryID uuid.UUID) map[string]interface{} {
	imageID := uuid.New().String()
	return map[string]interface{}{
		"category_id":    categoryID.String(),
		"title":          "Sahibinden temiz bisiklet",
		"description":    "Az kullanilmis, bakimlari yeni yapilmis sehir bisikleti.",
		"price":          1500,
		"contact_phone":  "05321234567",
		"image_ids":      []string{imageID},
		"cover_image_id": imageID,
	}
}
