// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/beldeapp/belde-backend/internal/config"
	"github.com/beldeapp/belde-backend/internal/handlers"
	"github.com/beldeapp/belde-backend/internal/middleware"
	"github.com/beldeapp/belde-backend/internal/services"
	"github.com/beldeapp/belde-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	categoryService := services.NewCategoryService(db)
	quotaService := services.NewQuotaService(db)
	adService := services.NewAdService(db, categoryService, quotaService)
	favoriteService := services.NewFavoriteService(db, quotaService)

	// Initialize handlers
	adHandler := handlers.NewAdHandler(adService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Ad routes
		ads := v1.Group("/ads")
		{
			ads.GET("", adHandler.SearchAds)
			ads.GET("/:id", adHandler.GetAd)
			ads.POST("/:id/phone-click", adHandler.TrackPhoneClick)
			ads.POST("/:id/whatsapp-click", adHandler.TrackWhatsappClick)

			// Authenticated routes
			protected := ads.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/my", adHandler.GetMyAds)
				protected.POST("", middleware.WriteRateLimit(), adHandler.CreateAd)
				protected.PUT("/:id", middleware.WriteRateLimit(), adHandler.UpdateAd)
				protected.DELETE("/:id", adHandler.DeleteAd)
				protected.POST("/:id/extend", middleware.WriteRateLimit(), adHandler.ExtendAd)
				protected.POST("/:id/sold", adHandler.MarkSold)
				protected.POST("/:id/favorite", favoriteHandler.AddFavorite)
				protected.DELETE("/:id/favorite", favoriteHandler.RemoveFavorite)
			}
		}

		// Favorite routes
		favorites := v1.Group("/favorites")
		favorites.Use(middleware.AuthRequired())
		{
			favorites.GET("", favoriteHandler.ListFavorites)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
		}
	}

	return r
}
