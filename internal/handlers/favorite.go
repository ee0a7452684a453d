// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beldeapp/belde-backend/internal/i18n"
	"github.com/beldeapp/belde-backend/internal/services"
	"github.com/beldeapp/belde-backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// POST /ads/:id/favorite
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	favorite, err := h.favoriteService.AddFavorite(adID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyFavoriteAdded),
		"favorite": favorite,
	})
}

// DELETE /ads/:id/favorite
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(adID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFavoriteRemoved),
	})
}

// GET /favorites
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	favorites, total, err := h.favoriteService.ListFavorites(userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(favorites, total, params)
	utils.PaginatedResponse(c, result)
}
