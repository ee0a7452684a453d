// internal/handlers/ad.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beldeapp/belde-backend/internal/i18n"
	"github.com/beldeapp/belde-backend/internal/models"
	"github.com/beldeapp/belde-backend/internal/services"
	"github.com/beldeapp/belde-backend/internal/utils"
)

type AdHandler struct {
	adService *services.AdService
}

func NewAdHandler(adService *services.AdService) *AdHandler {
	return &AdHandler{adService: adService}
}

type extendAdRequest struct {
	AdsWatched int `json:"ads_watched" validate:"required,min=1,max=3"`
}

// GET /ads
func (h *AdHandler) SearchAds(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.AdSearchParams{
		PaginationParams: params,
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			searchParams.CategoryID = &categoryID
		}
	}

	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		if minPrice, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			searchParams.MinPrice = &minPrice
		}
	}

	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			searchParams.MaxPrice = &maxPrice
		}
	}

	ads, total, err := h.adService.SearchAds(searchParams)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(ads, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /ads/my
func (h *AdHandler) GetMyAds(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	var status *models.AdStatus
	if statusStr := c.Query("status"); statusStr != "" {
		adStatus := models.AdStatus(statusStr)
		if !adStatus.IsValid() {
			utils.BadRequestResponse(c, "Invalid status filter", nil)
			return
		}
		status = &adStatus
	}

	ads, total, err := h.adService.GetMyAds(userID, status, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(ads, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /ads/:id
func (h *AdHandler) GetAd(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	ad, err := h.adService.GetAd(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"ad": ad,
	})
}

// POST /ads
func (h *AdHandler) CreateAd(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.adService.CreateAd(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdSubmitted),
		"ad":      result,
	})
}

// PUT /ads/:id
func (h *AdHandler) UpdateAd(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	ad, err := h.adService.UpdateAd(id, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdUpdated),
		"ad":      ad,
	})
}

// DELETE /ads/:id
func (h *AdHandler) DeleteAd(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.adService.DeleteAd(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdDeleted),
	})
}

// POST /ads/:id/extend
func (h *AdHandler) ExtendAd(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req extendAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// ads_watched is bounded at the boundary; the engine trusts it.
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.adService.ExtendAd(id, userID, req.AdsWatched)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyAdExtended, req.AdsWatched),
		"extension": result,
	})
}

// POST /ads/:id/sold
func (h *AdHandler) MarkSold(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ad, err := h.adService.MarkSold(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdMarkedSold),
		"ad":      ad,
	})
}

// POST /ads/:id/phone-click
func (h *AdHandler) TrackPhoneClick(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	if err := h.adService.TrackPhoneClick(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"tracked": true})
}

// POST /ads/:id/whatsapp-click
func (h *AdHandler) TrackWhatsappClick(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ad ID", nil)
		return
	}

	if err := h.adService.TrackWhatsappClick(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"tracked": true})
}
