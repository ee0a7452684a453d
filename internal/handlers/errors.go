// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/beldeapp/belde-backend/internal/i18n"
	"github.com/beldeapp/belde-backend/internal/services"
	"github.com/beldeapp/belde-backend/internal/utils"
)

// respondServiceError maps each business error to its own status code and
// localized message so clients can render a precise reason. Anything not in
// the taxonomy is a persistence fault: logged and answered with a 500.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrAdNotFound):
		utils.NotFoundResponse(c, "ad")
	case errors.Is(err, services.ErrFavoriteNotFound):
		utils.NotFoundResponse(c, "favorite")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAdForbidden))
	case errors.Is(err, services.ErrAlreadyFavorited):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyFavoriteExists))
	case errors.Is(err, services.ErrDailyLimitExceeded):
		utils.UnprocessableResponse(c, "DAILY_LIMIT_EXCEEDED", i18n.T(lang, i18n.KeyAdDailyLimit))
	case errors.Is(err, services.ErrFavoriteLimitExceeded):
		utils.UnprocessableResponse(c, "FAVORITE_LIMIT_EXCEEDED", i18n.T(lang, i18n.KeyFavoriteLimit))
	case errors.Is(err, services.ErrMaxExtensionsReached):
		utils.UnprocessableResponse(c, "MAX_EXTENSIONS_REACHED", i18n.T(lang, i18n.KeyAdExtensionLimit))
	case errors.Is(err, services.ErrInvalidCategory):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAdInvalidCategory), nil)
	case errors.Is(err, services.ErrNotLeafCategory):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAdCategoryNotLeaf), nil)
	case errors.Is(err, services.ErrInvalidCoverImage):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAdInvalidCover), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAdInvalidTransition), nil)
	default:
		logrus.WithError(err).Error("Unexpected service error")
		utils.InternalErrorResponse(c, "")
	}
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}
