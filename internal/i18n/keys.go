// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"

	// Ads
	KeyAdSubmitted          = "ad.submitted"
	KeyAdUpdated            = "ad.updated"
	KeyAdDeleted            = "ad.deleted"
	KeyAdNotFound           = "ad.not_found"
	KeyAdForbidden          = "ad.forbidden"
	KeyAdExtended           = "ad.extended"
	KeyAdMarkedSold         = "ad.marked_sold"
	KeyAdDailyLimit         = "ad.daily_limit"
	KeyAdExtensionLimit     = "ad.extension_limit"
	KeyAdInvalidCategory    = "ad.invalid_category"
	KeyAdCategoryNotLeaf    = "ad.category_not_leaf"
	KeyAdInvalidCover       = "ad.invalid_cover"
	KeyAdInvalidTransition  = "ad.invalid_transition"

	// Favorites
	KeyFavoriteAdded    = "favorite.added"
	KeyFavoriteRemoved  = "favorite.removed"
	KeyFavoriteNotFound = "favorite.not_found"
	KeyFavoriteExists   = "favorite.exists"
	KeyFavoriteLimit    = "favorite.limit"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
