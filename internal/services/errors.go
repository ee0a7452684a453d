// internal/services/errors.go
package services

import "errors"

// Business-rule errors. Handlers match these with errors.Is and map each one
// to its own HTTP status and localized message; anything else is treated as a
// persistence fault and propagated unchanged.
var (
	ErrInvalidCategory       = errors.New("category not found or inactive")
	ErrNotLeafCategory       = errors.New("ads must be filed under a leaf category")
	ErrInvalidCoverImage     = errors.New("cover image is not among the supplied images")
	ErrDailyLimitExceeded    = errors.New("daily ad posting limit reached")
	ErrFavoriteLimitExceeded = errors.New("favorite limit reached")
	ErrMaxExtensionsReached  = errors.New("ad has no extensions left")
	ErrAdNotFound            = errors.New("ad not found")
	ErrFavoriteNotFound      = errors.New("favorite not found")
	ErrForbidden             = errors.New("ad belongs to another user")
	ErrAlreadyFavorited      = errors.New("ad is already favorited")
	ErrInvalidTransition     = errors.New("illegal ad status transition")
)
