// internal/services/ad_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beldeapp/belde-backend/internal/models"
	"github.com/beldeapp/belde-backend/internal/utils"
)

func TestCreateAd_StartsPendingWithLifetime(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()

	result, err := svc.CreateAd(userID, validCreateReq(category.ID))
	require.NoError(t, err)

	assert.Equal(t, models.AdStatusPending, result.Status)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, models.AdLifetimeDays), result.ExpiresAt, 5*time.Second)

	var ad models.Ad
	require.NoError(t, db.First(&ad, "id = ?", result.ID).Error)
	assert.Equal(t, 0, ad.ExtensionCount)
	assert.Equal(t, models.DefaultMaxExtensions, ad.MaxExtensions)
	assert.EqualValues(t, 0, ad.ViewCount)
}

func TestCreateAd_PersistsImagesWithCover(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)

	req := validCreateReq(category.ID)
	second := uuid.New()
	req.ImageIDs = append(req.ImageIDs, second)
	req.CoverImageID = second

	result, err := svc.CreateAd(uuid.New(), req)
	require.NoError(t, err)

	var images []models.AdImage
	require.NoError(t, db.Where("ad_id = ?", result.ID).Order("position ASC").Find(&images).Error)
	require.Len(t, images, 2)
	assert.False(t, images[0].IsCover)
	assert.True(t, images[1].IsCover)
	assert.Equal(t, 0, images[0].Position)
	assert.Equal(t, 1, images[1].Position)
}

func TestCreateAd_CoverMustBeAmongImages(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)

	req := validCreateReq(category.ID)
	req.CoverImageID = uuid.New()

	_, err := svc.CreateAd(uuid.New(), req)
	assert.ErrorIs(t, err, ErrInvalidCoverImage)
}

func TestCreateAd_RejectsNonLeafCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	parent := createCategory(t, db, "vasita", nil)
	createCategory(t, db, "otomobil", &parent.ID)

	_, err := svc.CreateAd(uuid.New(), validCreateReq(parent.ID))
	assert.ErrorIs(t, err, ErrNotLeafCategory)
}

func TestCreateAd_RejectsUnknownAndInactiveCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)

	_, err := svc.CreateAd(uuid.New(), validCreateReq(uuid.New()))
	assert.ErrorIs(t, err, ErrInvalidCategory)

	category := createLeafCategory(t, db)
	require.NoError(t, db.Model(category).Update("is_active", false).Error)

	_, err = svc.CreateAd(uuid.New(), validCreateReq(category.ID))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCreateAd_DailyLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()

	for i := 0; i < models.DailyAdLimit-1; i++ {
		createAd(t, db, userID, category.ID, models.AdStatusPending)
	}

	// the tenth ad of the day still goes through
	_, err := svc.CreateAd(userID, validCreateReq(category.ID))
	require.NoError(t, err)

	_, err = svc.CreateAd(userID, validCreateReq(category.ID))
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)

	// the ceiling is per user, another poster is unaffected
	_, err = svc.CreateAd(uuid.New(), validCreateReq(category.ID))
	assert.NoError(t, err)
}

func TestCreateAd_ValidationRejectsMarkupAndBadPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)

	req := validCreateReq(category.ID)
	req.Description = "Satilik esya <script>alert(1)</script> hemen arayin."
	_, err := svc.CreateAd(uuid.New(), req)
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	req = validCreateReq(category.ID)
	req.ContactPhone = "02121234567"
	_, err = svc.CreateAd(uuid.New(), req)
	require.ErrorAs(t, err, &validationErrs)
}

func TestUpdateAd_ApprovedGoesBackToModeration(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusApproved)

	updated, err := svc.UpdateAd(ad.ID, userID, &UpdateAdRequest{Title: strPtr("Fiyat dustu, temiz bisiklet")})
	require.NoError(t, err)
	assert.Equal(t, models.AdStatusPending, updated.Status)
	assert.Equal(t, "Fiyat dustu, temiz bisiklet", updated.Title)
}

func TestUpdateAd_RejectedStaysRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusRejected)

	updated, err := svc.UpdateAd(ad.ID, userID, &UpdateAdRequest{Price: floatPtr(900)})
	require.NoError(t, err)
	assert.Equal(t, models.AdStatusRejected, updated.Status)
	assert.Equal(t, float64(900), updated.Price)
}

func TestUpdateAd_Forbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	ad := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)

	_, err := svc.UpdateAd(ad.ID, uuid.New(), &UpdateAdRequest{Price: floatPtr(100)})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateAd_ReplacesProperties(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusPending)

	require.NoError(t, db.Create(&models.AdPropertyValue{AdID: ad.ID, PropertyID: uuid.New(), Value: "kirmizi"}).Error)
	require.NoError(t, db.Create(&models.AdPropertyValue{AdID: ad.ID, PropertyID: uuid.New(), Value: "26 jant"}).Error)

	keptProperty := uuid.New()
	updated, err := svc.UpdateAd(ad.ID, userID, &UpdateAdRequest{
		Properties: []AdPropertyInput{{PropertyID: keptProperty, Value: "mavi"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Properties, 1)
	assert.Equal(t, keptProperty, updated.Properties[0].PropertyID)
	assert.Equal(t, "mavi", updated.Properties[0].Value)
}

func TestUpdateAd_NilPropertiesLeaveStoredSetAlone(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusPending)

	require.NoError(t, db.Create(&models.AdPropertyValue{AdID: ad.ID, PropertyID: uuid.New(), Value: "kirmizi"}).Error)

	updated, err := svc.UpdateAd(ad.ID, userID, &UpdateAdRequest{Price: floatPtr(1200)})
	require.NoError(t, err)
	assert.Len(t, updated.Properties, 1)
}

func TestDeleteAd_SoftDeletesAndDropsFavorites(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusApproved)
	require.NoError(t, db.Create(&models.Favorite{UserID: uuid.New(), AdID: ad.ID}).Error)

	require.NoError(t, svc.DeleteAd(ad.ID, userID))

	var count int64
	require.NoError(t, db.Model(&models.Ad{}).Where("id = ?", ad.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// the row survives for audit under the soft delete
	require.NoError(t, db.Unscoped().Model(&models.Ad{}).Where("id = ?", ad.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.Model(&models.Favorite{}).Where("ad_id = ?", ad.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteAd_Forbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	ad := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)

	assert.ErrorIs(t, svc.DeleteAd(ad.ID, uuid.New()), ErrForbidden)
}

func TestGetAd_ApprovedOnlyAndCountsViews(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	pending := createAd(t, db, uuid.New(), category.ID, models.AdStatusPending)
	approved := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)

	_, err := svc.GetAd(pending.ID)
	assert.ErrorIs(t, err, ErrAdNotFound)

	_, err = svc.GetAd(approved.ID)
	require.NoError(t, err)
	_, err = svc.GetAd(approved.ID)
	require.NoError(t, err)

	var ad models.Ad
	require.NoError(t, db.First(&ad, "id = ?", approved.ID).Error)
	assert.EqualValues(t, 2, ad.ViewCount)
}

func TestExtendAd_GrantsOneDayPerWatchedAd(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusApproved)

	result, err := svc.ExtendAd(ad.ID, userID, 3)
	require.NoError(t, err)

	assert.WithinDuration(t, ad.ExpiresAt.AddDate(0, 0, 3), result.ExpiresAt, time.Second)
	assert.Equal(t, 1, result.ExtensionCount)
	assert.Equal(t, 2, result.RemainingExtensions)

	var record models.AdExtension
	require.NoError(t, db.First(&record, "ad_id = ?", ad.ID).Error)
	assert.Equal(t, 3, record.AdsWatched)
	assert.Equal(t, 3, record.DaysGranted)
	assert.Equal(t, userID, record.UserID)
}

func TestExtendAd_StacksOntoCurrentExpiry(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusApproved)

	first, err := svc.ExtendAd(ad.ID, userID, 1)
	require.NoError(t, err)
	second, err := svc.ExtendAd(ad.ID, userID, 2)
	require.NoError(t, err)

	assert.WithinDuration(t, first.ExpiresAt.AddDate(0, 0, 2), second.ExpiresAt, time.Second)
	assert.Equal(t, 2, second.ExtensionCount)
	assert.Equal(t, 1, second.RemainingExtensions)
}

func TestExtendAd_CapReached(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusApproved)
	require.NoError(t, db.Model(ad).Update("extension_count", models.DefaultMaxExtensions).Error)

	_, err := svc.ExtendAd(ad.ID, userID, 1)
	assert.ErrorIs(t, err, ErrMaxExtensionsReached)
}

func TestExtendAd_Forbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	ad := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)

	_, err := svc.ExtendAd(ad.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkSold_FromApproved(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusApproved)

	_, err := svc.MarkSold(ad.ID, userID)
	require.NoError(t, err)

	var reloaded models.Ad
	require.NoError(t, db.First(&reloaded, "id = ?", ad.ID).Error)
	assert.Equal(t, models.AdStatusSold, reloaded.Status)
}

func TestMarkSold_InvalidFromPending(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()
	ad := createAd(t, db, userID, category.ID, models.AdStatusPending)

	_, err := svc.MarkSold(ad.ID, userID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTrackClicks(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	ad := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)

	require.NoError(t, svc.TrackPhoneClick(ad.ID))
	require.NoError(t, svc.TrackPhoneClick(ad.ID))
	require.NoError(t, svc.TrackWhatsappClick(ad.ID))

	var reloaded models.Ad
	require.NoError(t, db.First(&reloaded, "id = ?", ad.ID).Error)
	assert.EqualValues(t, 2, reloaded.PhoneClickCount)
	assert.EqualValues(t, 1, reloaded.WhatsappClickCount)

	assert.ErrorIs(t, svc.TrackPhoneClick(uuid.New()), ErrAdNotFound)

	pending := createAd(t, db, uuid.New(), category.ID, models.AdStatusPending)
	assert.ErrorIs(t, svc.TrackWhatsappClick(pending.ID), ErrAdNotFound)
}

func TestSearchAds_OnlyApprovedAndUnexpired(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)

	live := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)
	createAd(t, db, uuid.New(), category.ID, models.AdStatusPending)
	expired := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)

	ads, total, err := svc.SearchAds(AdSearchParams{PaginationParams: defaultPage()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ads, 1)
	assert.Equal(t, live.ID, ads[0].ID)
}

func TestSearchAds_CategoryRollup(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	parent := createCategory(t, db, "vasita", nil)
	car := createCategory(t, db, "otomobil", &parent.ID)
	moto := createCategory(t, db, "motosiklet", &parent.ID)
	other := createLeafCategory(t, db)

	createAd(t, db, uuid.New(), car.ID, models.AdStatusApproved)
	createAd(t, db, uuid.New(), moto.ID, models.AdStatusApproved)
	createAd(t, db, uuid.New(), other.ID, models.AdStatusApproved)

	_, total, err := svc.SearchAds(AdSearchParams{PaginationParams: defaultPage(), CategoryID: &parent.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = svc.SearchAds(AdSearchParams{PaginationParams: defaultPage(), CategoryID: &car.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestSearchAds_PriceAndTextFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)

	cheap := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)
	require.NoError(t, db.Model(cheap).Updates(map[string]interface{}{"price": 100, "title": "Eski sandalye"}).Error)
	pricey := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)
	require.NoError(t, db.Model(pricey).Updates(map[string]interface{}{"price": 5000, "title": "Antika masa"}).Error)

	_, total, err := svc.SearchAds(AdSearchParams{
		PaginationParams: defaultPage(),
		MinPrice:         floatPtr(500),
		MaxPrice:         floatPtr(10000),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	params := defaultPage()
	params.Search = "ANTIKA"
	ads, total, err := svc.SearchAds(AdSearchParams{PaginationParams: params})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ads, 1)
	assert.Equal(t, pricey.ID, ads[0].ID)
}

func TestSearchAds_SortByPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)

	for _, price := range []float64{300, 100, 200} {
		ad := createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)
		require.NoError(t, db.Model(ad).Update("price", price).Error)
	}

	params := defaultPage()
	params.Sort = "price"
	ads, _, err := svc.SearchAds(AdSearchParams{PaginationParams: params})
	require.NoError(t, err)
	require.Len(t, ads, 3)
	assert.Equal(t, float64(100), ads[0].Price)
	assert.Equal(t, float64(300), ads[2].Price)

	params.Sort = "-price"
	ads, _, err = svc.SearchAds(AdSearchParams{PaginationParams: params})
	require.NoError(t, err)
	assert.Equal(t, float64(300), ads[0].Price)
}

func TestSearchAds_Pagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)

	for i := 0; i < 5; i++ {
		createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)
	}

	params := utils.PaginationParams{Page: 2, Limit: 2, Sort: "-created_at"}
	ads, total, err := svc.SearchAds(AdSearchParams{PaginationParams: params})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, ads, 2)

	result := utils.CreatePaginationResult(ads, total, params)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

func TestGetMyAds_IncludesEveryStatusAndFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdService(db)
	category := createLeafCategory(t, db)
	userID := uuid.New()

	createAd(t, db, userID, category.ID, models.AdStatusPending)
	createAd(t, db, userID, category.ID, models.AdStatusRejected)
	expired := createAd(t, db, userID, category.ID, models.AdStatusApproved)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	createAd(t, db, uuid.New(), category.ID, models.AdStatusApproved)

	_, total, err := svc.GetMyAds(userID, nil, defaultPage())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	rejected := models.AdStatusRejected
	ads, total, err := svc.GetMyAds(userID, &rejected, defaultPage())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ads, 1)
	assert.Equal(t, models.AdStatusRejected, ads[0].Status)
}

func defaultPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: models.DefaultPageSize, Sort: "-created_at"}
}
