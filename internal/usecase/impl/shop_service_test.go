package impl

import (
	"context"
	"testing"

	"neighborhood/config"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	mockRepo "neighborhood/internal/mocks/repository"
	mockService "neighborhood/internal/mocks/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type shopServiceFixtures struct {
	service   usecase.ShopUsecase
	shops     *mockRepo.MockShopRepository
	products  *mockRepo.MockProductRepository
	events    *mockRepo.MockEventRepository
	reviews   *mockRepo.MockReviewRepository
	favorites *mockRepo.MockFavoriteRepository
	qr        *mockService.MockQRCodeService
}

func createTestShopService(t *testing.T) shopServiceFixtures {
	fx := shopServiceFixtures{
		shops:     mockRepo.NewMockShopRepository(t),
		products:  mockRepo.NewMockProductRepository(t),
		events:    mockRepo.NewMockEventRepository(t),
		reviews:   mockRepo.NewMockReviewRepository(t),
		favorites: mockRepo.NewMockFavoriteRepository(t),
		qr:        mockService.NewMockQRCodeService(t),
	}
	fx.service = NewShopService(ShopServiceParams{
		ShopRepo:     fx.shops,
		ProductRepo:  fx.products,
		EventRepo:    fx.events,
		ReviewRepo:   fx.reviews,
		FavoriteRepo: fx.favorites,
		QRService:    fx.qr,
		Config: &config.Config{Marketplace: &config.MarketplaceConfig{
			DefaultLatitude:  10.745,
			DefaultLongitude: 124.79,
			MapRadiusKm:      25,
			MaxMapRadiusKm:   50,
			TopRatedLimit:    6,
		}},
		Logger: newDiscardLogger(),
	})

	return fx
}

func shopAt(name string, lat, lng float64) *entity.Shop {
	return &entity.Shop{ID: uuid.New(), Name: name, Category: "Food", Latitude: lat, Longitude: lng, Rating: 4.5}
}

func boundAround(center orb.Point) interface{} {
	return mock.MatchedBy(func(b orb.Bound) bool {
		return b.Contains(center)
	})
}

func TestShopService_MapMarkers_NearestFirstWithinRadius(t *testing.T) {
	fx := createTestShopService(t)
	center := orb.Point{124.79, 10.745}

	mid := shopAt("Mid", 10.80, 124.79)
	near := shopAt("Near", 10.745, 124.80)
	far := shopAt("Far", 10.745, 125.20)
	fx.shops.On("WithinBound", mock.Anything, boundAround(center)).Return([]*entity.Shop{mid, far, near}, nil)

	fc, err := fx.service.MapMarkers(context.Background(), usecase.MapQuery{})

	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, near.ID.String(), fc.Features[0].ID)
	assert.Equal(t, mid.ID.String(), fc.Features[1].ID)
	assert.Equal(t, orb.Point{124.80, 10.745}, fc.Features[0].Geometry)
	assert.Equal(t, "Near", fc.Features[0].Properties["name"])
	assert.Equal(t, "Food", fc.Features[0].Properties["category"])
	assert.InDelta(t, 1.09, fc.Features[0].Properties["distance_km"], 0.05)
	assert.InDelta(t, 6.1, fc.Features[1].Properties["distance_km"], 0.1)
}

func TestShopService_MapMarkers_Radius(t *testing.T) {
	fx := createTestShopService(t)
	center := orb.Point{124.79, 10.745}

	near := shopAt("Near", 10.745, 124.80)
	mid := shopAt("Mid", 10.80, 124.79)
	fx.shops.On("WithinBound", mock.Anything, boundAround(center)).Return([]*entity.Shop{near, mid}, nil)

	fc, err := fx.service.MapMarkers(context.Background(), usecase.MapQuery{Latitude: 10.745, Longitude: 124.79, RadiusKm: 5})

	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, near.ID.String(), fc.Features[0].ID)
}

func TestShopService_MapMarkers_ClampsRadius(t *testing.T) {
	fx := createTestShopService(t)
	center := orb.Point{124.79, 10.745}

	// 100 km east is outside the 50 km ceiling even though a 500 km radius was asked for.
	distant := shopAt("Distant", 10.745, 125.70)
	fx.shops.On("WithinBound", mock.Anything, mock.MatchedBy(func(b orb.Bound) bool {
		return b.Contains(center) && !b.Contains(orb.Point{125.70, 10.745})
	})).Return([]*entity.Shop{distant}, nil)

	fc, err := fx.service.MapMarkers(context.Background(), usecase.MapQuery{Latitude: 10.745, Longitude: 124.79, RadiusKm: 500})

	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}

func TestShopService_MapMarkers_InvalidCoordinates(t *testing.T) {
	fx := createTestShopService(t)

	_, err := fx.service.MapMarkers(context.Background(), usecase.MapQuery{Latitude: 95, Longitude: 124})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestShopService_SearchAndTopRatedDegradeToEmpty(t *testing.T) {
	fx := createTestShopService(t)
	filter := entity.ShopFilter{Category: "Food", Town: "Tacloban"}

	fx.shops.On("Search", mock.Anything, filter).Return(nil, errors.New("timeout"))
	fx.shops.On("TopRated", mock.Anything, 6).Return(nil, errors.New("timeout"))

	shops := fx.service.Search(context.Background(), filter)
	top := fx.service.TopRated(context.Background())

	assert.NotNil(t, shops)
	assert.Empty(t, shops)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestShopService_ShopPage(t *testing.T) {
	shop := shopAt("Ben's Bakery", 10.745, 124.79)
	viewer := uuid.New()

	t.Run("full page with favorite", func(t *testing.T) {
		fx := createTestShopService(t)
		products := []*entity.Product{{ID: uuid.New(), ShopID: shop.ID, Name: "Pandesal"}}
		events := []*entity.ShopEvent{{ID: uuid.New(), ShopID: shop.ID, Title: "Anniversary"}}
		reviews := []*entity.ReviewWithAuthor{{Review: entity.Review{ID: uuid.New(), ShopID: shop.ID, Rating: 5}}}

		fx.shops.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
		fx.products.On("ListByShop", mock.Anything, shop.ID).Return(products, nil)
		fx.events.On("ListByShop", mock.Anything, shop.ID).Return(events, nil)
		fx.reviews.On("ListByShop", mock.Anything, shop.ID).Return(reviews, nil)
		fx.favorites.On("Exists", mock.Anything, viewer, shop.ID).Return(true, nil)

		page, err := fx.service.ShopPage(context.Background(), shop.ID, viewer)

		require.NoError(t, err)
		assert.Equal(t, shop, page.Shop)
		assert.Equal(t, products, page.Products)
		assert.Equal(t, events, page.Events)
		assert.Equal(t, reviews, page.Reviews)
		assert.True(t, page.IsFavorite)
	})

	t.Run("secondary reads degrade", func(t *testing.T) {
		fx := createTestShopService(t)

		fx.shops.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
		fx.products.On("ListByShop", mock.Anything, shop.ID).Return(nil, errors.New("timeout"))
		fx.events.On("ListByShop", mock.Anything, shop.ID).Return(nil, errors.New("timeout"))
		fx.reviews.On("ListByShop", mock.Anything, shop.ID).Return(nil, errors.New("timeout"))

		page, err := fx.service.ShopPage(context.Background(), shop.ID, uuid.Nil)

		require.NoError(t, err)
		assert.NotNil(t, page.Products)
		assert.Empty(t, page.Products)
		assert.NotNil(t, page.Events)
		assert.NotNil(t, page.Reviews)
		assert.False(t, page.IsFavorite)
		fx.favorites.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown shop", func(t *testing.T) {
		fx := createTestShopService(t)
		fx.shops.On("FindByID", mock.Anything, shop.ID).Return(nil, repository.ErrShopNotFound)

		_, err := fx.service.ShopPage(context.Background(), shop.ID, viewer)

		assert.True(t, errors.Is(err, domainerrors.ErrShopNotFound))
	})
}

func TestShopService_ShopQR(t *testing.T) {
	fx := createTestShopService(t)
	shop := shopAt("Ben's Bakery", 10.745, 124.79)

	fx.shops.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
	fx.qr.On("GenerateShopQR", shop.ID).Return(pngContent, nil)

	png, err := fx.service.ShopQR(context.Background(), shop.ID)

	require.NoError(t, err)
	assert.Equal(t, pngContent, png)
}
