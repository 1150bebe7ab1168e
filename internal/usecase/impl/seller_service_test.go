package impl

import (
	"context"
	"testing"
	"time"

	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	mockRepo "neighborhood/internal/mocks/repository"
	mockService "neighborhood/internal/mocks/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sellerServiceFixtures struct {
	service  usecase.SellerUsecase
	shops    *mockRepo.MockShopRepository
	products *mockRepo.MockProductRepository
	events   *mockRepo.MockEventRepository
	qr       *mockService.MockQRCodeService
	storage  *mockService.MockObjectStorage
	metrics  *recordingMetrics
}

func createTestSellerService(t *testing.T) sellerServiceFixtures {
	fx := sellerServiceFixtures{
		shops:    mockRepo.NewMockShopRepository(t),
		products: mockRepo.NewMockProductRepository(t),
		events:   mockRepo.NewMockEventRepository(t),
		qr:       mockService.NewMockQRCodeService(t),
		storage:  mockService.NewMockObjectStorage(t),
		metrics:  &recordingMetrics{},
	}
	fx.service = NewSellerService(SellerServiceParams{
		ShopRepo:    fx.shops,
		ProductRepo: fx.products,
		EventRepo:   fx.events,
		QRService:   fx.qr,
		Storage:     fx.storage,
		Metrics:     fx.metrics,
		Logger:      newDiscardLogger(),
	})

	return fx
}

func settingsInput(name string) *usecase.ShopSettingsInput {
	return &usecase.ShopSettingsInput{ShopSettings: entity.ShopSettings{
		Name:        name,
		Description: "Fresh bread daily",
		Address:     "Rizal St, Tacloban",
		Latitude:    11.24,
		Longitude:   125.0,
	}}
}

func TestSellerService_SaveShopSettings_UpdatesExisting(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()
	existing := &entity.Shop{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          "Old name",
		Category:      "Food",
		ContactNumber: "0917",
		Rating:        4.2,
		ImageURL:      "https://cdn.example.com/old.png",
	}

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(existing, nil)
	fx.shops.On("UpsertByOwner", mock.Anything, mock.AnythingOfType("*entity.Shop")).Return(nil)

	shop, err := fx.service.SaveShopSettings(context.Background(), ownerID, settingsInput("  Ben's Bakery "))

	require.NoError(t, err)
	assert.Equal(t, existing.ID, shop.ID)
	assert.Equal(t, "Ben's Bakery", shop.Name)
	assert.Equal(t, "Food", shop.Category)
	assert.Equal(t, "0917", shop.ContactNumber)
	assert.Equal(t, 4.2, shop.Rating)
	assert.Equal(t, "https://cdn.example.com/old.png", shop.ImageURL)
	assert.Equal(t, 11.24, shop.Latitude)
}

func TestSellerService_SaveShopSettings_CreatesWithUploadedImage(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()
	input := settingsInput("Ben's Bakery")
	input.Image = pngUpload("front.png")

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(nil, repository.ErrShopNotFound)
	fx.storage.On("Upload", mock.Anything, constants.BucketImages, mock.MatchedBy(func(path string) bool {
		return len(path) > len(constants.FolderShops) && path[:len(constants.FolderShops)+1] == constants.FolderShops+"/"
	}), pngContent, "image/png").Return("https://cdn.example.com/shops/front.png", nil)
	fx.shops.On("UpsertByOwner", mock.Anything, mock.MatchedBy(func(s *entity.Shop) bool {
		return s.ImageURL == "https://cdn.example.com/shops/front.png" && s.OwnerID == ownerID
	})).Return(nil)

	shop, err := fx.service.SaveShopSettings(context.Background(), ownerID, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, shop.ID)
	assert.Equal(t, []string{constants.BucketImages + ":ok"}, fx.metrics.Uploads())
}

func TestSellerService_SaveShopSettings_UploadFailureSkipsWrite(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()
	input := settingsInput("Ben's Bakery")
	input.Image = pngUpload("front.png")

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(nil, repository.ErrShopNotFound)
	fx.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded"))

	_, err := fx.service.SaveShopSettings(context.Background(), ownerID, input)

	assert.True(t, errors.Is(err, domainerrors.ErrUploadFailed))
	fx.shops.AssertNotCalled(t, "UpsertByOwner", mock.Anything, mock.Anything)
}

func TestSellerService_SaveShopSettings_Validation(t *testing.T) {
	fx := createTestSellerService(t)

	_, err := fx.service.SaveShopSettings(context.Background(), uuid.New(), settingsInput("  "))
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	input := settingsInput("Ben's Bakery")
	input.Latitude = 120
	_, err = fx.service.SaveShopSettings(context.Background(), uuid.New(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestSellerService_WithoutShop(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(nil, repository.ErrShopNotFound)

	_, err := fx.service.ListProducts(context.Background(), ownerID)
	assert.True(t, errors.Is(err, domainerrors.ErrShopNotFound))

	_, err = fx.service.ShopQR(context.Background(), ownerID)
	assert.True(t, errors.Is(err, domainerrors.ErrShopNotFound))
}

func TestSellerService_CreateProduct(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()
	shop := &entity.Shop{ID: uuid.New(), OwnerID: ownerID}

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(shop, nil)
	fx.storage.On("Upload", mock.Anything, constants.BucketProductImage, mock.AnythingOfType("string"), pngContent, "image/png").
		Return("https://cdn.example.com/product-images/p.png", nil)
	fx.products.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.ShopID == shop.ID && p.ImageURL == "https://cdn.example.com/product-images/p.png"
	})).Return(nil)

	product, err := fx.service.CreateProduct(context.Background(), ownerID, &usecase.ProductInput{
		Name:  " Pandesal ",
		Price: 5,
		Image: pngUpload("p.png"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Pandesal", product.Name)
	assert.Equal(t, 5.0, product.Price)
}

func TestSellerService_CreateProduct_NegativePrice(t *testing.T) {
	fx := createTestSellerService(t)

	_, err := fx.service.CreateProduct(context.Background(), uuid.New(), &usecase.ProductInput{Name: "Pandesal", Price: -1})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestSellerService_UpdateProduct_OtherShopIsNotFound(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()
	shop := &entity.Shop{ID: uuid.New(), OwnerID: ownerID}
	foreign := &entity.Product{ID: uuid.New(), ShopID: uuid.New(), Name: "Not mine"}

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(shop, nil)
	fx.products.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	_, err := fx.service.UpdateProduct(context.Background(), ownerID, foreign.ID, &usecase.ProductInput{Name: "Mine now"})

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
	fx.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSellerService_DeleteProduct(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()
	shop := &entity.Shop{ID: uuid.New(), OwnerID: ownerID}
	productID := uuid.New()

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(shop, nil)
	fx.products.On("Delete", mock.Anything, shop.ID, productID).Return(repository.ErrProductNotFound)

	err := fx.service.DeleteProduct(context.Background(), ownerID, productID)

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestSellerService_CreateEvent(t *testing.T) {
	start := time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	tests := []struct {
		name       string
		input      *usecase.EventInput
		wantErr    error
		wantStatus entity.EventStatus
	}{
		{
			name:       "defaults to upcoming",
			input:      &usecase.EventInput{Title: "Anniversary sale", StartDate: start},
			wantStatus: entity.EventUpcoming,
		},
		{
			name:       "explicit status",
			input:      &usecase.EventInput{Title: "Anniversary sale", StartDate: start, Status: entity.EventOngoing},
			wantStatus: entity.EventOngoing,
		},
		{
			name:    "missing title",
			input:   &usecase.EventInput{StartDate: start},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "missing start",
			input:   &usecase.EventInput{Title: "Anniversary sale"},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "ends before start",
			input:   &usecase.EventInput{Title: "Anniversary sale", StartDate: start, EndDate: &end},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "unknown status",
			input:   &usecase.EventInput{Title: "Anniversary sale", StartDate: start, Status: "postponed"},
			wantErr: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestSellerService(t)
			ownerID := uuid.New()

			if tt.wantErr == nil {
				shop := &entity.Shop{ID: uuid.New(), OwnerID: ownerID}
				fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(shop, nil)
				fx.events.On("Create", mock.Anything, mock.AnythingOfType("*entity.ShopEvent")).Return(nil)
			}

			event, err := fx.service.CreateEvent(context.Background(), ownerID, tt.input)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, event.Status)
		})
	}
}

func TestSellerService_UpdateEvent_OtherShopIsNotFound(t *testing.T) {
	fx := createTestSellerService(t)
	ownerID := uuid.New()
	shop := &entity.Shop{ID: uuid.New(), OwnerID: ownerID}
	foreign := &entity.ShopEvent{ID: uuid.New(), ShopID: uuid.New()}

	fx.shops.On("FindByOwner", mock.Anything, ownerID).Return(shop, nil)
	fx.events.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	_, err := fx.service.UpdateEvent(context.Background(), ownerID, foreign.ID, &usecase.EventInput{
		Title:     "Hijack",
		StartDate: time.Now(),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrEventNotFound))
}
