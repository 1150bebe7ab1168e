package impl

import (
	"context"
	"testing"

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

type reviewServiceFixtures struct {
	service usecase.ReviewUsecase
	shops   *mockRepo.MockShopRepository
	reviews *mockRepo.MockReviewRepository
	storage *mockService.MockObjectStorage
	metrics *recordingMetrics
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	fx := reviewServiceFixtures{
		shops:   mockRepo.NewMockShopRepository(t),
		reviews: mockRepo.NewMockReviewRepository(t),
		storage: mockService.NewMockObjectStorage(t),
		metrics: &recordingMetrics{},
	}

	factory := &mockRepo.MockRepositoryFactory{
		Shops:   fx.shops,
		Reviews: fx.reviews,
	}

	fx.service = NewReviewService(ReviewServiceParams{
		TxManager:  mockRepo.NewMockTransactionManager(factory),
		ShopRepo:   fx.shops,
		ReviewRepo: fx.reviews,
		Storage:    fx.storage,
		Metrics:    fx.metrics,
		Logger:     newDiscardLogger(),
	})

	return fx
}

func TestReviewService_PostReview_UploadsBeforeInsert(t *testing.T) {
	fx := createTestReviewService(t)
	shop := &entity.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	buyer := uuid.New()

	var steps []string
	fx.shops.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
	fx.storage.On("Upload", mock.Anything, constants.BucketImages, mock.AnythingOfType("string"), pngContent, "image/png").
		Run(func(mock.Arguments) { steps = append(steps, "upload") }).
		Return("https://cdn.example.com/reviews/r.png", nil)
	fx.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Review) bool {
		return r.ImageURL == "https://cdn.example.com/reviews/r.png" && r.UserID == buyer && r.Rating == 4
	})).
		Run(func(mock.Arguments) { steps = append(steps, "insert") }).
		Return(nil)
	fx.shops.On("RecomputeRating", mock.Anything, shop.ID).
		Run(func(mock.Arguments) { steps = append(steps, "recompute") }).
		Return(nil)

	review, err := fx.service.PostReview(context.Background(), &usecase.PostReviewInput{
		UserID:  buyer,
		ShopID:  shop.ID,
		Rating:  4,
		Comment: "  Great bread ",
		Image:   pngUpload("r.png"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Great bread", review.Comment)
	assert.Equal(t, []string{"upload", "insert", "recompute"}, steps)
}

func TestReviewService_PostReview_UploadFailureInsertsNothing(t *testing.T) {
	fx := createTestReviewService(t)
	shop := &entity.Shop{ID: uuid.New(), OwnerID: uuid.New()}

	fx.shops.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
	fx.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable"))

	_, err := fx.service.PostReview(context.Background(), &usecase.PostReviewInput{
		UserID:  uuid.New(),
		ShopID:  shop.ID,
		Rating:  5,
		Comment: "Lovely",
		Image:   pngUpload("r.png"),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUploadFailed))
	fx.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.shops.AssertNotCalled(t, "RecomputeRating", mock.Anything, mock.Anything)
}

func TestReviewService_PostReview_Rejections(t *testing.T) {
	owner := uuid.New()
	shop := &entity.Shop{ID: uuid.New(), OwnerID: owner}

	tests := []struct {
		name     string
		input    *usecase.PostReviewInput
		findShop bool
		shopErr  error
		wantErr  error
	}{
		{
			name:    "rating below range",
			input:   &usecase.PostReviewInput{UserID: uuid.New(), ShopID: shop.ID, Rating: 0, Comment: "meh"},
			wantErr: domainerrors.ErrInvalidRating,
		},
		{
			name:    "rating above range",
			input:   &usecase.PostReviewInput{UserID: uuid.New(), ShopID: shop.ID, Rating: 6, Comment: "wow"},
			wantErr: domainerrors.ErrInvalidRating,
		},
		{
			name:    "blank comment",
			input:   &usecase.PostReviewInput{UserID: uuid.New(), ShopID: shop.ID, Rating: 3, Comment: "   "},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:     "own shop",
			input:    &usecase.PostReviewInput{UserID: owner, ShopID: shop.ID, Rating: 5, Comment: "Best shop ever"},
			findShop: true,
			wantErr:  domainerrors.ErrSelfReviewForbidden,
		},
		{
			name:     "unknown shop",
			input:    &usecase.PostReviewInput{UserID: uuid.New(), ShopID: shop.ID, Rating: 5, Comment: "Nice"},
			findShop: true,
			shopErr:  repository.ErrShopNotFound,
			wantErr:  domainerrors.ErrShopNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestReviewService(t)
			if tt.findShop {
				if tt.shopErr != nil {
					fx.shops.On("FindByID", mock.Anything, shop.ID).Return(nil, tt.shopErr)
				} else {
					fx.shops.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
				}
			}

			_, err := fx.service.PostReview(context.Background(), tt.input)

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			fx.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestReviewService_PostReview_RecomputeFailure(t *testing.T) {
	fx := createTestReviewService(t)
	shop := &entity.Shop{ID: uuid.New(), OwnerID: uuid.New()}

	fx.shops.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
	fx.reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	fx.shops.On("RecomputeRating", mock.Anything, shop.ID).Return(errors.New("deadlock"))

	_, err := fx.service.PostReview(context.Background(), &usecase.PostReviewInput{
		UserID:  uuid.New(),
		ShopID:  shop.ID,
		Rating:  2,
		Comment: "Slow service",
	})

	require.Error(t, err)
}

func TestReviewService_ListReviews_DegradesToEmpty(t *testing.T) {
	fx := createTestReviewService(t)
	shopID := uuid.New()

	fx.reviews.On("ListByShop", mock.Anything, shopID).Return(nil, errors.New("timeout"))

	reviews := fx.service.ListReviews(context.Background(), shopID)

	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}
