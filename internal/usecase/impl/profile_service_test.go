package impl

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	deliverycontext "neighborhood/internal/delivery/context"
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

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	profiles  *mockRepo.MockProfileRepository
	reviews   *mockRepo.MockReviewRepository
	favorites *mockRepo.MockFavoriteRepository
	cache     *mockService.MockProfileCache
	storage   *mockService.MockObjectStorage
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	fx := profileServiceFixtures{
		profiles:  mockRepo.NewMockProfileRepository(t),
		reviews:   mockRepo.NewMockReviewRepository(t),
		favorites: mockRepo.NewMockFavoriteRepository(t),
		cache:     mockService.NewMockProfileCache(t),
		storage:   mockService.NewMockObjectStorage(t),
	}
	fx.service = NewProfileService(ProfileServiceParams{
		ProfileRepo:  fx.profiles,
		ReviewRepo:   fx.reviews,
		FavoriteRepo: fx.favorites,
		ProfileCache: fx.cache,
		Storage:      fx.storage,
		Metrics:      mockService.NopMetricsRecorder{},
		Logger:       newDiscardLogger(),
	})

	return fx
}

func (fx profileServiceFixtures) expectActivity(userID uuid.UUID, at time.Time) {
	fx.reviews.On("CountByUser", mock.Anything, userID).Return(int64(3), nil)
	fx.favorites.On("CountByUser", mock.Anything, userID).Return(int64(0), errors.New("timeout"))
	fx.reviews.On("ListRecentByUser", mock.Anything, userID, entity.ActivityFetchPerType).Return([]*entity.ReviewWithShop{
		{Review: entity.Review{ID: uuid.New(), Rating: 5, Comment: "great", CreatedAt: at}, ShopName: "Ben's Bakery"},
	}, nil)
	fx.favorites.On("ListRecentByUser", mock.Anything, userID, entity.ActivityFetchPerType).Return([]*entity.FavoriteWithShop{
		{Favorite: entity.Favorite{ShopID: uuid.New(), CreatedAt: at.Add(time.Hour)}, ShopName: "Cafe Cafe"},
	}, nil)
}

func TestProfileService_GetFullProfile(t *testing.T) {
	fx := createTestProfileService(t)
	userID := uuid.New()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	fx.profiles.On("FindByID", mock.Anything, userID).Return(&entity.Profile{ID: userID, Email: "ana@example.com"}, nil)
	fx.expectActivity(userID, at)

	full, err := fx.service.GetFullProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "ana", full.DisplayName)
	assert.Equal(t, entity.DefaultLocation, full.DisplayLocation)
	assert.Equal(t, entity.UserStats{ReviewsCount: 3, FavoritesCount: 0}, full.Stats)
	require.Len(t, full.RecentActivities, 2)
	assert.Equal(t, entity.ActivityFavorite, full.RecentActivities[0].Type)
	assert.Equal(t, entity.ActivityReview, full.RecentActivities[1].Type)
}

func TestProfileService_GetPublicProfile(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("private profile", func(t *testing.T) {
		fx := createTestProfileService(t)
		fx.profiles.On("FindByID", mock.Anything, userID).Return(&entity.Profile{ID: userID, IsPublic: false}, nil)

		_, err := fx.service.GetPublicProfile(context.Background(), userID)

		assert.True(t, errors.Is(err, domainerrors.ErrProfilePrivate))
	})

	t.Run("hides email and activity", func(t *testing.T) {
		fx := createTestProfileService(t)
		fx.profiles.On("FindByID", mock.Anything, userID).Return(&entity.Profile{
			ID:       userID,
			Email:    "ana@example.com",
			FullName: "Ana Cruz",
			IsPublic: true,
		}, nil)

		public, err := fx.service.GetPublicProfile(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "Ana Cruz", public.DisplayName)
		assert.Empty(t, public.Email)
		assert.Nil(t, public.Stats)
		assert.Nil(t, public.RecentActivities)
		fx.reviews.AssertNotCalled(t, "CountByUser", mock.Anything, mock.Anything)
	})

	t.Run("shows what the flags allow", func(t *testing.T) {
		fx := createTestProfileService(t)
		fx.profiles.On("FindByID", mock.Anything, userID).Return(&entity.Profile{
			ID:           userID,
			Email:        "ana@example.com",
			IsPublic:     true,
			ShowEmail:    true,
			ShowActivity: true,
		}, nil)
		fx.expectActivity(userID, at)

		public, err := fx.service.GetPublicProfile(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", public.Email)
		require.NotNil(t, public.Stats)
		assert.Equal(t, int64(3), public.Stats.ReviewsCount)
		assert.Len(t, public.RecentActivities, 2)
	})

	t.Run("unknown user", func(t *testing.T) {
		fx := createTestProfileService(t)
		fx.profiles.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrProfileNotFound)

		_, err := fx.service.GetPublicProfile(context.Background(), userID)

		assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("uploads avatar before writing", func(t *testing.T) {
		fx := createTestProfileService(t)
		var steps []string

		fx.profiles.On("FindByID", mock.Anything, userID).Return(&entity.Profile{ID: userID, Role: entity.RoleBuyer}, nil)
		fx.storage.On("Upload", mock.Anything, constants.BucketImages, mock.AnythingOfType("string"), pngContent, "image/png").
			Run(func(mock.Arguments) { steps = append(steps, "upload") }).
			Return("https://cdn.example.com/avatars/a.png", nil)
		fx.profiles.On("UpdateDetails", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
			return p.AvatarURL == "https://cdn.example.com/avatars/a.png" && p.FullName == "Ana Cruz" && p.Location == "Ormoc"
		})).
			Run(func(mock.Arguments) { steps = append(steps, "write") }).
			Return(nil)
		fx.cache.On("Delete", mock.Anything, userID).Return(nil)

		profile, err := fx.service.UpdateProfile(context.Background(), userID, &usecase.UpdateProfileInput{
			FullName: " Ana Cruz ",
			Bio:      "Loves bread",
			Location: "Ormoc",
			Avatar:   pngUpload("me.png"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Loves bread", profile.Bio)
		assert.Equal(t, []string{"upload", "write"}, steps)
	})

	t.Run("rejected avatar leaves profile untouched", func(t *testing.T) {
		fx := createTestProfileService(t)

		fx.profiles.On("FindByID", mock.Anything, userID).Return(&entity.Profile{ID: userID}, nil)

		_, err := fx.service.UpdateProfile(context.Background(), userID, &usecase.UpdateProfileInput{
			FullName: "Ana",
			Avatar:   &entity.FileUpload{Filename: "me.png", Content: textContent},
		})

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidFileType))
		fx.profiles.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything)
	})
}

func TestProfileService_UpdateProfile_LogsThroughRequestLogger(t *testing.T) {
	fx := createTestProfileService(t)
	userID := uuid.New()

	var buf bytes.Buffer
	requestLogger := slog.New(slog.NewTextHandler(&buf, nil)).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithLogger(context.Background(), requestLogger)

	fx.profiles.On("FindByID", mock.Anything, userID).Return(&entity.Profile{ID: userID}, nil)
	fx.profiles.On("UpdateDetails", mock.Anything, mock.Anything).Return(nil)
	fx.cache.On("Delete", mock.Anything, userID).Return(errors.New("redis down"))

	_, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{FullName: "Ana"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="Updating profile"`)
	assert.Contains(t, out, `msg="Failed to evict header profile"`)
	assert.Contains(t, out, "request_id=req-42")
	assert.Contains(t, out, "userID="+userID.String())
	assert.Contains(t, out, `error="redis down"`)
}

func TestProfileService_UpdatePrivacy(t *testing.T) {
	fx := createTestProfileService(t)
	userID := uuid.New()
	hidden := false

	fx.profiles.On("FindByID", mock.Anything, userID).
		Return(&entity.Profile{ID: userID, IsPublic: true, ShowEmail: true, ShowActivity: true}, nil)
	fx.profiles.On("UpdatePrivacy", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.IsPublic && !p.ShowEmail && p.ShowActivity
	})).Return(nil)

	profile, err := fx.service.UpdatePrivacy(context.Background(), userID, entity.PrivacySettings{ShowEmail: &hidden})

	require.NoError(t, err)
	assert.False(t, profile.ShowEmail)
}
