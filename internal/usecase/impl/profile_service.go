package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	profileRepo  repository.ProfileRepository
	reviewRepo   repository.ReviewRepository
	favoriteRepo repository.FavoriteRepository
	profileCache service.ProfileCache
	uploader     *uploader
	logger       *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	ProfileRepo  repository.ProfileRepository
	ReviewRepo   repository.ReviewRepository
	FavoriteRepo repository.FavoriteRepository
	ProfileCache service.ProfileCache
	Storage      service.ObjectStorage
	Metrics      service.MetricsRecorder
	Logger       *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		profileRepo:  params.ProfileRepo,
		reviewRepo:   params.ReviewRepo,
		favoriteRepo: params.FavoriteRepo,
		profileCache: params.ProfileCache,
		uploader:     newUploader(params.Storage, params.Metrics, params.Logger),
		logger:       params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetFullProfile retrieves the caller's profile with stats and recent activity.
func (srv *profileService) GetFullProfile(ctx context.Context, userID uuid.UUID) (*entity.FullProfile, error) {
	srv.log(ctx).Debug("Getting full profile", slog.Any("userID", userID))

	profile, err := srv.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.FullProfile{
		Profile:          profile,
		DisplayName:      profile.DisplayName(),
		DisplayLocation:  profile.DisplayLocation(),
		Stats:            srv.stats(ctx, userID),
		RecentActivities: srv.recentActivities(ctx, userID),
	}, nil
}

// GetPublicProfile retrieves another user's profile as their privacy flags allow.
func (srv *profileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*usecase.PublicProfile, error) {
	profile, err := srv.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.IsPublic {
		return nil, errors.WithStack(domainerrors.ErrProfilePrivate)
	}

	public := &usecase.PublicProfile{
		ID:              profile.ID,
		DisplayName:     profile.DisplayName(),
		DisplayLocation: profile.DisplayLocation(),
		AvatarURL:       profile.AvatarURL,
		Bio:             profile.Bio,
		Role:            profile.Role,
	}
	if profile.ShowEmail {
		public.Email = profile.Email
	}
	if profile.ShowActivity {
		stats := srv.stats(ctx, userID)
		public.Stats = &stats
		public.RecentActivities = srv.recentActivities(ctx, userID)
	}

	return public, nil
}

// UpdateProfile stores the optional avatar first, then writes the details.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", userID))

	profile, err := srv.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !input.Avatar.IsEmpty() {
		profile.AvatarURL, err = srv.uploader.uploadImage(ctx, constants.FolderAvatars, input.Avatar)
		if err != nil {
			return nil, errors.Wrap(err, "failed to upload avatar")
		}
	}

	profile.FullName = strings.TrimSpace(input.FullName)
	profile.Bio = strings.TrimSpace(input.Bio)
	profile.Location = strings.TrimSpace(input.Location)

	if err := srv.profileRepo.UpdateDetails(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	if err := srv.profileCache.Delete(ctx, userID); err != nil {
		srv.log(ctx).Warn("Failed to evict header profile", slog.Any("userID", userID), slog.Any("error", err))
	}

	return profile, nil
}

// UpdatePrivacy writes the privacy flags that are set.
func (srv *profileService) UpdatePrivacy(ctx context.Context, userID uuid.UUID, settings entity.PrivacySettings) (*entity.Profile, error) {
	profile, err := srv.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings.Apply(profile)

	if err := srv.profileRepo.UpdatePrivacy(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to update privacy settings")
	}

	return profile, nil
}

func (srv *profileService) findProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.WithStack(domainerrors.ErrProfileNotFound)
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	return profile, nil
}

// stats counts contributions. A failed count reads as zero.
func (srv *profileService) stats(ctx context.Context, userID uuid.UUID) entity.UserStats {
	var stats entity.UserStats
	var err error

	if stats.ReviewsCount, err = srv.reviewRepo.CountByUser(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to count reviews", slog.Any("userID", userID), slog.Any("error", err))
	}
	if stats.FavoritesCount, err = srv.favoriteRepo.CountByUser(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to count favorites", slog.Any("userID", userID), slog.Any("error", err))
	}

	return stats
}

func (srv *profileService) recentActivities(ctx context.Context, userID uuid.UUID) []*entity.ActivityItem {
	reviews, err := srv.reviewRepo.ListRecentByUser(ctx, userID, entity.ActivityFetchPerType)
	if err != nil {
		srv.log(ctx).Error("Failed to list recent reviews", slog.Any("userID", userID), slog.Any("error", err))
	}

	favorites, err := srv.favoriteRepo.ListRecentByUser(ctx, userID, entity.ActivityFetchPerType)
	if err != nil {
		srv.log(ctx).Error("Failed to list recent favorites", slog.Any("userID", userID), slog.Any("error", err))
	}

	return entity.BuildActivityFeed(reviews, favorites, entity.ActivityFeedLimit)
}
