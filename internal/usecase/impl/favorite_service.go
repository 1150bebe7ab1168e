package impl

import (
	"context"
	"log/slog"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	logger       *slog.Logger
}

// NewFavoriteService creates a new favorite service instance
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, logger *slog.Logger) usecase.FavoriteUsecase {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		logger:       logger,
	}
}

func (s *favoriteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Toggle removes an existing favorite or adds a missing one.
func (s *favoriteService) Toggle(ctx context.Context, userID, shopID uuid.UUID) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, shopID)
	if err != nil {
		return false, errors.Wrap(err, "failed to read favorite")
	}

	if exists {
		if err := s.favoriteRepo.Remove(ctx, userID, shopID); err != nil {
			return true, errors.Wrap(err, "failed to remove favorite")
		}

		return false, nil
	}

	// A missing shop surfaces as SHOP_NOT_FOUND from the foreign key.
	if err := s.favoriteRepo.Add(ctx, userID, shopID); err != nil {
		return false, errors.Wrap(err, "failed to add favorite")
	}

	return true, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID, shopID uuid.UUID) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, shopID)
	if err != nil {
		return false, errors.Wrap(err, "failed to read favorite")
	}

	return exists, nil
}

// ListFavorites lists the user's favorite shops, most recently added first.
func (s *favoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) []*entity.Shop {
	shops, err := s.favoriteRepo.ListShopsByUser(ctx, userID)
	if err != nil {
		s.log(ctx).Error("Failed to list favorites", slog.Any("userID", userID), slog.Any("error", err))

		return []*entity.Shop{}
	}

	return shops
}
