package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// FavoriteUsecase manages a buyer's favorite shops.
type FavoriteUsecase interface {
	// Toggle flips the favorite state of the pair and returns the new state.
	Toggle(ctx context.Context, userID, shopID uuid.UUID) (bool, error)
	IsFavorite(ctx context.Context, userID, shopID uuid.UUID) (bool, error)
	// ListFavorites lists the favorited shops. Empty on read failure.
	ListFavorites(ctx context.Context, userID uuid.UUID) []*entity.Shop
}
