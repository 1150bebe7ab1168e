package repository

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// FavoriteRepository persists (user, shop) favorite pairs.
type FavoriteRepository interface {
	// Add inserts the pair; an existing pair is left untouched.
	Add(ctx context.Context, userID, shopID uuid.UUID) error

	// Remove deletes the pair if present.
	Remove(ctx context.Context, userID, shopID uuid.UUID) error

	// Exists reports whether the pair is stored.
	Exists(ctx context.Context, userID, shopID uuid.UUID) (bool, error)

	// ListShopsByUser returns the shops a user favorited, most recent first.
	ListShopsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Shop, error)

	// ListRecentByUser returns a user's latest favorites joined with the shop name.
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.FavoriteWithShop, error)

	// CountByUser counts a user's favorites.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
