package repository

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewRepository persists append-only shop reviews.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// ListByShop returns a shop's reviews joined with their authors, newest first.
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.ReviewWithAuthor, error)

	// ListRecentByUser returns a user's latest reviews joined with the shop name.
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReviewWithShop, error)

	// CountByUser counts the reviews a user has written.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
