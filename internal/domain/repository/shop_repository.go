package repository

import (
	"context"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Domain-specific errors for shop persistence.
var (
	// ErrShopNotFound is returned when a shop is not found.
	ErrShopNotFound = errors.New("shop not found")
	// ErrShopAlreadyExists is returned when the owner already has a shop.
	ErrShopAlreadyExists = errors.New("owner already has a shop")
)

// ShopRepository persists shops. Each owner has at most one shop.
type ShopRepository interface {
	// Create persists a new shop. Returns ErrShopAlreadyExists on a second shop for the owner.
	Create(ctx context.Context, shop *entity.Shop) error

	// FindByID retrieves a shop by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)

	// FindByOwner retrieves the shop owned by the user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error)

	// UpsertByOwner creates the owner's shop or updates its settings fields.
	UpsertByOwner(ctx context.Context, shop *entity.Shop) error

	// Search lists shops matching the filter, newest first.
	Search(ctx context.Context, filter entity.ShopFilter) ([]*entity.Shop, error)

	// TopRated lists the highest rated shops.
	TopRated(ctx context.Context, limit int) ([]*entity.Shop, error)

	// WithinBound lists shops whose coordinates fall inside the bound.
	WithinBound(ctx context.Context, bound orb.Bound) ([]*entity.Shop, error)

	// ListWithOwners lists every shop joined with its owner's name and email, newest first.
	ListWithOwners(ctx context.Context) ([]*entity.ShopWithOwner, error)

	// RecomputeRating sets the shop rating to the average of its review ratings.
	RecomputeRating(ctx context.Context, shopID uuid.UUID) error
}
