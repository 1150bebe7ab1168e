package repository

import (
	"context"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository persists the items listed by shops.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// ListByShop returns a shop's products, newest first.
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete removes a product only if it belongs to the shop.
	Delete(ctx context.Context, shopID, id uuid.UUID) error
}
