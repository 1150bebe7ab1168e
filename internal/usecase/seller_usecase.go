package usecase

import (
	"context"
	"time"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// ShopSettingsInput is the seller settings form with an optional new image.
type ShopSettingsInput struct {
	entity.ShopSettings
	Image *entity.FileUpload
}

// ProductInput creates or edits a product.
type ProductInput struct {
	Name  string
	Price float64
	Image *entity.FileUpload
}

// EventInput creates or edits a shop event.
type EventInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Status      entity.EventStatus
}

// SellerUsecase backs the seller dashboard. Every call is scoped to the caller's own shop.
type SellerUsecase interface {
	GetShop(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error)
	// SaveShopSettings creates the owner's shop or updates it. A new image is uploaded first.
	SaveShopSettings(ctx context.Context, ownerID uuid.UUID, input *ShopSettingsInput) (*entity.Shop, error)
	ShopQR(ctx context.Context, ownerID uuid.UUID) ([]byte, error)

	ListProducts(ctx context.Context, ownerID uuid.UUID) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, ownerID uuid.UUID, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error

	ListEvents(ctx context.Context, ownerID uuid.UUID) ([]*entity.ShopEvent, error)
	CreateEvent(ctx context.Context, ownerID uuid.UUID, input *EventInput) (*entity.ShopEvent, error)
	UpdateEvent(ctx context.Context, ownerID, eventID uuid.UUID, input *EventInput) (*entity.ShopEvent, error)
	DeleteEvent(ctx context.Context, ownerID, eventID uuid.UUID) error
}
