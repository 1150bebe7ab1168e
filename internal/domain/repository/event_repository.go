package repository

import (
	"context"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
)

// ErrEventNotFound is returned when a shop event is not found.
var ErrEventNotFound = errors.New("shop event not found")

// EventRepository persists shop events.
type EventRepository interface {
	Create(ctx context.Context, event *entity.ShopEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShopEvent, error)
	// ListByShop returns a shop's events, newest first.
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.ShopEvent, error)
	Update(ctx context.Context, event *entity.ShopEvent) error
	// Delete removes an event only if it belongs to the shop.
	Delete(ctx context.Context, shopID, id uuid.UUID) error
}
