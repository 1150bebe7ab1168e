package repository

import (
	"context"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for seller application persistence.
var (
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("seller application not found")
	// ErrApplicationStatusMismatch is returned when a conditional transition finds a different stored status.
	ErrApplicationStatusMismatch = errors.New("seller application status mismatch")
)

// ApplicationFilter narrows application listings. A nil Status lists every status.
type ApplicationFilter struct {
	Status *entity.ApplicationStatus
}

// ApplicationRepository persists seller applications. Rows are never deleted.
type ApplicationRepository interface {
	// Create persists a new application.
	Create(ctx context.Context, app *entity.SellerApplication) error

	// FindByID retrieves an application by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerApplication, error)

	// List returns applications ordered by creation time, newest first.
	List(ctx context.Context, filter ApplicationFilter) ([]*entity.SellerApplication, error)

	// ListByUser returns a user's applications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SellerApplication, error)

	// TransitionStatus moves an application from one status to another only if the stored
	// status equals from. Returns ErrApplicationStatusMismatch when it does not.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.ApplicationStatus) error
}
