package repository

import (
	"context"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for profile persistence.
var (
	// ErrProfileNotFound is returned when no profile exists for the id.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrRoleNotPromotable is returned when the stored role may not become seller.
	ErrRoleNotPromotable = errors.New("profile role cannot be promoted")
)

// ProfileRepository persists the one-per-user profile rows.
type ProfileRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByID retrieves a profile by the user id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// UpdateDetails writes full name, bio, location and avatar URL.
	UpdateDetails(ctx context.Context, profile *entity.Profile) error

	// UpdatePrivacy writes the three privacy flags.
	UpdatePrivacy(ctx context.Context, profile *entity.Profile) error

	// PromoteToSeller sets the role to seller when the current role is buyer or seller.
	// Returns ErrProfileNotFound or ErrRoleNotPromotable when no row qualifies.
	PromoteToSeller(ctx context.Context, id uuid.UUID) error

	// SetRole assigns a role unconditionally. Reserved for administrative tooling.
	SetRole(ctx context.Context, id uuid.UUID, role entity.Role) error
}
