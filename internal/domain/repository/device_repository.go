package repository

import (
	"context"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
)

// ErrDeviceNotFound is returned when a device is not found.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository defines the interface for device-related database operations.
type DeviceRepository interface {
	// UpsertDevice registers the device or refreshes its token when the (user, device id) pair exists.
	UpsertDevice(ctx context.Context, device *entity.Device) error

	// FindDevicesByUser retrieves all devices for a specific user (including inactive).
	FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error)

	// FindActiveDevicesByUser retrieves all active devices for a specific user.
	FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error)

	// UpdatePushToken replaces the token of a user's device.
	UpdatePushToken(ctx context.Context, userID, id uuid.UUID, pushToken string) error

	// DeleteDevice removes a user's device.
	DeleteDevice(ctx context.Context, userID, id uuid.UUID) error

	// DeactivateByTokens marks devices holding any of the tokens inactive.
	DeactivateByTokens(ctx context.Context, tokens []string) error
}
