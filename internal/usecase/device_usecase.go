package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceInfo represents device information for registration
type DeviceInfo struct {
	PushToken string          `json:"push_token" validate:"required"`
	DeviceID  string          `json:"device_id" validate:"required"`
	Platform  entity.Platform `json:"platform" validate:"required,oneof=ios android web"`
}

// DeviceUsecase defines the interface for device management use cases
type DeviceUsecase interface {
	// RegisterDevice registers a new device or refreshes the token of an existing one.
	RegisterDevice(ctx context.Context, userID uuid.UUID, info *DeviceInfo) (*entity.Device, error)
	// UpdatePushToken replaces the push token of one of the user's devices.
	UpdatePushToken(ctx context.Context, userID, deviceID uuid.UUID, pushToken string) error
	// GetUserDevices retrieves every device of a user.
	GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error)
	// RemoveDevice deletes one of the user's devices.
	RemoveDevice(ctx context.Context, userID, deviceID uuid.UUID) error
}

// DecisionNotifier pushes application decisions to the applicant's devices.
type DecisionNotifier interface {
	// HandleChange reacts to a seller application change event. Non-final statuses are ignored.
	HandleChange(ctx context.Context, event entity.ChangeEvent) error
}
