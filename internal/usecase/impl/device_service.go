package impl

import (
	"context"
	"strings"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
}

// NewDeviceService creates a new device service instance
func NewDeviceService(deviceRepo repository.DeviceRepository) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: deviceRepo,
	}
}

// RegisterDevice registers a new device or refreshes the push token of a known device id
func (s *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.Device, error) {
	device := &entity.Device{
		ID:        uuid.New(),
		UserID:    userID,
		PushToken: strings.TrimSpace(deviceInfo.PushToken),
		DeviceID:  strings.TrimSpace(deviceInfo.DeviceID),
		Platform:  deviceInfo.Platform,
		IsActive:  true,
	}

	// The upsert keeps the existing row id when the device id is already registered.
	if err := s.deviceRepo.UpsertDevice(ctx, device); err != nil {
		return nil, errors.Wrap(err, "failed to register device")
	}

	return device, nil
}

// UpdatePushToken updates the push token of one of the user's devices
func (s *deviceService) UpdatePushToken(ctx context.Context, userID, deviceID uuid.UUID, pushToken string) error {
	if strings.TrimSpace(pushToken) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("push token is required")
	}

	if err := s.deviceRepo.UpdatePushToken(ctx, userID, deviceID, pushToken); err != nil {
		return deviceLookupError(err, "failed to update push token")
	}

	return nil
}

// GetUserDevices retrieves all devices of a user
func (s *deviceService) GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error) {
	devices, err := s.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find devices by user")
	}

	return devices, nil
}

// RemoveDevice deletes one of the user's devices
func (s *deviceService) RemoveDevice(ctx context.Context, userID, deviceID uuid.UUID) error {
	if err := s.deviceRepo.DeleteDevice(ctx, userID, deviceID); err != nil {
		return deviceLookupError(err, "failed to delete device")
	}

	return nil
}

// deviceLookupError reports devices of other users as not found.
func deviceLookupError(err error, message string) error {
	if errors.Is(err, repository.ErrDeviceNotFound) {
		return errors.WithStack(domainerrors.ErrDeviceNotFound)
	}

	return errors.Wrap(err, message)
}
