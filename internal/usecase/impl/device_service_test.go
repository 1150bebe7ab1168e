package impl

import (
	"context"
	"testing"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	mockRepo "neighborhood/internal/mocks/repository"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeviceService_RegisterDevice(t *testing.T) {
	repo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(repo)
	userID := uuid.New()

	repo.On("UpsertDevice", mock.Anything, mock.MatchedBy(func(d *entity.Device) bool {
		return d.UserID == userID && d.PushToken == "fcm-token" && d.DeviceID == "pixel-7" && d.IsActive
	})).Return(nil)

	device, err := svc.RegisterDevice(context.Background(), userID, &usecase.DeviceInfo{
		PushToken: " fcm-token ",
		DeviceID:  "pixel-7",
		Platform:  entity.PlatformAndroid,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PlatformAndroid, device.Platform)
}

func TestDeviceService_UpdatePushToken(t *testing.T) {
	userID, deviceID := uuid.New(), uuid.New()

	t.Run("empty token", func(t *testing.T) {
		svc := NewDeviceService(mockRepo.NewMockDeviceRepository(t))

		err := svc.UpdatePushToken(context.Background(), userID, deviceID, "  ")

		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("another user's device", func(t *testing.T) {
		repo := mockRepo.NewMockDeviceRepository(t)
		svc := NewDeviceService(repo)
		repo.On("UpdatePushToken", mock.Anything, userID, deviceID, "new-token").Return(repository.ErrDeviceNotFound)

		err := svc.UpdatePushToken(context.Background(), userID, deviceID, "new-token")

		assert.True(t, errors.Is(err, domainerrors.ErrDeviceNotFound))
	})
}

func TestDeviceService_RemoveDevice(t *testing.T) {
	repo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(repo)
	userID, deviceID := uuid.New(), uuid.New()

	repo.On("DeleteDevice", mock.Anything, userID, deviceID).Return(nil)

	require.NoError(t, svc.RemoveDevice(context.Background(), userID, deviceID))
}
