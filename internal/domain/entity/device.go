package entity

import (
	"time"

	"github.com/google/uuid"
)

// Platform is the operating system of a push-enabled device.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// Device is a user's client registered for push notifications.
type Device struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PushToken string    `json:"push_token"` // Firebase Cloud Messaging registration token.
	DeviceID  string    `json:"device_id"`  // Client-chosen identifier, stable across token rotations.
	Platform  Platform  `json:"platform"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
