package service

import (
	"context"
)

// PushMessage is the payload of a push notification.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushResult summarises a multicast send.
type PushResult struct {
	SuccessCount  int
	FailureCount  int
	InvalidTokens []string // Tokens the provider reported as unregistered.
}

// NotificationService defines the interface for push notification services
type NotificationService interface {
	// SendBatchNotification sends the message to every device token.
	SendBatchNotification(ctx context.Context, tokens []string, msg PushMessage) (*PushResult, error)
}
