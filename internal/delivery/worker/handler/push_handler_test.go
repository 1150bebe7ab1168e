package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"neighborhood/config"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	mockUsecase "neighborhood/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestConfig(env, provider string) *config.Config {
	cfg := &config.Config{ChangeFeed: &config.ChangeFeedConfig{Provider: provider}}
	cfg.Env.Env = env

	return cfg
}

func pushBody(t *testing.T, data string, attrs map[string]string) string {
	t.Helper()

	var msg PubSubMessage
	msg.Message.Data = data
	msg.Message.Attributes = attrs
	msg.Message.MessageID = "1"

	b, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(b)
}

func encodeEvent(t *testing.T, event entity.ChangeEvent) string {
	t.Helper()

	b, err := json.Marshal(event)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(b)
}

func post(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestNewPushHandler_VerifiesOnlyGoogleOutsideDevelopment(t *testing.T) {
	notifier := mockUsecase.NewMockDecisionNotifier(t)

	tests := []struct {
		env, provider string
		verify        bool
	}{
		{"production", "google", true},
		{"develop", "google", false},
		{"local", "google", false},
		{"production", "redis", false},
	}
	for _, tt := range tests {
		h := NewPushHandler(PushHandlerParams{
			Config:   newTestConfig(tt.env, tt.provider),
			Logger:   slog.Default(),
			Notifier: notifier,
		})
		assert.Equal(t, tt.verify, h.verify != nil, "%s/%s", tt.env, tt.provider)
	}
}

func TestPushHandler_HandlePush(t *testing.T) {
	event := entity.ChangeEvent{
		Collection: entity.CollectionSellerApplications,
		Type:       entity.ChangeUpdate,
		RecordID:   "0b7e8d52-4f0e-4a63-9a35-0c1b2f6c9d11",
	}

	tests := []struct {
		name       string
		body       func(t *testing.T) string
		notifyErr  error
		notified   bool
		wantStatus int
	}{
		{
			name:       "delivered",
			body:       func(t *testing.T) string { return pushBody(t, encodeEvent(t, event), nil) },
			notified:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "transient failure asks for redelivery",
			body:       func(t *testing.T) string { return pushBody(t, encodeEvent(t, event), nil) },
			notifyErr:  errors.New("connection reset"),
			notified:   true,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unknown application is acknowledged",
			body:       func(t *testing.T) string { return pushBody(t, encodeEvent(t, event), nil) },
			notifyErr:  errors.Wrap(domainerrors.ErrApplicationNotFound, "decision"),
			notified:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "data is not base64",
			body:       func(t *testing.T) string { return pushBody(t, "%%%", nil) },
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "data is not an event",
			body: func(t *testing.T) string {
				return pushBody(t, base64.StdEncoding.EncodeToString([]byte("nope")), nil)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := mockUsecase.NewMockDecisionNotifier(t)
			if tt.notified {
				notifier.On("HandleChange", mock.Anything, event).Return(tt.notifyErr).Once()
			}

			h := NewPushHandler(PushHandlerParams{
				Config:   newTestConfig("local", "google"),
				Logger:   slog.Default(),
				Notifier: notifier,
			})

			rec := post(h, tt.body(t))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPushHandler_PropagatesPublisherRequestID(t *testing.T) {
	notifier := mockUsecase.NewMockDecisionNotifier(t)
	event := entity.ChangeEvent{Collection: entity.CollectionSellerApplications, Type: entity.ChangeUpdate, RecordID: "x"}

	var requestID string
	notifier.On("HandleChange", mock.Anything, event).
		Run(func(args mock.Arguments) {
			requestID = deliverycontext.GetRequestIDFromContext(args.Get(0).(context.Context))
		}).
		Return(nil).Once()

	h := NewPushHandler(PushHandlerParams{Config: newTestConfig("local", "memory"), Logger: slog.Default(), Notifier: notifier})
	rec := post(h, pushBody(t, encodeEvent(t, event), map[string]string{"request_id": "req-123"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", requestID)
}

func TestPushHandler_RejectsUnverifiedPush(t *testing.T) {
	notifier := mockUsecase.NewMockDecisionNotifier(t)
	h := NewPushHandler(PushHandlerParams{Config: newTestConfig("local", "memory"), Logger: slog.Default(), Notifier: notifier})
	h.verify = func(*http.Request) error { return errors.New("bad token") }

	rec := post(h, pushBody(t, "", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
