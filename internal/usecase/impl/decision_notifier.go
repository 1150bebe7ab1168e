package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type decisionNotifier struct {
	appRepo         repository.ApplicationRepository
	deviceRepo      repository.DeviceRepository
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// DecisionNotifierParams holds dependencies for DecisionNotifier, injected by Fx.
type DecisionNotifierParams struct {
	fx.In

	AppRepo         repository.ApplicationRepository
	DeviceRepo      repository.DeviceRepository
	NotificationSvc service.NotificationService
	Logger          *slog.Logger
}

// NewDecisionNotifier creates a new decision notifier instance
func NewDecisionNotifier(params DecisionNotifierParams) usecase.DecisionNotifier {
	return &decisionNotifier{
		appRepo:         params.AppRepo,
		deviceRepo:      params.DeviceRepo,
		notificationSvc: params.NotificationSvc,
		logger:          params.Logger,
	}
}

func (s *decisionNotifier) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// HandleChange re-reads the application named by the event and pushes its decision
// to the applicant's active devices.
func (s *decisionNotifier) HandleChange(ctx context.Context, event entity.ChangeEvent) error {
	if event.Collection != entity.CollectionSellerApplications || event.Type != entity.ChangeUpdate {
		return nil
	}

	appID, err := uuid.Parse(event.RecordID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid application id in change event")
	}

	// Events carry ids only; the stored status is authoritative.
	app, err := s.appRepo.FindByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return errors.Wrap(domainerrors.ErrApplicationNotFound, "decision for unknown application")
		}

		return errors.Wrap(err, "failed to load seller application")
	}
	if !app.Status.IsFinal() {
		return nil
	}

	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, app.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to fetch devices")
	}
	if len(devices) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.PushToken)
	}

	result, err := s.notificationSvc.SendBatchNotification(ctx, tokens, decisionMessage(app))
	if err != nil {
		return errors.Wrap(err, "failed to send decision notification")
	}

	s.log(ctx).Info("Sent decision notification",
		slog.Any("applicationID", app.ID),
		slog.String("status", app.Status.String()),
		slog.Int("sent", result.SuccessCount),
		slog.Int("failed", result.FailureCount),
	)

	// Unregistered tokens will never succeed again.
	if len(result.InvalidTokens) > 0 {
		if err := s.deviceRepo.DeactivateByTokens(ctx, result.InvalidTokens); err != nil {
			s.log(ctx).Warn("Failed to deactivate invalid devices", slog.Int("count", len(result.InvalidTokens)), slog.Any("error", err))
		}
	}

	return nil
}

func decisionMessage(app *entity.SellerApplication) service.PushMessage {
	msg := service.PushMessage{
		Data: map[string]string{
			"application_id": app.ID.String(),
			"status":         app.Status.String(),
		},
	}

	if app.Status == entity.ApplicationApproved {
		msg.Title = "Application approved"
		msg.Body = fmt.Sprintf("%s is now live. Open the seller portal to set up your shop.", app.BusinessName)
	} else {
		msg.Title = "Application update"
		msg.Body = fmt.Sprintf("Your application for %s was not approved.", app.BusinessName)
	}

	return msg
}
