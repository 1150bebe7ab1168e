package worker

import (
	"context"
	"log/slog"

	"neighborhood/config"
	"neighborhood/internal/delivery"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SubscriberParams holds dependencies for the in-process decision subscriber
type SubscriberParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	Logger     *slog.Logger
	ChangeFeed service.ChangeFeed
	Notifier   usecase.DecisionNotifier
}

type decisionSubscriber struct {
	enabled    bool
	logger     *slog.Logger
	changeFeed service.ChangeFeed
	notifier   usecase.DecisionNotifier
	done       chan struct{}
}

// NewDecisionSubscriber feeds application updates from the change feed to the decision
// notifier. It stays idle when the push endpoint receives them instead.
func NewDecisionSubscriber(params SubscriberParams) delivery.Delivery {
	s := &decisionSubscriber{
		enabled:    !params.Cfg.Worker.PushEndpoint,
		logger:     params.Logger,
		changeFeed: params.ChangeFeed,
		notifier:   params.Notifier,
		done:       make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			close(s.done)

			return nil
		},
	})

	return s
}

// Serve subscribes and blocks until the application stops.
func (s *decisionSubscriber) Serve(ctx context.Context) error {
	if !s.enabled {
		return nil
	}

	sub, err := s.changeFeed.Subscribe(
		entity.CollectionSellerApplications,
		entity.ChangeFilter{entity.ChangeUpdate},
		s.handle,
	)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe decision notifier")
	}
	defer sub.Unsubscribe()

	s.logger.Info("Decision notifier subscribed to seller application changes")

	select {
	case <-ctx.Done():
	case <-s.done:
	}

	return nil
}

func (s *decisionSubscriber) handle(ctx context.Context, event entity.ChangeEvent) {
	logger := s.logger.With(slog.String("request_id", uuid.New().String()))
	ctx = deliverycontext.WithLogger(ctx, logger)

	if err := s.notifier.HandleChange(ctx, event); err != nil {
		logger.Error("Failed to deliver decision",
			slog.String("record_id", event.RecordID),
			slog.Any("error", err),
		)
	}
}
