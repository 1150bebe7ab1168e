package main

import (
	"context"
	"log/slog"
	"os"

	"neighborhood/config"
	"neighborhood/internal/delivery"
	"neighborhood/internal/delivery/worker"
	"neighborhood/internal/delivery/worker/handler"
	"neighborhood/internal/infra/cache"
	"neighborhood/internal/infra/changefeed"
	logs "neighborhood/internal/infra/log"
	"neighborhood/internal/infra/notification"
	"neighborhood/internal/infra/persistence/postgres"
	"neighborhood/internal/usecase/impl"

	"go.uber.org/fx"
)

// The worker delivers application decisions to sellers' devices without serving the API.
// It pulls from the change feed, or listens for Pub/Sub pushes when worker.pushEndpoint is set.

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		cache.NewRedisClient,
		changefeed.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewApplicationRepository,
			postgres.NewDeviceRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			notification.New,
			impl.NewDecisionNotifier,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewDecisionSubscriber,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
