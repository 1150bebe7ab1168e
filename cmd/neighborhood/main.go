package main

import (
	"context"
	"log/slog"
	"os"

	"neighborhood/config"
	"neighborhood/internal/delivery"
	"neighborhood/internal/delivery/api"
	"neighborhood/internal/delivery/api/middleware"
	"neighborhood/internal/delivery/api/router/handler"
	"neighborhood/internal/delivery/worker"
	workerhandler "neighborhood/internal/delivery/worker/handler"
	"neighborhood/internal/infra/auth"
	"neighborhood/internal/infra/cache"
	"neighborhood/internal/infra/changefeed"
	"neighborhood/internal/infra/export"
	logs "neighborhood/internal/infra/log"
	"neighborhood/internal/infra/metrics"
	"neighborhood/internal/infra/notification"
	"neighborhood/internal/infra/persistence/postgres"
	"neighborhood/internal/infra/qrcode"
	"neighborhood/internal/infra/storage"
	"neighborhood/internal/usecase/impl"

	"go.uber.org/fx"
)

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
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
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
		metrics.NewRecorder,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewProfileRepository,
			postgres.NewApplicationRepository,
			postgres.NewShopRepository,
			postgres.NewProductRepository,
			postgres.NewEventRepository,
			postgres.NewReviewRepository,
			postgres.NewFavoriteRepository,
			postgres.NewDeviceRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasherFromConfig,
			auth.NewJWTService,
			cache.NewProfileCache,
			storage.New,
			qrcode.New,
			notification.New,
			export.NewExcelExporter,
			metrics.NewMetricsRecorder,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewAccessService,
			impl.NewApprovalService,
			impl.NewAdminDashboardService,
			impl.NewShopService,
			impl.NewSellerService,
			impl.NewReviewService,
			impl.NewFavoriteService,
			impl.NewProfileService,
			impl.NewDeviceService,
			impl.NewDecisionNotifier,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewPortalMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewShopHandler,
			handler.NewReviewHandler,
			handler.NewFavoriteHandler,
			handler.NewSellerHandler,
			handler.NewAdminHandler,
			handler.NewProfileHandler,
			handler.NewDeviceHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
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
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
