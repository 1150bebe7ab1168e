package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminDashboardService implements the AdminDashboardUsecase interface.
type adminDashboardService struct {
	appRepo    repository.ApplicationRepository
	shopRepo   repository.ShopRepository
	changeFeed service.ChangeFeed
	exporter   service.BusinessExporter
	metrics    service.MetricsRecorder
	logger     *slog.Logger
	now        func() time.Time
}

// AdminDashboardServiceParams holds dependencies for AdminDashboardService, injected by Fx.
type AdminDashboardServiceParams struct {
	fx.In

	AppRepo    repository.ApplicationRepository
	ShopRepo   repository.ShopRepository
	ChangeFeed service.ChangeFeed
	Exporter   service.BusinessExporter
	Metrics    service.MetricsRecorder
	Logger     *slog.Logger
}

// NewAdminDashboardService is the constructor for adminDashboardService.
func NewAdminDashboardService(params AdminDashboardServiceParams) usecase.AdminDashboardUsecase {
	return &adminDashboardService{
		appRepo:    params.AppRepo,
		shopRepo:   params.ShopRepo,
		changeFeed: params.ChangeFeed,
		exporter:   params.Exporter,
		metrics:    params.Metrics,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *adminDashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListApplications lists applications newest first.
func (srv *adminDashboardService) ListApplications(ctx context.Context, status *entity.ApplicationStatus) []*entity.SellerApplication {
	apps, err := srv.appRepo.List(ctx, repository.ApplicationFilter{Status: status})
	if err != nil {
		srv.log(ctx).Error("Failed to list seller applications", slog.Any("error", err))

		return []*entity.SellerApplication{}
	}

	return apps
}

// ListShops lists every shop with its owner.
func (srv *adminDashboardService) ListShops(ctx context.Context) []*entity.ShopWithOwner {
	shops, err := srv.shopRepo.ListWithOwners(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list shops", slog.Any("error", err))

		return []*entity.ShopWithOwner{}
	}

	return shops
}

// Snapshot re-reads applications and shops in full.
func (srv *adminDashboardService) Snapshot(ctx context.Context) (*entity.AdminSnapshot, error) {
	started := srv.now()
	defer func() {
		srv.metrics.ObserveRefetch(srv.now().Sub(started))
	}()

	apps, err := srv.appRepo.List(ctx, repository.ApplicationFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller applications")
	}

	shops, err := srv.shopRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}

	return entity.NewAdminSnapshot(apps, shops, srv.now()), nil
}

// Watch re-reads the dashboard after application inserts and updates. A change arriving
// while a re-read is pending is folded into it.
func (srv *adminDashboardService) Watch(ctx context.Context, onRefresh func(*entity.AdminSnapshot)) (func(), error) {
	dirty := make(chan struct{}, 1)

	sub, err := srv.changeFeed.Subscribe(
		entity.CollectionSellerApplications,
		entity.ChangeFilter{entity.ChangeInsert, entity.ChangeUpdate},
		func(_ context.Context, _ entity.ChangeEvent) {
			select {
			case dirty <- struct{}{}:
			default:
			}
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to subscribe to seller application changes")
	}

	watchCtx, cancel := context.WithCancel(ctx)

	var once sync.Once
	stop := func() {
		once.Do(func() {
			sub.Unsubscribe()
			cancel()
		})
	}

	go func() {
		defer stop()

		for {
			select {
			case <-watchCtx.Done():
				return
			case <-dirty:
				snapshot, err := srv.Snapshot(watchCtx)
				if err != nil {
					srv.log(ctx).Warn("Dashboard re-fetch failed, keeping previous snapshot", slog.Any("error", err))

					continue
				}
				if watchCtx.Err() != nil {
					return
				}
				onRefresh(snapshot)
			}
		}
	}()

	srv.log(ctx).Debug("Watching seller applications")

	return stop, nil
}

// Export renders every application and shop as a workbook.
func (srv *adminDashboardService) Export(ctx context.Context) ([]byte, error) {
	apps, err := srv.appRepo.List(ctx, repository.ApplicationFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller applications")
	}

	shops, err := srv.shopRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}

	data, err := srv.exporter.ExportBusinesses(apps, shops)
	if err != nil {
		return nil, errors.Wrap(err, "failed to export businesses")
	}

	srv.log(ctx).Info("Exported businesses", slog.Int("applications", len(apps)), slog.Int("shops", len(shops)))

	return data, nil
}
