package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"
)

// AdminDashboardUsecase serves the admin's live application queue.
type AdminDashboardUsecase interface {
	// ListApplications lists applications, optionally narrowed to a status. Empty on read failure.
	ListApplications(ctx context.Context, status *entity.ApplicationStatus) []*entity.SellerApplication
	// ListShops lists every shop with its owner. Empty on read failure.
	ListShops(ctx context.Context) []*entity.ShopWithOwner
	// Snapshot performs a full read of applications and shops.
	Snapshot(ctx context.Context) (*entity.AdminSnapshot, error)
	// Watch re-reads the dashboard whenever an application is inserted or updated and hands
	// each snapshot to onRefresh. Bursts of changes coalesce into one pending re-read.
	// The returned stop function releases the subscription; cancelling ctx does too.
	Watch(ctx context.Context, onRefresh func(*entity.AdminSnapshot)) (stop func(), err error)
	// Export renders the registered businesses as an xlsx workbook.
	Export(ctx context.Context) ([]byte, error)
}
