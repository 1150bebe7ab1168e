package postgres

import (
	"context"
	"log/slog"
	"testing"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/infra/cache"
	"neighborhood/internal/infra/changefeed"
	"neighborhood/internal/infra/metrics"
	"neighborhood/internal/usecase"
	"neighborhood/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApprovalService(db *gorm.DB) usecase.ApprovalUsecase {
	logger := slog.Default()

	return impl.NewApprovalService(impl.ApprovalServiceParams{
		TxManager:    NewTransactionManager(db),
		AppRepo:      NewApplicationRepository(db),
		ChangeFeed:   changefeed.NewMemoryFeed(logger),
		ProfileCache: cache.NewMemoryProfileCache(),
		Metrics:      metrics.NewRecorder(),
		Logger:       logger,
	})
}

func seedApplication(t *testing.T, db *gorm.DB, userID uuid.UUID) *entity.SellerApplication {
	t.Helper()
	app := &entity.SellerApplication{
		UserID:        userID,
		BusinessName:  "Tindahan ni Aling Nena",
		OwnerName:     "Nena",
		ContactNumber: "0918",
		Category:      "Retail",
		Address:       "Tacloban City",
		ProofURL:      "https://storage/proof.pdf",
	}
	require.NoError(t, NewApplicationRepository(db).Create(context.Background(), app))

	return app
}

func TestApproval_CommitsShopStatusAndRole(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)

	buyer := seedProfile(t, profiles, entity.RoleBuyer)
	app := seedApplication(t, db, buyer.ID)

	result, err := newApprovalService(db).Approve(ctx, app.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationApproved, result.Application.Status)
	assert.Equal(t, entity.RoleSeller, result.Profile.Role)

	shop, err := NewShopRepository(db).FindByOwner(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Shop.ID, shop.ID)
	assert.Equal(t, app.BusinessName, shop.Name)

	stored, err := NewApplicationRepository(db).FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationApproved, stored.Status)
}

func TestApproval_RollsBackWhenPromotionFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)

	admin := seedProfile(t, profiles, entity.RoleAdmin)
	app := seedApplication(t, db, admin.ID)

	_, err := newApprovalService(db).Approve(ctx, app.ID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrRolePromotionFailed)

	_, err = NewShopRepository(db).FindByOwner(ctx, admin.ID)
	assert.ErrorIs(t, err, repository.ErrShopNotFound, "the shop insert must roll back")

	stored, err := NewApplicationRepository(db).FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, stored.Status, "the status change must roll back")

	profile, err := profiles.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, profile.Role)
}

func TestApproval_SecondDecisionIsRefused(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newApprovalService(db)

	buyer := seedProfile(t, NewProfileRepository(db), entity.RoleBuyer)
	app := seedApplication(t, db, buyer.ID)

	_, err := svc.Approve(ctx, app.ID, uuid.New())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, app.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrApplicationNotPending)

	_, err = svc.Reject(ctx, app.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrApplicationNotPending)
}
