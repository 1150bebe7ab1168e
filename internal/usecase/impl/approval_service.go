package impl

import (
	"context"
	"log/slog"
	"time"

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

// Approval metric labels.
const (
	approvalActionApprove = "approve"
	approvalActionReject  = "reject"

	approvalOutcomeApproved = "approved"
	approvalOutcomeRejected = "rejected"
	approvalOutcomeNotFound = "not_found"
	approvalOutcomeConflict = "conflict"
	approvalOutcomeFailed   = "failed"
)

// approvalService implements the ApprovalUsecase interface.
type approvalService struct {
	txManager    repository.TransactionManager
	appRepo      repository.ApplicationRepository
	changeFeed   service.ChangeFeed
	profileCache service.ProfileCache
	metrics      service.MetricsRecorder
	logger       *slog.Logger
	now          func() time.Time
}

// ApprovalServiceParams holds dependencies for ApprovalService, injected by Fx.
type ApprovalServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AppRepo      repository.ApplicationRepository
	ChangeFeed   service.ChangeFeed
	ProfileCache service.ProfileCache
	Metrics      service.MetricsRecorder
	Logger       *slog.Logger
}

// NewApprovalService is the constructor for approvalService.
func NewApprovalService(params ApprovalServiceParams) usecase.ApprovalUsecase {
	return &approvalService{
		txManager:    params.TxManager,
		appRepo:      params.AppRepo,
		changeFeed:   params.ChangeFeed,
		profileCache: params.ProfileCache,
		metrics:      params.Metrics,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *approvalService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Approve inserts the shop, approves the application and promotes the applicant as one unit.
// Any failed step rolls back the others.
func (srv *approvalService) Approve(ctx context.Context, applicationID, operatorID uuid.UUID) (*usecase.ApprovalResult, error) {
	srv.log(ctx).Info("Approving seller application", slog.Any("applicationID", applicationID), slog.Any("operatorID", operatorID))

	var result *usecase.ApprovalResult
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		result, err = srv.approveInTx(ctx, repoFactory, applicationID)

		return err
	})
	if err != nil {
		srv.metrics.ApprovalOutcome(approvalActionApprove, approvalFailureOutcome(err))
		srv.log(ctx).Warn("Approval rolled back", slog.Any("applicationID", applicationID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to approve seller application")
	}

	srv.metrics.ApprovalOutcome(approvalActionApprove, approvalOutcomeApproved)

	// The applicant's cached header still carries the buyer role.
	if err := srv.profileCache.Delete(ctx, result.Profile.ID); err != nil {
		srv.log(ctx).Warn("Failed to evict header profile", slog.Any("userID", result.Profile.ID), slog.Any("error", err))
	}

	now := srv.now()
	publishChange(ctx, srv.log(ctx), srv.changeFeed, entity.CollectionSellerApplications, entity.ChangeUpdate, result.Application.ID, now)
	publishChange(ctx, srv.log(ctx), srv.changeFeed, entity.CollectionShops, entity.ChangeInsert, result.Shop.ID, now)

	srv.log(ctx).Info("Seller application approved",
		slog.Any("applicationID", applicationID),
		slog.Any("shopID", result.Shop.ID),
		slog.Any("ownerID", result.Profile.ID),
	)

	return result, nil
}

func (srv *approvalService) approveInTx(ctx context.Context, repoFactory repository.RepositoryFactory, applicationID uuid.UUID) (*usecase.ApprovalResult, error) {
	appRepo := repoFactory.NewApplicationRepository()
	shopRepo := repoFactory.NewShopRepository()
	profileRepo := repoFactory.NewProfileRepository()

	app, err := loadPendingApplication(ctx, appRepo, applicationID)
	if err != nil {
		return nil, err
	}

	shop := entity.NewShopFromApplication(app)
	if err := shopRepo.Create(ctx, shop); err != nil {
		if errors.Is(err, repository.ErrShopAlreadyExists) {
			return nil, domainerrors.ErrShopAlreadyExists.WrapMessage("applicant already owns a shop")
		}

		return nil, errors.Wrap(err, "failed to create shop")
	}

	if err := appRepo.TransitionStatus(ctx, app.ID, entity.ApplicationPending, entity.ApplicationApproved); err != nil {
		return nil, mapTransitionError(err)
	}
	app.Status = entity.ApplicationApproved

	if err := profileRepo.PromoteToSeller(ctx, app.UserID); err != nil {
		if errors.Is(err, repository.ErrRoleNotPromotable) || errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrRolePromotionFailed.WrapMessage(err.Error())
		}

		return nil, errors.Wrap(err, "failed to promote applicant")
	}

	profile, err := profileRepo.FindByID(ctx, app.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload applicant profile")
	}

	return &usecase.ApprovalResult{Application: app, Shop: shop, Profile: profile}, nil
}

// Reject marks a pending application rejected. No shop is created.
func (srv *approvalService) Reject(ctx context.Context, applicationID, operatorID uuid.UUID) (*entity.SellerApplication, error) {
	srv.log(ctx).Info("Rejecting seller application", slog.Any("applicationID", applicationID), slog.Any("operatorID", operatorID))

	app, err := loadPendingApplication(ctx, srv.appRepo, applicationID)
	if err == nil {
		err = srv.appRepo.TransitionStatus(ctx, app.ID, entity.ApplicationPending, entity.ApplicationRejected)
		if err != nil {
			err = mapTransitionError(err)
		}
	}
	if err != nil {
		srv.metrics.ApprovalOutcome(approvalActionReject, approvalFailureOutcome(err))
		srv.log(ctx).Warn("Rejection failed", slog.Any("applicationID", applicationID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to reject seller application")
	}

	app.Status = entity.ApplicationRejected
	srv.metrics.ApprovalOutcome(approvalActionReject, approvalOutcomeRejected)
	publishChange(ctx, srv.log(ctx), srv.changeFeed, entity.CollectionSellerApplications, entity.ChangeUpdate, app.ID, srv.now())

	return app, nil
}

func loadPendingApplication(ctx context.Context, appRepo repository.ApplicationRepository, id uuid.UUID) (*entity.SellerApplication, error) {
	app, err := appRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, errors.WithStack(domainerrors.ErrApplicationNotFound)
		}

		return nil, errors.Wrap(err, "failed to find seller application")
	}

	if !app.IsPending() {
		return nil, domainerrors.ErrApplicationNotPending.WrapMessage("application is " + app.Status.String())
	}

	return app, nil
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, repository.ErrApplicationStatusMismatch):
		return domainerrors.ErrApplicationNotPending.WrapMessage("application was decided concurrently")
	case errors.Is(err, repository.ErrApplicationNotFound):
		return errors.WithStack(domainerrors.ErrApplicationNotFound)
	default:
		return errors.Wrap(err, "failed to transition application status")
	}
}

func approvalFailureOutcome(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrApplicationNotFound):
		return approvalOutcomeNotFound
	case errors.Is(err, domainerrors.ErrApplicationNotPending), errors.Is(err, domainerrors.ErrShopAlreadyExists):
		return approvalOutcomeConflict
	default:
		return approvalOutcomeFailed
	}
}
