package impl

import (
	"context"
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

// accessService implements the AccessUsecase interface.
type accessService struct {
	identity     usecase.IdentityUsecase
	profileRepo  repository.ProfileRepository
	profileCache service.ProfileCache
	metrics      service.MetricsRecorder
	logger       *slog.Logger
}

// AccessServiceParams holds dependencies for AccessService, injected by Fx.
type AccessServiceParams struct {
	fx.In

	Identity     usecase.IdentityUsecase
	ProfileRepo  repository.ProfileRepository
	ProfileCache service.ProfileCache
	Metrics      service.MetricsRecorder
	Logger       *slog.Logger
}

// NewAccessService is the constructor for accessService.
func NewAccessService(params AccessServiceParams) usecase.AccessUsecase {
	return &accessService{
		identity:     params.Identity,
		profileRepo:  params.ProfileRepo,
		profileCache: params.ProfileCache,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

func (srv *accessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// EnterPortal decides whether the bearer of accessToken may render the portal.
// Errors are reserved for an unknown portal; every other outcome is a decision.
func (srv *accessService) EnterPortal(ctx context.Context, accessToken string, portal entity.Portal) (*usecase.PortalAccess, error) {
	if !portal.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown portal " + portal.String())
	}

	access := &usecase.PortalAccess{Portal: portal}
	defer func() {
		srv.metrics.PortalDecision(portal.String(), access.Decision.String())
	}()

	session, err := srv.identity.CurrentSession(ctx, accessToken)
	if err != nil {
		access.Decision = usecase.DecisionDeniedNoSession
		access.RedirectTo = portal.LoginRoute()

		return access, nil
	}
	access.Session = session

	profile, profileErr := srv.profileRepo.FindByID(ctx, session.UserID)
	access.Decision = decidePortal(profile, profileErr, portal)

	if access.Decision.ForcesSignOut() {
		access.RedirectTo = portal.LoginRoute()

		srv.log(ctx).Warn("Portal entry denied, signing out",
			slog.Any("userID", session.UserID),
			slog.String("portal", portal.String()),
			slog.String("decision", access.Decision.String()),
			slog.Any("profileError", profileErr),
		)

		if err := srv.identity.SignOutSession(ctx, session.ID); err != nil {
			srv.log(ctx).Error("Failed to revoke session", slog.Any("sessionID", session.ID), slog.Any("error", err))
		}

		return access, nil
	}

	access.Profile = profile

	if err := srv.profileCache.Set(ctx, entity.NewHeaderProfile(profile)); err != nil {
		srv.log(ctx).Warn("Failed to cache header profile", slog.Any("userID", profile.ID), slog.Any("error", err))
	}

	return access, nil
}

// Header serves the cached header fields, falling back to the profile row.
func (srv *accessService) Header(ctx context.Context, userID uuid.UUID) (*entity.HeaderProfile, error) {
	header, err := srv.profileCache.Get(ctx, userID)
	if err == nil {
		return header, nil
	}
	if !errors.Is(err, service.ErrCacheMiss) {
		srv.log(ctx).Warn("Profile cache read failed", slog.Any("userID", userID), slog.Any("error", err))
	}

	profile, err := srv.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "header profile")
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	header = entity.NewHeaderProfile(profile)
	if err := srv.profileCache.Set(ctx, header); err != nil {
		srv.log(ctx).Warn("Failed to cache header profile", slog.Any("userID", userID), slog.Any("error", err))
	}

	return header, nil
}

// decidePortal grants only when a profile was read and its role is the portal's role.
// A failed read counts as a missing profile.
func decidePortal(profile *entity.Profile, err error, portal entity.Portal) usecase.PortalDecision {
	switch {
	case err != nil || profile == nil:
		return usecase.DecisionDeniedNoProfile
	case profile.Role != portal.RequiredRole():
		return usecase.DecisionDeniedWrongRole
	default:
		return usecase.DecisionGranted
	}
}

// decisionError maps a denied decision to the error returned by sign-in.
func decisionError(decision usecase.PortalDecision) error {
	switch decision {
	case usecase.DecisionDeniedNoProfile:
		return errors.WithStack(domainerrors.ErrAccountSetupIncomplete)
	case usecase.DecisionDeniedWrongRole:
		return errors.WithStack(domainerrors.ErrAccessDenied)
	default:
		return errors.WithStack(domainerrors.ErrNotAuthenticated)
	}
}
