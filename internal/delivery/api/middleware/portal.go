package middleware

import (
	"log/slog"

	"neighborhood/internal/delivery/api/response"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PortalMiddlewareParams holds dependencies for PortalMiddleware, injected by Fx.
type PortalMiddlewareParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	AccessUC   usecase.AccessUsecase
	Logger     *slog.Logger
}

// PortalMiddleware guards routes with a session check or a full portal gate.
type PortalMiddleware struct {
	identityUC usecase.IdentityUsecase
	accessUC   usecase.AccessUsecase
	logger     *slog.Logger
}

// NewPortalMiddleware is the constructor for PortalMiddleware.
func NewPortalMiddleware(params PortalMiddlewareParams) *PortalMiddleware {
	return &PortalMiddleware{
		identityUC: params.IdentityUC,
		accessUC:   params.AccessUC,
		logger:     params.Logger,
	}
}

// Authenticate requires a live session of any role.
func (m *PortalMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.identityUC.CurrentSession(c.Request().Context(), AccessToken(c))
		if err != nil {
			return response.Unauthorized(c,
				domainerrors.ErrNotAuthenticated.ErrorCode(),
				domainerrors.ErrNotAuthenticated.Message(),
			)
		}

		m.attach(c, session)

		return next(c)
	}
}

// RequirePortal admits only sessions whose stored profile role matches the portal.
// Denials caused by the profile revoke the session, so the cookies are cleared too.
func (m *PortalMiddleware) RequirePortal(portal entity.Portal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access, err := m.accessUC.EnterPortal(c.Request().Context(), AccessToken(c), portal)
			if err != nil {
				return response.HandleAppError(c, err)
			}

			if !access.Granted() {
				return denyPortal(c, access)
			}

			m.attach(c, access.Session)
			deliverycontext.SetProfile(c, access.Profile)

			return next(c)
		}
	}
}

func (m *PortalMiddleware) attach(c echo.Context, session *entity.Session) {
	deliverycontext.SetSession(c, session)

	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", session.UserID.String()))
	c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, logger)))
}

func denyPortal(c echo.Context, access *usecase.PortalAccess) error {
	if access.Decision.ForcesSignOut() {
		ClearSessionCookies(c)
	}

	appErr := domainerrors.ErrNotAuthenticated
	switch access.Decision {
	case usecase.DecisionDeniedWrongRole:
		appErr = domainerrors.ErrAccessDenied
	case usecase.DecisionDeniedNoProfile:
		appErr = domainerrors.ErrAccountSetupIncomplete
	}

	return response.Denied(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), access.RedirectTo)
}
