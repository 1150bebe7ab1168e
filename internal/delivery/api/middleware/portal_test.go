package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"neighborhood/internal/delivery/api/response"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	mockUsecase "neighborhood/internal/mocks/usecase"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type portalFixtures struct {
	identity   *mockUsecase.MockIdentityUsecase
	access     *mockUsecase.MockAccessUsecase
	middleware *PortalMiddleware
}

func createPortalFixtures(t *testing.T) *portalFixtures {
	identity := mockUsecase.NewMockIdentityUsecase(t)
	access := mockUsecase.NewMockAccessUsecase(t)

	return &portalFixtures{
		identity: identity,
		access:   access,
		middleware: NewPortalMiddleware(PortalMiddlewareParams{
			IdentityUC: identity,
			AccessUC:   access,
			Logger:     slog.Default(),
		}),
	}
}

func newRequest(t *testing.T, setup func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/shop", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *response.ErrorInfo {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body.Error
}

func reached(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true

		return c.NoContent(http.StatusOK)
	}
}

func TestAccessToken_PrefersHeaderOverCookie(t *testing.T) {
	c, _ := newRequest(t, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	})
	assert.Equal(t, "header-token", AccessToken(c))

	c, _ = newRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	})
	assert.Equal(t, "cookie-token", AccessToken(c))

	c, _ = newRequest(t, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Basic abc")
	})
	assert.Empty(t, AccessToken(c))
}

func TestPortalMiddleware_Authenticate(t *testing.T) {
	t.Run("attaches the session", func(t *testing.T) {
		fx := createPortalFixtures(t)
		session := &entity.Session{ID: uuid.New(), UserID: uuid.New()}
		fx.identity.On("CurrentSession", mock.Anything, "good").Return(session, nil).Once()

		c, rec := newRequest(t, func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer good")
		})

		var userID uuid.UUID
		err := fx.middleware.Authenticate(func(c echo.Context) error {
			userID, _ = deliverycontext.GetUserID(c)

			return c.NoContent(http.StatusOK)
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, session.UserID, userID)
	})

	t.Run("rejects a missing session", func(t *testing.T) {
		fx := createPortalFixtures(t)
		fx.identity.On("CurrentSession", mock.Anything, "").Return(nil, domainerrors.ErrNotAuthenticated).Once()

		c, rec := newRequest(t, nil)

		called := false
		require.NoError(t, fx.middleware.Authenticate(reached(&called))(c))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "NOT_AUTHENTICATED", decodeError(t, rec).Code)
	})
}

func TestPortalMiddleware_RequirePortal_Granted(t *testing.T) {
	fx := createPortalFixtures(t)
	session := &entity.Session{ID: uuid.New(), UserID: uuid.New()}
	profile := &entity.Profile{ID: session.UserID, Role: entity.RoleSeller}
	fx.access.On("EnterPortal", mock.Anything, "tok", entity.PortalSeller).Return(&usecase.PortalAccess{
		Portal:   entity.PortalSeller,
		Decision: usecase.DecisionGranted,
		Session:  session,
		Profile:  profile,
	}, nil).Once()

	c, rec := newRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "tok"})
	})

	var seen *entity.Profile
	err := fx.middleware.RequirePortal(entity.PortalSeller)(func(c echo.Context) error {
		seen = deliverycontext.GetProfile(c)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, profile, seen)
}

func TestPortalMiddleware_RequirePortal_Denied(t *testing.T) {
	tests := []struct {
		name          string
		decision      usecase.PortalDecision
		wantStatus    int
		wantCode      string
		wantClearance bool
	}{
		{"no session", usecase.DecisionDeniedNoSession, http.StatusUnauthorized, "NOT_AUTHENTICATED", false},
		{"wrong role", usecase.DecisionDeniedWrongRole, http.StatusForbidden, "ACCESS_DENIED", true},
		{"no profile", usecase.DecisionDeniedNoProfile, http.StatusForbidden, "ACCOUNT_SETUP_INCOMPLETE", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createPortalFixtures(t)
			fx.access.On("EnterPortal", mock.Anything, "tok", entity.PortalAdmin).Return(&usecase.PortalAccess{
				Portal:     entity.PortalAdmin,
				Decision:   tt.decision,
				RedirectTo: entity.PortalAdmin.LoginRoute(),
			}, nil).Once()

			c, rec := newRequest(t, func(r *http.Request) {
				r.Header.Set(echo.HeaderAuthorization, "Bearer tok")
			})

			called := false
			require.NoError(t, fx.middleware.RequirePortal(entity.PortalAdmin)(reached(&called))(c))

			assert.False(t, called)
			assert.Equal(t, tt.wantStatus, rec.Code)

			info := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.Equal(t, "/admin/login", info.RedirectTo)

			cleared := false
			for _, cookie := range rec.Result().Cookies() {
				if cookie.Name == AccessTokenCookie && cookie.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.wantClearance, cleared)
		})
	}
}

func TestPortalMiddleware_RequirePortal_UnknownPortal(t *testing.T) {
	fx := createPortalFixtures(t)
	fx.access.On("EnterPortal", mock.Anything, "", entity.Portal("staff")).
		Return(nil, domainerrors.ErrValidationFailed.WrapMessage("unknown portal staff")).Once()

	c, rec := newRequest(t, nil)

	called := false
	require.NoError(t, fx.middleware.RequirePortal("staff")(reached(&called))(c))

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
