package handler

import (
	"log/slog"
	"net/http"
	"time"

	"neighborhood/config"
	"neighborhood/internal/delivery/api/middleware"
	"neighborhood/internal/delivery/api/response"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	Config     *config.Config
	Logger     *slog.Logger
}

// AuthHandler serves signup, sign-in and session endpoints.
type AuthHandler struct {
	identityUC usecase.IdentityUsecase
	refreshTTL time.Duration
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		identityUC: params.IdentityUC,
		refreshTTL: params.Config.Auth.RefreshTokenTTL,
		logger:     params.Logger,
	}
}

// SignUpRequest is the buyer signup form.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"max=120"`
}

// SellerSignUpRequest is the text part of the multipart seller signup form.
type SellerSignUpRequest struct {
	Email         string `form:"email" validate:"required,email"`
	Password      string `form:"password" validate:"required"`
	FullName      string `form:"full_name" validate:"max=120"`
	BusinessName  string `form:"business_name" validate:"required,max=120"`
	OwnerName     string `form:"owner_name" validate:"required,max=120"`
	ContactNumber string `form:"contact_number" validate:"required,max=32"`
	Category      string `form:"category" validate:"required,category"`
	Address       string `form:"address" validate:"required,max=255"`
}

// SignInRequest is the sign-in form of one portal.
type SignInRequest struct {
	Portal   string `json:"portal" validate:"required,portal"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token for clients that do not use cookies.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AccountResponse is the public view of a new account.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SignInResponse returns the session and the profile that passed the gate.
type SignInResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	SessionID    uuid.UUID       `json:"session_id"`
	Profile      *entity.Profile `json:"profile"`
}

func newAccountResponse(user *entity.User) *AccountResponse {
	return &AccountResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}
}

// SignUp opens a buyer account.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.identityUC.SignUp(c.Request().Context(), &usecase.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAccountResponse(user))
}

// SignUpSeller opens an account with a pending seller application. The proof file is required.
func (h *AuthHandler) SignUpSeller(c echo.Context) error {
	var req SellerSignUpRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid seller signup input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	proof, err := formFile(c, "proof")
	if err != nil {
		return fileError(c, "proof", err)
	}

	out, err := h.identityUC.SignUpSeller(c.Request().Context(), &usecase.SellerSignUpInput{
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		BusinessName:  req.BusinessName,
		OwnerName:     req.OwnerName,
		ContactNumber: req.ContactNumber,
		Category:      req.Category,
		Address:       req.Address,
		Proof:         proof,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"account":     newAccountResponse(out.User),
		"application": out.Application,
	})
}

// SignIn authenticates against one portal and sets the session cookies.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	out, err := h.identityUC.SignIn(c.Request().Context(), &usecase.SignInInput{
		Portal:   entity.Portal(req.Portal),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.ClearSessionCookies(c)

		return response.HandleAppError(c, err)
	}

	middleware.SetSessionCookies(c, out.AccessToken, out.RefreshToken, h.refreshTTL)

	return response.Success(c, http.StatusOK, &SignInResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		SessionID:    out.SessionID,
		Profile:      out.Profile,
	})
}

// Refresh issues a new access token for the caller's session.
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := h.refreshToken(c)
	if refreshToken == "" {
		return response.Unauthorized(c, "REFRESH_TOKEN_INVALID", "Refresh token is missing")
	}

	accessToken, err := h.identityUC.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		middleware.ClearSessionCookies(c)

		return response.HandleAppError(c, err)
	}

	middleware.SetSessionCookies(c, accessToken, "", h.refreshTTL)

	return response.Success(c, http.StatusOK, map[string]string{"access_token": accessToken})
}

// SignOut revokes the session and clears the cookies. It succeeds for unknown tokens.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if refreshToken := h.refreshToken(c); refreshToken != "" {
		if err := h.identityUC.SignOut(c.Request().Context(), refreshToken); err != nil {
			return response.HandleAppError(c, err)
		}
	}

	middleware.ClearSessionCookies(c)

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) refreshToken(c echo.Context) string {
	var req RefreshRequest
	if err := c.Bind(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}

	return middleware.RefreshToken(c)
}
