package handler

import (
	"log/slog"
	"net/http"

	"neighborhood/internal/delivery/api/response"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	AccessUC  usecase.AccessUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves the profile pages and the portal header.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	accessUC  usecase.AccessUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		accessUC:  params.AccessUC,
		logger:    params.Logger,
	}
}

// UpdateProfileRequest is the text part of the profile form.
type UpdateProfileRequest struct {
	FullName string `form:"full_name" json:"full_name" validate:"max=120"`
	Bio      string `form:"bio" json:"bio" validate:"max=500"`
	Location string `form:"location" json:"location" validate:"max=120"`
}

// Me returns the caller's profile with stats and recent activity.
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	profile, err := h.profileUC.GetFullProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// Header returns the cached header fields of the caller.
func (h *ProfileHandler) Header(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	header, err := h.accessUC.Header(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, header)
}

// Portal confirms the caller passed the gate of the group it is mounted on.
func (h *ProfileHandler) Portal(portal entity.Portal) echo.HandlerFunc {
	return func(c echo.Context) error {
		return response.Success(c, http.StatusOK, map[string]any{
			"portal":   portal,
			"decision": usecase.DecisionGranted,
			"profile":  deliverycontext.GetProfile(c),
		})
	}
}

// Public returns another user's profile as their privacy flags allow.
func (h *ProfileHandler) Public(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	profile, err := h.profileUC.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// Update edits the caller's details and optional avatar.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	avatar, err := formFile(c, "avatar")
	if err != nil {
		return fileError(c, "avatar", err)
	}

	profile, err := h.profileUC.UpdateProfile(c.Request().Context(), userID, &usecase.UpdateProfileInput{
		FullName: req.FullName,
		Bio:      req.Bio,
		Location: req.Location,
		Avatar:   avatar,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// UpdatePrivacy writes the privacy flags present in the body.
func (h *ProfileHandler) UpdatePrivacy(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req entity.PrivacySettings
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid privacy settings")
	}

	profile, err := h.profileUC.UpdatePrivacy(c.Request().Context(), userID, req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}
