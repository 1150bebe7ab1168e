package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"neighborhood/internal/delivery/api/response"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	streamHeartbeat  = 25 * time.Second
	exportFileLayout = "20060102-150405"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	DashboardUC usecase.AdminDashboardUsecase
	ApprovalUC  usecase.ApprovalUsecase
	Logger      *slog.Logger
}

// AdminHandler serves the admin dashboard and application decisions.
type AdminHandler struct {
	dashboardUC usecase.AdminDashboardUsecase
	approvalUC  usecase.ApprovalUsecase
	logger      *slog.Logger
	heartbeat   time.Duration
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		dashboardUC: params.DashboardUC,
		approvalUC:  params.ApprovalUC,
		logger:      params.Logger,
		heartbeat:   streamHeartbeat,
	}
}

// ListApplicationsRequest narrows the application queue.
type ListApplicationsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// ListApplications lists seller applications, newest first.
func (h *AdminHandler) ListApplications(c echo.Context) error {
	var req ListApplicationsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid application filter")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	var status *entity.ApplicationStatus
	if req.Status != "" {
		s := entity.ApplicationStatus(req.Status)
		status = &s
	}

	return response.Success(c, http.StatusOK, h.dashboardUC.ListApplications(c.Request().Context(), status))
}

// ListShops lists every shop with its owner.
func (h *AdminHandler) ListShops(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.dashboardUC.ListShops(c.Request().Context()))
}

// Snapshot returns a full read of the dashboard.
func (h *AdminHandler) Snapshot(c echo.Context) error {
	snapshot, err := h.dashboardUC.Snapshot(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot)
}

// Approve creates the applicant's shop and promotes them to seller.
func (h *AdminHandler) Approve(c echo.Context) error {
	operatorID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	appID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid application ID")
	}

	result, err := h.approvalUC.Approve(c.Request().Context(), appID, operatorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"application": result.Application,
		"shop":        result.Shop,
		"profile":     result.Profile,
	})
}

// Reject marks a pending application rejected.
func (h *AdminHandler) Reject(c echo.Context) error {
	operatorID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	appID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid application ID")
	}

	app, err := h.approvalUC.Reject(c.Request().Context(), appID, operatorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, app)
}

// Export downloads the registered businesses as an xlsx workbook.
func (h *AdminHandler) Export(c echo.Context) error {
	workbook, err := h.dashboardUC.Export(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	filename := "businesses-" + time.Now().UTC().Format(exportFileLayout) + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// Stream pushes a dashboard snapshot as a server-sent event on connect and after
// every application change, until the client goes away.
func (h *AdminHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	// Only the latest snapshot matters; a slow client skips intermediate ones.
	latest := make(chan *entity.AdminSnapshot, 1)
	stop, err := h.dashboardUC.Watch(ctx, func(s *entity.AdminSnapshot) {
		select {
		case <-latest:
		default:
		}
		latest <- s
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer stop()

	// Read after subscribing so a change committed in between still triggers a refresh.
	snapshot, err := h.dashboardUC.Snapshot(ctx)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeSnapshotEvent(res, snapshot); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Dashboard stream closed")

			return nil
		case s := <-latest:
			if err := writeSnapshotEvent(res, s); err != nil {
				logger.Debug("Dashboard stream write failed", slog.Any("error", err))

				return nil
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeSnapshotEvent(res *echo.Response, snapshot *entity.AdminSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := fmt.Fprintf(res, "event: snapshot\ndata: %s\n\n", data); err != nil {
		return errors.WithStack(err)
	}
	res.Flush()

	return nil
}
