package handler

import (
	"log/slog"
	"net/http"

	"neighborhood/internal/delivery/api/response"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ShopHandlerParams holds dependencies for ShopHandler, injected by Fx.
type ShopHandlerParams struct {
	fx.In

	ShopUC usecase.ShopUsecase
	Logger *slog.Logger
}

// ShopHandler serves the buyer browse surfaces.
type ShopHandler struct {
	shopUC usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler.
func NewShopHandler(params ShopHandlerParams) *ShopHandler {
	return &ShopHandler{
		shopUC: params.ShopUC,
		logger: params.Logger,
	}
}

// SearchShopsRequest filters the shop list.
type SearchShopsRequest struct {
	Category string `query:"category"`
	Town     string `query:"town" validate:"max=80"`
}

// MapRequest centers the map. Zero coordinates select the configured default.
type MapRequest struct {
	Latitude  float64 `query:"lat"`
	Longitude float64 `query:"lng"`
	RadiusKm  float64 `query:"radius_km" validate:"gte=0"`
}

// Categories lists the browse tabs.
func (h *ShopHandler) Categories(c echo.Context) error {
	return response.Success(c, http.StatusOK, append([]string{entity.CategoryAll}, entity.Categories...))
}

// Search lists shops by category and town.
func (h *ShopHandler) Search(c echo.Context) error {
	var req SearchShopsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid search input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	shops := h.shopUC.Search(c.Request().Context(), entity.ShopFilter{
		Category: req.Category,
		Town:     req.Town,
	})

	return response.Success(c, http.StatusOK, shops)
}

// TopRated lists the highest rated shops.
func (h *ShopHandler) TopRated(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.shopUC.TopRated(c.Request().Context()))
}

// Map returns the nearby shops as a GeoJSON FeatureCollection.
func (h *ShopHandler) Map(c echo.Context) error {
	var req MapRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid map query")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	fc, err := h.shopUC.MapMarkers(c.Request().Context(), usecase.MapQuery{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		RadiusKm:  req.RadiusKm,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "application/geo+json", body)
}

// Page returns a shop with its products, events and reviews.
func (h *ShopHandler) Page(c echo.Context) error {
	shopID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop ID")
	}

	viewerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		viewerID = uuid.Nil
	}

	page, err := h.shopUC.ShopPage(c.Request().Context(), shopID, viewerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// QR renders the PNG QR code of a shop's public page.
func (h *ShopHandler) QR(c echo.Context) error {
	shopID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop ID")
	}

	png, err := h.shopUC.ShopQR(c.Request().Context(), shopID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
