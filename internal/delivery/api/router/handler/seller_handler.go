package handler

import (
	"log/slog"
	"net/http"
	"time"

	"neighborhood/internal/delivery/api/response"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SellerHandlerParams holds dependencies for SellerHandler, injected by Fx.
type SellerHandlerParams struct {
	fx.In

	SellerUC usecase.SellerUsecase
	Logger   *slog.Logger
}

// SellerHandler serves the seller dashboard. Every route acts on the caller's own shop.
type SellerHandler struct {
	sellerUC usecase.SellerUsecase
	logger   *slog.Logger
}

// NewSellerHandler is the constructor for SellerHandler.
func NewSellerHandler(params SellerHandlerParams) *SellerHandler {
	return &SellerHandler{
		sellerUC: params.SellerUC,
		logger:   params.Logger,
	}
}

// ShopSettingsRequest is the text part of the shop settings form.
type ShopSettingsRequest struct {
	Name        string  `form:"name" validate:"required,max=120"`
	Description string  `form:"description" validate:"max=2000"`
	Address     string  `form:"address" validate:"required,max=255"`
	Latitude    float64 `form:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `form:"longitude" validate:"gte=-180,lte=180"`
}

// ProductRequest is the text part of the product form.
type ProductRequest struct {
	Name  string  `form:"name" validate:"required,max=120"`
	Price float64 `form:"price"`
}

// EventRequest creates or edits a shop event.
type EventRequest struct {
	Title       string     `json:"title" validate:"required,max=160"`
	Description string     `json:"description" validate:"max=2000"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

func (r *EventRequest) input() *usecase.EventInput {
	status := entity.EventStatus(r.Status)
	if status == "" {
		status = entity.EventUpcoming
	}

	return &usecase.EventInput{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      status,
	}
}

// GetShop returns the caller's shop.
func (h *SellerHandler) GetShop(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	shop, err := h.sellerUC.GetShop(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, shop)
}

// SaveShopSettings creates or updates the caller's shop.
func (h *SellerHandler) SaveShopSettings(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req ShopSettingsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop settings input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	image, err := formFile(c, "image")
	if err != nil {
		return fileError(c, "image", err)
	}

	shop, err := h.sellerUC.SaveShopSettings(c.Request().Context(), ownerID, &usecase.ShopSettingsInput{
		ShopSettings: entity.ShopSettings{
			Name:        req.Name,
			Description: req.Description,
			Address:     req.Address,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
		},
		Image: image,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, shop)
}

// ShopQR renders the QR code of the caller's shop.
func (h *SellerHandler) ShopQR(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	png, err := h.sellerUC.ShopQR(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="shop-qr.png"`)

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListProducts lists the caller's products.
func (h *SellerHandler) ListProducts(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	products, err := h.sellerUC.ListProducts(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// CreateProduct adds a product to the caller's shop.
func (h *SellerHandler) CreateProduct(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input, err := h.productInput(c)
	if err != nil {
		return err
	}
	if input == nil {
		return nil
	}

	product, err := h.sellerUC.CreateProduct(c.Request().Context(), ownerID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product)
}

// UpdateProduct edits one of the caller's products.
func (h *SellerHandler) UpdateProduct(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	input, err := h.productInput(c)
	if err != nil {
		return err
	}
	if input == nil {
		return nil
	}

	product, err := h.sellerUC.UpdateProduct(c.Request().Context(), ownerID, productID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// productInput reads the product form. A nil input means the error response was already written.
func (h *SellerHandler) productInput(c echo.Context) (*usecase.ProductInput, error) {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return nil, response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return nil, response.ValidationError(c, err)
	}

	image, err := formFile(c, "image")
	if err != nil {
		return nil, fileError(c, "image", err)
	}

	return &usecase.ProductInput{Name: req.Name, Price: req.Price, Image: image}, nil
}

// DeleteProduct removes one of the caller's products.
func (h *SellerHandler) DeleteProduct(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.sellerUC.DeleteProduct(c.Request().Context(), ownerID, productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListEvents lists the caller's events.
func (h *SellerHandler) ListEvents(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	events, err := h.sellerUC.ListEvents(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events)
}

// CreateEvent announces an event of the caller's shop.
func (h *SellerHandler) CreateEvent(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	event, err := h.sellerUC.CreateEvent(c.Request().Context(), ownerID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, event)
}

// UpdateEvent edits one of the caller's events.
func (h *SellerHandler) UpdateEvent(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	eventID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid event ID")
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	event, err := h.sellerUC.UpdateEvent(c.Request().Context(), ownerID, eventID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, event)
}

// DeleteEvent removes one of the caller's events.
func (h *SellerHandler) DeleteEvent(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	eventID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid event ID")
	}

	if err := h.sellerUC.DeleteEvent(c.Request().Context(), ownerID, eventID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
