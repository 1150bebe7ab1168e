package handler

import (
	"log/slog"
	"net/http"

	"neighborhood/internal/delivery/api/response"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler serves shop reviews.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// PostReviewRequest is the text part of the review form. The image part is optional.
type PostReviewRequest struct {
	Rating  int    `form:"rating" json:"rating"`
	Comment string `form:"comment" json:"comment" validate:"max=2000"`
}

// Post appends a review and recomputes the shop rating.
func (h *ReviewHandler) Post(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	shopID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop ID")
	}

	var req PostReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	image, err := formFile(c, "image")
	if err != nil {
		return fileError(c, "image", err)
	}

	review, err := h.reviewUC.PostReview(c.Request().Context(), &usecase.PostReviewInput{
		UserID:  userID,
		ShopID:  shopID,
		Rating:  req.Rating,
		Comment: req.Comment,
		Image:   image,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, review)
}

// List returns a shop's reviews with their authors.
func (h *ReviewHandler) List(c echo.Context) error {
	shopID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop ID")
	}

	return response.Success(c, http.StatusOK, h.reviewUC.ListReviews(c.Request().Context(), shopID))
}
