package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	mockUsecase "neighborhood/internal/mocks/usecase"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func createTestReviewHandler(t *testing.T) (*ReviewHandler, *mockUsecase.MockReviewUsecase) {
	reviews := mockUsecase.NewMockReviewUsecase(t)

	return NewReviewHandler(ReviewHandlerParams{ReviewUC: reviews, Logger: slog.Default()}), reviews
}

func TestReviewHandler_Post_WithImage(t *testing.T) {
	h, reviews := createTestReviewHandler(t)
	session := newSession()
	shopID := uuid.New()

	reviews.On("PostReview", mock.Anything, mock.MatchedBy(func(in *usecase.PostReviewInput) bool {
		return in.UserID == session.UserID &&
			in.ShopID == shopID &&
			in.Rating == 5 &&
			in.Comment == "Best kape in town" &&
			in.Image != nil && string(in.Image.Content) == "jpegbytes"
	})).Return(&entity.Review{ID: uuid.New(), ShopID: shopID, Rating: 5}, nil).Once()

	body, ctype := multipartBody(t, map[string]string{
		"rating":  "5",
		"comment": "Best kape in town",
	}, "image", "cup.jpg", []byte("jpegbytes"))

	rec := serve(t, testRequest{
		method:  http.MethodPost,
		target:  "/",
		body:    body,
		ctype:   ctype,
		params:  map[string]string{"id": shopID.String()},
		session: session,
	}, h.Post)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReviewHandler_Post_WithoutImage(t *testing.T) {
	h, reviews := createTestReviewHandler(t)
	shopID := uuid.New()

	reviews.On("PostReview", mock.Anything, mock.MatchedBy(func(in *usecase.PostReviewInput) bool {
		return in.Image == nil && in.Rating == 4
	})).Return(&entity.Review{ID: uuid.New()}, nil).Once()

	rec := serve(t, testRequest{
		method:  http.MethodPost,
		target:  "/",
		body:    strings.NewReader(`{"rating":4,"comment":"Good"}`),
		ctype:   "application/json",
		params:  map[string]string{"id": shopID.String()},
		session: newSession(),
	}, h.Post)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReviewHandler_Post_RejectedRating(t *testing.T) {
	h, reviews := createTestReviewHandler(t)
	reviews.On("PostReview", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidRating).Once()

	body, ctype := multipartBody(t, map[string]string{"rating": "9", "comment": "!"}, "", "", nil)

	rec := serve(t, testRequest{
		method:  http.MethodPost,
		target:  "/",
		body:    body,
		ctype:   ctype,
		params:  map[string]string{"id": uuid.NewString()},
		session: newSession(),
	}, h.Post)

	assert.Equal(t, domainerrors.ErrInvalidRating.HTTPCode(), rec.Code)
	assert.Equal(t, domainerrors.ErrInvalidRating.ErrorCode(), decodeError(t, rec).Code)
}

func TestReviewHandler_Post_RequiresSession(t *testing.T) {
	h, _ := createTestReviewHandler(t)

	rec := serve(t, testRequest{method: http.MethodPost, target: "/", params: map[string]string{"id": uuid.NewString()}}, h.Post)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
