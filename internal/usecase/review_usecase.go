package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// PostReviewInput is a buyer's review submission.
type PostReviewInput struct {
	UserID  uuid.UUID
	ShopID  uuid.UUID
	Rating  int
	Comment string
	Image   *entity.FileUpload
}

// ReviewUsecase appends reviews and keeps the shop rating in step with them.
type ReviewUsecase interface {
	// PostReview uploads the optional image, then inserts the review and recomputes the
	// shop rating in one transaction.
	PostReview(ctx context.Context, input *PostReviewInput) (*entity.Review, error)
	// ListReviews lists a shop's reviews with their authors. Empty on read failure.
	ListReviews(ctx context.Context, shopID uuid.UUID) []*entity.ReviewWithAuthor
}
