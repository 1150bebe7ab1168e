package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	shopRepo   repository.ShopRepository
	reviewRepo repository.ReviewRepository
	uploader   *uploader
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ShopRepo   repository.ShopRepository
	ReviewRepo repository.ReviewRepository
	Storage    service.ObjectStorage
	Metrics    service.MetricsRecorder
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		shopRepo:   params.ShopRepo,
		reviewRepo: params.ReviewRepo,
		uploader:   newUploader(params.Storage, params.Metrics, params.Logger),
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PostReview stores the optional image, then inserts the review and recomputes the
// shop's rating in one transaction.
func (srv *reviewService) PostReview(ctx context.Context, input *usecase.PostReviewInput) (*entity.Review, error) {
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, errors.WithStack(domainerrors.ErrInvalidRating)
	}

	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("comment is required")
	}

	shop, err := srv.shopRepo.FindByID(ctx, input.ShopID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, errors.WithStack(domainerrors.ErrShopNotFound)
		}

		return nil, errors.Wrap(err, "failed to find shop")
	}

	if shop.OwnerID == input.UserID {
		return nil, errors.WithStack(domainerrors.ErrSelfReviewForbidden)
	}

	review := &entity.Review{
		ID:      uuid.New(),
		ShopID:  input.ShopID,
		UserID:  input.UserID,
		Rating:  input.Rating,
		Comment: comment,
	}

	if !input.Image.IsEmpty() {
		review.ImageURL, err = srv.uploader.uploadImage(ctx, constants.FolderReviews, input.Image)
		if err != nil {
			return nil, errors.Wrap(err, "failed to upload review image")
		}
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewReviewRepository().Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		if err := repoFactory.NewShopRepository().RecomputeRating(ctx, review.ShopID); err != nil {
			return errors.Wrap(err, "failed to recompute shop rating")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to post review", slog.Any("shopID", input.ShopID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review transaction")
	}

	srv.log(ctx).Info("Posted review", slog.Any("shopID", review.ShopID), slog.Any("reviewID", review.ID), slog.Int("rating", review.Rating))

	return review, nil
}

// ListReviews lists the shop's reviews with their authors, newest first.
func (srv *reviewService) ListReviews(ctx context.Context, shopID uuid.UUID) []*entity.ReviewWithAuthor {
	reviews, err := srv.reviewRepo.ListByShop(ctx, shopID)
	if err != nil {
		srv.log(ctx).Error("Failed to list reviews", slog.Any("shopID", shopID), slog.Any("error", err))

		return []*entity.ReviewWithAuthor{}
	}

	return reviews
}
