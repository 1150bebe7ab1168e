package postgres

import (
	"context"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the repository.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrShopNotFound.WrapMessage("invalid shop or reviewer reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRating
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

type reviewAuthorRow struct {
	model.ReviewModel `gorm:"embedded"`
	AuthorFullName    string
	AuthorEmail       string
	AuthorAvatarURL   string
}

// ListByShop returns a shop's reviews with their authors, newest first.
func (repo *reviewRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.ReviewWithAuthor, error) {
	var rows []*reviewAuthorRow

	if err := repo.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, profiles.full_name AS author_full_name, profiles.email AS author_email, profiles.avatar_url AS author_avatar_url").
		Joins("LEFT JOIN profiles ON profiles.id = reviews.user_id").
		Where("reviews.shop_id = ?", shopID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list shop reviews")
	}

	reviews := make([]*entity.ReviewWithAuthor, 0, len(rows))
	for _, row := range rows {
		author := entity.Profile{FullName: row.AuthorFullName, Email: row.AuthorEmail}
		reviews = append(reviews, &entity.ReviewWithAuthor{
			Review:          *toReviewDomain(&row.ReviewModel),
			AuthorName:      author.DisplayName(),
			AuthorAvatarURL: row.AuthorAvatarURL,
		})
	}

	return reviews, nil
}

type reviewShopRow struct {
	model.ReviewModel `gorm:"embedded"`
	ShopName          string
}

// ListRecentByUser returns a user's latest reviews with the reviewed shop's name.
func (repo *reviewRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReviewWithShop, error) {
	var rows []*reviewShopRow

	if err := repo.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, shops.name AS shop_name").
		Joins("LEFT JOIN shops ON shops.id = reviews.shop_id").
		Where("reviews.user_id = ?", userID).
		Order("reviews.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list user reviews")
	}

	reviews := make([]*entity.ReviewWithShop, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, &entity.ReviewWithShop{
			Review:   *toReviewDomain(&row.ReviewModel),
			ShopName: row.ShopName,
		})
	}

	return reviews, nil
}

// CountByUser counts the reviews a user has written.
func (repo *reviewRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count user reviews")
	}

	return count, nil
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:        data.ID,
		ShopID:    data.ShopID,
		UserID:    data.UserID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		ImageURL:  data.ImageURL,
		CreatedAt: data.CreatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:        data.ID,
		ShopID:    data.ShopID,
		UserID:    data.UserID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		ImageURL:  data.ImageURL,
		CreatedAt: data.CreatedAt,
	}
}
