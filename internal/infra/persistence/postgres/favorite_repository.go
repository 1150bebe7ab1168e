package postgres

import (
	"context"
	"time"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// favoriteRepository implements the repository.FavoriteRepository interface.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the pair. ON CONFLICT DO NOTHING keeps the original row and timestamp.
func (repo *favoriteRepository) Add(ctx context.Context, userID, shopID uuid.UUID) error {
	favoriteM := &model.FavoriteModel{UserID: userID, ShopID: shopID}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(favoriteM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrShopNotFound.WrapMessage("invalid shop reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add favorite")
	}

	return nil
}

// Remove deletes the pair if present.
func (repo *favoriteRepository) Remove(ctx context.Context, userID, shopID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		Delete(&model.FavoriteModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove favorite")
	}

	return nil
}

// Exists reports whether the pair is stored.
func (repo *favoriteRepository) Exists(ctx context.Context, userID, shopID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.FavoriteModel{}).
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check favorite")
	}

	return count > 0, nil
}

// ListShopsByUser returns the favorited shops, most recently favorited first.
func (repo *favoriteRepository) ListShopsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Shop, error) {
	var shopModels []*model.ShopModel

	if err := repo.db.WithContext(ctx).
		Model(&model.ShopModel{}).
		Select("shops.*").
		Joins("JOIN favorites ON favorites.shop_id = shops.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&shopModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list favorite shops")
	}

	shops := make([]*entity.Shop, 0, len(shopModels))
	for _, shopM := range shopModels {
		shops = append(shops, toShopDomain(shopM))
	}

	return shops, nil
}

type favoriteShopRow struct {
	UserID    uuid.UUID
	ShopID    uuid.UUID
	CreatedAt time.Time
	ShopName  string
}

// ListRecentByUser returns a user's latest favorites with the shop name.
func (repo *favoriteRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.FavoriteWithShop, error) {
	var rows []*favoriteShopRow

	if err := repo.db.WithContext(ctx).
		Table("favorites").
		Select("favorites.user_id, favorites.shop_id, favorites.created_at, shops.name AS shop_name").
		Joins("LEFT JOIN shops ON shops.id = favorites.shop_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list user favorites")
	}

	favorites := make([]*entity.FavoriteWithShop, 0, len(rows))
	for _, row := range rows {
		favorites = append(favorites, &entity.FavoriteWithShop{
			Favorite: entity.Favorite{UserID: row.UserID, ShopID: row.ShopID, CreatedAt: row.CreatedAt},
			ShopName: row.ShopName,
		})
	}

	return favorites, nil
}

// CountByUser counts a user's favorites.
func (repo *favoriteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.FavoriteModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count user favorites")
	}

	return count, nil
}
