package postgres

import (
	"context"
	"strings"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// shopSettingsColumns are overwritten when an owner saves the settings form.
var shopSettingsColumns = []string{"name", "description", "address", "latitude", "longitude", "image_url", "updated_at"}

// shopRepository implements the repository.ShopRepository interface.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

// Create persists a new shop. owner_id is unique, so a second shop for the same owner fails.
func (repo *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	shopM := fromShopDomain(shop)

	if err := repo.db.WithContext(ctx).Create(shopM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrShopAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid shop owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shop")
	}

	shop.ID = shopM.ID
	shop.CreatedAt = shopM.CreatedAt
	shop.UpdatedAt = shopM.UpdatedAt

	return nil
}

// FindByID retrieves a shop by id.
func (repo *shopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByOwner retrieves the shop owned by the user.
func (repo *shopRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error) {
	return repo.findOne(ctx, "owner_id = ?", ownerID)
}

func (repo *shopRepository) findOne(ctx context.Context, query string, arg any) (*entity.Shop, error) {
	var shopM model.ShopModel

	if err := repo.db.WithContext(ctx).Where(query, arg).First(&shopM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop")
	}

	return toShopDomain(&shopM), nil
}

// UpsertByOwner inserts the owner's shop or overwrites its settings columns.
// The entity is refreshed from the stored row afterwards.
func (repo *shopRepository) UpsertByOwner(ctx context.Context, shop *entity.Shop) error {
	shopM := fromShopDomain(shop)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns(shopSettingsColumns),
		}).
		Create(shopM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save shop settings")
	}

	stored, err := repo.FindByOwner(ctx, shop.OwnerID)
	if err != nil {
		return err
	}
	*shop = *stored

	return nil
}

// Search lists shops by exact category and case-insensitive town substring, newest first.
func (repo *shopRepository) Search(ctx context.Context, filter entity.ShopFilter) ([]*entity.Shop, error) {
	query := repo.db.WithContext(ctx).Model(&model.ShopModel{})
	if filter.HasCategory() {
		query = query.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.HasTown() {
		query = query.Where("LOWER(address) LIKE LOWER(?)", "%"+strings.TrimSpace(filter.Town)+"%")
	}

	return repo.list(query.Order("created_at DESC"), "failed to search shops")
}

// TopRated lists the highest rated shops; ties go to the newer shop.
func (repo *shopRepository) TopRated(ctx context.Context, limit int) ([]*entity.Shop, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ShopModel{}).
		Order("rating DESC").
		Order("created_at DESC").
		Limit(limit)

	return repo.list(query, "failed to list top rated shops")
}

// WithinBound lists shops inside the bounding box.
func (repo *shopRepository) WithinBound(ctx context.Context, bound orb.Bound) ([]*entity.Shop, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ShopModel{}).
		Where("latitude BETWEEN ? AND ?", bound.Min.Lat(), bound.Max.Lat()).
		Where("longitude BETWEEN ? AND ?", bound.Min.Lon(), bound.Max.Lon())

	return repo.list(query, "failed to list shops within bound")
}

func (repo *shopRepository) list(query *gorm.DB, message string) ([]*entity.Shop, error) {
	var shopModels []*model.ShopModel
	if err := query.Find(&shopModels).Error; err != nil {
		return nil, errors.Wrap(err, message)
	}

	shops := make([]*entity.Shop, 0, len(shopModels))
	for _, shopM := range shopModels {
		shops = append(shops, toShopDomain(shopM))
	}

	return shops, nil
}

type shopOwnerRow struct {
	model.ShopModel `gorm:"embedded"`
	OwnerFullName   string
	OwnerEmail      string
}

// ListWithOwners lists every shop with its owner's name and email, newest first.
func (repo *shopRepository) ListWithOwners(ctx context.Context) ([]*entity.ShopWithOwner, error) {
	var rows []*shopOwnerRow

	if err := repo.db.WithContext(ctx).
		Table("shops").
		Select("shops.*, profiles.full_name AS owner_full_name, profiles.email AS owner_email").
		Joins("LEFT JOIN profiles ON profiles.id = shops.owner_id").
		Order("shops.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list shops with owners")
	}

	shops := make([]*entity.ShopWithOwner, 0, len(rows))
	for _, row := range rows {
		owner := entity.Profile{FullName: row.OwnerFullName, Email: row.OwnerEmail}
		shops = append(shops, &entity.ShopWithOwner{
			Shop:       *toShopDomain(&row.ShopModel),
			OwnerName:  owner.DisplayName(),
			OwnerEmail: row.OwnerEmail,
		})
	}

	return shops, nil
}

// RecomputeRating sets the rating to the mean of the shop's reviews, 0 without reviews.
func (repo *shopRepository) RecomputeRating(ctx context.Context, shopID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Exec(
		"UPDATE shops SET rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE shop_id = ?) WHERE id = ?",
		shopID, shopID,
	)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to recompute shop rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

func toShopDomain(data *model.ShopModel) *entity.Shop {
	if data == nil {
		return nil
	}

	return &entity.Shop{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		Name:          data.Name,
		Description:   data.Description,
		Address:       data.Address,
		ContactNumber: data.ContactNumber,
		Category:      data.Category,
		ImageURL:      data.ImageURL,
		Rating:        data.Rating,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromShopDomain(data *entity.Shop) *model.ShopModel {
	if data == nil {
		return nil
	}

	return &model.ShopModel{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		Name:          data.Name,
		Description:   data.Description,
		Address:       data.Address,
		ContactNumber: data.ContactNumber,
		Category:      data.Category,
		ImageURL:      data.ImageURL,
		Rating:        data.Rating,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
