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
)

// applicationRepository implements the repository.ApplicationRepository interface.
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository is the constructor for applicationRepository.
func NewApplicationRepository(db *gorm.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create persists a new seller application.
func (repo *applicationRepository) Create(ctx context.Context, app *entity.SellerApplication) error {
	appM := fromApplicationDomain(app)

	if err := repo.db.WithContext(ctx).Create(appM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid applicant reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required application information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create seller application")
	}

	app.ID = appM.ID
	app.Status = entity.ApplicationStatus(appM.Status)
	app.CreatedAt = appM.CreatedAt
	app.UpdatedAt = appM.UpdatedAt

	return nil
}

// FindByID retrieves an application by id.
func (repo *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerApplication, error) {
	var appM model.SellerApplicationModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&appM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrApplicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find seller application")
	}

	return toApplicationDomain(&appM), nil
}

// List returns applications newest first, optionally narrowed to one status.
func (repo *applicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]*entity.SellerApplication, error) {
	query := repo.db.WithContext(ctx).Model(&model.SellerApplicationModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var appModels []*model.SellerApplicationModel
	if err := query.Order("created_at DESC").Find(&appModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list seller applications")
	}

	return toApplicationDomains(appModels), nil
}

// ListByUser returns a user's applications, newest first.
func (repo *applicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SellerApplication, error) {
	var appModels []*model.SellerApplicationModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&appModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list user seller applications")
	}

	return toApplicationDomains(appModels), nil
}

// TransitionStatus is a compare-and-set on the status column. Zero affected rows means the
// application is missing or was already moved by someone else.
func (repo *applicationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.ApplicationStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SellerApplicationModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(map[string]any{
			"status":     to.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update seller application status")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := repo.FindByID(ctx, id); err != nil {
		return err
	}

	return repository.ErrApplicationStatusMismatch
}

func toApplicationDomains(appModels []*model.SellerApplicationModel) []*entity.SellerApplication {
	apps := make([]*entity.SellerApplication, 0, len(appModels))
	for _, appM := range appModels {
		apps = append(apps, toApplicationDomain(appM))
	}

	return apps
}

func toApplicationDomain(data *model.SellerApplicationModel) *entity.SellerApplication {
	if data == nil {
		return nil
	}

	return &entity.SellerApplication{
		ID:            data.ID,
		UserID:        data.UserID,
		BusinessName:  data.BusinessName,
		OwnerName:     data.OwnerName,
		ContactNumber: data.ContactNumber,
		Category:      data.Category,
		Address:       data.Address,
		ProofURL:      data.ProofURL,
		Status:        entity.ApplicationStatus(data.Status),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromApplicationDomain(data *entity.SellerApplication) *model.SellerApplicationModel {
	if data == nil {
		return nil
	}

	status := data.Status
	if status == "" {
		status = entity.ApplicationPending
	}

	return &model.SellerApplicationModel{
		ID:            data.ID,
		UserID:        data.UserID,
		BusinessName:  data.BusinessName,
		OwnerName:     data.OwnerName,
		ContactNumber: data.ContactNumber,
		Category:      data.Category,
		Address:       data.Address,
		ProofURL:      data.ProofURL,
		Status:        status.String(),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
