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

// eventRepository implements the repository.EventRepository interface.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) Create(ctx context.Context, event *entity.ShopEvent) error {
	eventM := fromEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrShopNotFound.WrapMessage("invalid shop reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shop event")
	}

	event.ID = eventM.ID
	event.Status = entity.EventStatus(eventM.Status)
	event.CreatedAt = eventM.CreatedAt
	event.UpdatedAt = eventM.UpdatedAt

	return nil
}

func (repo *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShopEvent, error) {
	var eventM model.ShopEventModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&eventM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEventNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop event")
	}

	return toEventDomain(&eventM), nil
}

func (repo *eventRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.ShopEvent, error) {
	var eventModels []*model.ShopEventModel

	if err := repo.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list shop events")
	}

	events := make([]*entity.ShopEvent, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toEventDomain(eventM))
	}

	return events, nil
}

// Update writes the editable fields of an event that belongs to event.ShopID.
func (repo *eventRepository) Update(ctx context.Context, event *entity.ShopEvent) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShopEventModel{}).
		Where("id = ? AND shop_id = ?", event.ID, event.ShopID).
		Updates(map[string]any{
			"title":       event.Title,
			"description": event.Description,
			"start_date":  event.StartDate,
			"end_date":    event.EndDate,
			"status":      string(event.Status),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update shop event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

func (repo *eventRepository) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&model.ShopEventModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete shop event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

func toEventDomain(data *model.ShopEventModel) *entity.ShopEvent {
	return &entity.ShopEvent{
		ID:          data.ID,
		ShopID:      data.ShopID,
		Title:       data.Title,
		Description: data.Description,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		Status:      entity.EventStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromEventDomain(data *entity.ShopEvent) *model.ShopEventModel {
	status := data.Status
	if status == "" {
		status = entity.EventUpcoming
	}

	return &model.ShopEventModel{
		ID:          data.ID,
		ShopID:      data.ShopID,
		Title:       data.Title,
		Description: data.Description,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		Status:      string(status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
