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

// promotableRoles are the stored roles PromoteToSeller may overwrite. Admins are never demoted.
var promotableRoles = []string{entity.RoleBuyer.String(), entity.RoleSeller.String()}

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Create persists a new profile.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("profile already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByID retrieves a profile by the user id.
func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by id")
	}

	return toProfileDomain(&profileM), nil
}

// UpdateDetails writes the editable profile fields.
func (repo *profileRepository) UpdateDetails(ctx context.Context, profile *entity.Profile) error {
	return repo.update(ctx, profile.ID, map[string]any{
		"full_name":  profile.FullName,
		"bio":        profile.Bio,
		"location":   profile.Location,
		"avatar_url": profile.AvatarURL,
	})
}

// UpdatePrivacy writes the privacy flags. A map is used so false values are written.
func (repo *profileRepository) UpdatePrivacy(ctx context.Context, profile *entity.Profile) error {
	return repo.update(ctx, profile.ID, map[string]any{
		"is_public":     profile.IsPublic,
		"show_email":    profile.ShowEmail,
		"show_activity": profile.ShowActivity,
	})
}

// SetRole assigns a role unconditionally.
func (repo *profileRepository) SetRole(ctx context.Context, id uuid.UUID, role entity.Role) error {
	return repo.update(ctx, id, map[string]any{"role": role.String()})
}

func (repo *profileRepository) update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// PromoteToSeller sets role to seller only when the stored role is buyer or seller.
func (repo *profileRepository) PromoteToSeller(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ? AND role IN ?", id, promotableRoles).
		Update("role", entity.RoleSeller.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to promote profile")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to check profile")
	}
	if count == 0 {
		return repository.ErrProfileNotFound
	}

	return repository.ErrRoleNotPromotable
}

func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		ID:           data.ID,
		Email:        data.Email,
		FullName:     data.FullName,
		AvatarURL:    data.AvatarURL,
		Bio:          data.Bio,
		Location:     data.Location,
		Role:         entity.Role(data.Role),
		IsPublic:     data.IsPublic,
		ShowEmail:    data.ShowEmail,
		ShowActivity: data.ShowActivity,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		ID:           data.ID,
		Email:        normalizeEmail(data.Email),
		FullName:     data.FullName,
		AvatarURL:    data.AvatarURL,
		Bio:          data.Bio,
		Location:     data.Location,
		Role:         data.Role.String(),
		IsPublic:     data.IsPublic,
		ShowEmail:    data.ShowEmail,
		ShowActivity: data.ShowActivity,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
