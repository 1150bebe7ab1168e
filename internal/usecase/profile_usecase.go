package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput edits the profile details; a new avatar is uploaded first.
type UpdateProfileInput struct {
	FullName string
	Bio      string
	Location string
	Avatar   *entity.FileUpload
}

// PublicProfile is another user's profile filtered by their privacy flags.
type PublicProfile struct {
	ID               uuid.UUID              `json:"id"`
	DisplayName      string                 `json:"display_name"`
	DisplayLocation  string                 `json:"display_location"`
	AvatarURL        string                 `json:"avatar_url"`
	Bio              string                 `json:"bio"`
	Role             entity.Role            `json:"role"`
	Email            string                 `json:"email,omitempty"`
	Stats            *entity.UserStats      `json:"stats,omitempty"`
	RecentActivities []*entity.ActivityItem `json:"recent_activities,omitempty"`
}

// ProfileUsecase defines the profile page operations.
type ProfileUsecase interface {
	// GetFullProfile returns the caller's own profile with stats and recent activity.
	GetFullProfile(ctx context.Context, userID uuid.UUID) (*entity.FullProfile, error)
	// GetPublicProfile returns another user's profile when it is public.
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error)
	// UpdateProfile writes the details and invalidates the cached header.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.Profile, error)
	// UpdatePrivacy writes the privacy flags that are set.
	UpdatePrivacy(ctx context.Context, userID uuid.UUID, settings entity.PrivacySettings) (*entity.Profile, error)
}
