package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLocation is shown when a profile has no location set.
const DefaultLocation = "Leyte, Philippines"

// Profile is the public face of an identity; exactly one per user.
type Profile struct {
	ID           uuid.UUID `json:"id"` // Equal to the identity id.
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	Role         Role      `json:"role"`
	IsPublic     bool      `json:"is_public"`
	ShowEmail    bool      `json:"show_email"`
	ShowActivity bool      `json:"show_activity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName falls back to the local part of the email when no full name is set.
func (p *Profile) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}

	return p.Email
}

// DisplayLocation falls back to DefaultLocation.
func (p *Profile) DisplayLocation() string {
	if loc := strings.TrimSpace(p.Location); loc != "" {
		return loc
	}

	return DefaultLocation
}

// PrivacySettings toggles what other users may see on a profile.
type PrivacySettings struct {
	IsPublic     *bool `json:"is_public,omitempty"`
	ShowEmail    *bool `json:"show_email,omitempty"`
	ShowActivity *bool `json:"show_activity,omitempty"`
}

// Apply copies the set flags onto the profile.
func (s PrivacySettings) Apply(p *Profile) {
	if s.IsPublic != nil {
		p.IsPublic = *s.IsPublic
	}
	if s.ShowEmail != nil {
		p.ShowEmail = *s.ShowEmail
	}
	if s.ShowActivity != nil {
		p.ShowActivity = *s.ShowActivity
	}
}

// HeaderProfile is the cached, read-only slice of a profile shown in portal headers.
type HeaderProfile struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        Role      `json:"role"`
}

// NewHeaderProfile derives the header fields from a profile.
func NewHeaderProfile(p *Profile) *HeaderProfile {
	return &HeaderProfile{
		UserID:      p.ID,
		DisplayName: p.DisplayName(),
		AvatarURL:   p.AvatarURL,
		Role:        p.Role,
	}
}
