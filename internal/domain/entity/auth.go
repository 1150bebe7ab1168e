// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the only credential provider: email and bcrypt password.
const ProviderTypeEmail = "email"

// Authentication represents a single credential of a user.
type Authentication struct {
	ID             uuid.UUID // The unique ID for this credential record.
	UserID         uuid.UUID // Links this credential to the User it belongs to.
	Provider       string    // The authentication provider, currently always "email".
	ProviderUserID string    // The login key inside the provider (the email address).
	PasswordHash   string    // bcrypt hash of the password.
	CreatedAt      time.Time
}

// RefreshToken represents a signed-in session. Its ID is the session id carried
// by every access token issued for the session.
type RefreshToken struct {
	ID        uuid.UUID // Session id.
	UserID    uuid.UUID // Owner of the session.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // The session is invalid after this instant.
	CreatedAt time.Time
}

// IsExpired reports whether the session has expired at the given instant.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Session is the authenticated state derived from a valid access token.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID
}
