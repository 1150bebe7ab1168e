package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// PortalDecision is the terminal state of a portal entry attempt.
type PortalDecision string

const (
	DecisionGranted         PortalDecision = "granted"
	DecisionDeniedNoSession PortalDecision = "denied_no_session"
	DecisionDeniedWrongRole PortalDecision = "denied_wrong_role"
	DecisionDeniedNoProfile PortalDecision = "denied_no_profile"
)

// String returns the string representation of the PortalDecision.
func (d PortalDecision) String() string {
	return string(d)
}

// ForcesSignOut reports whether the session was revoked as part of the decision.
func (d PortalDecision) ForcesSignOut() bool {
	return d == DecisionDeniedWrongRole || d == DecisionDeniedNoProfile
}

// PortalAccess is the outcome of EnterPortal.
type PortalAccess struct {
	Portal     entity.Portal
	Decision   PortalDecision
	Session    *entity.Session // Nil for DeniedNoSession.
	Profile    *entity.Profile // Set only when Granted.
	RedirectTo string          // Login route of the portal for every denied decision.
}

// Granted reports whether the portal may be rendered.
func (a *PortalAccess) Granted() bool {
	return a != nil && a.Decision == DecisionGranted
}

// AccessUsecase is the server-side role gate in front of every portal.
type AccessUsecase interface {
	// EnterPortal checks the session and the stored profile role. It fails closed: a missing
	// profile or a role mismatch revokes the session.
	EnterPortal(ctx context.Context, accessToken string, portal entity.Portal) (*PortalAccess, error)
	// Header returns the cached header fields, reading the profile on a cache miss.
	Header(ctx context.Context, userID uuid.UUID) (*entity.HeaderProfile, error)
}
