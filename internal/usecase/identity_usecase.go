// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to open a buyer account.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

// SellerSignUpInput defines the data of a seller signup: an account plus a pending application.
type SellerSignUpInput struct {
	Email         string
	Password      string
	FullName      string
	BusinessName  string
	OwnerName     string
	ContactNumber string
	Category      string
	Address       string
	Proof         *entity.FileUpload
}

// SignInInput defines the data required to sign in to a portal.
type SignInInput struct {
	Portal   entity.Portal
	Email    string
	Password string
}

// --- Output DTOs ---

// SignInOutput returns the session tokens and the profile that passed the portal gate.
type SignInOutput struct {
	AccessToken  string
	RefreshToken string
	SessionID    uuid.UUID
	Profile      *entity.Profile
}

// SellerSignUpOutput returns the new account and its pending application.
type SellerSignUpOutput struct {
	User        *entity.User
	Application *entity.SellerApplication
}

// IdentityUsecase covers accounts and sessions.
type IdentityUsecase interface {
	// SignUp creates an identity, its credential and a buyer profile.
	SignUp(ctx context.Context, input *SignUpInput) (*entity.User, error)
	// SignUpSeller uploads the proof document, then creates the account and a pending application.
	SignUpSeller(ctx context.Context, input *SellerSignUpInput) (*SellerSignUpOutput, error)
	// SignIn authenticates and opens a session, then runs the portal gate. A denied gate
	// revokes the new session before returning.
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)
	// Refresh issues a new access token for the session the refresh token belongs to.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// SignOut revokes the session the refresh token belongs to. Unknown tokens are ignored.
	SignOut(ctx context.Context, refreshToken string) error
	// SignOutSession revokes a session by id.
	SignOutSession(ctx context.Context, sessionID uuid.UUID) error
	// CurrentSession resolves an access token to a live session or ErrNotAuthenticated.
	CurrentSession(ctx context.Context, accessToken string) (*entity.Session, error)
}
