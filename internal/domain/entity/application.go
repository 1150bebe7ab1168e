package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the lifecycle state of a seller application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// String returns the string representation of the status.
func (s ApplicationStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	default:
		return false
	}
}

// IsFinal reports whether no further transition is allowed.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// SellerApplication is a request to register a shop. It is created once at seller
// signup, moves out of pending exactly once and is never deleted.
type SellerApplication struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	BusinessName  string            `json:"business_name"`
	OwnerName     string            `json:"owner_name"`
	ContactNumber string            `json:"contact_number"`
	Category      string            `json:"category"`
	Address       string            `json:"address"`
	ProofURL      string            `json:"proof_url"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// IsPending reports whether the application still awaits a decision.
func (a *SellerApplication) IsPending() bool {
	return a.Status == ApplicationPending
}
