package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
)

// ApprovalResult holds the three post-conditions of an approval.
type ApprovalResult struct {
	Application *entity.SellerApplication
	Shop        *entity.Shop
	Profile     *entity.Profile
}

// ApprovalUsecase decides seller applications.
type ApprovalUsecase interface {
	// Approve creates the shop, marks the application approved and promotes the applicant
	// to seller in one transaction.
	Approve(ctx context.Context, applicationID, operatorID uuid.UUID) (*ApprovalResult, error)
	// Reject marks a pending application rejected.
	Reject(ctx context.Context, applicationID, operatorID uuid.UUID) (*entity.SellerApplication, error)
}
