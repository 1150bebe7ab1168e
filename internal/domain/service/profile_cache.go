package service

import (
	"context"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
)

// ErrCacheMiss is returned when no header profile is cached for the user.
var ErrCacheMiss = errors.New("profile cache miss")

// ProfileCache holds the header fields shown on every portal page.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.HeaderProfile, error)
	Set(ctx context.Context, profile *entity.HeaderProfile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
