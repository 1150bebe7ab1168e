package postgres

import (
	"context"
	"testing"
	"time"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFindByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Email: "  Ana@Example.com "}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)

	found, err := repo.FindByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "dup@example.com"}))
	err := repo.Create(ctx, &entity.User{Email: "DUP@example.com"})

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthRepository_FindAuthentication(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	auth := &entity.Authentication{
		UserID:         userID,
		Provider:       entity.ProviderTypeEmail,
		ProviderUserID: "Seller@Example.com",
		PasswordHash:   "hash",
	}
	require.NoError(t, repo.CreateAuthentication(ctx, auth))

	found, err := repo.FindAuthentication(ctx, entity.ProviderTypeEmail, "seller@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = repo.FindAuthentication(ctx, entity.ProviderTypeEmail, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAuthNotFound)
}

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	live := &entity.RefreshToken{ID: uuid.New(), UserID: userID, TokenHash: "live", ExpiresAt: now.Add(24 * time.Hour)}
	expired := &entity.RefreshToken{ID: uuid.New(), UserID: userID, TokenHash: "expired", ExpiresAt: now.Add(-24 * time.Hour)}
	require.NoError(t, repo.CreateRefreshToken(ctx, live))
	require.NoError(t, repo.CreateRefreshToken(ctx, expired))

	found, err := repo.FindRefreshTokenByHash(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)

	removed, err := repo.DeleteExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, repo.DeleteRefreshToken(ctx, live.ID))
	require.NoError(t, repo.DeleteRefreshToken(ctx, live.ID), "deleting a missing session is not an error")

	_, err = repo.FindRefreshTokenByID(ctx, live.ID)
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
}

func seedProfile(t *testing.T, repo repository.ProfileRepository, role entity.Role) *entity.Profile {
	t.Helper()
	profile := &entity.Profile{
		ID:           uuid.New(),
		Email:        uuid.NewString()[:8] + "@example.com",
		Role:         role,
		IsPublic:     true,
		ShowActivity: true,
	}
	require.NoError(t, repo.Create(context.Background(), profile))

	return profile
}

func TestProfileRepository_PromoteToSeller(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	buyer := seedProfile(t, repo, entity.RoleBuyer)
	require.NoError(t, repo.PromoteToSeller(ctx, buyer.ID))
	stored, err := repo.FindByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, stored.Role)

	require.NoError(t, repo.PromoteToSeller(ctx, buyer.ID), "promoting a seller again is a no-op")

	admin := seedProfile(t, repo, entity.RoleAdmin)
	assert.ErrorIs(t, repo.PromoteToSeller(ctx, admin.ID), repository.ErrRoleNotPromotable)
	stored, err = repo.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)

	assert.ErrorIs(t, repo.PromoteToSeller(ctx, uuid.New()), repository.ErrProfileNotFound)
}

func TestProfileRepository_UpdatePrivacyWritesFalse(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := seedProfile(t, repo, entity.RoleBuyer)
	profile.IsPublic = false
	profile.ShowActivity = false
	profile.ShowEmail = true
	require.NoError(t, repo.UpdatePrivacy(ctx, profile))

	stored, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublic)
	assert.False(t, stored.ShowActivity)
	assert.True(t, stored.ShowEmail)

	profile.FullName = "Ana Cruz"
	profile.Location = "Ormoc"
	require.NoError(t, repo.UpdateDetails(ctx, profile))
	stored, err = repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", stored.FullName)
	assert.Equal(t, "Ormoc", stored.Location)

	assert.ErrorIs(t, repo.UpdateDetails(ctx, &entity.Profile{ID: uuid.New()}), repository.ErrProfileNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewUserRepository().Create(ctx, &entity.User{Email: "tx@example.com"}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewUserRepository(db).FindByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewUserRepository().Create(ctx, &entity.User{Email: "tx@example.com"})
	}))
	_, err = NewUserRepository(db).FindByEmail(ctx, "tx@example.com")
	assert.NoError(t, err)
}
