package impl

import (
	"context"
	"testing"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	mockRepo "neighborhood/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_Toggle(t *testing.T) {
	userID, shopID := uuid.New(), uuid.New()

	t.Run("adds missing favorite", func(t *testing.T) {
		repo := mockRepo.NewMockFavoriteRepository(t)
		svc := NewFavoriteService(repo, newDiscardLogger())

		repo.On("Exists", mock.Anything, userID, shopID).Return(false, nil)
		repo.On("Add", mock.Anything, userID, shopID).Return(nil)

		favorite, err := svc.Toggle(context.Background(), userID, shopID)

		require.NoError(t, err)
		assert.True(t, favorite)
	})

	t.Run("removes existing favorite", func(t *testing.T) {
		repo := mockRepo.NewMockFavoriteRepository(t)
		svc := NewFavoriteService(repo, newDiscardLogger())

		repo.On("Exists", mock.Anything, userID, shopID).Return(true, nil)
		repo.On("Remove", mock.Anything, userID, shopID).Return(nil)

		favorite, err := svc.Toggle(context.Background(), userID, shopID)

		require.NoError(t, err)
		assert.False(t, favorite)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown shop", func(t *testing.T) {
		repo := mockRepo.NewMockFavoriteRepository(t)
		svc := NewFavoriteService(repo, newDiscardLogger())

		repo.On("Exists", mock.Anything, userID, shopID).Return(false, nil)
		repo.On("Add", mock.Anything, userID, shopID).Return(domainerrors.ErrShopNotFound.WrapMessage("favorite references missing shop"))

		_, err := svc.Toggle(context.Background(), userID, shopID)

		assert.True(t, errors.Is(err, domainerrors.ErrShopNotFound))
	})
}

func TestFavoriteService_ListFavorites(t *testing.T) {
	userID := uuid.New()

	t.Run("lists shops", func(t *testing.T) {
		repo := mockRepo.NewMockFavoriteRepository(t)
		svc := NewFavoriteService(repo, newDiscardLogger())
		shops := []*entity.Shop{{ID: uuid.New(), Name: "Ben's Bakery"}}

		repo.On("ListShopsByUser", mock.Anything, userID).Return(shops, nil)

		assert.Equal(t, shops, svc.ListFavorites(context.Background(), userID))
	})

	t.Run("degrades to empty", func(t *testing.T) {
		repo := mockRepo.NewMockFavoriteRepository(t)
		svc := NewFavoriteService(repo, newDiscardLogger())

		repo.On("ListShopsByUser", mock.Anything, userID).Return(nil, errors.New("timeout"))

		shops := svc.ListFavorites(context.Background(), userID)

		assert.NotNil(t, shops)
		assert.Empty(t, shops)
	})
}
