// Package repository provides testify mocks of the repository interfaces.
package repository

import (
	"context"

	"neighborhood/internal/domain/repository"
)

// MockTransactionManager runs the callback directly against Factory. It records nothing;
// rollback behaviour is covered by the persistence tests.
type MockTransactionManager struct {
	Factory *MockRepositoryFactory
}

// NewMockTransactionManager returns a transaction manager bound to the factory.
func NewMockTransactionManager(factory *MockRepositoryFactory) *MockTransactionManager {
	return &MockTransactionManager{Factory: factory}
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// MockRepositoryFactory hands out the configured mocks. Unset fields panic when requested.
type MockRepositoryFactory struct {
	Users         *MockUserRepository
	Auths         *MockAuthRepository
	RefreshTokens *MockRefreshTokenRepository
	Profiles      *MockProfileRepository
	Applications  *MockApplicationRepository
	Shops         *MockShopRepository
	Reviews       *MockReviewRepository
}

func (f *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return mustRepo(f.Users, "UserRepository")
}

func (f *MockRepositoryFactory) NewAuthRepository() repository.AuthRepository {
	return mustRepo(f.Auths, "AuthRepository")
}

func (f *MockRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return mustRepo(f.RefreshTokens, "RefreshTokenRepository")
}

func (f *MockRepositoryFactory) NewProfileRepository() repository.ProfileRepository {
	return mustRepo(f.Profiles, "ProfileRepository")
}

func (f *MockRepositoryFactory) NewApplicationRepository() repository.ApplicationRepository {
	return mustRepo(f.Applications, "ApplicationRepository")
}

func (f *MockRepositoryFactory) NewShopRepository() repository.ShopRepository {
	return mustRepo(f.Shops, "ShopRepository")
}

func (f *MockRepositoryFactory) NewReviewRepository() repository.ReviewRepository {
	return mustRepo(f.Reviews, "ReviewRepository")
}

func mustRepo[T any](repo *T, name string) *T {
	if repo == nil {
		panic("mock repository factory: " + name + " not configured")
	}

	return repo
}
