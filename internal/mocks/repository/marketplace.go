package repository

import (
	"context"
	"testing"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"
)

// MockApplicationRepository is a testify mock of repository.ApplicationRepository.
type MockApplicationRepository struct{ mock.Mock }

func NewMockApplicationRepository(t *testing.T) *MockApplicationRepository {
	m := &MockApplicationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *entity.SellerApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerApplication, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*entity.SellerApplication)

	return app, args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]*entity.SellerApplication, error) {
	args := m.Called(ctx, filter)
	apps, _ := args.Get(0).([]*entity.SellerApplication)

	return apps, args.Error(1)
}

func (m *MockApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SellerApplication, error) {
	args := m.Called(ctx, userID)
	apps, _ := args.Get(0).([]*entity.SellerApplication)

	return apps, args.Error(1)
}

func (m *MockApplicationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.ApplicationStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

// MockShopRepository is a testify mock of repository.ShopRepository.
type MockShopRepository struct{ mock.Mock }

func NewMockShopRepository(t *testing.T) *MockShopRepository {
	m := &MockShopRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockShopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	shop, _ := args.Get(0).(*entity.Shop)

	return shop, args.Error(1)
}

func (m *MockShopRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error) {
	args := m.Called(ctx, ownerID)
	shop, _ := args.Get(0).(*entity.Shop)

	return shop, args.Error(1)
}

func (m *MockShopRepository) UpsertByOwner(ctx context.Context, shop *entity.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *MockShopRepository) Search(ctx context.Context, filter entity.ShopFilter) ([]*entity.Shop, error) {
	args := m.Called(ctx, filter)
	shops, _ := args.Get(0).([]*entity.Shop)

	return shops, args.Error(1)
}

func (m *MockShopRepository) TopRated(ctx context.Context, limit int) ([]*entity.Shop, error) {
	args := m.Called(ctx, limit)
	shops, _ := args.Get(0).([]*entity.Shop)

	return shops, args.Error(1)
}

func (m *MockShopRepository) WithinBound(ctx context.Context, bound orb.Bound) ([]*entity.Shop, error) {
	args := m.Called(ctx, bound)
	shops, _ := args.Get(0).([]*entity.Shop)

	return shops, args.Error(1)
}

func (m *MockShopRepository) ListWithOwners(ctx context.Context) ([]*entity.ShopWithOwner, error) {
	args := m.Called(ctx)
	shops, _ := args.Get(0).([]*entity.ShopWithOwner)

	return shops, args.Error(1)
}

func (m *MockShopRepository) RecomputeRating(ctx context.Context, shopID uuid.UUID) error {
	return m.Called(ctx, shopID).Error(0)
}

// MockProductRepository is a testify mock of repository.ProductRepository.
type MockProductRepository struct{ mock.Mock }

func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.Product, error) {
	args := m.Called(ctx, shopID)
	products, _ := args.Get(0).([]*entity.Product)

	return products, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	return m.Called(ctx, shopID, id).Error(0)
}

// MockEventRepository is a testify mock of repository.EventRepository.
type MockEventRepository struct{ mock.Mock }

func NewMockEventRepository(t *testing.T) *MockEventRepository {
	m := &MockEventRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventRepository) Create(ctx context.Context, event *entity.ShopEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShopEvent, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*entity.ShopEvent)

	return event, args.Error(1)
}

func (m *MockEventRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.ShopEvent, error) {
	args := m.Called(ctx, shopID)
	events, _ := args.Get(0).([]*entity.ShopEvent)

	return events, args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *entity.ShopEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	return m.Called(ctx, shopID, id).Error(0)
}

// MockReviewRepository is a testify mock of repository.ReviewRepository.
type MockReviewRepository struct{ mock.Mock }

func NewMockReviewRepository(t *testing.T) *MockReviewRepository {
	m := &MockReviewRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.ReviewWithAuthor, error) {
	args := m.Called(ctx, shopID)
	reviews, _ := args.Get(0).([]*entity.ReviewWithAuthor)

	return reviews, args.Error(1)
}

func (m *MockReviewRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReviewWithShop, error) {
	args := m.Called(ctx, userID, limit)
	reviews, _ := args.Get(0).([]*entity.ReviewWithShop)

	return reviews, args.Error(1)
}

func (m *MockReviewRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	n, _ := args.Get(0).(int64)

	return n, args.Error(1)
}

// MockFavoriteRepository is a testify mock of repository.FavoriteRepository.
type MockFavoriteRepository struct{ mock.Mock }

func NewMockFavoriteRepository(t *testing.T) *MockFavoriteRepository {
	m := &MockFavoriteRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, shopID uuid.UUID) error {
	return m.Called(ctx, userID, shopID).Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, shopID uuid.UUID) error {
	return m.Called(ctx, userID, shopID).Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, shopID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, shopID)

	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListShopsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Shop, error) {
	args := m.Called(ctx, userID)
	shops, _ := args.Get(0).([]*entity.Shop)

	return shops, args.Error(1)
}

func (m *MockFavoriteRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.FavoriteWithShop, error) {
	args := m.Called(ctx, userID, limit)
	favorites, _ := args.Get(0).([]*entity.FavoriteWithShop)

	return favorites, args.Error(1)
}

func (m *MockFavoriteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	n, _ := args.Get(0).(int64)

	return n, args.Error(1)
}

// MockDeviceRepository is a testify mock of repository.DeviceRepository.
type MockDeviceRepository struct{ mock.Mock }

func NewMockDeviceRepository(t *testing.T) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDeviceRepository) UpsertDevice(ctx context.Context, device *entity.Device) error {
	return m.Called(ctx, device).Error(0)
}

func (m *MockDeviceRepository) FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error) {
	args := m.Called(ctx, userID)
	devices, _ := args.Get(0).([]*entity.Device)

	return devices, args.Error(1)
}

func (m *MockDeviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error) {
	args := m.Called(ctx, userID)
	devices, _ := args.Get(0).([]*entity.Device)

	return devices, args.Error(1)
}

func (m *MockDeviceRepository) UpdatePushToken(ctx context.Context, userID, id uuid.UUID, pushToken string) error {
	return m.Called(ctx, userID, id, pushToken).Error(0)
}

func (m *MockDeviceRepository) DeleteDevice(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockDeviceRepository) DeactivateByTokens(ctx context.Context, tokens []string) error {
	return m.Called(ctx, tokens).Error(0)
}
