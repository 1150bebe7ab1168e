// Package usecase provides testify mocks of the usecase interfaces used by the delivery layer.
package usecase

import (
	"context"
	"testing"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/mock"
)

func expect(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockIdentityUsecase is a testify mock of usecase.IdentityUsecase.
type MockIdentityUsecase struct{ mock.Mock }

func NewMockIdentityUsecase(t *testing.T) *MockIdentityUsecase {
	m := &MockIdentityUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockIdentityUsecase) SignUp(ctx context.Context, input *usecase.SignUpInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockIdentityUsecase) SignUpSeller(ctx context.Context, input *usecase.SellerSignUpInput) (*usecase.SellerSignUpOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.SellerSignUpOutput)

	return out, args.Error(1)
}

func (m *MockIdentityUsecase) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.SignInOutput)

	return out, args.Error(1)
}

func (m *MockIdentityUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)

	return args.String(0), args.Error(1)
}

func (m *MockIdentityUsecase) SignOut(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockIdentityUsecase) SignOutSession(ctx context.Context, sessionID uuid.UUID) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockIdentityUsecase) CurrentSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	args := m.Called(ctx, accessToken)
	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}

// MockAccessUsecase is a testify mock of usecase.AccessUsecase.
type MockAccessUsecase struct{ mock.Mock }

func NewMockAccessUsecase(t *testing.T) *MockAccessUsecase {
	m := &MockAccessUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockAccessUsecase) EnterPortal(ctx context.Context, accessToken string, portal entity.Portal) (*usecase.PortalAccess, error) {
	args := m.Called(ctx, accessToken, portal)
	access, _ := args.Get(0).(*usecase.PortalAccess)

	return access, args.Error(1)
}

func (m *MockAccessUsecase) Header(ctx context.Context, userID uuid.UUID) (*entity.HeaderProfile, error) {
	args := m.Called(ctx, userID)
	header, _ := args.Get(0).(*entity.HeaderProfile)

	return header, args.Error(1)
}

// MockAdminDashboardUsecase is a testify mock of usecase.AdminDashboardUsecase.
type MockAdminDashboardUsecase struct{ mock.Mock }

func NewMockAdminDashboardUsecase(t *testing.T) *MockAdminDashboardUsecase {
	m := &MockAdminDashboardUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockAdminDashboardUsecase) ListApplications(ctx context.Context, status *entity.ApplicationStatus) []*entity.SellerApplication {
	apps, _ := m.Called(ctx, status).Get(0).([]*entity.SellerApplication)

	return apps
}

func (m *MockAdminDashboardUsecase) ListShops(ctx context.Context) []*entity.ShopWithOwner {
	shops, _ := m.Called(ctx).Get(0).([]*entity.ShopWithOwner)

	return shops
}

func (m *MockAdminDashboardUsecase) Snapshot(ctx context.Context) (*entity.AdminSnapshot, error) {
	args := m.Called(ctx)
	snapshot, _ := args.Get(0).(*entity.AdminSnapshot)

	return snapshot, args.Error(1)
}

func (m *MockAdminDashboardUsecase) Watch(ctx context.Context, onRefresh func(*entity.AdminSnapshot)) (func(), error) {
	args := m.Called(ctx, onRefresh)
	stop, _ := args.Get(0).(func())

	return stop, args.Error(1)
}

func (m *MockAdminDashboardUsecase) Export(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)

	return data, args.Error(1)
}

// MockApprovalUsecase is a testify mock of usecase.ApprovalUsecase.
type MockApprovalUsecase struct{ mock.Mock }

func NewMockApprovalUsecase(t *testing.T) *MockApprovalUsecase {
	m := &MockApprovalUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockApprovalUsecase) Approve(ctx context.Context, applicationID, operatorID uuid.UUID) (*usecase.ApprovalResult, error) {
	args := m.Called(ctx, applicationID, operatorID)
	result, _ := args.Get(0).(*usecase.ApprovalResult)

	return result, args.Error(1)
}

func (m *MockApprovalUsecase) Reject(ctx context.Context, applicationID, operatorID uuid.UUID) (*entity.SellerApplication, error) {
	args := m.Called(ctx, applicationID, operatorID)
	app, _ := args.Get(0).(*entity.SellerApplication)

	return app, args.Error(1)
}

// MockShopUsecase is a testify mock of usecase.ShopUsecase.
type MockShopUsecase struct{ mock.Mock }

func NewMockShopUsecase(t *testing.T) *MockShopUsecase {
	m := &MockShopUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockShopUsecase) Search(ctx context.Context, filter entity.ShopFilter) []*entity.Shop {
	shops, _ := m.Called(ctx, filter).Get(0).([]*entity.Shop)

	return shops
}

func (m *MockShopUsecase) TopRated(ctx context.Context) []*entity.Shop {
	shops, _ := m.Called(ctx).Get(0).([]*entity.Shop)

	return shops
}

func (m *MockShopUsecase) MapMarkers(ctx context.Context, query usecase.MapQuery) (*geojson.FeatureCollection, error) {
	args := m.Called(ctx, query)
	fc, _ := args.Get(0).(*geojson.FeatureCollection)

	return fc, args.Error(1)
}

func (m *MockShopUsecase) ShopPage(ctx context.Context, shopID, viewerID uuid.UUID) (*usecase.ShopPage, error) {
	args := m.Called(ctx, shopID, viewerID)
	page, _ := args.Get(0).(*usecase.ShopPage)

	return page, args.Error(1)
}

func (m *MockShopUsecase) ShopQR(ctx context.Context, shopID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, shopID)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

// MockReviewUsecase is a testify mock of usecase.ReviewUsecase.
type MockReviewUsecase struct{ mock.Mock }

func NewMockReviewUsecase(t *testing.T) *MockReviewUsecase {
	m := &MockReviewUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockReviewUsecase) PostReview(ctx context.Context, input *usecase.PostReviewInput) (*entity.Review, error) {
	args := m.Called(ctx, input)
	review, _ := args.Get(0).(*entity.Review)

	return review, args.Error(1)
}

func (m *MockReviewUsecase) ListReviews(ctx context.Context, shopID uuid.UUID) []*entity.ReviewWithAuthor {
	reviews, _ := m.Called(ctx, shopID).Get(0).([]*entity.ReviewWithAuthor)

	return reviews
}

// MockDecisionNotifier is a testify mock of usecase.DecisionNotifier.
type MockDecisionNotifier struct{ mock.Mock }

func NewMockDecisionNotifier(t *testing.T) *MockDecisionNotifier {
	m := &MockDecisionNotifier{}
	expect(t, &m.Mock)

	return m
}

func (m *MockDecisionNotifier) HandleChange(ctx context.Context, event entity.ChangeEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockFavoriteUsecase is a testify mock of usecase.FavoriteUsecase.
type MockFavoriteUsecase struct{ mock.Mock }

func NewMockFavoriteUsecase(t *testing.T) *MockFavoriteUsecase {
	m := &MockFavoriteUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockFavoriteUsecase) Toggle(ctx context.Context, userID, shopID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, shopID)

	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteUsecase) IsFavorite(ctx context.Context, userID, shopID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, shopID)

	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteUsecase) ListFavorites(ctx context.Context, userID uuid.UUID) []*entity.Shop {
	shops, _ := m.Called(ctx, userID).Get(0).([]*entity.Shop)

	return shops
}

// MockProfileUsecase is a testify mock of usecase.ProfileUsecase.
type MockProfileUsecase struct{ mock.Mock }

func NewMockProfileUsecase(t *testing.T) *MockProfileUsecase {
	m := &MockProfileUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockProfileUsecase) GetFullProfile(ctx context.Context, userID uuid.UUID) (*entity.FullProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*entity.FullProfile)

	return profile, args.Error(1)
}

func (m *MockProfileUsecase) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*usecase.PublicProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*usecase.PublicProfile)

	return profile, args.Error(1)
}

func (m *MockProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	args := m.Called(ctx, userID, input)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *MockProfileUsecase) UpdatePrivacy(ctx context.Context, userID uuid.UUID, settings entity.PrivacySettings) (*entity.Profile, error) {
	args := m.Called(ctx, userID, settings)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

// MockSellerUsecase is a testify mock of usecase.SellerUsecase.
type MockSellerUsecase struct{ mock.Mock }

func NewMockSellerUsecase(t *testing.T) *MockSellerUsecase {
	m := &MockSellerUsecase{}
	expect(t, &m.Mock)

	return m
}

func (m *MockSellerUsecase) GetShop(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error) {
	args := m.Called(ctx, ownerID)
	shop, _ := args.Get(0).(*entity.Shop)

	return shop, args.Error(1)
}

func (m *MockSellerUsecase) SaveShopSettings(ctx context.Context, ownerID uuid.UUID, input *usecase.ShopSettingsInput) (*entity.Shop, error) {
	args := m.Called(ctx, ownerID, input)
	shop, _ := args.Get(0).(*entity.Shop)

	return shop, args.Error(1)
}

func (m *MockSellerUsecase) ShopQR(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, ownerID)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

func (m *MockSellerUsecase) ListProducts(ctx context.Context, ownerID uuid.UUID) ([]*entity.Product, error) {
	args := m.Called(ctx, ownerID)
	products, _ := args.Get(0).([]*entity.Product)

	return products, args.Error(1)
}

func (m *MockSellerUsecase) CreateProduct(ctx context.Context, ownerID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	args := m.Called(ctx, ownerID, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockSellerUsecase) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	args := m.Called(ctx, ownerID, productID, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockSellerUsecase) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	return m.Called(ctx, ownerID, productID).Error(0)
}

func (m *MockSellerUsecase) ListEvents(ctx context.Context, ownerID uuid.UUID) ([]*entity.ShopEvent, error) {
	args := m.Called(ctx, ownerID)
	events, _ := args.Get(0).([]*entity.ShopEvent)

	return events, args.Error(1)
}

func (m *MockSellerUsecase) CreateEvent(ctx context.Context, ownerID uuid.UUID, input *usecase.EventInput) (*entity.ShopEvent, error) {
	args := m.Called(ctx, ownerID, input)
	event, _ := args.Get(0).(*entity.ShopEvent)

	return event, args.Error(1)
}

func (m *MockSellerUsecase) UpdateEvent(ctx context.Context, ownerID, eventID uuid.UUID, input *usecase.EventInput) (*entity.ShopEvent, error) {
	args := m.Called(ctx, ownerID, eventID, input)
	event, _ := args.Get(0).(*entity.ShopEvent)

	return event, args.Error(1)
}

func (m *MockSellerUsecase) DeleteEvent(ctx context.Context, ownerID, eventID uuid.UUID) error {
	return m.Called(ctx, ownerID, eventID).Error(0)
}

var (
	_ usecase.IdentityUsecase       = (*MockIdentityUsecase)(nil)
	_ usecase.AccessUsecase         = (*MockAccessUsecase)(nil)
	_ usecase.AdminDashboardUsecase = (*MockAdminDashboardUsecase)(nil)
	_ usecase.ApprovalUsecase       = (*MockApprovalUsecase)(nil)
	_ usecase.ShopUsecase           = (*MockShopUsecase)(nil)
	_ usecase.ReviewUsecase         = (*MockReviewUsecase)(nil)
	_ usecase.DecisionNotifier      = (*MockDecisionNotifier)(nil)
	_ usecase.FavoriteUsecase       = (*MockFavoriteUsecase)(nil)
	_ usecase.ProfileUsecase        = (*MockProfileUsecase)(nil)
	_ usecase.SellerUsecase         = (*MockSellerUsecase)(nil)
)
