// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"context"
	"testing"
	"time"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock of service.PasswordHasher.
type MockPasswordHasher struct{ mock.Mock }

// NewMockPasswordHasher creates the mock and asserts its expectations on cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

// MockTokenService is a testify mock of service.TokenService.
type MockTokenService struct{ mock.Mock }

func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID, sessionID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, sessionID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) GenerateAccessToken(userID, sessionID uuid.UUID, roles []string) (string, error) {
	args := m.Called(userID, sessionID, roles)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()
	d, _ := args.Get(0).(time.Duration)

	return d
}

// MockObjectStorage is a testify mock of service.ObjectStorage.
type MockObjectStorage struct{ mock.Mock }

func NewMockObjectStorage(t *testing.T) *MockObjectStorage {
	m := &MockObjectStorage{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockObjectStorage) Upload(ctx context.Context, bucket, path string, content []byte, contentType string) (string, error) {
	args := m.Called(ctx, bucket, path, content, contentType)

	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) PublicURL(bucket, path string) string {
	return m.Called(bucket, path).String(0)
}

func (m *MockObjectStorage) Close() error {
	return m.Called().Error(0)
}

// MockChangeFeed is a testify mock of service.ChangeFeed.
type MockChangeFeed struct{ mock.Mock }

func NewMockChangeFeed(t *testing.T) *MockChangeFeed {
	m := &MockChangeFeed{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockChangeFeed) Publish(ctx context.Context, event entity.ChangeEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockChangeFeed) Subscribe(collection string, filter entity.ChangeFilter, handler service.ChangeHandler) (service.Subscription, error) {
	args := m.Called(collection, filter, handler)
	sub, _ := args.Get(0).(service.Subscription)

	return sub, args.Error(1)
}

func (m *MockChangeFeed) Close() error {
	return m.Called().Error(0)
}

// MockProfileCache is a testify mock of service.ProfileCache.
type MockProfileCache struct{ mock.Mock }

func NewMockProfileCache(t *testing.T) *MockProfileCache {
	m := &MockProfileCache{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileCache) Get(ctx context.Context, userID uuid.UUID) (*entity.HeaderProfile, error) {
	args := m.Called(ctx, userID)
	header, _ := args.Get(0).(*entity.HeaderProfile)

	return header, args.Error(1)
}

func (m *MockProfileCache) Set(ctx context.Context, profile *entity.HeaderProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockQRCodeService is a testify mock of service.QRCodeService.
type MockQRCodeService struct{ mock.Mock }

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateShopQR(shopID uuid.UUID) ([]byte, error) {
	args := m.Called(shopID)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

func (m *MockQRCodeService) ShopURL(shopID uuid.UUID) string {
	return m.Called(shopID).String(0)
}

// MockBusinessExporter is a testify mock of service.BusinessExporter.
type MockBusinessExporter struct{ mock.Mock }

func NewMockBusinessExporter(t *testing.T) *MockBusinessExporter {
	m := &MockBusinessExporter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBusinessExporter) ExportBusinesses(apps []*entity.SellerApplication, shops []*entity.ShopWithOwner) ([]byte, error) {
	args := m.Called(apps, shops)
	data, _ := args.Get(0).([]byte)

	return data, args.Error(1)
}

// MockNotificationService is a testify mock of service.NotificationService.
type MockNotificationService struct{ mock.Mock }

func NewMockNotificationService(t *testing.T) *MockNotificationService {
	m := &MockNotificationService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationService) SendBatchNotification(ctx context.Context, tokens []string, msg service.PushMessage) (*service.PushResult, error) {
	args := m.Called(ctx, tokens, msg)
	result, _ := args.Get(0).(*service.PushResult)

	return result, args.Error(1)
}

// NopMetricsRecorder discards every metric.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) PortalDecision(string, string)  {}
func (NopMetricsRecorder) ApprovalOutcome(string, string) {}
func (NopMetricsRecorder) Upload(string, string)          {}
func (NopMetricsRecorder) ObserveRefetch(time.Duration)   {}
