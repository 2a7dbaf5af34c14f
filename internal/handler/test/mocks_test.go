package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"caseFilesCPT/internal/models"
	"caseFilesCPT/internal/payment"
	"caseFilesCPT/internal/repository"
	"caseFilesCPT/internal/service"
)

type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) VerifyPurchase(ctx context.Context, req service.VerifyRequest) (*models.Purchase, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *MockPurchaseService) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Purchase), args.Error(1)
}

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) HasAccess(ctx context.Context, caseID, userID string) (bool, error) {
	args := m.Called(ctx, caseID, userID)
	return args.Bool(0), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) GetMedia(ctx context.Context, caseID string) ([]models.MediaItem, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCases(ctx context.Context) ([]models.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Case), args.Error(1)
}

func (m *MockCatalogService) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Case), args.Error(1)
}

func (m *MockCatalogService) InvalidateCache() {
	m.Called()
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateOrder(ctx context.Context, caseID string) (*payment.OrderParams, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.OrderParams), args.Error(1)
}

func (m *MockCheckoutService) CompletePurchase(ctx context.Context, orderID, userID, caseID string) *service.CheckoutStatus {
	args := m.Called(ctx, orderID, userID, caseID)
	return args.Get(0).(*service.CheckoutStatus)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) DeleteAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

func (m *MockUserService) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreferences), args.Error(1)
}

func (m *MockUserService) SetOnboardingCompleted(ctx context.Context, userID string, completed bool) error {
	args := m.Called(ctx, userID, completed)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) CheckEmail(ctx context.Context, email string) (bool, string, bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.String(1), args.Bool(2), args.Error(3)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
