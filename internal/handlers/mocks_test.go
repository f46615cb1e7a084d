package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
	"github.com/tavvy/tavvy-pros-api/pkg/jwt"
)

// MockOnboardingService is a mock implementation of services.OnboardingServiceInterface
type MockOnboardingService struct {
	mock.Mock
}

func (m *MockOnboardingService) Resume(ctx context.Context, userID string) (*models.OnboardingStateResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OnboardingStateResponse), args.Error(1)
}

func (m *MockOnboardingService) SaveState(ctx context.Context, userID, email string, state *wizard.State) (*models.OnboardingStateResponse, error) {
	args := m.Called(ctx, userID, email, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OnboardingStateResponse), args.Error(1)
}

func (m *MockOnboardingService) NextStep(ctx context.Context, userID, email string, state *wizard.State) (*models.OnboardingStateResponse, error) {
	args := m.Called(ctx, userID, email, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OnboardingStateResponse), args.Error(1)
}

func (m *MockOnboardingService) PrevStep(ctx context.Context, userID string, state *wizard.State) (*models.OnboardingStateResponse, error) {
	args := m.Called(ctx, userID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OnboardingStateResponse), args.Error(1)
}

func (m *MockOnboardingService) Complete(ctx context.Context, userID, email string, state *wizard.State) (*models.CompleteOnboardingResponse, error) {
	args := m.Called(ctx, userID, email, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CompleteOnboardingResponse), args.Error(1)
}

func (m *MockOnboardingService) UploadPhoto(ctx context.Context, userID string, req *models.PhotoUploadRequest) (*models.PhotoUploadResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PhotoUploadResponse), args.Error(1)
}

// MockDirectoryService is a mock implementation of services.DirectoryServiceInterface
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) List(ctx context.Context, filter models.DirectoryFilter) ([]models.PublicProResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PublicProResponse), args.Error(1)
}

func (m *MockDirectoryService) GetBySlug(ctx context.Context, slug string) (*models.PublicProResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicProResponse), args.Error(1)
}

// MockProAuthService is a mock implementation of services.ProAuthServiceInterface
type MockProAuthService struct {
	mock.Mock
}

func (m *MockProAuthService) RequestLogin(ctx context.Context, email string) (*models.RequestLoginResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestLoginResponse), args.Error(1)
}

func (m *MockProAuthService) VerifyLogin(ctx context.Context, token string) (*models.ProSession, string, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.ProSession), args.String(1), args.Error(2)
}

func (m *MockProAuthService) GetSessionTTL() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockProAuthService) GetCookieDomain() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProAuthService) GetCookieSecure() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockProAuthService) GetTokenManager() *jwt.TokenManager {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*jwt.TokenManager)
}
