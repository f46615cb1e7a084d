package services

import (
	"context"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
	"github.com/tavvy/tavvy-pros-api/pkg/jwt"
)

// OnboardingServiceInterface defines the onboarding wizard operations
type OnboardingServiceInterface interface {
	Resume(ctx context.Context, userID string) (*models.OnboardingStateResponse, error)
	SaveState(ctx context.Context, userID, email string, state *wizard.State) (*models.OnboardingStateResponse, error)
	NextStep(ctx context.Context, userID, email string, state *wizard.State) (*models.OnboardingStateResponse, error)
	PrevStep(ctx context.Context, userID string, state *wizard.State) (*models.OnboardingStateResponse, error)
	Complete(ctx context.Context, userID, email string, state *wizard.State) (*models.CompleteOnboardingResponse, error)
	UploadPhoto(ctx context.Context, userID string, req *models.PhotoUploadRequest) (*models.PhotoUploadResponse, error)
}

// DirectoryServiceInterface defines the public directory operations
type DirectoryServiceInterface interface {
	List(ctx context.Context, filter models.DirectoryFilter) ([]models.PublicProResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.PublicProResponse, error)
}

// ProAuthServiceInterface defines the passwordless pro authentication flow
type ProAuthServiceInterface interface {
	RequestLogin(ctx context.Context, email string) (*models.RequestLoginResponse, error)
	VerifyLogin(ctx context.Context, token string) (*models.ProSession, string, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// Ensure services implement their interfaces
var _ OnboardingServiceInterface = (*OnboardingService)(nil)
var _ DirectoryServiceInterface = (*DirectoryService)(nil)
var _ ProAuthServiceInterface = (*ProAuthService)(nil)
