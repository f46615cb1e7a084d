package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/config"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/repository"
	"github.com/tavvy/tavvy-pros-api/pkg/jwt"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
)

var (
	ErrProNotFound         = errors.New("pro not found")
	ErrInvalidLoginToken   = errors.New("invalid or expired login token")
	ErrJWTSecretNotSet     = errors.New("JWT secret not configured")
	ErrTokenGenerationFail = errors.New("failed to generate login token")
)

// ProAuthService handles passwordless pro authentication: a single-use
// login token delivered by email, exchanged for a JWT session cookie.
type ProAuthService struct {
	store        repository.ProStore
	config       *config.Config
	tokenManager *jwt.TokenManager
	crm          *CRMService
}

// NewProAuthService creates a new ProAuthService
func NewProAuthService(store repository.ProStore, cfg *config.Config, crm *CRMService) *ProAuthService {
	var tokenManager *jwt.TokenManager
	if cfg.ProSession.JWTSecret != "" {
		tokenManager = jwt.NewTokenManager(
			cfg.ProSession.JWTSecret,
			cfg.ProSession.JWTIssuer,
			cfg.ProSession.SessionTTLHours,
		)
	}

	return &ProAuthService{
		store:        store,
		config:       cfg,
		tokenManager: tokenManager,
		crm:          crm,
	}
}

// RequestLogin generates a login token and triggers email sending
func (s *ProAuthService) RequestLogin(ctx context.Context, email string) (*models.RequestLoginResponse, error) {
	start := time.Now()

	pro, err := s.store.GetProByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to look up pro by email", zap.Error(err))
		metrics.ProAuthLoginRequests.WithLabelValues("lookup_failed").Inc()
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if pro == nil {
		logger.Warn("Login request for unknown email", zap.String("email", email))
		metrics.ProAuthLoginRequests.WithLabelValues("pro_not_found").Inc()
		return nil, ErrProNotFound
	}

	token, err := generateLoginToken()
	if err != nil {
		logger.Error("Failed to generate login token", zap.Error(err))
		metrics.ProAuthLoginRequests.WithLabelValues("token_generation_failed").Inc()
		return nil, ErrTokenGenerationFail
	}

	expiration := time.Now().Add(time.Duration(s.config.ProSession.LoginTokenTTLMinutes) * time.Minute)

	if err := s.store.SetLoginToken(ctx, pro.UserID, token, expiration); err != nil {
		logger.Error("Failed to store login token",
			zap.String("user_id", pro.UserID),
			zap.Error(err))
		metrics.ProAuthLoginRequests.WithLabelValues("storage_failed").Inc()
		return nil, fmt.Errorf("failed to store login token: %w", err)
	}

	loginURL := fmt.Sprintf("%s/pro/auth/callback?token=%s", s.config.Server.BaseURL, token)

	if s.config.CRM.ProLoginEmailTrigger != "" {
		s.crm.SendLoginEmail(email, "", loginURL)
	} else if s.config.IsDevelopment() {
		// Without an email trigger configured, surface the URL in logs
		logger.Info("=== DEVELOPMENT LOGIN URL ===",
			zap.String("pro_email", email),
			zap.String("login_url", loginURL))
	}

	metrics.ProAuthLoginRequests.WithLabelValues("success").Inc()

	logger.Info("Login token generated",
		zap.String("user_id", pro.UserID),
		zap.Duration("duration", time.Since(start)))

	return &models.RequestLoginResponse{
		Success: true,
		Message: "Login link sent to your email",
	}, nil
}

// VerifyLogin verifies a login token and creates a session
func (s *ProAuthService) VerifyLogin(ctx context.Context, token string) (*models.ProSession, string, error) {
	start := time.Now()

	if s.tokenManager == nil {
		logger.Error("JWT secret not configured")
		metrics.ProAuthVerifyRequests.WithLabelValues("not_configured").Inc()
		return nil, "", ErrJWTSecretNotSet
	}

	// Lookup enforces expiry; an expired token is indistinguishable from
	// an unknown one
	pro, err := s.store.GetProByLoginToken(ctx, token)
	if err != nil {
		logger.Error("Failed to look up login token", zap.Error(err))
		metrics.ProAuthVerifyRequests.WithLabelValues("lookup_failed").Inc()
		return nil, "", fmt.Errorf("failed to verify token: %w", err)
	}
	if pro == nil {
		logger.Warn("Login verification with invalid token")
		metrics.ProAuthVerifyRequests.WithLabelValues("invalid_token").Inc()
		return nil, "", ErrInvalidLoginToken
	}

	// Single-use: clear before issuing the session
	if clearErr := s.store.ClearLoginToken(ctx, pro.UserID); clearErr != nil {
		logger.Error("Failed to clear login token",
			zap.String("user_id", pro.UserID),
			zap.Error(clearErr))
		// Continue with login even if clearing fails
	}

	jwtToken, err := s.tokenManager.GenerateToken(pro.UserID, pro.Email, "")
	if err != nil {
		logger.Error("Failed to generate JWT",
			zap.String("user_id", pro.UserID),
			zap.Error(err))
		metrics.ProAuthVerifyRequests.WithLabelValues("jwt_failed").Inc()
		return nil, "", fmt.Errorf("failed to generate session: %w", err)
	}

	now := time.Now()
	session := &models.ProSession{
		UserID:    pro.UserID,
		Email:     pro.Email,
		ExpiresAt: now.Add(s.tokenManager.GetExpirationTime()).Unix(),
		IssuedAt:  now.Unix(),
	}

	metrics.ProAuthVerifyRequests.WithLabelValues("success").Inc()

	logger.Info("Login successful",
		zap.String("user_id", pro.UserID),
		zap.Duration("duration", time.Since(start)))

	return session, jwtToken, nil
}

// GetSessionTTL returns the session TTL in seconds
func (s *ProAuthService) GetSessionTTL() int {
	return s.config.ProSession.SessionTTLHours * 3600
}

// GetCookieDomain returns the cookie domain
func (s *ProAuthService) GetCookieDomain() string {
	return s.config.ProSession.CookieDomain
}

// GetCookieSecure returns whether cookies should be secure
func (s *ProAuthService) GetCookieSecure() bool {
	return s.config.ProSession.CookieSecure
}

// GetTokenManager returns the JWT token manager
func (s *ProAuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// generateLoginToken creates a secure random login token
func generateLoginToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	// Format: ptk_{random_hex}_{timestamp}
	return fmt.Sprintf("ptk_%s_%d", hex.EncodeToString(bytes), time.Now().Unix()), nil
}
