package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/internal/cache"
	"github.com/tavvy/tavvy-pros-api/internal/catalog"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/repository"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
)

var (
	ErrInvalidCategory      = errors.New("category does not belong to provider type")
	ErrNotOnReviewStep      = errors.New("onboarding is not on the review step")
	ErrStorageNotConfigured = errors.New("photo storage is not configured")
)

// StorageClientInterface defines object storage operations used for photos
type StorageClientInterface interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	GenerateKey(userID, slot, originalFileName string) string
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// OnboardingService owns the wizard session flow: resuming state, gating
// step transitions, persisting after forward moves, and the terminal
// completion action.
type OnboardingService struct {
	repo      repository.OnboardingRepositoryInterface
	storage   StorageClientInterface
	crm       *CRMService
	directory cache.DirectoryCacheInterface
	audit     *zap.Logger
	baseURL   string
}

// NewOnboardingService creates a new OnboardingService. The audit logger
// may be nil, in which case transition auditing is skipped.
func NewOnboardingService(
	repo repository.OnboardingRepositoryInterface,
	storage StorageClientInterface,
	crm *CRMService,
	directory cache.DirectoryCacheInterface,
	audit *zap.Logger,
	baseURL string,
) *OnboardingService {
	return &OnboardingService{
		repo:      repo,
		storage:   storage,
		crm:       crm,
		directory: directory,
		audit:     audit,
		baseURL:   baseURL,
	}
}

// Resume returns the user's wizard state, rehydrated from the stored pro
// and place records, or a fresh default state for a new user.
func (s *OnboardingService) Resume(ctx context.Context, userID string) (*models.OnboardingStateResponse, error) {
	state, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding state: %w", err)
	}
	if state == nil {
		state = wizard.NewState()
	}

	return s.stateResponse(state, false), nil
}

// SaveState persists the client's working copy of the state without moving
// the cursor. Used for field edits between step transitions so a dropped
// session loses at most the current screen.
func (s *OnboardingService) SaveState(ctx context.Context, userID, email string, state *wizard.State) (*models.OnboardingStateResponse, error) {
	state.Normalize()

	if err := s.validateCategorySelection(state); err != nil {
		return nil, err
	}

	result := s.repo.Save(ctx, state, userID, email)
	s.auditTransition("state_save", userID, state.CurrentStep, state.CurrentStep, result)

	return s.stateResponse(state, result.Durable()), nil
}

// NextStep validates the current step and, when it passes, advances the
// cursor and persists the state. A failed gate is a no-op: same state back,
// canProceed false, nothing saved. A failed save still advances; the Saved
// flag tells the client its progress is not durable.
func (s *OnboardingService) NextStep(ctx context.Context, userID, email string, state *wizard.State) (*models.OnboardingStateResponse, error) {
	state.Normalize()

	if err := s.validateCategorySelection(state); err != nil {
		return nil, err
	}

	fromStep := state.CurrentStep
	if !state.Advance() {
		metrics.OnboardingStepTransitions.WithLabelValues("next", "blocked").Inc()
		return s.stateResponse(state, false), nil
	}

	result := s.repo.Save(ctx, state, userID, email)

	metrics.OnboardingStepTransitions.WithLabelValues("next", "success").Inc()
	s.auditTransition("step_forward", userID, fromStep, state.CurrentStep, result)

	return s.stateResponse(state, result.Durable()), nil
}

// PrevStep moves the cursor back one step. Going back never validates and
// never persists.
func (s *OnboardingService) PrevStep(ctx context.Context, userID string, state *wizard.State) (*models.OnboardingStateResponse, error) {
	state.Normalize()
	state.Back()

	metrics.OnboardingStepTransitions.WithLabelValues("prev", "success").Inc()

	return s.stateResponse(state, false), nil
}

// Complete finishes onboarding from the review step. Unlike step saves,
// a completion that cannot be persisted is surfaced as an error response.
func (s *OnboardingService) Complete(ctx context.Context, userID, email string, state *wizard.State) (*models.CompleteOnboardingResponse, error) {
	state.Normalize()

	if state.CurrentStep != wizard.StepReview {
		return nil, ErrNotOnReviewStep
	}
	if err := s.validateCategorySelection(state); err != nil {
		return nil, err
	}

	score := wizard.Score(state)

	result := s.repo.Save(ctx, state, userID, email)
	if !result.Durable() {
		metrics.OnboardingCompletions.WithLabelValues("error").Inc()
		s.auditTransition("complete", userID, state.CurrentStep, state.CurrentStep, result)
		return &models.CompleteOnboardingResponse{
			Success: false,
			Error:   "We couldn't save your profile. Please try again.",
		}, nil
	}

	metrics.OnboardingCompletions.WithLabelValues("success").Inc()
	metrics.ProfileCompletionScore.Observe(float64(score))
	s.auditTransition("complete", userID, state.CurrentStep, state.CurrentStep, result)

	resp := &models.CompleteOnboardingResponse{
		Success:           true,
		ProfileCompletion: score,
	}

	pro, place, err := s.repo.GetProWithPlace(ctx, userID)
	if err != nil {
		logger.Warn("Completed but failed to reload profile", zap.String("user_id", userID), zap.Error(err))
		return resp, nil
	}

	if place != nil {
		resp.ProfileURL = s.baseURL + "/pros/" + place.Slug
	}
	if pro != nil {
		s.crm.NotifyProCompleted(pro, place)
	}
	if s.directory != nil && s.directory.IsReady() && place != nil {
		s.directory.InvalidateUser(place.Slug)
	}

	logger.Info("Onboarding completed",
		zap.String("user_id", userID),
		zap.Int("profile_completion", score),
		zap.String("save_path", string(result.Path)))

	return resp, nil
}

// UploadPhoto validates and stores a single photo, returning its public URL
func (s *OnboardingService) UploadPhoto(ctx context.Context, userID string, req *models.PhotoUploadRequest) (*models.PhotoUploadResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}
	if err := s.storage.ValidateImageType(req.ContentType); err != nil {
		metrics.PhotoUploads.WithLabelValues(req.Slot, "invalid").Inc()
		return &models.PhotoUploadResponse{Success: false, Error: err.Error()}, nil
	}
	if err := s.storage.ValidateImageSize(req.ImageData); err != nil {
		metrics.PhotoUploads.WithLabelValues(req.Slot, "invalid").Inc()
		return &models.PhotoUploadResponse{Success: false, Error: err.Error()}, nil
	}

	key := s.storage.GenerateKey(userID, req.Slot, req.FileName)
	url, err := s.storage.UploadImage(ctx, req.ImageData, key, req.ContentType)
	if err != nil {
		metrics.PhotoUploads.WithLabelValues(req.Slot, "error").Inc()
		logger.Error("Photo upload failed",
			zap.String("user_id", userID),
			zap.String("slot", req.Slot),
			zap.Error(err))
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	metrics.PhotoUploads.WithLabelValues(req.Slot, "success").Inc()

	return &models.PhotoUploadResponse{Success: true, URL: url}, nil
}

// validateCategorySelection enforces the category-consistency invariant
// server-side: the primary category must belong to the provider type and
// every subcategory to the primary category.
func (s *OnboardingService) validateCategorySelection(state *wizard.State) error {
	if state.PrimaryCategory == "" {
		return nil
	}
	if !catalog.ValidCategory(state.ProviderType, state.PrimaryCategory) {
		return ErrInvalidCategory
	}
	if !catalog.ValidSubcategories(state.ProviderType, state.PrimaryCategory, state.Subcategories) {
		return ErrInvalidCategory
	}
	return nil
}

func (s *OnboardingService) stateResponse(state *wizard.State, saved bool) *models.OnboardingStateResponse {
	return &models.OnboardingStateResponse{
		State:             state,
		ProfileCompletion: wizard.Score(state),
		CanProceed:        state.CanProceed(state.CurrentStep),
		Saved:             saved,
		Completed:         state.Completed(),
	}
}

func (s *OnboardingService) auditTransition(action, userID string, from, to int, result repository.SaveResult) {
	if s.audit == nil {
		return
	}
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("user_id", userID),
		zap.Int("from_step", from),
		zap.Int("to_step", to),
		zap.String("save_path", string(result.Path)),
	}
	if result.Err != nil {
		fields = append(fields, zap.Error(result.Err))
	}
	s.audit.Info("onboarding transition", fields...)
}
