package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tavvy/tavvy-pros-api/config"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/repository"
	"github.com/tavvy/tavvy-pros-api/internal/services"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
)

func newOnboardingService(repo *MockOnboardingRepository, storage *MockStorageClient) *services.OnboardingService {
	crm := services.NewCRMService(&config.Config{}, &MockHTTPClient{})
	return services.NewOnboardingService(repo, storage, crm, nil, nil, "https://tavvy.com")
}

func readyState() *wizard.State {
	s := wizard.NewState()
	s.ProviderType = wizard.ProviderTypePro
	s.PrimaryCategory = "Plumbing"
	s.Subcategories = []string{"Drain Services"}
	s.BusinessName = "AB Plumbing"
	s.Phone = "5551234567"
	s.City = "Austin"
	s.Region = "TX"
	s.ZipCode = "78701"
	s.Services = []wizard.Service{{Name: "Drain cleaning"}}
	s.ShortBio = "Drains done right"
	return s
}

func TestResumeNewUser(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	repo.On("Load", mock.Anything, "user-1").Return(nil, nil)

	resp, err := svc.Resume(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.State.CurrentStep)
	assert.False(t, resp.Saved)
	assert.False(t, resp.Completed)
}

func TestResumeExistingUser(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	stored := readyState()
	stored.CurrentStep = 6
	repo.On("Load", mock.Anything, "user-1").Return(stored, nil)

	resp, err := svc.Resume(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 6, resp.State.CurrentStep)
	assert.Equal(t, wizard.Score(stored), resp.ProfileCompletion)
}

func TestSaveStateKeepsCursor(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = wizard.StepContact

	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *wizard.State) bool {
		return s.CurrentStep == wizard.StepContact
	}), "user-1", "owner@abplumbing.com").Return(repository.SaveResult{Path: repository.SavePathPrimary})

	resp, err := svc.SaveState(context.Background(), "user-1", "owner@abplumbing.com", state)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepContact, resp.State.CurrentStep)
	assert.True(t, resp.Saved)
	repo.AssertExpectations(t)
}

func TestNextStepAdvancesAndSaves(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = wizard.StepContact

	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *wizard.State) bool {
		return s.CurrentStep == wizard.StepLocation
	}), "user-1", "owner@abplumbing.com").Return(repository.SaveResult{Path: repository.SavePathPrimary})

	resp, err := svc.NextStep(context.Background(), "user-1", "owner@abplumbing.com", state)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepLocation, resp.State.CurrentStep)
	assert.True(t, resp.Saved)
	repo.AssertExpectations(t)
}

func TestNextStepBlockedIsNoOp(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = wizard.StepContact
	state.BusinessName = "A" // fails validation

	resp, err := svc.NextStep(context.Background(), "user-1", "", state)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepContact, resp.State.CurrentStep)
	assert.False(t, resp.CanProceed)
	assert.False(t, resp.Saved)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNextStepDegradedSaveStillAdvances(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = wizard.StepContact

	repo.On("Save", mock.Anything, mock.Anything, "user-1", "").
		Return(repository.SaveResult{Path: repository.SavePathNone, Err: errors.New("db down")})

	resp, err := svc.NextStep(context.Background(), "user-1", "", state)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepLocation, resp.State.CurrentStep)
	assert.False(t, resp.Saved, "degraded save is reported, not hidden")
}

func TestNextStepRejectsForeignCategory(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.PrimaryCategory = "Residential Sales" // realtor category on a pro

	_, err := svc.NextStep(context.Background(), "user-1", "", state)
	assert.ErrorIs(t, err, services.ErrInvalidCategory)
}

func TestPrevStepNeverSaves(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = 5

	resp, err := svc.PrevStep(context.Background(), "user-1", state)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.State.CurrentStep)
	assert.False(t, resp.Saved)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteRequiresReviewStep(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = 5

	_, err := svc.Complete(context.Background(), "user-1", "", state)
	assert.ErrorIs(t, err, services.ErrNotOnReviewStep)
}

func TestCompleteSuccess(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = wizard.StepReview

	placeID := int64(7)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *wizard.State) bool {
		return s.Completed()
	}), "user-1", "owner@abplumbing.com").Return(repository.SaveResult{Path: repository.SavePathPrimary})
	repo.On("GetProWithPlace", mock.Anything, "user-1").Return(
		&models.Pro{ID: 1, UserID: "user-1", PlaceID: &placeID, OnboardingCompleted: true},
		&models.Place{ID: 7, Slug: "ab-plumbing-7"},
		nil,
	)

	resp, err := svc.Complete(context.Background(), "user-1", "owner@abplumbing.com", state)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, wizard.Score(state), resp.ProfileCompletion)
	assert.Equal(t, "https://tavvy.com/pros/ab-plumbing-7", resp.ProfileURL)
	repo.AssertExpectations(t)
}

// The terminal complete action surfaces persistence failures, unlike step saves
func TestCompleteSurfacesSaveFailure(t *testing.T) {
	repo := new(MockOnboardingRepository)
	svc := newOnboardingService(repo, nil)

	state := readyState()
	state.CurrentStep = wizard.StepReview

	repo.On("Save", mock.Anything, mock.Anything, "user-1", "").
		Return(repository.SaveResult{Path: repository.SavePathNone, Err: errors.New("db down")})

	resp, err := svc.Complete(context.Background(), "user-1", "", state)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	repo.AssertNotCalled(t, "GetProWithPlace", mock.Anything, mock.Anything)
}

func TestUploadPhotoInvalidType(t *testing.T) {
	storage := new(MockStorageClient)
	svc := newOnboardingService(new(MockOnboardingRepository), storage)

	storage.On("ValidateImageType", "image/gif").Return(errors.New("invalid file type"))

	resp, err := svc.UploadPhoto(context.Background(), "user-1", &models.PhotoUploadRequest{
		Slot:        "profile",
		FileName:    "a.gif",
		ContentType: "image/gif",
		ImageData:   "aGVsbG8=",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid file type")
	storage.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadPhotoSuccess(t *testing.T) {
	storage := new(MockStorageClient)
	svc := newOnboardingService(new(MockOnboardingRepository), storage)

	storage.On("ValidateImageType", "image/png").Return(nil)
	storage.On("ValidateImageSize", "aGVsbG8=").Return(nil)
	storage.On("GenerateKey", "user-1", "cover", "cover.png").Return("pros/user-1/cover/abc.png")
	storage.On("UploadImage", mock.Anything, "aGVsbG8=", "pros/user-1/cover/abc.png", "image/png").
		Return("https://storage.tavvy.com/pros/user-1/cover/abc.png", nil)

	resp, err := svc.UploadPhoto(context.Background(), "user-1", &models.PhotoUploadRequest{
		Slot:        "cover",
		FileName:    "cover.png",
		ContentType: "image/png",
		ImageData:   "aGVsbG8=",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "https://storage.tavvy.com/pros/user-1/cover/abc.png", resp.URL)
	storage.AssertExpectations(t)
}
