package repository

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
)

// SavePath identifies which write path a save landed on
type SavePath string

const (
	SavePathPrimary  SavePath = "primary"
	SavePathFallback SavePath = "fallback"
	SavePathNone     SavePath = "none"
)

// SaveResult reports the outcome of a best-effort save. Err is the last
// error encountered; Path tells which table actually holds the data. The
// caller decides whether to surface the error, so degraded saves are
// observable instead of silently swallowed.
type SaveResult struct {
	Path SavePath
	Err  error
}

// Durable reports whether the save landed anywhere
func (r SaveResult) Durable() bool {
	return r.Path != SavePathNone
}

// OnboardingRepositoryInterface defines persistence for wizard state
type OnboardingRepositoryInterface interface {
	Save(ctx context.Context, state *wizard.State, userID, email string) SaveResult
	Load(ctx context.Context, userID string) (*wizard.State, error)
	GetPro(ctx context.Context, userID string) (*models.Pro, error)
	GetProWithPlace(ctx context.Context, userID string) (*models.Pro, *models.Place, error)
}

// OnboardingRepository maps wizard state onto the places/pros records with
// a denormalized fallback table for degraded saves.
type OnboardingRepository struct {
	store ProStore
}

// NewOnboardingRepository creates a new onboarding repository
func NewOnboardingRepository(store ProStore) OnboardingRepositoryInterface {
	return &OnboardingRepository{store: store}
}

// Save upserts the wizard state into the place and pro records. On primary
// path failure it attempts a single denormalized upsert into the legacy
// pro_providers table. Save never panics and always returns a result; it is
// the caller's choice what to do with a non-durable one.
func (r *OnboardingRepository) Save(ctx context.Context, state *wizard.State, userID, email string) SaveResult {
	err := r.savePrimary(ctx, state, userID, email)
	if err == nil {
		metrics.OnboardingSaves.WithLabelValues(string(SavePathPrimary), "success").Inc()
		return SaveResult{Path: SavePathPrimary}
	}

	logger.Warn("Primary onboarding save failed, trying fallback",
		zap.String("user_id", userID),
		zap.Int("step", state.CurrentStep),
		zap.Error(err),
	)
	metrics.OnboardingSaves.WithLabelValues(string(SavePathPrimary), "error").Inc()

	if fbErr := r.saveFallback(ctx, state, userID, email); fbErr != nil {
		logger.Error("Fallback onboarding save failed, state not persisted",
			zap.String("user_id", userID),
			zap.Int("step", state.CurrentStep),
			zap.Error(fbErr),
		)
		metrics.OnboardingSaves.WithLabelValues(string(SavePathFallback), "error").Inc()
		return SaveResult{Path: SavePathNone, Err: fbErr}
	}

	metrics.OnboardingSaves.WithLabelValues(string(SavePathFallback), "success").Inc()
	return SaveResult{Path: SavePathFallback, Err: err}
}

func (r *OnboardingRepository) savePrimary(ctx context.Context, state *wizard.State, userID, email string) error {
	existing, err := r.store.GetProByUserID(ctx, userID)
	if err != nil {
		return err
	}

	place := buildPlace(state)

	var placeID *int64
	if existing != nil && existing.PlaceID != nil {
		place.ID = *existing.PlaceID
		if err := r.store.UpdatePlace(ctx, place); err != nil {
			return err
		}
		placeID = existing.PlaceID
	} else {
		inserted, err := r.store.InsertPlace(ctx, place)
		if err != nil {
			return err
		}
		placeID = &inserted.ID
	}

	pro := buildPro(state, userID, email)
	pro.PlaceID = placeID

	_, err = r.store.UpsertPro(ctx, pro)
	return err
}

func (r *OnboardingRepository) saveFallback(ctx context.Context, state *wizard.State, userID, email string) error {
	rec := &models.LegacyProviderRecord{
		UserID:              userID,
		BusinessName:        state.BusinessName,
		Phone:               wizard.NormalizePhone(state.Phone),
		Email:               firstNonEmpty(state.Email, email),
		ProviderType:        string(state.ProviderType),
		PrimaryCategory:     state.PrimaryCategory,
		Specialties:         strings.Join(state.Specialties(), ","),
		City:                state.City,
		State:               state.Region,
		ZipCode:             state.ZipCode,
		ShortBio:            state.ShortBio,
		OnboardingStep:      state.CurrentStep,
		ProfileCompletion:   wizard.Score(state),
		OnboardingCompleted: state.Completed(),
	}
	return r.store.UpsertLegacyProvider(ctx, rec)
}

// Load hydrates a wizard state from the stored pro and place records.
// Returns nil without error when no record exists; the caller starts a
// fresh state in that case.
func (r *OnboardingRepository) Load(ctx context.Context, userID string) (*wizard.State, error) {
	pro, place, err := r.store.GetProWithPlace(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pro == nil {
		return nil, nil
	}
	return hydrateState(pro, place), nil
}

// GetPro fetches the raw pro record for a user
func (r *OnboardingRepository) GetPro(ctx context.Context, userID string) (*models.Pro, error) {
	return r.store.GetProByUserID(ctx, userID)
}

// GetProWithPlace fetches the pro and its joined place
func (r *OnboardingRepository) GetProWithPlace(ctx context.Context, userID string) (*models.Pro, *models.Place, error) {
	return r.store.GetProWithPlace(ctx, userID)
}

// buildPlace maps the business-location fields of the wizard state onto a
// place payload.
func buildPlace(state *wizard.State) *models.Place {
	return &models.Place{
		Name:             state.BusinessName,
		Phone:            wizard.NormalizePhone(state.Phone),
		Email:            state.Email,
		Website:          state.Website,
		Address:          state.Address,
		City:             state.City,
		State:            state.Region,
		ZipCode:          state.ZipCode,
		Hours:            state.Hours,
		ProfilePhoto:     state.ProfilePhoto,
		CoverPhoto:       state.CoverPhoto,
		WorkPhotos:       state.WorkPhotos,
		Description:      state.FullDescription,
		ShortDescription: state.ShortBio,
	}
}

// buildPro maps the profile fields onto a pro payload, with the derived
// completion score and the completed flag computed at save time.
func buildPro(state *wizard.State, userID, email string) *models.Pro {
	return &models.Pro{
		UserID:              userID,
		Email:               firstNonEmpty(state.Email, email),
		ProviderType:        state.ProviderType,
		Specialties:         state.Specialties(),
		Services:            state.Services,
		LocationType:        state.LocationType,
		ServiceAreas:        state.ServiceAreas,
		ServiceRadius:       state.ServiceRadius,
		Highlights:          state.Highlights,
		LicenseNumber:       state.LicenseNumber,
		LicenseState:        state.LicenseState,
		ShortBio:            state.ShortBio,
		YearEstablished:     state.YearEstablished,
		OnboardingStep:      state.CurrentStep,
		ProfileCompletion:   wizard.Score(state),
		OnboardingCompleted: state.Completed(),
	}
}

// hydrateState rebuilds the wizard state field by field with explicit
// defaults for anything missing, then normalizes once. A state loaded here
// round-trips through Save unchanged.
func hydrateState(pro *models.Pro, place *models.Place) *wizard.State {
	state := wizard.NewState()

	state.ProviderType = pro.ProviderType
	state.PrimaryCategory = pro.PrimaryCategory()
	state.Subcategories = pro.Subcategories()
	state.Services = pro.Services
	state.LocationType = pro.LocationType
	state.ServiceAreas = pro.ServiceAreas
	state.ServiceRadius = pro.ServiceRadius
	state.Highlights = pro.Highlights
	state.LicenseNumber = pro.LicenseNumber
	state.LicenseState = pro.LicenseState
	state.ShortBio = pro.ShortBio
	state.YearEstablished = pro.YearEstablished
	state.CurrentStep = pro.OnboardingStep

	if place != nil {
		state.BusinessName = place.Name
		state.Phone = place.Phone
		state.Email = place.Email
		state.Website = place.Website
		state.Address = place.Address
		state.City = place.City
		state.Region = place.State
		state.ZipCode = place.ZipCode
		if len(place.Hours) > 0 {
			state.Hours = place.Hours
		}
		state.ProfilePhoto = place.ProfilePhoto
		state.CoverPhoto = place.CoverPhoto
		state.WorkPhotos = place.WorkPhotos
		state.FullDescription = place.Description
	}

	state.Normalize()
	return state
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
