package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
)

// ProRow represents a pro row from the database
type ProRow struct {
	ID                  int64
	UserID              string
	Email               *string
	PlaceID             *int64
	ProviderType        *string
	Specialties         []string
	ServicesJSON        []byte
	LocationType        *string
	ServiceAreas        []string
	ServiceRadius       *int
	Highlights          []string
	LicenseNumber       *string
	LicenseState        *string
	ShortBio            *string
	YearEstablished     *int
	OnboardingStep      int
	ProfileCompletion   int
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

const proColumns = `
	pr.id, pr.user_id, pr.email, pr.place_id, pr.provider_type, pr.specialties,
	pr.services, pr.location_type, pr.service_areas, pr.service_radius,
	pr.highlights, pr.license_number, pr.license_state, pr.short_bio,
	pr.year_established, pr.onboarding_step, pr.profile_completion,
	pr.onboarding_completed, pr.created_at, pr.updated_at`

// GetProByUserID fetches the pro record for an authenticated user.
// Returns nil without error when no record exists; that is the normal
// new-user path.
func (c *Client) GetProByUserID(ctx context.Context, userID string) (*models.Pro, error) {
	return c.getProByField(ctx, "getProByUserID", "pr.user_id = $1", userID)
}

// GetProByEmail fetches a pro by account email, for passwordless login
func (c *Client) GetProByEmail(ctx context.Context, email string) (*models.Pro, error) {
	return c.getProByField(ctx, "getProByEmail", "LOWER(pr.email) = LOWER($1)", email)
}

func (c *Client) getProByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.Pro, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM pros pr WHERE %s`, proColumns, whereClause)

	var row ProRow
	err := c.pool.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.UserID, &row.Email, &row.PlaceID, &row.ProviderType,
		&row.Specialties, &row.ServicesJSON, &row.LocationType, &row.ServiceAreas,
		&row.ServiceRadius, &row.Highlights, &row.LicenseNumber, &row.LicenseState,
		&row.ShortBio, &row.YearEstablished, &row.OnboardingStep,
		&row.ProfileCompletion, &row.OnboardingCompleted, &row.CreatedAt, &row.UpdatedAt,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "success", duration)
			return nil, nil
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query pro: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return rowToPro(&row), nil
}

// UpsertPro inserts or updates the pro record keyed by user_id and returns
// the stored record.
func (c *Client) UpsertPro(ctx context.Context, pro *models.Pro) (*models.Pro, error) {
	start := time.Now()
	operation := "upsertPro"

	servicesJSON, err := json.Marshal(pro.Services)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal services: %w", err)
	}

	var id int64
	err = c.pool.QueryRow(ctx, `
		INSERT INTO pros (user_id, email, place_id, provider_type, specialties,
			services, location_type, service_areas, service_radius, highlights,
			license_number, license_state, short_bio, year_established,
			onboarding_step, profile_completion, onboarding_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			place_id = EXCLUDED.place_id,
			provider_type = EXCLUDED.provider_type,
			specialties = EXCLUDED.specialties,
			services = EXCLUDED.services,
			location_type = EXCLUDED.location_type,
			service_areas = EXCLUDED.service_areas,
			service_radius = EXCLUDED.service_radius,
			highlights = EXCLUDED.highlights,
			license_number = EXCLUDED.license_number,
			license_state = EXCLUDED.license_state,
			short_bio = EXCLUDED.short_bio,
			year_established = EXCLUDED.year_established,
			onboarding_step = EXCLUDED.onboarding_step,
			profile_completion = EXCLUDED.profile_completion,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = NOW()
		RETURNING id
	`, pro.UserID, pro.Email, pro.PlaceID, string(pro.ProviderType), pro.Specialties,
		servicesJSON, string(pro.LocationType), pro.ServiceAreas, pro.ServiceRadius,
		pro.Highlights, pro.LicenseNumber, pro.LicenseState, pro.ShortBio,
		pro.YearEstablished, pro.OnboardingStep, pro.ProfileCompletion,
		pro.OnboardingCompleted,
	).Scan(&id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration,
			zap.Error(err), zap.String("user_id", pro.UserID))
		return nil, fmt.Errorf("failed to upsert pro: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("user_id", pro.UserID),
		zap.Int("onboarding_step", pro.OnboardingStep))

	result := *pro
	result.ID = id
	return &result, nil
}

// GetProWithPlace fetches the pro record and its joined place in one round
// trip. The place is nil when the pro has no place reference.
func (c *Client) GetProWithPlace(ctx context.Context, userID string) (*models.Pro, *models.Place, error) {
	start := time.Now()
	operation := "getProWithPlace"

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM pros pr
		LEFT JOIN places p ON p.id = pr.place_id
		WHERE pr.user_id = $1
	`, proColumns, nullablePlaceColumns)

	pro, place, err := c.scanProWithPlace(ctx, query, userID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "success", duration)
			return nil, nil, nil
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, nil, fmt.Errorf("failed to query pro with place: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return pro, place, nil
}

// Place columns wrapped for a LEFT JOIN where every field may be NULL
const nullablePlaceColumns = `
	p.id, p.slug, p.name, p.phone, p.email, p.website, p.address, p.city,
	p.state, p.zip_code, p.hours, p.profile_photo, p.cover_photo,
	p.work_photos, p.description, p.short_description, p.created_at, p.updated_at`

func (c *Client) scanProWithPlace(ctx context.Context, query string, args ...interface{}) (*models.Pro, *models.Place, error) {
	var row ProRow
	var placeID *int64
	var placeSlug, placeName *string
	var pRow PlaceRow
	var pPhone, pEmail, pWebsite, pAddress, pCity, pState, pZip, pProfile, pCover, pDesc, pShortDesc *string
	var pCreated, pUpdated *time.Time

	err := c.pool.QueryRow(ctx, query, args...).Scan(
		&row.ID, &row.UserID, &row.Email, &row.PlaceID, &row.ProviderType,
		&row.Specialties, &row.ServicesJSON, &row.LocationType, &row.ServiceAreas,
		&row.ServiceRadius, &row.Highlights, &row.LicenseNumber, &row.LicenseState,
		&row.ShortBio, &row.YearEstablished, &row.OnboardingStep,
		&row.ProfileCompletion, &row.OnboardingCompleted, &row.CreatedAt, &row.UpdatedAt,
		&placeID, &placeSlug, &placeName, &pPhone, &pEmail, &pWebsite, &pAddress,
		&pCity, &pState, &pZip, &pRow.HoursJSON, &pProfile, &pCover,
		&pRow.WorkPhotos, &pDesc, &pShortDesc, &pCreated, &pUpdated,
	)
	if err != nil {
		return nil, nil, err
	}

	pro := rowToPro(&row)

	if placeID == nil {
		return pro, nil, nil
	}

	pRow.ID = *placeID
	pRow.Slug = deref(placeSlug)
	pRow.Name = deref(placeName)
	pRow.Phone = pPhone
	pRow.Email = pEmail
	pRow.Website = pWebsite
	pRow.Address = pAddress
	pRow.City = pCity
	pRow.State = pState
	pRow.ZipCode = pZip
	pRow.ProfilePhoto = pProfile
	pRow.CoverPhoto = pCover
	pRow.Description = pDesc
	pRow.ShortDesc = pShortDesc
	if pCreated != nil {
		pRow.CreatedAt = *pCreated
	}
	if pUpdated != nil {
		pRow.UpdatedAt = *pUpdated
	}

	return pro, rowToPlace(&pRow), nil
}

// ListCompletedPros fetches all pros that finished onboarding, with their
// places, for the public directory.
func (c *Client) ListCompletedPros(ctx context.Context) ([]*models.Pro, map[int64]*models.Place, error) {
	start := time.Now()
	operation := "listCompletedPros"

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM pros pr
		LEFT JOIN places p ON p.id = pr.place_id
		WHERE pr.onboarding_completed = TRUE
		ORDER BY pr.profile_completion DESC, pr.updated_at DESC
	`, proColumns, nullablePlaceColumns)

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, nil, fmt.Errorf("failed to query completed pros: %w", err)
	}
	defer rows.Close()

	pros := make([]*models.Pro, 0)
	places := make(map[int64]*models.Place)

	for rows.Next() {
		var row ProRow
		var placeID *int64
		var placeSlug, placeName *string
		var pRow PlaceRow
		var pPhone, pEmail, pWebsite, pAddress, pCity, pState, pZip, pProfile, pCover, pDesc, pShortDesc *string
		var pCreated, pUpdated *time.Time

		err := rows.Scan(
			&row.ID, &row.UserID, &row.Email, &row.PlaceID, &row.ProviderType,
			&row.Specialties, &row.ServicesJSON, &row.LocationType, &row.ServiceAreas,
			&row.ServiceRadius, &row.Highlights, &row.LicenseNumber, &row.LicenseState,
			&row.ShortBio, &row.YearEstablished, &row.OnboardingStep,
			&row.ProfileCompletion, &row.OnboardingCompleted, &row.CreatedAt, &row.UpdatedAt,
			&placeID, &placeSlug, &placeName, &pPhone, &pEmail, &pWebsite, &pAddress,
			&pCity, &pState, &pZip, &pRow.HoursJSON, &pProfile, &pCover,
			&pRow.WorkPhotos, &pDesc, &pShortDesc, &pCreated, &pUpdated,
		)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
			return nil, nil, fmt.Errorf("failed to scan pro row: %w", err)
		}

		pro := rowToPro(&row)
		pros = append(pros, pro)

		if placeID != nil {
			pRow.ID = *placeID
			pRow.Slug = deref(placeSlug)
			pRow.Name = deref(placeName)
			pRow.Phone = pPhone
			pRow.Email = pEmail
			pRow.Website = pWebsite
			pRow.Address = pAddress
			pRow.City = pCity
			pRow.State = pState
			pRow.ZipCode = pZip
			pRow.ProfilePhoto = pProfile
			pRow.CoverPhoto = pCover
			pRow.Description = pDesc
			pRow.ShortDesc = pShortDesc
			if pCreated != nil {
				pRow.CreatedAt = *pCreated
			}
			if pUpdated != nil {
				pRow.UpdatedAt = *pUpdated
			}
			places[pro.ID] = rowToPlace(&pRow)
		}
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, nil, fmt.Errorf("error iterating pro rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(pros)))

	return pros, places, nil
}

// SetLoginToken stores a single-use login token with its expiry
func (c *Client) SetLoginToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	start := time.Now()
	operation := "setLoginToken"

	tag, err := c.pool.Exec(ctx, `
		UPDATE pros SET login_token = $1, login_token_expires_at = $2, updated_at = NOW()
		WHERE user_id = $3
	`, token, expiresAt, userID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to set login token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "error", duration)
		return fmt.Errorf("pro not found for user %s", userID)
	}

	recordMetrics(operation, "success", duration)
	return nil
}

// GetProByLoginToken fetches the pro holding an unexpired login token.
// Returns nil when the token is unknown or expired.
func (c *Client) GetProByLoginToken(ctx context.Context, token string) (*models.Pro, error) {
	return c.getProByField(ctx, "getProByLoginToken",
		"pr.login_token = $1 AND pr.login_token_expires_at > NOW()", token)
}

// ClearLoginToken invalidates the single-use login token after verification
func (c *Client) ClearLoginToken(ctx context.Context, userID string) error {
	start := time.Now()
	operation := "clearLoginToken"

	_, err := c.pool.Exec(ctx, `
		UPDATE pros SET login_token = NULL, login_token_expires_at = NULL WHERE user_id = $1
	`, userID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to clear login token: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return nil
}

func rowToPro(row *ProRow) *models.Pro {
	pro := &models.Pro{
		ID:                  row.ID,
		UserID:              row.UserID,
		Email:               deref(row.Email),
		PlaceID:             row.PlaceID,
		ProviderType:        wizard.ProviderType(deref(row.ProviderType)),
		Specialties:         row.Specialties,
		LocationType:        wizard.LocationType(deref(row.LocationType)),
		ServiceAreas:        row.ServiceAreas,
		Highlights:          row.Highlights,
		LicenseNumber:       deref(row.LicenseNumber),
		LicenseState:        deref(row.LicenseState),
		ShortBio:            deref(row.ShortBio),
		OnboardingStep:      row.OnboardingStep,
		ProfileCompletion:   row.ProfileCompletion,
		OnboardingCompleted: row.OnboardingCompleted,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
	if row.ServiceRadius != nil {
		pro.ServiceRadius = *row.ServiceRadius
	}
	if row.YearEstablished != nil {
		pro.YearEstablished = *row.YearEstablished
	}
	if pro.Specialties == nil {
		pro.Specialties = []string{}
	}
	if pro.ServiceAreas == nil {
		pro.ServiceAreas = []string{}
	}
	if pro.Highlights == nil {
		pro.Highlights = []string{}
	}
	pro.Services = []wizard.Service{}
	if len(row.ServicesJSON) > 0 {
		var services []wizard.Service
		if err := json.Unmarshal(row.ServicesJSON, &services); err == nil && services != nil {
			pro.Services = services
		}
	}
	return pro
}
