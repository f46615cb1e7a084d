package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
)

// UpsertLegacyProvider writes the denormalized fallback row into the
// pro_providers table. Only the flat subset of fields survives this path;
// it exists so a failing primary save still leaves a resumable step cursor.
func (c *Client) UpsertLegacyProvider(ctx context.Context, rec *models.LegacyProviderRecord) error {
	start := time.Now()
	operation := "upsertLegacyProvider"

	_, err := c.pool.Exec(ctx, `
		INSERT INTO pro_providers (user_id, business_name, phone, email,
			provider_type, primary_category, specialties, city, state, zip_code,
			short_bio, onboarding_step, profile_completion, onboarding_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			provider_type = EXCLUDED.provider_type,
			primary_category = EXCLUDED.primary_category,
			specialties = EXCLUDED.specialties,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			short_bio = EXCLUDED.short_bio,
			onboarding_step = EXCLUDED.onboarding_step,
			profile_completion = EXCLUDED.profile_completion,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = NOW()
	`, rec.UserID, rec.BusinessName, rec.Phone, rec.Email, rec.ProviderType,
		rec.PrimaryCategory, rec.Specialties, rec.City, rec.State, rec.ZipCode,
		rec.ShortBio, rec.OnboardingStep, rec.ProfileCompletion, rec.OnboardingCompleted)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration,
			zap.Error(err), zap.String("user_id", rec.UserID))
		return fmt.Errorf("failed to upsert legacy provider: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("user_id", rec.UserID))
	return nil
}
