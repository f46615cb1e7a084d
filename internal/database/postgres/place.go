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
	"github.com/tavvy/tavvy-pros-api/pkg/slug"
)

// PlaceRow represents a place row from the database
type PlaceRow struct {
	ID           int64
	Slug         string
	Name         string
	Phone        *string
	Email        *string
	Website      *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	HoursJSON    []byte
	ProfilePhoto *string
	CoverPhoto   *string
	WorkPhotos   []string
	Description  *string
	ShortDesc    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const placeColumns = `
	p.id, p.slug, p.name, p.phone, p.email, p.website, p.address, p.city,
	p.state, p.zip_code, p.hours, p.profile_photo, p.cover_photo,
	p.work_photos, p.description, p.short_description, p.created_at, p.updated_at`

// InsertPlace creates a new place and returns it with the generated id and
// slug. The slug is derived from the business name plus the new row id, so
// the insert runs in two statements inside a transaction.
func (c *Client) InsertPlace(ctx context.Context, place *models.Place) (*models.Place, error) {
	start := time.Now()
	operation := "insertPlace"

	hoursJSON, err := json.Marshal(place.Hours)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hours: %w", err)
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO places (slug, name, phone, email, website, address, city, state,
			zip_code, hours, profile_photo, cover_photo, work_photos, description,
			short_description)
		VALUES ('', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, place.Name, place.Phone, place.Email, place.Website, place.Address,
		place.City, place.State, place.ZipCode, hoursJSON,
		place.ProfilePhoto, place.CoverPhoto, place.WorkPhotos, place.Description,
		place.ShortDescription,
	).Scan(&id)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to insert place: %w", err)
	}

	placeSlug := slug.GeneratePlaceSlug(place.Name, id)
	if _, err := tx.Exec(ctx, `UPDATE places SET slug = $1 WHERE id = $2`, placeSlug, id); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to set place slug: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to commit place insert: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("place_id", id), zap.String("slug", placeSlug))

	result := *place
	result.ID = id
	result.Slug = placeSlug
	return &result, nil
}

// UpdatePlace updates an existing place by id. The slug is immutable after
// creation to keep published profile links stable.
func (c *Client) UpdatePlace(ctx context.Context, place *models.Place) error {
	start := time.Now()
	operation := "updatePlace"

	hoursJSON, err := json.Marshal(place.Hours)
	if err != nil {
		return fmt.Errorf("failed to marshal hours: %w", err)
	}

	tag, err := c.pool.Exec(ctx, `
		UPDATE places SET
			name = $1, phone = $2, email = $3, website = $4, address = $5,
			city = $6, state = $7, zip_code = $8, hours = $9,
			profile_photo = $10, cover_photo = $11, work_photos = $12,
			description = $13, short_description = $14, updated_at = NOW()
		WHERE id = $15
	`, place.Name, place.Phone, place.Email, place.Website, place.Address,
		place.City, place.State, place.ZipCode, hoursJSON,
		place.ProfilePhoto, place.CoverPhoto, place.WorkPhotos,
		place.Description, place.ShortDescription, place.ID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "error", duration)
		return fmt.Errorf("place %d not found", place.ID)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("place_id", place.ID))
	return nil
}

// GetPlaceByID fetches a place by its primary key
func (c *Client) GetPlaceByID(ctx context.Context, id int64) (*models.Place, error) {
	return c.getPlaceByField(ctx, "getPlaceByID", "p.id = $1", id)
}

// GetPlaceBySlug fetches a place by its public slug
func (c *Client) GetPlaceBySlug(ctx context.Context, placeSlug string) (*models.Place, error) {
	return c.getPlaceByField(ctx, "getPlaceBySlug", "p.slug = $1", placeSlug)
}

func (c *Client) getPlaceByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.Place, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM places p WHERE %s`, placeColumns, whereClause)

	var row PlaceRow
	err := c.pool.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.Slug, &row.Name, &row.Phone, &row.Email, &row.Website,
		&row.Address, &row.City, &row.State, &row.ZipCode, &row.HoursJSON,
		&row.ProfilePhoto, &row.CoverPhoto, &row.WorkPhotos, &row.Description,
		&row.ShortDesc, &row.CreatedAt, &row.UpdatedAt,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "success", duration)
			return nil, nil
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query place: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return rowToPlace(&row), nil
}

func rowToPlace(row *PlaceRow) *models.Place {
	place := &models.Place{
		ID:               row.ID,
		Slug:             row.Slug,
		Name:             row.Name,
		Phone:            deref(row.Phone),
		Email:            deref(row.Email),
		Website:          deref(row.Website),
		Address:          deref(row.Address),
		City:             deref(row.City),
		State:            deref(row.State),
		ZipCode:          deref(row.ZipCode),
		ProfilePhoto:     deref(row.ProfilePhoto),
		CoverPhoto:       deref(row.CoverPhoto),
		WorkPhotos:       row.WorkPhotos,
		Description:      deref(row.Description),
		ShortDescription: deref(row.ShortDesc),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
	if place.WorkPhotos == nil {
		place.WorkPhotos = []string{}
	}
	if len(row.HoursJSON) > 0 {
		var hours map[string]wizard.DayHours
		if err := json.Unmarshal(row.HoursJSON, &hours); err == nil {
			place.Hours = hours
		}
	}
	return place
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
