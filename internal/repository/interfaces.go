package repository

import (
	"context"
	"time"

	"github.com/tavvy/tavvy-pros-api/internal/models"
)

// ProStore defines the database operations the repositories depend on.
// Implemented by the postgres client; mocked in tests.
type ProStore interface {
	GetProByUserID(ctx context.Context, userID string) (*models.Pro, error)
	GetProByEmail(ctx context.Context, email string) (*models.Pro, error)
	GetProWithPlace(ctx context.Context, userID string) (*models.Pro, *models.Place, error)
	UpsertPro(ctx context.Context, pro *models.Pro) (*models.Pro, error)
	ListCompletedPros(ctx context.Context) ([]*models.Pro, map[int64]*models.Place, error)

	InsertPlace(ctx context.Context, place *models.Place) (*models.Place, error)
	UpdatePlace(ctx context.Context, place *models.Place) error
	GetPlaceBySlug(ctx context.Context, slug string) (*models.Place, error)

	UpsertLegacyProvider(ctx context.Context, rec *models.LegacyProviderRecord) error

	SetLoginToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetProByLoginToken(ctx context.Context, token string) (*models.Pro, error)
	ClearLoginToken(ctx context.Context, userID string) error
}
