package repository_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tavvy/tavvy-pros-api/internal/models"
)

// MockProStore is a mock implementation of ProStore
type MockProStore struct {
	mock.Mock
}

func (m *MockProStore) GetProByUserID(ctx context.Context, userID string) (*models.Pro, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pro), args.Error(1)
}

func (m *MockProStore) GetProByEmail(ctx context.Context, email string) (*models.Pro, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pro), args.Error(1)
}

func (m *MockProStore) GetProWithPlace(ctx context.Context, userID string) (*models.Pro, *models.Place, error) {
	args := m.Called(ctx, userID)
	var pro *models.Pro
	var place *models.Place
	if args.Get(0) != nil {
		pro = args.Get(0).(*models.Pro)
	}
	if args.Get(1) != nil {
		place = args.Get(1).(*models.Place)
	}
	return pro, place, args.Error(2)
}

func (m *MockProStore) UpsertPro(ctx context.Context, pro *models.Pro) (*models.Pro, error) {
	args := m.Called(ctx, pro)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pro), args.Error(1)
}

func (m *MockProStore) ListCompletedPros(ctx context.Context) ([]*models.Pro, map[int64]*models.Place, error) {
	args := m.Called(ctx)
	var pros []*models.Pro
	var places map[int64]*models.Place
	if args.Get(0) != nil {
		pros = args.Get(0).([]*models.Pro)
	}
	if args.Get(1) != nil {
		places = args.Get(1).(map[int64]*models.Place)
	}
	return pros, places, args.Error(2)
}

func (m *MockProStore) InsertPlace(ctx context.Context, place *models.Place) (*models.Place, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockProStore) UpdatePlace(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockProStore) GetPlaceBySlug(ctx context.Context, slug string) (*models.Place, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockProStore) UpsertLegacyProvider(ctx context.Context, rec *models.LegacyProviderRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockProStore) SetLoginToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockProStore) GetProByLoginToken(ctx context.Context, token string) (*models.Pro, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pro), args.Error(1)
}

func (m *MockProStore) ClearLoginToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
