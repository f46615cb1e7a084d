package services_test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tavvy/tavvy-pros-api/internal/cache"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/repository"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
)

// MockOnboardingRepository is a mock implementation of OnboardingRepositoryInterface
type MockOnboardingRepository struct {
	mock.Mock
}

func (m *MockOnboardingRepository) Save(ctx context.Context, state *wizard.State, userID, email string) repository.SaveResult {
	args := m.Called(ctx, state, userID, email)
	return args.Get(0).(repository.SaveResult)
}

func (m *MockOnboardingRepository) Load(ctx context.Context, userID string) (*wizard.State, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.State), args.Error(1)
}

func (m *MockOnboardingRepository) GetPro(ctx context.Context, userID string) (*models.Pro, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pro), args.Error(1)
}

func (m *MockOnboardingRepository) GetProWithPlace(ctx context.Context, userID string) (*models.Pro, *models.Place, error) {
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

// MockStorageClient is a mock implementation of StorageClientInterface
type MockStorageClient struct {
	mock.Mock
}

func (m *MockStorageClient) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorageClient) GenerateKey(userID, slot, originalFileName string) string {
	args := m.Called(userID, slot, originalFileName)
	return args.String(0)
}

func (m *MockStorageClient) ValidateImageType(contentType string) error {
	args := m.Called(contentType)
	return args.Error(0)
}

func (m *MockStorageClient) ValidateImageSize(imageData string) error {
	args := m.Called(imageData)
	return args.Error(0)
}

// MockDirectoryCache is a mock implementation of cache.DirectoryCacheInterface
type MockDirectoryCache struct {
	mock.Mock
}

func (m *MockDirectoryCache) Initialize() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDirectoryCache) IsReady() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDirectoryCache) Get() ([]repository.DirectoryEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryCache) GetBySlug(slug string) (*repository.DirectoryEntry, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryCache) ForceRefresh() ([]repository.DirectoryEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryCache) InvalidateUser(slug string) {
	m.Called(slug)
}

func (m *MockDirectoryCache) GetMetadata() (*cache.CacheMetadata, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.CacheMetadata), args.Error(1)
}

// MockDirectoryRepository is a mock implementation of DirectoryRepositoryInterface
type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) ListCompleted(ctx context.Context, filter models.DirectoryFilter) ([]repository.DirectoryEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryRepository) GetBySlug(ctx context.Context, slug string) (*repository.DirectoryEntry, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DirectoryEntry), args.Error(1)
}

// MockProStore is a mock implementation of repository.ProStore
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

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}
