package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/repository"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
)

const (
	entryKeyPrefix   = "pro:slug:"
	allEntriesKey    = "pro:all"
	metadataKey      = "pro:metadata"
	cacheCheckPeriod = 10 * time.Second
	maxRetries       = 3
	initialRetryWait = 2 * time.Second
)

// DirectoryCacheInterface defines the cached directory read operations
type DirectoryCacheInterface interface {
	Initialize() error
	IsReady() bool
	Get() ([]repository.DirectoryEntry, error)
	GetBySlug(slug string) (*repository.DirectoryEntry, error)
	ForceRefresh() ([]repository.DirectoryEntry, error)
	InvalidateUser(slug string)
	GetMetadata() (*CacheMetadata, error)
}

// CacheMetadata stores cache-wide information
type CacheMetadata struct {
	LastRefreshTime time.Time
	EntryCount      int
	Version         int64
}

// DirectoryCache keeps the completed-pro directory in memory, keyed by
// place slug. Reads never hit the database; a background refresher keeps
// the data at most one TTL stale.
type DirectoryCache struct {
	cache      *gocache.Cache
	repo       repository.DirectoryRepositoryInterface
	mu         sync.RWMutex
	refreshing bool
	ready      bool
	ttl        time.Duration
}

// NewDirectoryCache creates a new directory cache with slug-based storage
func NewDirectoryCache(repo repository.DirectoryRepositoryInterface, ttlSeconds int) *DirectoryCache {
	return &DirectoryCache{
		cache: gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		repo:  repo,
		ttl:   time.Duration(ttlSeconds) * time.Second,
	}
}

// Initialize performs initial cache population (synchronous, blocks until
// ready). Called during application startup before accepting requests.
func (dc *DirectoryCache) Initialize() error {
	logger.Info("Initializing directory cache...")
	startTime := time.Now()

	if err := dc.refreshWithRetry(); err != nil {
		logger.Error("Failed to initialize directory cache", zap.Error(err))
		return err
	}

	dc.mu.Lock()
	dc.ready = true
	dc.mu.Unlock()

	logger.Info("Directory cache initialized successfully",
		zap.Duration("duration", time.Since(startTime)))

	go dc.schedulePeriodicRefresh()

	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (dc *DirectoryCache) IsReady() bool {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.ready
}

// GetBySlug retrieves a single directory entry by place slug.
// Returns immediately without blocking, never triggers a database fetch.
func (dc *DirectoryCache) GetBySlug(slug string) (*repository.DirectoryEntry, error) {
	if !dc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	data, found := dc.cache.Get(entryKeyPrefix + slug)
	if !found {
		metrics.CacheMisses.WithLabelValues("directory_by_slug").Inc()
		logger.Debug("Pro not found in directory cache", zap.String("slug", slug))
		return nil, fmt.Errorf("pro not found")
	}

	metrics.CacheHits.WithLabelValues("directory_by_slug").Inc()

	entry, ok := data.(*repository.DirectoryEntry)
	if !ok {
		logger.Error("Invalid cache data type", zap.String("slug", slug))
		dc.cache.Delete(entryKeyPrefix + slug)
		return nil, fmt.Errorf("invalid cache data")
	}

	return entry, nil
}

// Get retrieves the full directory from cache.
// Returns immediately without blocking, never triggers a database fetch.
func (dc *DirectoryCache) Get() ([]repository.DirectoryEntry, error) {
	if !dc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	slugsData, found := dc.cache.Get(allEntriesKey)
	if !found {
		// Rare: list expired before the refresher ran. Return empty
		// rather than blocking on a fetch.
		metrics.CacheMisses.WithLabelValues("directory_all").Inc()
		logger.Warn("Directory list not in cache (expired), returning empty")
		return []repository.DirectoryEntry{}, nil
	}

	slugs, ok := slugsData.([]string)
	if !ok {
		logger.Error("Invalid cache data type for directory list")
		return []repository.DirectoryEntry{}, nil
	}

	metrics.CacheHits.WithLabelValues("directory_all").Inc()

	entries := make([]repository.DirectoryEntry, 0, len(slugs))
	for _, slug := range slugs {
		entry, err := dc.GetBySlug(slug)
		if err != nil {
			logger.Debug("Entry missing from directory cache", zap.String("slug", slug))
			continue
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

// InvalidateUser triggers a background refresh after a pro completes
// onboarding or edits a published profile, so the directory picks up the
// change before the next scheduled refresh.
func (dc *DirectoryCache) InvalidateUser(slug string) {
	logger.Info("Directory cache invalidation requested", zap.String("slug", slug))
	go func() {
		if err := dc.refreshInBackground(); err != nil {
			logger.Error("Background refresh failed", zap.Error(err))
		}
	}()
}

// ForceRefresh triggers a background refresh and returns immediately
func (dc *DirectoryCache) ForceRefresh() ([]repository.DirectoryEntry, error) {
	logger.Info("Force refresh requested, triggering background refresh")

	go func() {
		if err := dc.refreshInBackground(); err != nil {
			logger.Error("Background refresh failed", zap.Error(err))
		}
	}()

	return dc.Get()
}

// schedulePeriodicRefresh runs background refresh at TTL intervals
func (dc *DirectoryCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(dc.ttl)
	defer ticker.Stop()

	for range ticker.C {
		logger.Info("Starting scheduled directory cache refresh")

		if err := dc.refreshInBackground(); err != nil {
			logger.Error("Scheduled cache refresh failed", zap.Error(err))
			// Keep the scheduler running; next tick retries
		}
	}
}

// refreshInBackground performs non-blocking background refresh
func (dc *DirectoryCache) refreshInBackground() error {
	dc.mu.Lock()
	if dc.refreshing {
		dc.mu.Unlock()
		logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	dc.refreshing = true
	dc.mu.Unlock()

	defer func() {
		dc.mu.Lock()
		dc.refreshing = false
		dc.mu.Unlock()
	}()

	startTime := time.Now()

	entries, err := dc.repo.ListCompleted(context.Background(), models.DirectoryFilter{})
	if err != nil {
		logger.Error("Failed to fetch directory in background refresh", zap.Error(err))
		return err
	}

	dc.populateCache(entries)

	logger.Info("Background refresh completed",
		zap.Int("count", len(entries)),
		zap.Duration("duration", time.Since(startTime)))

	return nil
}

// refreshWithRetry performs a refresh with exponential backoff retry logic
func (dc *DirectoryCache) refreshWithRetry() error {
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			waitTime := initialRetryWait * time.Duration(1<<uint(attempt-1))
			logger.Info("Retrying directory cache refresh",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", maxRetries),
				zap.Duration("wait_time", waitTime))
			time.Sleep(waitTime)
		}

		entries, fetchErr := dc.repo.ListCompleted(context.Background(), models.DirectoryFilter{})
		if fetchErr != nil {
			err = fetchErr
			logger.Error("Directory cache refresh attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		dc.populateCache(entries)
		return nil
	}

	return fmt.Errorf("failed to refresh directory cache after %d attempts: %w", maxRetries, err)
}

// populateCache stores all entries in cache with individual slug keys.
// Entries without a place have no slug and are skipped; they are not
// addressable in the public directory anyway.
func (dc *DirectoryCache) populateCache(entries []repository.DirectoryEntry) {
	slugs := make([]string, 0, len(entries))

	for i := range entries {
		if entries[i].Place == nil || entries[i].Place.Slug == "" {
			continue
		}
		slug := entries[i].Place.Slug

		// Individual entries never expire; expiration is controlled at
		// the list level
		dc.cache.Set(entryKeyPrefix+slug, &entries[i], gocache.NoExpiration)
		slugs = append(slugs, slug)
	}

	dc.cache.Set(allEntriesKey, slugs, dc.ttl)

	dc.cache.Set(metadataKey, &CacheMetadata{
		LastRefreshTime: time.Now(),
		EntryCount:      len(slugs),
		Version:         time.Now().Unix(),
	}, gocache.NoExpiration)

	metrics.CacheSize.WithLabelValues("directory").Set(float64(len(slugs)))

	logger.Info("Directory cache populated successfully", zap.Int("count", len(slugs)))
}

// GetMetadata returns cache metadata
func (dc *DirectoryCache) GetMetadata() (*CacheMetadata, error) {
	data, found := dc.cache.Get(metadataKey)
	if !found {
		return nil, fmt.Errorf("metadata not found")
	}

	metadata, ok := data.(*CacheMetadata)
	if !ok {
		return nil, fmt.Errorf("invalid metadata type")
	}

	return metadata, nil
}
