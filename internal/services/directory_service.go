package services

import (
	"context"
	"fmt"

	"github.com/tavvy/tavvy-pros-api/internal/cache"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/repository"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
)

// DirectoryService serves the public pro directory from the in-memory
// cache, falling back to the repository while the cache warms up.
type DirectoryService struct {
	cache   cache.DirectoryCacheInterface
	repo    repository.DirectoryRepositoryInterface
	baseURL string
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(c cache.DirectoryCacheInterface, repo repository.DirectoryRepositoryInterface, baseURL string) *DirectoryService {
	return &DirectoryService{cache: c, repo: repo, baseURL: baseURL}
}

// List returns the filtered public directory
func (s *DirectoryService) List(ctx context.Context, filter models.DirectoryFilter) ([]models.PublicProResponse, error) {
	entries, err := s.listEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]models.PublicProResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.Pro.ToPublicResponse(entry.Place, s.baseURL))
	}
	return responses, nil
}

// GetBySlug returns a single public profile by its place slug.
// Returns nil when the slug is unknown.
func (s *DirectoryService) GetBySlug(ctx context.Context, slug string) (*models.PublicProResponse, error) {
	var entry *repository.DirectoryEntry

	if s.cache != nil && s.cache.IsReady() {
		cached, err := s.cache.GetBySlug(slug)
		if err == nil {
			entry = cached
		}
	} else {
		fetched, err := s.repo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pro: %w", err)
		}
		entry = fetched
	}

	if entry == nil {
		return nil, nil
	}

	metrics.ProProfileViews.WithLabelValues(slug).Inc()

	resp := entry.Pro.ToPublicResponse(entry.Place, s.baseURL)
	return &resp, nil
}

func (s *DirectoryService) listEntries(ctx context.Context, filter models.DirectoryFilter) ([]repository.DirectoryEntry, error) {
	if s.cache != nil && s.cache.IsReady() {
		var entries []repository.DirectoryEntry
		var err error
		if filter.ForceRefresh {
			entries, err = s.cache.ForceRefresh()
		} else {
			entries, err = s.cache.Get()
		}
		if err != nil {
			return nil, err
		}
		return filterEntries(entries, filter), nil
	}

	entries, err := s.repo.ListCompleted(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pros: %w", err)
	}
	return entries, nil
}

func filterEntries(entries []repository.DirectoryEntry, filter models.DirectoryFilter) []repository.DirectoryEntry {
	filtered := make([]repository.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		if filter.Matches(entry.Pro, entry.Place) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
