package repository

import (
	"context"

	"github.com/tavvy/tavvy-pros-api/internal/models"
)

// DirectoryEntry pairs a completed pro with its place for listing
type DirectoryEntry struct {
	Pro   *models.Pro
	Place *models.Place
}

// DirectoryRepositoryInterface defines read access for the public directory
type DirectoryRepositoryInterface interface {
	ListCompleted(ctx context.Context, filter models.DirectoryFilter) ([]DirectoryEntry, error)
	GetBySlug(ctx context.Context, slug string) (*DirectoryEntry, error)
}

// DirectoryRepository serves the public pro directory
type DirectoryRepository struct {
	store ProStore
}

// NewDirectoryRepository creates a new directory repository
func NewDirectoryRepository(store ProStore) DirectoryRepositoryInterface {
	return &DirectoryRepository{store: store}
}

// ListCompleted returns all pros that finished onboarding, filtered
func (r *DirectoryRepository) ListCompleted(ctx context.Context, filter models.DirectoryFilter) ([]DirectoryEntry, error) {
	pros, places, err := r.store.ListCompletedPros(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]DirectoryEntry, 0, len(pros))
	for _, pro := range pros {
		place := places[pro.ID]
		if !filter.Matches(pro, place) {
			continue
		}
		entries = append(entries, DirectoryEntry{Pro: pro, Place: place})
	}
	return entries, nil
}

// GetBySlug returns a single completed pro by its place slug
func (r *DirectoryRepository) GetBySlug(ctx context.Context, slug string) (*DirectoryEntry, error) {
	entries, err := r.ListCompleted(ctx, models.DirectoryFilter{})
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Place != nil && entries[i].Place.Slug == slug {
			return &entries[i], nil
		}
	}
	return nil, nil
}
