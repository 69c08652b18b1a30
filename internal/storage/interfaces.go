package storage

import (
	"context"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// CacheStore provides access to the per-category validated record cache.
// Each category maps to at most one entry; Put replaces the whole entry.
type CacheStore interface {
	// Get retrieves the cache entry for a category. Returns ErrNotFound if
	// the category has never been populated.
	Get(ctx context.Context, category domain.Category) (*domain.CacheEntry, error)

	// Put stores the entry for a category, replacing any previous entry.
	Put(ctx context.Context, category domain.Category, entry *domain.CacheEntry) error
}

// FetchLogStore provides access to the append-only fetch audit archive.
type FetchLogStore interface {
	// Insert appends one audit row per (cycle, source) fetch attempt.
	Insert(ctx context.Context, l *domain.FetchLog) error
}
