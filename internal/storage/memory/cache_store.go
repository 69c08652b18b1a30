package memory

import (
	"context"
	"sync"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
)

// CacheStore is an in-memory implementation of storage.CacheStore.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[domain.Category]*domain.CacheEntry
}

// NewCacheStore creates a new in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[domain.Category]*domain.CacheEntry),
	}
}

// Get retrieves the entry for a category. Returns ErrNotFound if not populated.
func (s *CacheStore) Get(_ context.Context, category domain.Category) (*domain.CacheEntry, error) {
	if !category.IsValid() {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[category]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return copyEntry(e), nil
}

// Put stores the entry for a category, replacing any previous one.
func (s *CacheStore) Put(_ context.Context, category domain.Category, entry *domain.CacheEntry) error {
	if entry == nil || !category.IsValid() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[category] = copyEntry(entry)
	return nil
}

// copyEntry deep-copies an entry so callers cannot mutate stored state.
func copyEntry(e *domain.CacheEntry) *domain.CacheEntry {
	entryCopy := *e
	entryCopy.Records = make([]domain.ValidatedRecord, len(e.Records))
	copy(entryCopy.Records, e.Records)
	return &entryCopy
}

var _ storage.CacheStore = (*CacheStore)(nil)
