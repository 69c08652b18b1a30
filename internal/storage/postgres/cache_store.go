package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
)

// CacheStore implements storage.CacheStore using PostgreSQL.
// Records are stored as a JSONB document per category; Put replaces the
// whole row so readers never see a partially refreshed category.
type CacheStore struct {
	pool *Pool
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(pool *Pool) *CacheStore {
	return &CacheStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CacheStore = (*CacheStore)(nil)

// Get retrieves the entry for a category. Returns ErrNotFound if not populated.
func (s *CacheStore) Get(ctx context.Context, category domain.Category) (*domain.CacheEntry, error) {
	if !category.IsValid() {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT records, fetched_at, ttl_ms
		FROM newsletter_cache
		WHERE category = $1
	`

	var (
		raw       []byte
		fetchedAt time.Time
		ttlMs     int64
	)
	err := s.pool.QueryRow(ctx, query, string(category)).Scan(&raw, &fetchedAt, &ttlMs)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get cache entry: %w", err)
	}

	var records []domain.ValidatedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode cached records: %w", err)
	}

	return &domain.CacheEntry{
		Category:  category,
		Records:   records,
		FetchedAt: fetchedAt.UTC(),
		TTL:       time.Duration(ttlMs) * time.Millisecond,
	}, nil
}

// Put stores the entry for a category, replacing any previous one.
func (s *CacheStore) Put(ctx context.Context, category domain.Category, entry *domain.CacheEntry) error {
	if entry == nil || !category.IsValid() {
		return storage.ErrInvalidInput
	}

	raw, err := json.Marshal(entry.Records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	query := `
		INSERT INTO newsletter_cache (category, records, fetched_at, ttl_ms)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category) DO UPDATE SET
			records = EXCLUDED.records,
			fetched_at = EXCLUDED.fetched_at,
			ttl_ms = EXCLUDED.ttl_ms
	`

	_, err = s.pool.Exec(ctx, query,
		string(category),
		raw,
		entry.FetchedAt.UTC(),
		entry.TTL.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}
