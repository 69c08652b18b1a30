package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
)

const keyPrefix = "newsletter:cache:"

// CacheStore implements storage.CacheStore using Redis.
// Each category maps to a single JSON value; Put replaces it with SET.
// No server-side expiry is set: freshness is evaluated by the monitor so
// stale entries stay available for degraded serving.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new Redis-backed cache store.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// NewClient creates a Redis client and verifies the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Compile-time interface check.
var _ storage.CacheStore = (*CacheStore)(nil)

// Get retrieves the entry for a category. Returns ErrNotFound if not populated.
func (s *CacheStore) Get(ctx context.Context, category domain.Category) (*domain.CacheEntry, error) {
	if !category.IsValid() {
		return nil, storage.ErrInvalidInput
	}

	raw, err := s.client.Get(ctx, keyPrefix+string(category)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get cache entry: %w", err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	return &entry, nil
}

// Put stores the entry for a category, replacing any previous one.
func (s *CacheStore) Put(ctx context.Context, category domain.Category, entry *domain.CacheEntry) error {
	if entry == nil || !category.IsValid() {
		return storage.ErrInvalidInput
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+string(category), raw, 0).Err(); err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}
