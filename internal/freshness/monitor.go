// Package freshness decides when a cached category needs a refresh.
package freshness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
)

// Options configures a Monitor.
type Options struct {
	Store storage.CacheStore

	// Now supplies the clock. Defaults to time.Now.
	Now func() time.Time
}

// Monitor evaluates cache entries against their recorded TTLs. The TTL
// travels with each entry, so entries written under an older configuration
// age out on the terms they were written with.
type Monitor struct {
	store storage.CacheStore
	now   func() time.Time
}

// NewMonitor creates a Monitor.
func NewMonitor(opts Options) *Monitor {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Monitor{store: opts.Store, now: now}
}

// Evaluate returns the freshness state for a category together with the
// cached entry, if any. A missing category is not an error.
func (m *Monitor) Evaluate(ctx context.Context, category domain.Category) (domain.FreshnessState, *domain.CacheEntry, error) {
	entry, err := m.store.Get(ctx, category)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.StateMissing, nil, nil
		}
		return domain.StateMissing, nil, fmt.Errorf("evaluate %s: %w", category, err)
	}
	return entry.State(m.now()), entry, nil
}

// NeedsRefresh reports whether a state warrants fetching new data.
func NeedsRefresh(state domain.FreshnessState) bool {
	return state != domain.StateFresh
}

// Status returns the per-category freshness summary for the given
// categories.
func (m *Monitor) Status(ctx context.Context, categories []domain.Category) (map[domain.Category]domain.FreshnessInfo, error) {
	out := make(map[domain.Category]domain.FreshnessInfo, len(categories))
	for _, category := range categories {
		state, entry, err := m.Evaluate(ctx, category)
		if err != nil {
			return nil, err
		}

		info := domain.FreshnessInfo{State: state}
		if entry != nil {
			info.LastFetchedAt = entry.FetchedAt
			info.RecordCount = len(entry.Records)
		}
		out[category] = info
	}
	return out, nil
}
