package domain

import "time"

// FreshnessState represents the freshness of a cached category.
type FreshnessState string

const (
	StateFresh   FreshnessState = "FRESH"
	StateStale   FreshnessState = "STALE"
	StateMissing FreshnessState = "MISSING"
)

// String returns the string representation of FreshnessState.
func (s FreshnessState) String() string {
	return string(s)
}

// CacheEntry holds the accepted record set for one category.
// Entries are written whole on a successful refresh and never partially
// updated; a stale entry is kept as a last-resort fallback, never deleted.
type CacheEntry struct {
	Category  Category          `json:"category"`
	Records   []ValidatedRecord `json:"records"`
	FetchedAt time.Time         `json:"fetched_at"`
	TTL       time.Duration     `json:"ttl"`
}

// Age returns the entry age relative to now.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// State returns the freshness state of the entry relative to now.
// A nil entry is Missing.
func (e *CacheEntry) State(now time.Time) FreshnessState {
	if e == nil {
		return StateMissing
	}
	if e.Age(now) <= e.TTL {
		return StateFresh
	}
	return StateStale
}

// FreshnessInfo is the per-category status exposed to consumers.
type FreshnessInfo struct {
	State         FreshnessState `json:"state"`
	LastFetchedAt time.Time      `json:"last_fetched_at"`
	RecordCount   int            `json:"record_count"`
}

// ResultOrigin indicates where a category result set came from.
type ResultOrigin string

const (
	OriginLive       ResultOrigin = "LIVE"
	OriginCache      ResultOrigin = "CACHE"
	OriginStaleCache ResultOrigin = "STALE_CACHE"
	OriginFallback   ResultOrigin = "FALLBACK"
)
