package clickhouse

import (
	"context"
	"fmt"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
)

// FetchLogStore implements storage.FetchLogStore using ClickHouse.
// The fetch log is an append-only audit archive; rows are never read back
// on the serving path.
type FetchLogStore struct {
	conn *Conn
}

// NewFetchLogStore creates a new FetchLogStore.
func NewFetchLogStore(conn *Conn) *FetchLogStore {
	return &FetchLogStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FetchLogStore = (*FetchLogStore)(nil)

// Insert appends one audit row per (cycle, source) fetch attempt.
func (s *FetchLogStore) Insert(ctx context.Context, l *domain.FetchLog) error {
	if l == nil || l.CycleID == "" || l.Source == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO fetch_log (
			cycle_id, category, source, started_at, duration_ms,
			fetched, validated, failure_reason, transient, consecutive_failures
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	transient := uint8(0)
	if l.Transient {
		transient = 1
	}

	err := s.conn.Exec(ctx, query,
		l.CycleID,
		string(l.Category),
		l.Source,
		l.StartedAt,
		uint64(l.Duration.Milliseconds()),
		uint32(l.Fetched),
		uint32(l.Validated),
		l.FailureReason,
		transient,
		uint32(l.ConsecutiveFailures),
	)
	if err != nil {
		return fmt.Errorf("insert fetch log: %w", err)
	}
	return nil
}
