package clickhouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
)

func TestFetchLogStore_Insert(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewFetchLogStore(conn)
	ctx := context.Background()

	log := &domain.FetchLog{
		CycleID:             "6f1d1c1e-0000-4000-8000-000000000001",
		Category:            domain.CategoryInvestment,
		Source:              "techcrunch",
		StartedAt:           time.Date(2026, 2, 10, 14, 30, 0, 0, time.UTC),
		Duration:            850 * time.Millisecond,
		Fetched:             12,
		Validated:           9,
		FailureReason:       "",
		Transient:           false,
		ConsecutiveFailures: 0,
	}

	require.NoError(t, store.Insert(ctx, log))

	var (
		source   string
		duration uint64
		fetched  uint32
	)
	err := conn.QueryRow(ctx, `
		SELECT source, duration_ms, fetched FROM fetch_log
		WHERE cycle_id = ?
	`, log.CycleID).Scan(&source, &duration, &fetched)
	require.NoError(t, err)

	assert.Equal(t, "techcrunch", source)
	assert.Equal(t, uint64(850), duration)
	assert.Equal(t, uint32(12), fetched)
}

func TestFetchLogStore_InsertFailureRow(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewFetchLogStore(conn)
	ctx := context.Background()

	log := &domain.FetchLog{
		CycleID:             "6f1d1c1e-0000-4000-8000-000000000002",
		Category:            domain.CategoryEvent,
		Source:              "eventbrite",
		StartedAt:           time.Now().UTC(),
		Duration:            2 * time.Second,
		FailureReason:       "http 503",
		Transient:           true,
		ConsecutiveFailures: 3,
	}

	require.NoError(t, store.Insert(ctx, log))

	var (
		reason    string
		transient uint8
		failures  uint32
	)
	err := conn.QueryRow(ctx, `
		SELECT failure_reason, transient, consecutive_failures FROM fetch_log
		WHERE cycle_id = ?
	`, log.CycleID).Scan(&reason, &transient, &failures)
	require.NoError(t, err)

	assert.Equal(t, "http 503", reason)
	assert.Equal(t, uint8(1), transient)
	assert.Equal(t, uint32(3), failures)
}

func TestFetchLogStore_InvalidInput(t *testing.T) {
	store := NewFetchLogStore(nil)
	ctx := context.Background()

	err := store.Insert(ctx, nil)
	assert.True(t, errors.Is(err, storage.ErrInvalidInput))

	err = store.Insert(ctx, &domain.FetchLog{Source: "techcrunch"})
	assert.True(t, errors.Is(err, storage.ErrInvalidInput))
}
