// Package resilience wraps source fetches so that no source failure, panic
// or rate burst ever propagates as a fault: every outcome is either a
// record batch or a typed FetchFailure.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
	"github.com/AdrianaSo123/newsletter-factory/internal/sources"
)

// Options configures a Fetcher.
type Options struct {
	// MaxRetries is the number of retries after the first attempt,
	// applied to transient failures only. Defaults to 3.
	MaxRetries int

	// RequestsPerMinute is the shared rolling-minute fetch budget.
	// Defaults to 30.
	RequestsPerMinute int

	// MinRequestInterval is the minimum spacing between consecutive
	// fetches across all sources. Defaults to 2s.
	MinRequestInterval time.Duration

	// QueueDepth bounds how many fetches may wait on the budget at once;
	// beyond it, fetches fail fast with ErrRateLimitExceeded. Defaults to 8.
	QueueDepth int

	// InitialBackoff is the first retry delay. Defaults to 500ms.
	InitialBackoff time.Duration

	// Logger for retry and failure events. Defaults to log.Default().
	Logger *log.Logger
}

// Fetcher drives source fetches with retry, pacing and failure isolation.
type Fetcher struct {
	maxRetries     uint64
	budget         *rate.Limiter
	pacing         *rate.Limiter
	queueDepth     int64
	waiters        atomic.Int64
	initialBackoff time.Duration
	logger         *log.Logger

	healthMu sync.Mutex
	health   map[string]*atomic.Int64
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts Options) *Fetcher {
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}
	rpm := opts.RequestsPerMinute
	if rpm == 0 {
		rpm = 30
	}
	minInterval := opts.MinRequestInterval
	if minInterval == 0 {
		minInterval = 2 * time.Second
	}
	queueDepth := opts.QueueDepth
	if queueDepth == 0 {
		queueDepth = 8
	}
	initialBackoff := opts.InitialBackoff
	if initialBackoff == 0 {
		initialBackoff = 500 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Fetcher{
		maxRetries:     uint64(maxRetries),
		budget:         rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
		pacing:         rate.NewLimiter(rate.Every(minInterval), 1),
		queueDepth:     int64(queueDepth),
		initialBackoff: initialBackoff,
		logger:         logger,
		health:         make(map[string]*atomic.Int64),
	}
}

// Fetch runs one source fetch under the resilience policy. It never returns
// a Go error: failures come back as a typed FetchFailure and an empty batch.
func (f *Fetcher) Fetch(ctx context.Context, src sources.Source, since time.Time, maxResults int) ([]*domain.CandidateRecord, *domain.FetchFailure) {
	if f.waiters.Load() >= f.queueDepth {
		return nil, f.fail(src, domain.ErrRateLimitExceeded.Error(), true)
	}

	f.waiters.Add(1)
	budgetErr := f.budget.Wait(ctx)
	if budgetErr == nil {
		budgetErr = f.pacing.Wait(ctx)
	}
	f.waiters.Add(-1)
	if budgetErr != nil {
		return nil, f.fail(src, fmt.Sprintf("rate wait aborted: %v", budgetErr), true)
	}

	var records []*domain.CandidateRecord
	attempt := 0

	operation := func() error {
		attempt++
		batch, err := f.fetchOnce(ctx, src, since, maxResults)
		if err != nil {
			if transient(err) {
				f.logger.Printf("resilience: %s attempt %d failed: %v", src.Name(), attempt, err)
				return err
			}
			return backoff.Permanent(err)
		}
		records = batch
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.initialBackoff

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, f.maxRetries), ctx))
	if err != nil {
		return nil, f.fail(src, err.Error(), transient(err))
	}

	f.counter(src.Name()).Store(0)
	return records, nil
}

// ConsecutiveFailures returns the failure streak for a source. Resets to
// zero on any successful fetch.
func (f *Fetcher) ConsecutiveFailures(source string) int {
	return int(f.counter(source).Load())
}

// fetchOnce runs a single attempt, converting adapter panics into errors.
func (f *Fetcher) fetchOnce(ctx context.Context, src sources.Source, since time.Time, maxResults int) (records []*domain.CandidateRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = &panicError{value: r}
		}
	}()
	return src.Fetch(ctx, since, maxResults)
}

func (f *Fetcher) fail(src sources.Source, reason string, isTransient bool) *domain.FetchFailure {
	streak := f.counter(src.Name()).Add(1)
	f.logger.Printf("resilience: %s failed (streak %d): %s", src.Name(), streak, reason)

	if isTransient {
		return domain.NewTransientFailure(src.Name(), reason)
	}
	return domain.NewPermanentFailure(src.Name(), reason)
}

func (f *Fetcher) counter(source string) *atomic.Int64 {
	f.healthMu.Lock()
	defer f.healthMu.Unlock()

	c, ok := f.health[source]
	if !ok {
		c = &atomic.Int64{}
		f.health[source] = c
	}
	return c
}

// panicError marks a recovered adapter panic. Panics are permanent: a
// broken adapter does not heal under retry.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("adapter panic: %v", e.value)
}

// transient classifies an error for retry purposes. HTTP status errors
// carry their own classification; panics are permanent; everything else
// (network errors, timeouts, malformed payloads) is worth retrying.
func transient(err error) bool {
	var statusErr *feed.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Transient()
	}

	var pe *panicError
	if errors.As(err, &pe) {
		return false
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return transient(permanent.Err)
	}

	return true
}
