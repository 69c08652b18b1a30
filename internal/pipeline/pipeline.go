// Package pipeline provides E2E refresh orchestration.
// It coordinates: freshness check → fetch → merge → validate → cache write,
// and serves category reads with a guaranteed non-empty result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AdrianaSo123/newsletter-factory/internal/config"
	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/fallback"
	"github.com/AdrianaSo123/newsletter-factory/internal/freshness"
	"github.com/AdrianaSo123/newsletter-factory/internal/normalize"
	"github.com/AdrianaSo123/newsletter-factory/internal/observability"
	"github.com/AdrianaSo123/newsletter-factory/internal/resilience"
	"github.com/AdrianaSo123/newsletter-factory/internal/sources"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
	"github.com/AdrianaSo123/newsletter-factory/internal/validation"
)

// Pipeline coordinates refresh cycles and category reads.
// Flow: freshness check → concurrent source fetches → merge → grounding
// gate → whole-entry cache replacement.
type Pipeline struct {
	cache    storage.CacheStore
	fetchLog storage.FetchLogStore
	sources  []sources.Source
	fetcher  *resilience.Fetcher
	gate     *validation.Gate
	monitor  *freshness.Monitor
	cfg      *config.Config
	logger   *log.Logger
	now      func() time.Time
	verbose  bool

	// lastWritten tracks entries this instance wrote, so reads can tell
	// live results from entries cached by an earlier process.
	mu          sync.Mutex
	lastWritten map[domain.Category]time.Time
}

// Options for creating a Pipeline.
type Options struct {
	// Required
	Cache   storage.CacheStore
	Sources []sources.Source
	Config  *config.Config

	// Optional. FetchLog, when set, receives one audit row per
	// (cycle, source) attempt.
	FetchLog storage.FetchLogStore
	Fetcher  *resilience.Fetcher
	Gate     *validation.Gate
	Monitor  *freshness.Monitor
	Logger   *log.Logger
	Now      func() time.Time
	Verbose  bool
}

// New creates a new Pipeline. Components not supplied in opts are built
// from the config.
func New(opts Options) *Pipeline {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = resilience.NewFetcher(resilience.Options{
			MaxRetries:         cfg.Fetch.MaxRetries,
			RequestsPerMinute:  cfg.Fetch.RequestsPerMinute,
			MinRequestInterval: cfg.Fetch.MinRequestInterval,
			QueueDepth:         cfg.Fetch.QueueDepth,
			Logger:             logger,
		})
	}
	gate := opts.Gate
	if gate == nil {
		gate = validation.NewGate(validation.Options{
			MinConfidence:  cfg.Grounding.MinConfidence,
			MinQuoteLength: cfg.Grounding.MinQuoteLength,
			Logger:         logger,
		})
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = freshness.NewMonitor(freshness.Options{
			Store: opts.Cache,
			Now:   now,
		})
	}

	return &Pipeline{
		cache:       opts.Cache,
		fetchLog:    opts.FetchLog,
		sources:     opts.Sources,
		fetcher:     fetcher,
		gate:        gate,
		monitor:     monitor,
		cfg:         cfg,
		logger:      logger,
		now:         now,
		verbose:     opts.Verbose,
		lastWritten: make(map[domain.Category]time.Time),
	}
}

// RefreshResult describes one refresh cycle.
type RefreshResult struct {
	CycleID  string
	Category domain.Category
	// State is the cache state observed before the cycle ran.
	State domain.FreshnessState
	// Refreshed is false when the cache was fresh and force was not set.
	Refreshed bool
	// Written is true when a new cache entry replaced the previous one.
	Written  bool
	Fetched  int
	Admitted int
	Rejected int
	Failures []*domain.FetchFailure
	Duration time.Duration
}

// fetchOutcome is the per-source result of one cycle.
type fetchOutcome struct {
	source    sources.Source
	records   []*domain.CandidateRecord
	failure   *domain.FetchFailure
	startedAt time.Time
	duration  time.Duration
}

// Refresh runs one refresh cycle for a category. A fresh cache short-circuits
// the cycle unless force is set. The previous cache entry is replaced only
// when at least one record clears the grounding gate; otherwise it is kept
// as-is, stale or not.
func (p *Pipeline) Refresh(ctx context.Context, category domain.Category, force bool) (*RefreshResult, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("refresh: %w: category %q", storage.ErrInvalidInput, category)
	}

	state, _, err := p.monitor.Evaluate(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", category, err)
	}

	result := &RefreshResult{
		CycleID:  uuid.NewString(),
		Category: category,
		State:    state,
	}

	if !force && !freshness.NeedsRefresh(state) {
		p.log("refresh %s: cache fresh, skipping", category)
		return result, nil
	}
	result.Refreshed = true

	started := p.now()
	since := started.AddDate(0, 0, -p.cfg.DaysBack)
	outcomes := p.fetchAll(ctx, category, since)

	batches := make([][]*domain.CandidateRecord, 0, len(outcomes))
	for _, o := range outcomes {
		if o.failure != nil {
			result.Failures = append(result.Failures, o.failure)
			continue
		}
		result.Fetched += len(o.records)
		batches = append(batches, o.records)
	}

	merged := normalize.Merge(category, batches)
	validated, stats := p.gate.Validate(merged)
	result.Admitted = stats.Admitted
	result.Rejected = stats.Rejected
	observability.RecordValidation(stats.Admitted, stats.Reasons)

	status := "empty"
	if len(validated) > 0 {
		entry := &domain.CacheEntry{
			Category:  category,
			Records:   validated,
			FetchedAt: p.now(),
			TTL:       p.cfg.TTLFor(category),
		}
		if err := p.cache.Put(ctx, category, entry); err != nil {
			return nil, fmt.Errorf("refresh %s: store entry: %w", category, err)
		}
		observability.RecordCacheWrite(category.String())
		p.mu.Lock()
		p.lastWritten[category] = entry.FetchedAt
		p.mu.Unlock()
		result.Written = true
		status = "success"
	} else {
		p.log("refresh %s: no validated records, keeping previous entry", category)
	}

	result.Duration = p.now().Sub(started)
	observability.RecordRefreshCycle(category.String(), status, result.Duration.Seconds())
	p.writeFetchLogs(ctx, result.CycleID, category, outcomes, validated)

	p.log("refresh %s: cycle %s fetched=%d admitted=%d rejected=%d failures=%d",
		category, result.CycleID, result.Fetched, result.Admitted, result.Rejected, len(result.Failures))
	return result, nil
}

// fetchAll runs every enabled source for the category concurrently. Each
// fetch gets its own timeout so one hanging source cannot stall the cycle.
func (p *Pipeline) fetchAll(ctx context.Context, category domain.Category, since time.Time) []*fetchOutcome {
	srcs := p.sourcesFor(category)
	outcomes := make([]*fetchOutcome, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.Fetch.Timeout)
			defer cancel()

			o := &fetchOutcome{source: src, startedAt: p.now()}
			observability.RecordFetchAttempt(src.Name())

			o.records, o.failure = p.fetcher.Fetch(fetchCtx, src, since, p.cfg.MaxResults)
			o.duration = time.Since(o.startedAt)

			if o.failure != nil {
				observability.RecordFetchFailure(src.Name(), o.failure.Transient,
					p.fetcher.ConsecutiveFailures(src.Name()))
			} else {
				observability.RecordFetchSuccess(src.Name(), o.duration.Seconds())
			}
			outcomes[i] = o
		}(i, src)
	}
	wg.Wait()

	return outcomes
}

func (p *Pipeline) sourcesFor(category domain.Category) []sources.Source {
	var out []sources.Source
	for _, src := range p.sources {
		if src.Category() != category {
			continue
		}
		if !p.cfg.SourceEnabled(src.Name()) {
			continue
		}
		out = append(out, src)
	}
	return out
}

// writeFetchLogs appends one audit row per source attempt. Audit failures
// are logged and swallowed; the archive never fails a cycle.
func (p *Pipeline) writeFetchLogs(ctx context.Context, cycleID string, category domain.Category, outcomes []*fetchOutcome, validated []domain.ValidatedRecord) {
	if p.fetchLog == nil {
		return
	}

	validatedBySource := make(map[string]int)
	for i := range validated {
		validatedBySource[validated[i].SourceName]++
	}

	for _, o := range outcomes {
		row := &domain.FetchLog{
			CycleID:             cycleID,
			Category:            category,
			Source:              o.source.Name(),
			StartedAt:           o.startedAt,
			Duration:            o.duration,
			Fetched:             len(o.records),
			Validated:           validatedBySource[o.source.Name()],
			ConsecutiveFailures: p.fetcher.ConsecutiveFailures(o.source.Name()),
		}
		if o.failure != nil {
			row.FailureReason = o.failure.Reason
			row.Transient = o.failure.Transient
		}
		if err := p.fetchLog.Insert(ctx, row); err != nil {
			p.logger.Printf("pipeline: fetch log insert failed for %s: %v", o.source.Name(), err)
		}
	}
}

// GetCategory returns records for a category no older than daysBack days.
// The result is never empty: a missing or empty cache falls back to curated
// samples, and a stale cache is served as-is with its origin marked.
func (p *Pipeline) GetCategory(ctx context.Context, category domain.Category, daysBack int) ([]domain.ValidatedRecord, domain.ResultOrigin, error) {
	if !category.IsValid() {
		return nil, "", fmt.Errorf("get category: %w: %q", storage.ErrInvalidInput, category)
	}
	if daysBack <= 0 {
		daysBack = p.cfg.DaysBack
	}

	entry, err := p.cache.Get(ctx, category)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Printf("pipeline: cache read failed for %s, serving samples: %v", category, err)
		}
		return p.serveFallback(category)
	}

	cutoff := p.now().AddDate(0, 0, -daysBack)
	var records []domain.ValidatedRecord
	for _, rec := range entry.Records {
		if rec.Date.Before(cutoff) {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return p.serveFallback(category)
	}

	origin := domain.OriginCache
	if entry.State(p.now()) == domain.StateStale {
		origin = domain.OriginStaleCache
	} else if p.writtenHere(category, entry.FetchedAt) {
		origin = domain.OriginLive
	}
	observability.RecordCacheRead(category.String(), string(origin))
	return records, origin, nil
}

func (p *Pipeline) writtenHere(category domain.Category, fetchedAt time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastWritten[category].Equal(fetchedAt)
}

func (p *Pipeline) serveFallback(category domain.Category) ([]domain.ValidatedRecord, domain.ResultOrigin, error) {
	observability.RecordFallbackServed(category.String())
	observability.RecordCacheRead(category.String(), string(domain.OriginFallback))
	return fallback.Samples(category), domain.OriginFallback, nil
}

// FreshnessStatus returns the per-category cache status.
func (p *Pipeline) FreshnessStatus(ctx context.Context) (map[domain.Category]domain.FreshnessInfo, error) {
	return p.monitor.Status(ctx, domain.Categories())
}

func (p *Pipeline) log(format string, args ...any) {
	if p.verbose {
		p.logger.Printf("pipeline: "+format, args...)
	}
}
