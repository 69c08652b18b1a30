// Package main runs refresh cycles for all categories, either once or on an
// interval, and optionally exposes Prometheus metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/config"
	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
	"github.com/AdrianaSo123/newsletter-factory/internal/observability"
	"github.com/AdrianaSo123/newsletter-factory/internal/pipeline"
	"github.com/AdrianaSo123/newsletter-factory/internal/sources"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage"
	chstore "github.com/AdrianaSo123/newsletter-factory/internal/storage/clickhouse"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage/memory"
	"github.com/AdrianaSo123/newsletter-factory/internal/storage/migrations"
	pgstore "github.com/AdrianaSo123/newsletter-factory/internal/storage/postgres"
	redisstore "github.com/AdrianaSo123/newsletter-factory/internal/storage/redis"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (defaults apply when empty)")
	force := flag.Bool("force", false, "Refresh even when the cache is fresh")
	interval := flag.Duration("interval", 0, "Refresh interval; 0 runs a single cycle and exits")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (disabled when empty)")
	presswireEndpoint := flag.String("presswire-endpoint", "", "WebSocket URL of the press wire (disabled when empty)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, fetchLog, cleanup, err := buildStores(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to storage: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	p := pipeline.New(pipeline.Options{
		Cache:    cache,
		FetchLog: fetchLog,
		Sources:  buildSources(cfg, *presswireEndpoint),
		Config:   cfg,
		Logger:   logger,
		Verbose:  true,
	})

	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	runCycle(ctx, p, *force, logger)
	if *interval <= 0 {
		printStatus(ctx, p)
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	logger.Printf("refreshing every %v, Ctrl+C to stop", *interval)

	for {
		select {
		case <-ctx.Done():
			logger.Printf("shutting down")
			return
		case <-ticker.C:
			runCycle(ctx, p, *force, logger)
		}
	}
}

func runCycle(ctx context.Context, p *pipeline.Pipeline, force bool, logger *log.Logger) {
	for _, category := range domain.Categories() {
		result, err := p.Refresh(ctx, category, force)
		if err != nil {
			logger.Printf("refresh %s failed: %v", category, err)
			continue
		}
		if !result.Refreshed {
			logger.Printf("%s: fresh, skipped", category)
			continue
		}
		logger.Printf("%s: cycle %s fetched=%d admitted=%d rejected=%d failures=%d written=%v",
			category, result.CycleID, result.Fetched, result.Admitted,
			result.Rejected, len(result.Failures), result.Written)
	}
}

func printStatus(ctx context.Context, p *pipeline.Pipeline) {
	status, err := p.FreshnessStatus(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading freshness status: %v\n", err)
		return
	}
	for _, category := range domain.Categories() {
		info := status[category]
		fmt.Printf("%s: %s records=%d last_fetched=%s\n",
			category, info.State, info.RecordCount, info.LastFetchedAt.Format(time.RFC3339))
	}
}

func serveMetrics(logger *log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	logger.Printf("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("metrics server error: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets deployment environments inject backend DSNs
// without editing the config file.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("NEWSLETTER_POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("NEWSLETTER_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("NEWSLETTER_CLICKHOUSE_DSN"); v != "" {
		cfg.Storage.ClickHouseDSN = v
	}
}

func buildStores(ctx context.Context, cfg *config.Config) (storage.CacheStore, storage.FetchLogStore, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	var cache storage.CacheStore
	switch {
	case cfg.Storage.RedisAddr != "":
		client, err := redisstore.NewClient(ctx, cfg.Storage.RedisAddr)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("connect redis: %w", err)
		}
		cleanups = append(cleanups, func() { client.Close() })
		cache = redisstore.NewCacheStore(client)
	case cfg.Storage.PostgresDSN != "":
		pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		cleanups = append(cleanups, pool.Close)
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return nil, nil, cleanup, fmt.Errorf("migrate postgres: %w", err)
		}
		cache = pgstore.NewCacheStore(pool)
	default:
		cache = memory.NewCacheStore()
	}

	var fetchLog storage.FetchLogStore
	if cfg.Storage.ClickHouseDSN != "" {
		conn, err := chstore.NewConn(ctx, cfg.Storage.ClickHouseDSN)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("connect clickhouse: %w", err)
		}
		cleanups = append(cleanups, func() { conn.Close() })
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			return nil, nil, cleanup, fmt.Errorf("migrate clickhouse: %w", err)
		}
		fetchLog = chstore.NewFetchLogStore(conn)
	}

	return cache, fetchLog, cleanup, nil
}

func buildSources(cfg *config.Config, presswireEndpoint string) []sources.Source {
	client := feed.NewClient(feed.ClientOptions{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
	})

	out := []sources.Source{
		sources.NewTechCrunchSource(sources.TechCrunchOptions{Client: client}),
		sources.NewCrunchbaseNewsSource(sources.CrunchbaseOptions{Client: client}),
		sources.NewEventbriteSource(sources.EventbriteOptions{Client: client}),
		sources.NewConferenceCalSource(sources.ConferenceCalOptions{Client: client}),
	}
	if presswireEndpoint != "" {
		out = append(out, sources.NewPressWireSource(sources.PressWireOptions{
			Endpoint: presswireEndpoint,
		}))
	}
	return out
}
