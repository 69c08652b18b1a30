// Package main generates one newsletter issue: it refreshes both categories
// as needed, reads the cached records, and renders Markdown to a file or
// stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/config"
	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
	"github.com/AdrianaSo123/newsletter-factory/internal/pipeline"
	"github.com/AdrianaSo123/newsletter-factory/internal/report"
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
	output := flag.String("output", "NEWSLETTER.md", "Output file, or - for stdout")
	daysBack := flag.Int("days-back", 0, "Override the record age window in days")
	force := flag.Bool("force", false, "Refresh even when the cache is fresh")
	presswireEndpoint := flag.String("presswire-endpoint", "", "WebSocket URL of the press wire (disabled when empty)")
	verbose := flag.Bool("verbose", false, "Verbose pipeline logging")
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
		Verbose:  *verbose,
	})

	for _, category := range domain.Categories() {
		if _, err := p.Refresh(ctx, category, *force); err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing %s: %v\n", category, err)
			os.Exit(1)
		}
	}

	n := &report.Newsletter{GeneratedAt: time.Now().UTC()}

	n.Investments, n.InvestmentOrigin, err = p.GetCategory(ctx, domain.CategoryInvestment, *daysBack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading investments: %v\n", err)
		os.Exit(1)
	}
	n.Events, n.EventOrigin, err = p.GetCategory(ctx, domain.CategoryEvent, *daysBack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading events: %v\n", err)
		os.Exit(1)
	}
	n.Freshness, err = p.FreshnessStatus(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading freshness status: %v\n", err)
		os.Exit(1)
	}

	md := report.RenderMarkdown(n)
	if *output == "-" {
		fmt.Print(md)
		return
	}
	if err := os.WriteFile(*output, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Newsletter written to %s (%d investments, %d events)\n",
		*output, len(n.Investments), len(n.Events))
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

// buildStores selects storage backends from the config: Redis or Postgres
// for the cache when configured, in-memory otherwise; ClickHouse for the
// fetch audit archive when configured.
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

// buildSources assembles all fetch adapters. The press wire is included
// only when an endpoint is supplied.
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
