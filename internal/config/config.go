package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// Freshness holds per-category TTLs.
type Freshness struct {
	InvestmentTTL time.Duration `yaml:"investment_ttl"`
	EventTTL      time.Duration `yaml:"event_ttl"`
}

// Grounding holds the validation gate thresholds.
type Grounding struct {
	MinConfidence  float64 `yaml:"min_confidence"`
	MinQuoteLength int     `yaml:"min_quote_length"`
}

// Fetch holds the resilience wrapper settings.
type Fetch struct {
	MaxRetries         int           `yaml:"max_retries"`
	RequestsPerMinute  int           `yaml:"requests_per_minute"`
	MinRequestInterval time.Duration `yaml:"min_request_interval"`
	Timeout            time.Duration `yaml:"timeout"`
	QueueDepth         int           `yaml:"queue_depth"`
	UserAgent          string        `yaml:"user_agent"`
}

// Storage holds backend DSNs. Empty values select the in-memory cache.
type Storage struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	ClickHouseDSN string `yaml:"clickhouse_dsn"`
}

// Config is the immutable configuration snapshot consumed by the pipeline.
// It is loaded once at construction time and never mutated afterwards.
type Config struct {
	Freshness  Freshness       `yaml:"freshness"`
	Grounding  Grounding       `yaml:"grounding"`
	Fetch      Fetch           `yaml:"fetch"`
	Storage    Storage         `yaml:"storage"`
	Sources    map[string]bool `yaml:"sources"` // per-source enable flags
	DaysBack   int             `yaml:"days_back"`
	MaxResults int             `yaml:"max_results"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a YAML config file and applies defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Freshness.InvestmentTTL == 0 {
		c.Freshness.InvestmentTTL = 6 * time.Hour
	}
	if c.Freshness.EventTTL == 0 {
		c.Freshness.EventTTL = 24 * time.Hour
	}
	if c.Grounding.MinConfidence == 0 {
		c.Grounding.MinConfidence = 0.5
	}
	if c.Grounding.MinQuoteLength == 0 {
		c.Grounding.MinQuoteLength = 12
	}
	if c.Fetch.MaxRetries == 0 {
		c.Fetch.MaxRetries = 3
	}
	if c.Fetch.RequestsPerMinute == 0 {
		c.Fetch.RequestsPerMinute = 30
	}
	if c.Fetch.MinRequestInterval == 0 {
		c.Fetch.MinRequestInterval = 2 * time.Second
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.QueueDepth == 0 {
		c.Fetch.QueueDepth = 8
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "newsletter-factory/1.0"
	}
	if c.DaysBack == 0 {
		c.DaysBack = 7
	}
	if c.MaxResults == 0 {
		c.MaxResults = 50
	}
}

// Validate checks configuration preconditions. A failure here is a fatal
// programming/configuration error, not a runtime condition.
func (c *Config) Validate() error {
	if c.Freshness.InvestmentTTL <= 0 || c.Freshness.EventTTL <= 0 {
		return fmt.Errorf("config: TTLs must be positive (investment=%v event=%v)",
			c.Freshness.InvestmentTTL, c.Freshness.EventTTL)
	}
	if c.Grounding.MinConfidence < 0 || c.Grounding.MinConfidence > 1 {
		return fmt.Errorf("config: min_confidence must be within [0,1], got %v", c.Grounding.MinConfidence)
	}
	if c.Grounding.MinQuoteLength < 1 {
		return fmt.Errorf("config: min_quote_length must be >= 1, got %d", c.Grounding.MinQuoteLength)
	}
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("config: max_retries must be >= 0, got %d", c.Fetch.MaxRetries)
	}
	if c.Fetch.RequestsPerMinute < 1 {
		return fmt.Errorf("config: requests_per_minute must be >= 1, got %d", c.Fetch.RequestsPerMinute)
	}
	if c.Fetch.QueueDepth < 1 {
		return fmt.Errorf("config: queue_depth must be >= 1, got %d", c.Fetch.QueueDepth)
	}
	return nil
}

// TTLFor returns the cache TTL for a category.
func (c *Config) TTLFor(category domain.Category) time.Duration {
	if category == domain.CategoryEvent {
		return c.Freshness.EventTTL
	}
	return c.Freshness.InvestmentTTL
}

// SourceEnabled reports whether a source is enabled. Sources not listed in
// the config are enabled by default.
func (c *Config) SourceEnabled(name string) bool {
	if c.Sources == nil {
		return true
	}
	enabled, ok := c.Sources[name]
	if !ok {
		return true
	}
	return enabled
}
