// Package config loads the YAML run configuration. Values may reference
// environment variables (${ADZUNA_APP_KEY} style); a .env file alongside
// the process is honored when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roleradar/roleradar/internal/adapter"
	"github.com/roleradar/roleradar/internal/match"
)

// Config is the root configuration for a scrape run.
type Config struct {
	Roles       []string
	Location    string
	MatchMode   match.Mode
	Sources     []string
	Adzuna      AdzunaConfig
	RateLimit   RateLimitConfig
	Store       StoreConfig
	HTTPTimeout time.Duration
	Schedule    string // cron expression for watch mode
}

// AdzunaConfig holds the Adzuna API credential pair. Both empty means the
// Adzuna source is disabled rather than misconfigured.
type AdzunaConfig struct {
	AppID  string
	AppKey string
}

// RateLimitConfig controls per-source request spacing.
type RateLimitConfig struct {
	MinDelay        time.Duration
	SourceOverrides map[string]time.Duration
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string
}

// defaultSources are the scrapers that work without credentials. Adzuna
// joins the run when its keys are configured.
var defaultSources = []string{
	adapter.SourceSeek,
	adapter.SourceIndeed,
	adapter.SourceJora,
	adapter.SourceLinkedIn,
	adapter.SourceGradConnection,
}

// defaultSourceDelays is the per-source politeness floor. LinkedIn gets
// extra headroom; it is the quickest to start returning 999s.
var defaultSourceDelays = map[string]time.Duration{
	adapter.SourceSeek:           2 * time.Second,
	adapter.SourceAdzuna:         1 * time.Second,
	adapter.SourceIndeed:         2 * time.Second,
	adapter.SourceJora:           2 * time.Second,
	adapter.SourceLinkedIn:       3 * time.Second,
	adapter.SourceGradConnection: 2 * time.Second,
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Roles       []string           `yaml:"roles"`
	Location    string             `yaml:"location"`
	MatchMode   string             `yaml:"match_mode"`
	Sources     []string           `yaml:"sources"`
	Adzuna      rawAdzunaConfig    `yaml:"adzuna"`
	RateLimit   rawRateLimitConfig `yaml:"rate_limit"`
	Store       rawStoreConfig     `yaml:"store"`
	HTTPTimeout string             `yaml:"http_timeout"`
	Schedule    string             `yaml:"schedule"`
}

type rawAdzunaConfig struct {
	AppID  string `yaml:"app_id"`
	AppKey string `yaml:"app_key"`
}

type rawRateLimitConfig struct {
	MinDelay        string            `yaml:"min_delay"`
	SourceOverrides map[string]string `yaml:"source_overrides"`
}

type rawStoreConfig struct {
	Path string `yaml:"path"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. A .env file in the working directory is loaded first so
// ${VAR} references in the YAML can pick up local credentials.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	minDelay := 2 * time.Second
	if raw.RateLimit.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
	}

	overrides := make(map[string]time.Duration, len(defaultSourceDelays))
	for source, d := range defaultSourceDelays {
		overrides[source] = d
	}
	for source, rawDelay := range raw.RateLimit.SourceOverrides {
		d, err := time.ParseDuration(rawDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.source_overrides[%q]: %w", source, err)
		}
		overrides[source] = d
	}

	httpTimeout := 30 * time.Second
	if raw.HTTPTimeout != "" {
		httpTimeout, err = time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse http_timeout %q: %w", raw.HTTPTimeout, err)
		}
	}

	mode := match.ModeExact
	if raw.MatchMode != "" {
		mode = match.Mode(raw.MatchMode)
	}

	location := raw.Location
	if location == "" {
		location = adapter.DefaultRegion
	}

	storePath := raw.Store.Path
	if storePath == "" {
		storePath = "jobs.db"
	}

	adzuna := AdzunaConfig{AppID: raw.Adzuna.AppID, AppKey: raw.Adzuna.AppKey}
	if adzuna.AppID == "" {
		adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	}
	if adzuna.AppKey == "" {
		adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	}

	sources := raw.Sources
	if len(sources) == 0 {
		sources = append([]string(nil), defaultSources...)
		if adzuna.AppID != "" && adzuna.AppKey != "" {
			sources = append(sources, adapter.SourceAdzuna)
		}
	}

	cfg := &Config{
		Roles:     raw.Roles,
		Location:  location,
		MatchMode: mode,
		Sources:   sources,
		Adzuna:    adzuna,
		RateLimit: RateLimitConfig{
			MinDelay:        minDelay,
			SourceOverrides: overrides,
		},
		Store:       StoreConfig{Path: storePath},
		HTTPTimeout: httpTimeout,
		Schedule:    raw.Schedule,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Roles) == 0 {
		return fmt.Errorf("at least one role is required")
	}
	for _, role := range cfg.Roles {
		if role == "" {
			return fmt.Errorf("roles must not contain empty entries")
		}
	}
	if !cfg.MatchMode.Valid() {
		return fmt.Errorf("match_mode must be %q or %q, got %q",
			match.ModeExact, match.ModeSimilar, cfg.MatchMode)
	}

	known := make(map[string]bool, len(adapter.AllSources()))
	for _, s := range adapter.AllSources() {
		known[s] = true
	}
	for _, s := range cfg.Sources {
		if !known[s] {
			return fmt.Errorf("unknown source %q (supported: %v)", s, adapter.AllSources())
		}
	}
	if cfg.RateLimit.MinDelay < 0 {
		return fmt.Errorf("rate_limit.min_delay must not be negative, got %v", cfg.RateLimit.MinDelay)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	return nil
}
