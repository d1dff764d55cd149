// Package config loads server settings from defaults, an optional TOML file,
// an optional .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrMissingAPIKey is returned when no upstream metadata credential is configured.
var ErrMissingAPIKey = errors.New("TMDB_API_KEY is not set: an upstream API key is required to serve availability")

// FallbackPolicy decides what availability lookups return when upstream fails.
type FallbackPolicy string

const (
	FallbackEmpty FallbackPolicy = "empty"
	FallbackStale FallbackPolicy = "stale"
	FallbackDemo  FallbackPolicy = "demo"
)

// DedupePolicy decides how duplicate (provider, kind) records are collapsed.
type DedupePolicy string

const (
	DedupeMergeFirst DedupePolicy = "merge-first"
	DedupeMergeLast  DedupePolicy = "merge-last"
)

// Settings holds all server configuration.
type Settings struct {
	TMDBAPIKey    string `toml:"tmdb_api_key"`
	TMDBBaseURL   string `toml:"tmdb_base_url"`
	TMDBLanguage  string `toml:"tmdb_language"`
	HTTPTimeoutMs int    `toml:"http_timeout_ms"`
	RetryAttempts int    `toml:"retry_attempts"`
	UpstreamRPS   int    `toml:"upstream_rps"`

	ListenAddr     string   `toml:"listen_addr"`
	AllowedOrigins []string `toml:"allowed_origins"`

	CacheDir               string `toml:"cache_dir"`
	AutocompleteTTLMinutes int    `toml:"autocomplete_ttl_minutes"`
	AvailabilityTTLMinutes int    `toml:"availability_ttl_minutes"`

	FallbackPolicy FallbackPolicy `toml:"fallback_policy"`
	DedupePolicy   DedupePolicy   `toml:"dedupe_policy"`

	SchemeFallbackMs int    `toml:"scheme_fallback_ms"`
	IntentFallbackMs int    `toml:"intent_fallback_ms"`
	GenericWebURL    string `toml:"generic_web_url"`

	AnalyticsEndpoint string `toml:"analytics_endpoint"`
	AnalyticsWorkers  int    `toml:"analytics_workers"`

	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
	RateLimitBurst     int `toml:"rate_limit_burst"`

	LogFile       string `toml:"log_file"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	LogMaxAgeDays int    `toml:"log_max_age_days"`
	Debug         bool   `toml:"debug"`
}

// Default returns the default settings. The API key is intentionally empty.
func Default() Settings {
	return Settings{
		TMDBBaseURL:            "https://api.themoviedb.org/3",
		TMDBLanguage:           "en-US",
		HTTPTimeoutMs:          10000,
		RetryAttempts:          2,
		UpstreamRPS:            40,
		ListenAddr:             ":8080",
		CacheDir:               filepath.Join(os.TempDir(), "streamscout-cache"),
		AutocompleteTTLMinutes: 60,
		AvailabilityTTLMinutes: 360,
		FallbackPolicy:         FallbackEmpty,
		DedupePolicy:           DedupeMergeFirst,
		SchemeFallbackMs:       1500,
		IntentFallbackMs:       2500,
		GenericWebURL:          "https://www.justwatch.com",
		AnalyticsWorkers:       4,
		RateLimitPerMinute:     120,
		RateLimitBurst:         30,
		LogMaxSizeMB:           50,
		LogMaxBackups:          3,
		LogMaxAgeDays:          14,
	}
}

// HTTPTimeout is the per-request upstream timeout.
func (s Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutMs) * time.Millisecond
}

func (s Settings) SchemeFallback() time.Duration {
	return time.Duration(s.SchemeFallbackMs) * time.Millisecond
}

func (s Settings) IntentFallback() time.Duration {
	return time.Duration(s.IntentFallbackMs) * time.Millisecond
}

func (s Settings) AutocompleteTTL() time.Duration {
	return time.Duration(s.AutocompleteTTLMinutes) * time.Minute
}

func (s Settings) AvailabilityTTL() time.Duration {
	return time.Duration(s.AvailabilityTTLMinutes) * time.Minute
}

// Validate checks settings are usable. A missing API key yields ErrMissingAPIKey.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.TMDBAPIKey) == "" {
		return ErrMissingAPIKey
	}
	return s.validateLocal()
}

// validateLocal checks everything except upstream credentials.
func (s Settings) validateLocal() error {
	if u, err := url.Parse(s.TMDBBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("tmdb_base_url %q is not an absolute URL", s.TMDBBaseURL)
	}
	switch s.FallbackPolicy {
	case FallbackEmpty, FallbackStale, FallbackDemo:
	default:
		return fmt.Errorf("unsupported fallback_policy %q (valid: empty, stale, demo)", s.FallbackPolicy)
	}
	switch s.DedupePolicy {
	case DedupeMergeFirst, DedupeMergeLast:
	default:
		return fmt.Errorf("unsupported dedupe_policy %q (valid: merge-first, merge-last)", s.DedupePolicy)
	}
	if s.SchemeFallbackMs <= 0 || s.IntentFallbackMs <= 0 {
		return fmt.Errorf("fallback timers must be positive (scheme=%dms intent=%dms)", s.SchemeFallbackMs, s.IntentFallbackMs)
	}
	if s.HTTPTimeoutMs <= 0 {
		return fmt.Errorf("http_timeout_ms must be positive")
	}
	if s.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be at least 1")
	}
	if s.ListenAddr == "" {
		return fmt.Errorf("listen_addr cannot be empty")
	}
	return nil
}

// Manager loads settings from a TOML file path and an optional .env file.
type Manager struct {
	path    string
	envFile string
}

// NewManager constructs a Manager. Either path may be empty.
func NewManager(path, envFile string) *Manager {
	return &Manager{path: path, envFile: envFile}
}

// Load merges defaults < TOML file < .env file < process environment and validates.
func (m *Manager) Load() (Settings, error) {
	s, err := m.merge()
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadOffline is Load for commands that never call upstream: the API key may
// be absent, every other setting is still validated.
func (m *Manager) LoadOffline() (Settings, error) {
	s, err := m.merge()
	if err != nil {
		return Settings{}, err
	}
	if err := s.validateLocal(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (m *Manager) merge() (Settings, error) {
	s := Default()

	if m.path != "" {
		data, err := os.ReadFile(filepath.Clean(m.path))
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &s); err != nil {
				return Settings{}, fmt.Errorf("parsing config %s: %w", m.path, err)
			}
		case os.IsNotExist(err):
		default:
			return Settings{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if m.envFile != "" {
		if err := LoadEnvFile(m.envFile); err != nil {
			return Settings{}, fmt.Errorf("reading env file: %w", err)
		}
	}
	applyEnv(&s)
	return s, nil
}
