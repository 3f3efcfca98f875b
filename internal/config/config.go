package config

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// DefaultBaseURL is used when neither the environment nor the config file names a backend.
const DefaultBaseURL = "http://localhost:3000"

// Environment variables consulted for the backend URL, highest precedence first.
var baseURLEnv = []string{"NEWSASSIST_API_URL", "API_BASE_URL", "VITE_API_URL"}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type FeedConfig struct {
	Limit      int      `yaml:"limit"`
	Categories []string `yaml:"categories"`
}

type SearchConfig struct {
	Provider  string  `yaml:"provider"` // "groq" or "google"
	TopK      int     `yaml:"top_k"`
	Threshold float64 `yaml:"threshold"`
}

type TrendingConfig struct {
	Days int `yaml:"days"`
	TopN int `yaml:"top_n"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelemetryConfig enables span export. An empty endpoint keeps tracing local.
type TelemetryConfig struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRatio  float64 `yaml:"sample_ratio"`
}

type Config struct {
	API       APIConfig       `yaml:"api"`
	Feed      FeedConfig      `yaml:"feed"`
	Search    SearchConfig    `yaml:"search"`
	Trending  TrendingConfig  `yaml:"trending"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// TimeoutDuration returns the per-request timeout. Zero means no timeout.
func (c *Config) TimeoutDuration() time.Duration {
	if c.API.Timeout == "" {
		return 60 * time.Second
	}
	if c.API.Timeout == "0" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// FeedLimit returns the feed page size, defaulting to 50.
func (c *Config) FeedLimit() int {
	if c.Feed.Limit <= 0 {
		return 50
	}
	return c.Feed.Limit
}

// TrendingWindow returns the trending day window and result count.
func (c *Config) TrendingWindow() (days, topN int) {
	days, topN = c.Trending.Days, c.Trending.TopN
	if days <= 0 {
		days = 7
	}
	if topN <= 0 {
		topN = 10
	}
	return days, topN
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsassist", "config.yaml")
}

// LogPath is where the TUI writes its log, since it owns the terminal.
func LogPath() string {
	return filepath.Join(xdg.StateHome, "newsassist", "newsassist.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path (or the XDG default), overlays the
// environment and validates the result. The returned Config is built once
// per process and handed to the API client.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := defaults
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: embedded defaults still apply
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		mergeDefaults(&fileCfg, defaults)
		cfg = &fileCfg
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeDefaults fills zero-valued settings from defaults and appends default
// categories the user file does not list yet.
func mergeDefaults(cfg, defaults *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.Timeout == "" {
		cfg.API.Timeout = defaults.API.Timeout
	}
	if cfg.Feed.Limit == 0 {
		cfg.Feed.Limit = defaults.Feed.Limit
	}
	if cfg.Search.Provider == "" {
		cfg.Search.Provider = defaults.Search.Provider
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = defaults.Search.TopK
	}
	if cfg.Search.Threshold == 0 {
		cfg.Search.Threshold = defaults.Search.Threshold
	}
	if cfg.Trending.Days == 0 {
		cfg.Trending.Days = defaults.Trending.Days
	}
	if cfg.Trending.TopN == 0 {
		cfg.Trending.TopN = defaults.Trending.TopN
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if cfg.Telemetry.SampleRatio == 0 {
		cfg.Telemetry.SampleRatio = defaults.Telemetry.SampleRatio
	}

	seen := make(map[string]bool, len(cfg.Feed.Categories))
	for _, c := range cfg.Feed.Categories {
		seen[c] = true
	}
	for _, c := range defaults.Feed.Categories {
		if !seen[c] {
			cfg.Feed.Categories = append(cfg.Feed.Categories, c)
		}
	}
}

// applyEnv loads a .env file from the working directory (without overriding
// variables already set) and lets the environment pick the backend URL.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
	for _, key := range baseURLEnv {
		if v := os.Getenv(key); v != "" {
			cfg.API.BaseURL = v
			return
		}
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks a Config assembled outside Load, e.g. after flag overrides.
func Validate(cfg *Config) error {
	return validate(cfg)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url: missing host in %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != "" && cfg.API.Timeout != "0" {
		if _, err := time.ParseDuration(cfg.API.Timeout); err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
	}

	validProviders := map[string]bool{"": true, "groq": true, "google": true}
	if !validProviders[cfg.Search.Provider] {
		return fmt.Errorf("search.provider: unknown provider %q (valid: groq, google)", cfg.Search.Provider)
	}
	if cfg.Search.Threshold < 0 || cfg.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold: must be between 0 and 1, got %v", cfg.Search.Threshold)
	}
	if cfg.Search.TopK < 0 {
		return fmt.Errorf("search.top_k: must be positive, got %d", cfg.Search.TopK)
	}
	if cfg.Feed.Limit < 0 {
		return fmt.Errorf("feed.limit: must be positive, got %d", cfg.Feed.Limit)
	}
	if cfg.Trending.Days < 0 || cfg.Trending.TopN < 0 {
		return fmt.Errorf("trending: days and top_n must be positive")
	}

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level: invalid level %q (valid: debug, info, warn, error)", cfg.Log.Level)
	}
	validFormats := map[string]bool{"": true, "text": true, "json": true}
	if !validFormats[cfg.Log.Format] {
		return fmt.Errorf("log.format: invalid format %q (valid: text, json)", cfg.Log.Format)
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry.sample_ratio: must be between 0 and 1, got %v", cfg.Telemetry.SampleRatio)
	}
	return nil
}
