package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/pipeline"
	"github.com/Rahul-web-hub/News-Sentiment-API/pkg/news"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"

	SourceGoogle       = "google"
	SourceGoogleRSS    = "google-rss"
	SourceFinnHub      = "finnhub"
	SourceAlphaVantage = "alphavantage"
	SourceMassive      = "massive"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port        string `yaml:"port"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"server"`
	Cache struct {
		Backend         string        `yaml:"backend"`
		SQLitePath      string        `yaml:"sqlite_path"`
		DatabaseURL     string        `yaml:"database_url"`
		RedisURL        string        `yaml:"redis_url"`
		FreshnessWindow time.Duration `yaml:"freshness_window"`
		MemoryRetention time.Duration `yaml:"memory_retention"`
	} `yaml:"cache"`
	Headlines struct {
		Source       string        `yaml:"source"`
		Limit        int           `yaml:"limit"`
		FetchTimeout time.Duration `yaml:"fetch_timeout"`
		Locale       news.Locale   `yaml:"locale"`
	} `yaml:"headlines"`
	APIKeys struct {
		FinnHub      string `yaml:"finnhub"`
		AlphaVantage string `yaml:"alphavantage"`
		Massive      string `yaml:"massive"`
	} `yaml:"api_keys"`
	LogLevel string `yaml:"log_level"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Cache.Backend = BackendSQLite
	cfg.Cache.SQLitePath = "data/news_sentiment.db"
	cfg.Cache.FreshnessWindow = pipeline.DefaultFreshnessWindow
	cfg.Cache.MemoryRetention = time.Hour
	cfg.Headlines.Source = SourceGoogle
	cfg.Headlines.Limit = pipeline.DefaultHeadlineLimit
	cfg.Headlines.FetchTimeout = news.DefaultTimeout
	cfg.Headlines.Locale = news.DefaultLocale
	cfg.LogLevel = "info"
	return cfg
}

// Override adjusts a loaded config before validation, e.g. from CLI flags.
type Override func(*Config)

// Load reads config from a YAML file (if path is set and exists), then
// applies environment variable overrides and finally any explicit overrides.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	for _, o := range overrides {
		o(cfg)
	}

	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	cfg.Headlines.Source = strings.ToLower(cfg.Headlines.Source)

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.FrontendURL, "FRONTEND_URL")
	setString(&c.Cache.Backend, "CACHE_BACKEND")
	setString(&c.Cache.SQLitePath, "SQLITE_PATH")
	setString(&c.Cache.DatabaseURL, "DATABASE_URL")
	setString(&c.Cache.RedisURL, "REDIS_URL")
	setString(&c.Headlines.Source, "HEADLINE_SOURCE")
	setString(&c.APIKeys.FinnHub, "FINNHUB_API_KEY")
	setString(&c.APIKeys.AlphaVantage, "ALPHA_VANTAGE_API_KEY")
	setString(&c.APIKeys.Massive, "MASSIVE_API_KEY")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("HEADLINE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HEADLINE_LIMIT: %w", err)
		}
		c.Headlines.Limit = n
	}

	for env, dst := range map[string]*time.Duration{
		"FRESHNESS_WINDOW": &c.Cache.FreshnessWindow,
		"MEMORY_RETENTION": &c.Cache.MemoryRetention,
		"FETCH_TIMEOUT":    &c.Headlines.FetchTimeout,
	} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		*dst = d
	}

	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendSQLite:
		if c.Cache.SQLitePath == "" {
			return fmt.Errorf("cache backend %q requires SQLITE_PATH", c.Cache.Backend)
		}
	case BackendPostgres:
		if c.Cache.DatabaseURL == "" {
			return fmt.Errorf("cache backend %q requires DATABASE_URL", c.Cache.Backend)
		}
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache backend %q requires REDIS_URL", c.Cache.Backend)
		}
	case BackendMemory:
		if c.Cache.MemoryRetention > 0 && c.Cache.MemoryRetention < c.Cache.FreshnessWindow {
			return fmt.Errorf("memory retention %s is shorter than freshness window %s", c.Cache.MemoryRetention, c.Cache.FreshnessWindow)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Headlines.Source {
	case SourceGoogle, SourceGoogleRSS:
	case SourceFinnHub:
		if c.APIKeys.FinnHub == "" {
			return fmt.Errorf("headline source %q requires FINNHUB_API_KEY", c.Headlines.Source)
		}
	case SourceAlphaVantage:
		if c.APIKeys.AlphaVantage == "" {
			return fmt.Errorf("headline source %q requires ALPHA_VANTAGE_API_KEY", c.Headlines.Source)
		}
	case SourceMassive:
		if c.APIKeys.Massive == "" {
			return fmt.Errorf("headline source %q requires MASSIVE_API_KEY", c.Headlines.Source)
		}
	default:
		return fmt.Errorf("unknown headline source %q", c.Headlines.Source)
	}

	if c.Headlines.Limit < 1 {
		return fmt.Errorf("headline limit must be positive, got %d", c.Headlines.Limit)
	}
	if c.Cache.FreshnessWindow <= 0 {
		return fmt.Errorf("freshness window must be positive, got %s", c.Cache.FreshnessWindow)
	}
	if c.Headlines.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.Headlines.FetchTimeout)
	}

	return nil
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		HeadlineLimit:   c.Headlines.Limit,
		FreshnessWindow: c.Cache.FreshnessWindow,
	}
}
