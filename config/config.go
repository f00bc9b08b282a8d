// Package config loads application settings from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends for the catalog snapshot.
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

// Defaults.
const (
	DefaultCatalogBaseURL = "https://jellybellywikiapi.onrender.com"
	DefaultTTLSeconds     = 3600
	DefaultFetchTimeout   = 15 * time.Second
	DefaultViewPageSize   = 6
	DefaultPort           = "8080"
	DefaultImageSize      = 128
	DefaultImageHost      = "cdn-tp1.mozu.com"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Cache   CacheConfig   `yaml:"cache"`
	Images  ImagesConfig  `yaml:"images"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	AdminToken string `yaml:"admin_token"` // required on /admin routes; empty allows loopback callers only
}

// Addr returns host:port, stripping a leading colon from the port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strings.TrimPrefix(s.Port, ":")
}

type CatalogConfig struct {
	BaseURL    string        `yaml:"base_url"`
	TTLSeconds int           `yaml:"ttl_seconds"`
	Timeout    time.Duration `yaml:"timeout"`
	PageSize   int           `yaml:"page_size"` // beans per rendered page
}

// TTL returns the revalidate window as a duration.
func (c CatalogConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type CacheConfig struct {
	Backend     string `yaml:"backend"`
	Dir         string `yaml:"dir"`
	DatabaseURL string `yaml:"database_url"`
}

type ImagesConfig struct {
	CacheDir     string   `yaml:"cache_dir"`
	Size         int      `yaml:"size"`
	AllowedHosts []string `yaml:"allowed_hosts"`
}

type ExportConfig struct {
	PublicBaseURL string `yaml:"public_base_url"`
	ChromePath    string `yaml:"chrome_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: DefaultPort,
		},
		Catalog: CatalogConfig{
			BaseURL:    DefaultCatalogBaseURL,
			TTLSeconds: DefaultTTLSeconds,
			Timeout:    DefaultFetchTimeout,
			PageSize:   DefaultViewPageSize,
		},
		Cache: CacheConfig{
			Backend: BackendMemory,
			Dir:     "cache/catalog",
		},
		Images: ImagesConfig{
			CacheDir:     "cache/images",
			Size:         DefaultImageSize,
			AllowedHosts: []string{DefaultImageHost},
		},
		Export: ExportConfig{
			PublicBaseURL: "http://localhost:" + DefaultPort,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. path may be empty, in which case no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("PORT", &c.Server.Port)
	str("ADMIN_TOKEN", &c.Server.AdminToken)
	str("CATALOG_BASE_URL", &c.Catalog.BaseURL)
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("DATABASE_URL", &c.Cache.DatabaseURL)
	str("IMAGE_CACHE_DIR", &c.Images.CacheDir)
	str("PUBLIC_BASE_URL", &c.Export.PublicBaseURL)
	str("CHROME_PATH", &c.Export.ChromePath)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("CATALOG_TTL_SECONDS"); ok && v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CATALOG_TTL_SECONDS=%q is not an integer", ErrInvalidConfig, v)
		}
		c.Catalog.TTLSeconds = ttl
	}

	if v, ok := lookup("CATALOG_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: CATALOG_TIMEOUT=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Catalog.Timeout = d
	}

	if v, ok := lookup("IMAGE_ALLOWED_HOSTS"); ok && v != "" {
		var hosts []string
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
		c.Images.AllowedHosts = hosts
	}

	return nil
}

// Validate checks the configuration for values the application cannot run with.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendBadger, BackendPostgres:
	default:
		return fmt.Errorf("%w: unknown cache backend %q (valid: memory, badger, postgres)", ErrInvalidConfig, c.Cache.Backend)
	}
	if c.Cache.Backend == BackendBadger && c.Cache.Dir == "" {
		return fmt.Errorf("%w: cache.dir is required for the badger backend", ErrInvalidConfig)
	}
	if c.Cache.Backend == BackendPostgres && c.Cache.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required for the postgres backend", ErrInvalidConfig)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog.base_url cannot be empty", ErrInvalidConfig)
	}
	if c.Catalog.TTLSeconds < 0 {
		return fmt.Errorf("%w: catalog.ttl_seconds must be >= 0, got %d", ErrInvalidConfig, c.Catalog.TTLSeconds)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("%w: catalog.timeout must be positive", ErrInvalidConfig)
	}
	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("%w: catalog.page_size must be >= 1, got %d", ErrInvalidConfig, c.Catalog.PageSize)
	}
	if c.Images.Size < 1 {
		return fmt.Errorf("%w: images.size must be >= 1, got %d", ErrInvalidConfig, c.Images.Size)
	}
	return nil
}
