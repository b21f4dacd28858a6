package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Data        DataConfig    `toml:"data"`
	Storage     StorageConfig `toml:"storage"`
	Cache       CacheConfig   `toml:"cache"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
	// EnableReload exposes POST /api/reload. It is always on in dev mode.
	EnableReload bool `toml:"enable_reload"`
}

// DataConfig selects where product and cycle data is loaded from.
// Source is "embedded" (compiled-in), "dir" or "http".
type DataConfig struct {
	Source          string `toml:"source"`
	Dir             string `toml:"dir"`
	BaseURL         string `toml:"base_url"`
	FetchTimeout    string `toml:"fetch_timeout"`
	RefreshInterval string `toml:"refresh_interval"`
	Locale          string `toml:"locale"`
}

// GetFetchTimeout parses the fetch timeout. Zero means no timeout.
func (c *DataConfig) GetFetchTimeout() time.Duration {
	if c.FetchTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetRefreshInterval parses the refresh interval. Zero disables periodic reloads.
func (c *DataConfig) GetRefreshInterval() time.Duration {
	if c.RefreshInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// StorageConfig contains storage layer settings.
// Backend is "badger" (default), "redis" or "memory".
type StorageConfig struct {
	Backend string       `toml:"backend"`
	Badger  BadgerConfig `toml:"badger"`
	Redis   RedisConfig  `toml:"redis"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// CacheConfig controls the product list response cache.
type CacheConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

// GetTTL parses the cache TTL. Zero disables the cache.
func (c *CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// IsDevMode reports whether the portal runs in dev mode.
func (c *Config) IsDevMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "dev")
}

// Validate returns a list of configuration problems. Empty means valid.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}

	switch c.Data.Source {
	case "embedded":
	case "dir":
		if c.Data.Dir == "" {
			issues = append(issues, "data.dir is required when data.source = \"dir\" (WEALTH_DATA_DIR)")
		}
	case "http":
		if c.Data.BaseURL == "" {
			issues = append(issues, "data.base_url is required when data.source = \"http\" (WEALTH_DATA_BASE_URL)")
		}
	default:
		issues = append(issues, fmt.Sprintf("data.source must be embedded, dir or http (got %q)", c.Data.Source))
	}
	if c.Data.FetchTimeout != "" {
		if _, err := time.ParseDuration(c.Data.FetchTimeout); err != nil {
			issues = append(issues, fmt.Sprintf("data.fetch_timeout is not a duration: %q", c.Data.FetchTimeout))
		}
	}

	switch c.Storage.Backend {
	case "badger":
		if c.Storage.Badger.Path == "" {
			issues = append(issues, "storage.badger.path is required for the badger backend (WEALTH_BADGER_PATH)")
		}
	case "redis":
		if c.Storage.Redis.Addr == "" {
			issues = append(issues, "storage.redis.addr is required for the redis backend (WEALTH_REDIS_ADDR)")
		}
	case "memory":
	default:
		issues = append(issues, fmt.Sprintf("storage.backend must be badger, redis or memory (got %q)", c.Storage.Backend))
	}

	return issues
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies WEALTH_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("WEALTH_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("WEALTH_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("WEALTH_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if reload := os.Getenv("WEALTH_ENABLE_RELOAD"); reload != "" {
		if b, err := strconv.ParseBool(reload); err == nil {
			config.Server.EnableReload = b
		}
	}
	if source := os.Getenv("WEALTH_DATA_SOURCE"); source != "" {
		config.Data.Source = source
	}
	if dir := os.Getenv("WEALTH_DATA_DIR"); dir != "" {
		config.Data.Dir = dir
	}
	if baseURL := os.Getenv("WEALTH_DATA_BASE_URL"); baseURL != "" {
		config.Data.BaseURL = baseURL
	}
	if locale := os.Getenv("WEALTH_DATA_LOCALE"); locale != "" {
		config.Data.Locale = locale
	}
	if backend := os.Getenv("WEALTH_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if badgerPath := os.Getenv("WEALTH_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if addr := os.Getenv("WEALTH_REDIS_ADDR"); addr != "" {
		config.Storage.Redis.Addr = addr
	}
	if password := os.Getenv("WEALTH_REDIS_PASSWORD"); password != "" {
		config.Storage.Redis.Password = password
	}
	if level := os.Getenv("WEALTH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("WEALTH_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ReloadEnabled reports whether the reload endpoint is served.
func (c *Config) ReloadEnabled() bool {
	return c.Server.EnableReload || c.IsDevMode()
}

// BaseURL returns the externally reachable portal URL.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}
