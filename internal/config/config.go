// Package config provides configuration loading and validation for ChartScope.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/chartscope/chartscope/internal/filtering"
	"github.com/chartscope/chartscope/internal/telemetry"
)

const (
	// CacheBackendMemory selects the in-process TTL cache
	CacheBackendMemory = "memory"

	// CacheBackendRedis selects the Redis cache backend
	CacheBackendRedis = "redis"
)

const (
	// DependencySourceValues derives chart dependencies from values.yaml annotations
	DependencySourceValues = "values"

	// DependencySourceNone disables dependency extraction
	DependencySourceNone = "none"
)

const (
	// DefaultRegistryBaseURL is the upstream chart registry API
	DefaultRegistryBaseURL = "https://artifacthub.io"

	// DefaultCacheTTLMillis is the default cache entry lifetime (1 hour)
	DefaultCacheTTLMillis = int64(3600000)

	// DefaultCacheMaxBytes is the default memory cache size bound (100MB)
	DefaultCacheMaxBytes = int64(104857600)

	// DefaultSearchLimit is the default search page size
	DefaultSearchLimit = 20

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
	data []byte
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// WithConfigData loads configuration from an in-memory YAML document.
// Used by tests and the embedded example configs.
func WithConfigData(data []byte) Option {
	return func(cfg *loaderConfig) error {
		if len(data) == 0 {
			return fmt.Errorf("data is required")
		}
		cfg.data = data
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Registry configures the upstream chart registry API
	Registry RegistryConfig `yaml:"registry,omitempty"`

	// GitHub configures the README fallback fetcher
	GitHub GitHubConfig `yaml:"github,omitempty"`

	// Cache configures the response cache
	Cache CacheConfig `yaml:"cache,omitempty"`

	// Search configures search behavior and result filtering
	Search SearchConfig `yaml:"search,omitempty"`

	// Compat holds behavior switches for upstream quirks
	Compat CompatConfig `yaml:"compat,omitempty"`

	// Server configures the operational HTTP surface
	Server ServerConfig `yaml:"server,omitempty"`

	// Telemetry configures metrics and tracing
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`

	// Log configures logging output
	Log LogConfig `yaml:"log,omitempty"`
}

// RegistryConfig defines the upstream registry API settings
type RegistryConfig struct {
	// BaseURL is the registry API root, e.g. "https://artifacthub.io"
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// GitHubConfig defines the GitHub README fallback settings
type GitHubConfig struct {
	// Token is an optional bearer token for raw content requests,
	// raising the unauthenticated rate limit
	Token string `yaml:"token,omitempty"`

	// BaseURL overrides the raw content host, e.g. for a caching proxy
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// CacheConfig defines the response cache settings
type CacheConfig struct {
	// Backend selects the cache implementation (memory or redis)
	Backend string `yaml:"backend,omitempty" validate:"omitempty,oneof=memory redis"`

	// TTLMillis is the entry lifetime in milliseconds
	TTLMillis int64 `yaml:"ttl_ms,omitempty" validate:"omitempty,gt=0"`

	// MaxSizeBytes bounds the memory backend's estimated footprint
	MaxSizeBytes int64 `yaml:"max_size_bytes,omitempty" validate:"omitempty,gt=0"`

	// Redis holds connection settings for the redis backend
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// TTL returns the configured entry lifetime as a duration.
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMillis) * time.Millisecond
}

// RedisConfig defines Redis connection settings
type RedisConfig struct {
	// Addr is the Redis server address in host:port form
	Addr string `yaml:"addr" validate:"required,hostname_port"`

	// Password is the optional Redis password
	Password string `yaml:"password,omitempty"`

	// DB is the Redis database number
	DB int `yaml:"db,omitempty" validate:"omitempty,gte=0"`

	// KeyPrefix namespaces cache keys on a shared server
	KeyPrefix string `yaml:"key_prefix,omitempty"`
}

// SearchConfig defines search defaults and result filtering
type SearchConfig struct {
	// DefaultLimit is the page size used when a tool call omits limit
	DefaultLimit int `yaml:"default_limit,omitempty" validate:"omitempty,gt=0,lte=100"`

	// Include is a glob whitelist over repo/name refs; empty includes all
	Include []string `yaml:"include,omitempty"`

	// Exclude is a glob blacklist over repo/name refs; exclude wins
	Exclude []string `yaml:"exclude,omitempty"`
}

// CompatConfig holds switches for quirky upstream behaviors
type CompatConfig struct {
	// DependencySource selects where chart dependencies come from
	// (values or none)
	DependencySource string `yaml:"dependency_source,omitempty" validate:"omitempty,oneof=values none"`
}

// ServerConfig defines the operational HTTP surface
type ServerConfig struct {
	// OpsAddr is the listen address for health/metrics endpoints.
	// Empty disables the operational server entirely.
	OpsAddr string `yaml:"ops_addr,omitempty"`
}

// LogConfig defines logging settings
type LogConfig struct {
	// Level is the minimum level emitted (debug, info, warn, error)
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	// Unstructured switches from JSON to console output for TTY debugging
	Unstructured bool `yaml:"unstructured,omitempty"`
}

// LoadConfig loads, defaults, and validates configuration from a YAML
// file or inline document
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	data := loaderCfg.data
	if data == nil {
		if loaderCfg.path == "" {
			return nil, fmt.Errorf("a config path or inline config data is required")
		}

		var err error
		data, err = os.ReadFile(loaderCfg.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied, suitable
// for running without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.Registry.BaseURL == "" {
		c.Registry.BaseURL = DefaultRegistryBaseURL
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendMemory
	}
	if c.Cache.TTLMillis == 0 {
		c.Cache.TTLMillis = DefaultCacheTTLMillis
	}
	if c.Cache.MaxSizeBytes == 0 {
		c.Cache.MaxSizeBytes = DefaultCacheMaxBytes
	}
	if c.Search.DefaultLimit == 0 {
		c.Search.DefaultLimit = DefaultSearchLimit
	}
	if c.Compat.DependencySource == "" {
		c.Compat.DependencySource = DependencySourceValues
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate performs struct-tag validation plus the cross-field checks
// tags cannot express
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldErrorMessage(fe))
			}
			return errors.New(strings.Join(msgs, ", "))
		}
		return err
	}

	return c.validateCrossFields()
}

func (c *Config) validateCrossFields() error {
	var errs []error

	if c.Cache.Backend == CacheBackendRedis && c.Cache.Redis == nil {
		errs = append(errs, errors.New("cache: the redis backend requires a redis section"))
	}

	if err := filtering.ValidatePatterns(c.Search.Include); err != nil {
		errs = append(errs, fmt.Errorf("search.include: %w", err))
	}
	if err := filtering.ValidatePatterns(c.Search.Exclude); err != nil {
		errs = append(errs, fmt.Errorf("search.exclude: %w", err))
	}

	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}

	return errors.Join(errs...)
}
