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

// Dataset drivers.
const (
	DriverFile        = "file"
	DriverHTTP        = "http"
	DriverObjectStore = "objectstore"
	DriverPostgres    = "postgres"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Selection SelectionConfig `yaml:"selection"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
	// Exempt paths bypass the limiter; the static catalog reads are cheap.
	Exempt []string `yaml:"exempt"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// DatasetConfig selects where the reading and daily-average sets come from.
type DatasetConfig struct {
	Driver          string            `yaml:"driver"`
	ReadingsName    string            `yaml:"readingsName"`
	DailyName       string            `yaml:"dailyName"`
	Dir             string            `yaml:"dir"`
	BaseURL         string            `yaml:"baseUrl"`
	FetchTimeout    time.Duration     `yaml:"fetchTimeout"`
	RefreshInterval time.Duration     `yaml:"refreshInterval"`
	ObjectStore     ObjectStoreConfig `yaml:"objectStore"`
	Postgres        PostgresConfig    `yaml:"postgres"`
}

// ObjectStoreConfig addresses an S3-compatible bucket.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SelectionConfig controls session selection storage.
type SelectionConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookieName"`
	Valkey     ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for session storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_EXEMPT"); v != "" {
		cfg.HTTP.RateLimit.Exempt = splitList(v)
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("DATASET_DRIVER"); v != "" {
		cfg.Dataset.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("DATASET_READINGS_NAME"); v != "" {
		cfg.Dataset.ReadingsName = v
	}
	if v := os.Getenv("DATASET_DAILY_NAME"); v != "" {
		cfg.Dataset.DailyName = v
	}
	if v := os.Getenv("DATASET_DIR"); v != "" {
		cfg.Dataset.Dir = v
	}
	if v := os.Getenv("DATASET_BASE_URL"); v != "" {
		cfg.Dataset.BaseURL = v
	}
	if v := os.Getenv("DATASET_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Dataset.RefreshInterval = parsed
		}
	}
	if v := os.Getenv("DATASET_OBJECT_ENDPOINT"); v != "" {
		cfg.Dataset.ObjectStore.Endpoint = v
	}
	if v := os.Getenv("DATASET_OBJECT_ACCESS_KEY"); v != "" {
		cfg.Dataset.ObjectStore.AccessKey = v
	}
	if v := os.Getenv("DATASET_OBJECT_SECRET_KEY"); v != "" {
		cfg.Dataset.ObjectStore.SecretKey = v
	}
	if v := os.Getenv("DATASET_OBJECT_BUCKET"); v != "" {
		cfg.Dataset.ObjectStore.Bucket = v
	}
	if v := os.Getenv("DATASET_OBJECT_REGION"); v != "" {
		cfg.Dataset.ObjectStore.Region = v
	}
	if v := os.Getenv("DATASET_POSTGRES_DSN"); v != "" {
		cfg.Dataset.Postgres.DSN = v
	}
	if v := os.Getenv("DATASET_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dataset.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("DATASET_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dataset.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("SELECTION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Selection.TTL = parsed
		}
	}
	if v := os.Getenv("SELECTION_COOKIE_NAME"); v != "" {
		cfg.Selection.CookieName = v
	}
	if v := os.Getenv("SELECTION_VALKEY_ENABLED"); v != "" {
		cfg.Selection.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("SELECTION_VALKEY_ADDR"); v != "" {
		cfg.Selection.Valkey.Addr = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
				Exempt: []string{
					"/api/v1/metrics",
					"/api/v1/zones",
				},
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/healthz",
				},
			},
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Dataset: DatasetConfig{
			Driver:       DriverFile,
			ReadingsName: "SAMBA_cleaned_data_NEW.csv",
			DailyName:    "data_daily_avg.csv",
			Dir:          "data",
			FetchTimeout: 10 * time.Second,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Selection: SelectionConfig{
			TTL:        12 * time.Hour,
			CookieName: "zone_session",
			Valkey: ValkeyConfig{
				Prefix: "heatmap",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}

	switch c.Dataset.Driver {
	case DriverFile:
	case DriverHTTP:
		if strings.TrimSpace(c.Dataset.BaseURL) == "" {
			return errors.New("dataset.baseUrl cannot be empty for the http driver")
		}
	case DriverObjectStore:
		if strings.TrimSpace(c.Dataset.ObjectStore.Endpoint) == "" {
			return errors.New("dataset.objectStore.endpoint cannot be empty for the objectstore driver")
		}
		if strings.TrimSpace(c.Dataset.ObjectStore.Bucket) == "" {
			return errors.New("dataset.objectStore.bucket cannot be empty for the objectstore driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Dataset.Postgres.DSN) == "" {
			return errors.New("dataset.postgres.dsn cannot be empty for the postgres driver")
		}
	default:
		return fmt.Errorf("dataset.driver %q is not one of file, http, objectstore, postgres", c.Dataset.Driver)
	}
	if c.Dataset.Driver != DriverPostgres {
		if strings.TrimSpace(c.Dataset.ReadingsName) == "" {
			return errors.New("dataset.readingsName cannot be empty")
		}
		if strings.TrimSpace(c.Dataset.DailyName) == "" {
			return errors.New("dataset.dailyName cannot be empty")
		}
	}
	if c.Dataset.RefreshInterval < 0 {
		return errors.New("dataset.refreshInterval cannot be negative")
	}

	if c.Selection.TTL < 0 {
		return errors.New("selection.ttl cannot be negative")
	}
	if strings.TrimSpace(c.Selection.CookieName) == "" {
		return errors.New("selection.cookieName cannot be empty")
	}
	if c.Selection.Valkey.Enabled && strings.TrimSpace(c.Selection.Valkey.Addr) == "" {
		return errors.New("selection.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
