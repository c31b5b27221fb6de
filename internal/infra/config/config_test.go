package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, DriverFile, cfg.Dataset.Driver)
	require.Equal(t, "SAMBA_cleaned_data_NEW.csv", cfg.Dataset.ReadingsName)
	require.Equal(t, "data_daily_avg.csv", cfg.Dataset.DailyName)
	require.Equal(t, "zone_session", cfg.Selection.CookieName)
	require.False(t, cfg.Selection.Valkey.Enabled)
	require.Equal(t, []string{"/api/v1/metrics", "/api/v1/zones"}, cfg.HTTP.RateLimit.Exempt)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
http:
  address: ":9000"
dataset:
  driver: http
  baseUrl: https://example.com/data
  refreshInterval: 5m
selection:
  ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", ":9100")
	t.Setenv("SELECTION_VALKEY_ENABLED", "true")
	t.Setenv("SELECTION_VALKEY_ADDR", "localhost:6379")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HTTP_RATE_LIMIT_EXEMPT", "/api/v1/zones")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9100", cfg.HTTP.Address)
	require.Equal(t, DriverHTTP, cfg.Dataset.Driver)
	require.Equal(t, 5*time.Minute, cfg.Dataset.RefreshInterval)
	require.Equal(t, time.Hour, cfg.Selection.TTL)
	require.True(t, cfg.Selection.Valkey.Enabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, []string{"/api/v1/zones"}, cfg.HTTP.RateLimit.Exempt)
	// untouched defaults survive the partial file
	require.Equal(t, "zone_session", cfg.Selection.CookieName)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }},
		{name: "unknown driver", mutate: func(c *Config) { c.Dataset.Driver = "ftp" }},
		{name: "http without url", mutate: func(c *Config) { c.Dataset.Driver = DriverHTTP }},
		{name: "objectstore without bucket", mutate: func(c *Config) {
			c.Dataset.Driver = DriverObjectStore
			c.Dataset.ObjectStore.Endpoint = "https://r2.example"
		}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Dataset.Driver = DriverPostgres }},
		{name: "missing readings name", mutate: func(c *Config) { c.Dataset.ReadingsName = " " }},
		{name: "negative refresh", mutate: func(c *Config) { c.Dataset.RefreshInterval = -time.Second }},
		{name: "valkey without addr", mutate: func(c *Config) { c.Selection.Valkey.Enabled = true }},
		{name: "empty cookie", mutate: func(c *Config) { c.Selection.CookieName = "" }},
		{name: "bad rate limit", mutate: func(c *Config) { c.HTTP.RateLimit.Burst = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}
