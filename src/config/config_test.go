package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load reads and runs from an empty directory
// so a developer's .env cannot leak in.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "DATABASE_URL", "ENVIRONMENT", "JWT_SECRET", "TOKEN_EXPIRY",
		"LOG_LEVEL", "LOG_FORMAT", "CURRENCY", "ALLOWED_ORIGINS", "DEMO_MODE",
		"EODHD_API_KEY", "EODHD_BASE_URL", "EODHD_EXCHANGE", "QUOTE_RATE_LIMIT", "QUOTE_CACHE_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/finance")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 168*time.Hour, cfg.GetTokenExpiry())
	assert.Equal(t, 15*time.Minute, cfg.QuoteCacheTTL())
	assert.False(t, cfg.QuotesEnabled())
	assert.False(t, cfg.DemoMode)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	isolate(t)

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://db/finance")
	t.Setenv("PORT", "9090")
	t.Setenv("CURRENCY", "eur")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("EODHD_API_KEY", "secret")
	t.Setenv("QUOTE_RATE_LIMIT", "2")
	t.Setenv("QUOTE_CACHE_TTL", "1m")
	t.Setenv("TOKEN_EXPIRY", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.DemoMode)
	assert.True(t, cfg.QuotesEnabled())
	assert.Equal(t, 2, cfg.Quotes.RateLimit)
	assert.Equal(t, time.Minute, cfg.QuoteCacheTTL())
	assert.Equal(t, 2*time.Hour, cfg.GetTokenExpiry())
}

func TestLoad_TOMLFileThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "finance.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "7000"
database_url = "postgres://from-file/finance"
currency = "GBP"

[quotes]
api_key = "file-key"
rate_limit = 3
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Port)
	assert.Equal(t, "postgres://from-file/finance", cfg.DatabaseURL)
	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, "file-key", cfg.Quotes.APIKey)
	assert.Equal(t, 3, cfg.Quotes.RateLimit)
	assert.Equal(t, "https://eodhd.com/api", cfg.Quotes.BaseURL)
}

func TestLoad_BadValues(t *testing.T) {
	cases := map[string]string{
		"DEMO_MODE":        "maybe",
		"QUOTE_RATE_LIMIT": "fast",
		"TOKEN_EXPIRY":     "forever",
		"QUOTE_CACHE_TTL":  "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv("DATABASE_URL", "postgres://db/finance")
			t.Setenv(key, value)

			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://db/finance")
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingConfigFile(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	assert.Error(t, err)
}
