package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const devJWTSecret = "dev-jwt-secret-change-in-production"

type Config struct {
	Port           string   `toml:"port"`
	DatabaseURL    string   `toml:"database_url"`
	Environment    string   `toml:"environment"`
	JWTSecret      string   `toml:"jwt_secret"`
	TokenExpiry    string   `toml:"token_expiry"`
	LogLevel       string   `toml:"log_level"`
	LogFormat      string   `toml:"log_format"`
	AllowedOrigins []string `toml:"allowed_origins"`
	DemoMode       bool     `toml:"demo_mode"`
	Currency       string   `toml:"currency"`
	Quotes         Quotes   `toml:"quotes"`
}

// Quotes configures the optional price lookup. An empty APIKey disables it.
type Quotes struct {
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	Exchange  string `toml:"exchange"`
	RateLimit int    `toml:"rate_limit"`
	CacheTTL  string `toml:"cache_ttl"`
}

func Default() Config {
	return Config{
		Port:           "8080",
		Environment:    "development",
		JWTSecret:      devJWTSecret,
		TokenExpiry:    "168h",
		LogLevel:       "info",
		LogFormat:      "console",
		AllowedOrigins: []string{"http://localhost:3000"},
		Currency:       "USD",
		Quotes: Quotes{
			BaseURL:   "https://eodhd.com/api",
			Exchange:  "US",
			RateLimit: 5,
			CacheTTL:  "15m",
		},
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// CONFIG_FILE (if any), then the environment, including a .env file.
func Load() (Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenExpiry = getEnv("TOKEN_EXPIRY", cfg.TokenExpiry)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Currency = strings.ToUpper(getEnv("CURRENCY", cfg.Currency))
	cfg.Quotes.APIKey = getEnv("EODHD_API_KEY", cfg.Quotes.APIKey)
	cfg.Quotes.BaseURL = getEnv("EODHD_BASE_URL", cfg.Quotes.BaseURL)
	cfg.Quotes.Exchange = getEnv("EODHD_EXCHANGE", cfg.Quotes.Exchange)
	cfg.Quotes.CacheTTL = getEnv("QUOTE_CACHE_TTL", cfg.Quotes.CacheTTL)

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("DEMO_MODE"); ok {
		demo, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEMO_MODE: %w", err)
		}
		cfg.DemoMode = demo
	}
	if v, ok := os.LookupEnv("QUOTE_RATE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QUOTE_RATE_LIMIT: %w", err)
		}
		cfg.Quotes.RateLimit = n
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == devJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	if _, err := time.ParseDuration(c.TokenExpiry); err != nil {
		return fmt.Errorf("TOKEN_EXPIRY: %w", err)
	}
	if _, err := time.ParseDuration(c.Quotes.CacheTTL); err != nil {
		return fmt.Errorf("QUOTE_CACHE_TTL: %w", err)
	}
	return nil
}

func (c Config) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 168 * time.Hour
	}
	return d
}

func (c Config) QuoteCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Quotes.CacheTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// QuotesEnabled is false when no EODHD key is configured.
func (c Config) QuotesEnabled() bool {
	return c.Quotes.APIKey != ""
}

func (c Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
