package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/JimJafar/pension-tracker/internal/logger"
)

// Config holds application configuration
type Config struct {
	// Server
	Env        string
	Port       string
	CORSOrigin string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Market data
	AlphaVantageAPIKey       string
	AlphaVantageBaseURL      string
	AlphaVantageSymbolSuffix string
	AlphaVantageCurrency     string
	QuoteCacheTTL            time.Duration
	QuoteRequestInterval     time.Duration
	QuoteFetchTimeout        time.Duration

	// Login throttling, attempts per client IP per minute
	LoginRatePerMinute int

	// Seed user
	InitialUsername string
	InitialPassword string
}

var appConfig *Config

const devSessionSecret = "fallback-secret-key-for-dev-only"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using process environment")
	}

	env := getEnv("ENV", "development")
	config := &Config{
		Env:        env,
		Port:       getEnv("PORT", "3000"),
		CORSOrigin: getEnv("CORS_ORIGIN", defaultCORSOrigin(env)),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "pension"),
		DBPassword: getEnv("DB_PASSWORD", "pension"),
		DBName:     getEnv("DB_NAME", "pension_tracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "./pension_tracker.db"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),

		AlphaVantageAPIKey:       getEnv("ALPHAVANTAGE_API_KEY", ""),
		AlphaVantageBaseURL:      getEnv("ALPHAVANTAGE_BASE_URL", "https://www.alphavantage.co"),
		AlphaVantageSymbolSuffix: getEnv("ALPHAVANTAGE_SYMBOL_SUFFIX", ".LON"),
		AlphaVantageCurrency:     getEnv("ALPHAVANTAGE_CURRENCY", "USD"),
		QuoteCacheTTL:            getDuration("QUOTE_CACHE_TTL", 15*time.Minute),
		QuoteRequestInterval:     getDuration("QUOTE_REQUEST_INTERVAL", 12*time.Second),
		QuoteFetchTimeout:        getDuration("QUOTE_FETCH_TIMEOUT", 30*time.Second),

		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),

		InitialUsername: getEnv("INITIAL_USERNAME", "admin"),
		InitialPassword: getEnv("INITIAL_PASSWORD", "changeme"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			logger.Get().Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use sqlite or postgres)", c.DBDriver)
	}

	var missing []string
	if c.SessionSecret == "" {
		if c.IsProduction() {
			missing = append(missing, "SESSION_SECRET")
		} else {
			c.SessionSecret = devSessionSecret
		}
	}
	if c.AlphaVantageAPIKey == "" {
		if c.IsProduction() {
			missing = append(missing, "ALPHAVANTAGE_API_KEY")
		} else {
			logger.Get().Warn("ALPHAVANTAGE_API_KEY is not set; stock prices will be unavailable")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func defaultCORSOrigin(env string) string {
	if env == "development" {
		return "http://localhost:5173"
	}
	return ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Get().Warnf("invalid %s value '%s', falling back to %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.Get().Warnf("invalid %s value '%s', falling back to %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
