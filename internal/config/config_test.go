package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ALPHAVANTAGE_API_KEY", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.SessionSecret == "" {
		t.Error("expected development session secret fallback")
	}
	if cfg.QuoteCacheTTL != 15*time.Minute {
		t.Errorf("expected 15m cache TTL, got %s", cfg.QuoteCacheTTL)
	}
	if cfg.QuoteRequestInterval != 12*time.Second {
		t.Errorf("expected 12s request interval, got %s", cfg.QuoteRequestInterval)
	}
	if cfg.AlphaVantageSymbolSuffix != ".LON" {
		t.Errorf("expected .LON suffix, got %q", cfg.AlphaVantageSymbolSuffix)
	}
	if cfg.CORSOrigin != "http://localhost:5173" {
		t.Errorf("unexpected CORS origin %q", cfg.CORSOrigin)
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ALPHAVANTAGE_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing production secrets")
	}

	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("ALPHAVANTAGE_API_KEY", "key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production config")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("QUOTE_CACHE_TTL", "soon")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QuoteCacheTTL != 15*time.Minute {
		t.Errorf("expected fallback TTL, got %s", cfg.QuoteCacheTTL)
	}
	if cfg.LoginRatePerMinute != 10 {
		t.Errorf("expected fallback rate, got %d", cfg.LoginRatePerMinute)
	}

	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
