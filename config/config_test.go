package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Cache.UserTTL != 5*time.Minute {
		t.Errorf("expected user TTL 5m, got %s", cfg.Cache.UserTTL)
	}
	if cfg.Cache.LogsTTL != 10*time.Minute {
		t.Errorf("expected logs TTL 10m, got %s", cfg.Cache.LogsTTL)
	}
	if cfg.Cache.PredictionsTTL != 30*time.Minute {
		t.Errorf("expected predictions TTL 30m, got %s", cfg.Cache.PredictionsTTL)
	}
	if cfg.Cache.ProductsTTL != time.Hour {
		t.Errorf("expected products TTL 1h, got %s", cfg.Cache.ProductsTTL)
	}
	if cfg.Fetch.Retry != 2 || cfg.Fetch.RetryDelay != time.Second {
		t.Errorf("expected retry 2 with 1s delay, got %d and %s", cfg.Fetch.Retry, cfg.Fetch.RetryDelay)
	}
	if cfg.Session.CookieName != "anbu_session" {
		t.Errorf("expected cookie anbu_session, got %s", cfg.Session.CookieName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.test")
	t.Setenv("CACHE_PRODUCTS_TTL", "2m")
	t.Setenv("FETCH_RETRY", "not-a-number")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg := Load()

	if cfg.API.BaseURL != "https://api.example.test" {
		t.Errorf("unexpected base URL %s", cfg.API.BaseURL)
	}
	if cfg.Cache.ProductsTTL != 2*time.Minute {
		t.Errorf("expected 2m, got %s", cfg.Cache.ProductsTTL)
	}
	if cfg.Fetch.Retry != 2 {
		t.Errorf("expected invalid value to fall back to 2, got %d", cfg.Fetch.Retry)
	}
	if !cfg.Session.CookieSecure {
		t.Error("expected secure cookie")
	}
}

func TestDatabaseConfig_SQLite(t *testing.T) {
	cfg := DatabaseConfig{URL: "sqlite://data/anbu.db"}
	if !cfg.IsSQLite() {
		t.Fatal("expected sqlite URL to be detected")
	}
	if cfg.SQLitePath() != "data/anbu.db" {
		t.Errorf("unexpected path %s", cfg.SQLitePath())
	}
	if (DatabaseConfig{URL: "postgres://localhost/db"}).IsSQLite() {
		t.Error("expected postgres URL not to be sqlite")
	}
}
