package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "AUTH_REQUIRED", "BCRYPT_COST", "TIMEZONE", "JWT_EXPIRES_IN", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.DBDriver)
	}
	if cfg.DBPath != "fintrack.db" {
		t.Errorf("expected fintrack.db, got %s", cfg.DBPath)
	}
	if cfg.AuthRequired {
		t.Error("expected auth to be optional by default")
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.Location != time.UTC {
		t.Errorf("expected UTC location, got %v", cfg.Location)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected 24h token lifetime, got %s", cfg.JWTExpirationDur)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origin, got %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("TIMEZONE", "Europe/Moscow")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("expected port 8081, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected driver to be lowercased, got %s", cfg.DBDriver)
	}
	if !cfg.AuthRequired {
		t.Error("expected auth to be required")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.Location.String() != "Europe/Moscow" {
		t.Errorf("expected Europe/Moscow, got %s", cfg.Location)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://app.example.com" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("JWT_EXPIRES_IN", "forever")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	t.Setenv("AUTH_REQUIRED", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BcryptCost != 10 {
		t.Errorf("expected fallback cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected fallback 24h, got %s", cfg.JWTExpirationDur)
	}
	if cfg.Location != time.UTC {
		t.Errorf("expected fallback UTC, got %s", cfg.Location)
	}
	if cfg.AuthRequired {
		t.Error("expected fallback false for AUTH_REQUIRED")
	}
}
