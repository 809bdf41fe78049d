package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "devconnector")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg := Load()
	if cfg.Port != "8000" {
		t.Fatalf("default port: got %q want %q", cfg.Port, "8000")
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("default token ttl: got %v want %v", cfg.TokenTTL, time.Hour)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("default bcrypt cost: got %d want 10", cfg.BcryptCost)
	}
	if cfg.Env != "dev" {
		t.Fatalf("default env: got %q want %q", cfg.Env, "dev")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TOKEN_TTL", "45m")
	t.Setenv("BCRYPT_COST", "12")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("port override: got %q", cfg.Port)
	}
	if cfg.TokenTTL != 45*time.Minute {
		t.Fatalf("token ttl override: got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("bcrypt cost override: got %d", cfg.BcryptCost)
	}
}

func TestLoadRateLimitConfig_ClampsTTL(t *testing.T) {
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("ttl not clamped: ttl=%v interval=%v", cfg.TTL, cfg.RefillInterval)
	}
}

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatalf("cache should default to enabled")
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("default ttl: got %v", cfg.TTL)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("default max body: got %d", cfg.MaxBodyBytes)
	}
}
