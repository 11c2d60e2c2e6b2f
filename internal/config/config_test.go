package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("server port: got %d, want 5000", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 168*time.Hour {
		t.Errorf("token ttl: got %v, want 168h", cfg.Auth.TokenTTL)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("cache type: got %q, want memory", cfg.Cache.Type)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with defaults: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl: got %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Cache.Type != "redis" {
		t.Errorf("cache type: got %q, want redis", cfg.Cache.Type)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("cors origins: got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Auth.JWTSecret = ""

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		cfg.Auth.JWTSecret = "s"
		return cfg
	}

	cfg := base()
	cfg.Auth.TokenTTL = 0
	if cfg.Validate() == nil {
		t.Error("expected error for zero token ttl")
	}

	cfg = base()
	cfg.Server.Port = 70000
	if cfg.Validate() == nil {
		t.Error("expected error for out-of-range port")
	}

	cfg = base()
	cfg.Database.DBName = ""
	if cfg.Validate() == nil {
		t.Error("expected error for empty db name")
	}

	cfg = base()
	cfg.Cache.Type = "memcached"
	if cfg.Validate() == nil {
		t.Error("expected error for unknown cache type")
	}
}
