package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/mosaic")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("port = %q, want 5000", cfg.Port)
	}
	if cfg.HTTPAddress() != ":5000" {
		t.Errorf("address = %q, want :5000", cfg.HTTPAddress())
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.JWTTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("origins = %v, want the two fixed origins", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[0] != "https://yourmindmosaic.vercel.app" || cfg.CORSOrigins[1] != "http://localhost:5173" {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := Load(); err == nil {
		t.Error("load succeeded without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/mosaic")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("load succeeded without JWT_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9100")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("port = %q, want 9100", cfg.Port)
	}
	if cfg.JWTTTL != 15*time.Minute {
		t.Errorf("ttl = %v, want 15m", cfg.JWTTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadBadTTLFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("ttl = %v, want 1h fallback", cfg.JWTTTL)
	}
}
