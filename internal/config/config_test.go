package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost/focusclub")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CYCLE_INTERVAL", "1m")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Port)
	}
	if cfg.CycleInterval != time.Minute {
		t.Errorf("CycleInterval = %v, want 1m", cfg.CycleInterval)
	}
	if cfg.Timezone.String() != "UTC" {
		t.Errorf("Timezone = %v, want UTC", cfg.Timezone)
	}
}

func TestLoad_MissingPostgresURL(t *testing.T) {
	t.Setenv("POSTGRES_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing POSTGRES_URL")
	}
}

func TestLoad_InvalidTimezoneIsFatal(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost/focusclub")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("TIMEZONE", "Nowhere/Imaginary")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unloadable timezone")
	}
}
