package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.Host != "localhost" || cfg.Port != 5432 {
		t.Fatalf("unexpected host/port defaults: %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Name != "axai" || cfg.Schema != "public" || cfg.SSLMode != "disable" {
		t.Fatalf("unexpected database defaults: %+v", cfg)
	}
	if cfg.Pool.MinConns != 2 || cfg.Pool.MaxConns != 10 {
		t.Fatalf("unexpected pool defaults: %+v", cfg.Pool)
	}
	if cfg.CacheTTL != 5*time.Minute || cfg.CacheSize != 4096 {
		t.Fatalf("unexpected cache defaults: ttl=%v size=%d", cfg.CacheTTL, cfg.CacheSize)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "6432")
	t.Setenv("AXAI_PG_POOL_MAX_CONNS", "50")
	t.Setenv("AXAI_PG_CACHE_TTL", "90s")

	cfg := FromEnv()
	if cfg.Host != "db.internal" || cfg.Port != 6432 {
		t.Fatalf("env overrides not applied: %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Pool.MaxConns != 50 {
		t.Fatalf("pool override not applied: %d", cfg.Pool.MaxConns)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("cache ttl override not applied: %v", cfg.CacheTTL)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.yaml")
	body := "host: pg.example.com\npool:\n  max_conns: 25\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Host != "pg.example.com" {
		t.Fatalf("file override not applied: %s", cfg.Host)
	}
	if cfg.Pool.MaxConns != 25 {
		t.Fatalf("nested override not applied: %d", cfg.Pool.MaxConns)
	}
	// Values the file does not name keep their defaults.
	if cfg.Port != 5432 || cfg.Name != "axai" {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDSN(t *testing.T) {
	cfg := Config{
		Host: "localhost", Port: 5432,
		User: "app", Password: "pw",
		Name: "axai", Schema: "public", SSLMode: "disable",
	}
	want := "postgres://app:pw@localhost:5432/axai?sslmode=disable&search_path=public"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN: expected %q, got %q", want, got)
	}
}
