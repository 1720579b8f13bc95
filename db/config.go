package db

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agentsx-dev/axai-pg/platform/envutil"
)

// PoolConfig bounds the underlying sql.DB connection pool.
type PoolConfig struct {
	MinConns        int           `yaml:"min_conns"`
	MaxConns        int           `yaml:"max_conns"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	AcquireTimeout  time.Duration `yaml:"acquire_timeout"`
	RecycleInterval time.Duration `yaml:"recycle_interval"`
}

// Config carries everything needed to open and operate the database layer.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Schema   string `yaml:"schema"`
	SSLMode  string `yaml:"sslmode"`

	Pool PoolConfig `yaml:"pool"`

	CacheTTL  time.Duration `yaml:"cache_ttl"`
	CacheSize int           `yaml:"cache_size"`
}

// FromEnv builds a Config from POSTGRES_* and AXAI_PG_* environment
// variables, with defaults suitable for local development.
func FromEnv() Config {
	return Config{
		Host:     envutil.String("POSTGRES_HOST", "localhost"),
		Port:     envutil.Int("POSTGRES_PORT", 5432),
		User:     envutil.String("POSTGRES_USER", "postgres"),
		Password: envutil.String("POSTGRES_PASSWORD", ""),
		Name:     envutil.String("POSTGRES_NAME", "axai"),
		Schema:   envutil.String("POSTGRES_SCHEMA", "public"),
		SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		Pool: PoolConfig{
			MinConns:        envutil.Int("AXAI_PG_POOL_MIN_CONNS", 2),
			MaxConns:        envutil.Int("AXAI_PG_POOL_MAX_CONNS", 10),
			IdleTimeout:     envutil.Duration("AXAI_PG_POOL_IDLE_TIMEOUT", 5*time.Minute),
			AcquireTimeout:  envutil.Duration("AXAI_PG_POOL_ACQUIRE_TIMEOUT", 30*time.Second),
			RecycleInterval: envutil.Duration("AXAI_PG_POOL_RECYCLE_INTERVAL", 30*time.Minute),
		},
		CacheTTL:  envutil.Duration("AXAI_PG_CACHE_TTL", 5*time.Minute),
		CacheSize: envutil.Int("AXAI_PG_CACHE_SIZE", 4096),
	}
}

// LoadConfig reads a YAML config file and overlays it on the environment
// defaults, so a partial file only overrides what it names.
func LoadConfig(path string) (Config, error) {
	cfg := FromEnv()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.Schema,
	)
}
