package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/agentsx-dev/axai-pg/observability"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

// PostgresService owns the gorm handle and its connection pool.
type PostgresService struct {
	db      *gorm.DB
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
}

func NewPostgresService(cfg Config, logg *logger.Logger) (*PostgresService, error) {
	serviceLog := logg.With("service", "PostgresService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	serviceLog.Info("Connecting to Postgres...", "host", cfg.Host, "db", cfg.Name)
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, dberr.Translate(fmt.Errorf("connect to Postgres: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Pool.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Pool.MinConns)
	sqlDB.SetConnMaxIdleTime(cfg.Pool.IdleTimeout)
	sqlDB.SetConnMaxLifetime(cfg.Pool.RecycleInterval)

	return &PostgresService{db: db, cfg: cfg, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

// SetMetrics attaches transaction counters. All observation calls are
// nil-safe, so wiring metrics stays optional.
func (s *PostgresService) SetMetrics(m *observability.Metrics) { s.metrics = m }

func (s *PostgresService) Config() Config { return s.cfg }

// Ping verifies the connection is usable, bounded by the pool's acquire
// timeout.
func (s *PostgresService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Pool.AcquireTimeout)
	defer cancel()
	return dberr.Translate(sqlDB.PingContext(ctx))
}

// WithTx runs fn inside a single transaction, bounded by the pool's acquire
// timeout. Any error from fn rolls the whole transaction back; nil commits it.
func (s *PostgresService) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.cfg.Pool.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Pool.AcquireTimeout)
		defer cancel()
	}
	s.metrics.IncTxStarted()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
	if err != nil {
		s.metrics.IncTxRolledBack()
		return dberr.Translate(err)
	}
	s.metrics.IncTxCommitted()
	return nil
}

func (s *PostgresService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
