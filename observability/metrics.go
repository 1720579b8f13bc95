package observability

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/platform/logger"
)

// Metrics aggregates counters for repository operations, the read-through
// cache, transactions and the connection pool.
type Metrics struct {
	repoOps     *CounterVec
	repoLatency *HistogramVec

	cacheHits   *CounterVec
	cacheMisses *CounterVec
	cacheSize   *Gauge

	txTotal      *Counter
	txCommitted  *Counter
	txRolledBack *Counter

	pgStats *GaugeVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	v := strings.TrimSpace(os.Getenv("METRICS_SCRAPE_INTERVAL_SECONDS"))
	if v == "" {
		return 10 * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n) * time.Second
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = &Metrics{
			repoOps: NewCounterVec(
				"axai_pg_repo_operations_total",
				"Repository operations by entity/op/status.",
				[]string{"entity", "op", "status"},
			),
			repoLatency: NewHistogramVec(
				"axai_pg_repo_operation_duration_seconds",
				"Repository operation latency in seconds by entity/op.",
				[]string{"entity", "op"},
				[]float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			),
			cacheHits: NewCounterVec(
				"axai_pg_cache_hits_total",
				"Read-through cache hits by entity.",
				[]string{"entity"},
			),
			cacheMisses: NewCounterVec(
				"axai_pg_cache_misses_total",
				"Read-through cache misses by entity.",
				[]string{"entity"},
			),
			cacheSize:    NewGauge("axai_pg_cache_entries", "Entries currently held by the cache."),
			txTotal:      NewCounter("axai_pg_transactions_total", "Transactions started."),
			txCommitted:  NewCounter("axai_pg_transactions_committed_total", "Transactions committed."),
			txRolledBack: NewCounter("axai_pg_transactions_rolled_back_total", "Transactions rolled back."),
			pgStats:      NewGaugeVec("axai_pg_pool_stats", "Postgres connection pool stats.", []string{"metric"}),
		}
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

func (m *Metrics) ObserveRepoOp(entity, op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if entity == "" {
		entity = "unknown"
	}
	if op == "" {
		op = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.repoOps.Inc(entity, op, status)
	m.repoLatency.Observe(dur.Seconds(), entity, op)
}

func (m *Metrics) IncCacheHit(entity string) {
	if m == nil {
		return
	}
	if entity == "" {
		entity = "unknown"
	}
	m.cacheHits.Inc(entity)
}

func (m *Metrics) IncCacheMiss(entity string) {
	if m == nil {
		return
	}
	if entity == "" {
		entity = "unknown"
	}
	m.cacheMisses.Inc(entity)
}

func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.cacheSize.Set(float64(n))
}

func (m *Metrics) IncTxStarted() {
	if m == nil {
		return
	}
	m.txTotal.Inc()
}

func (m *Metrics) IncTxCommitted() {
	if m == nil {
		return
	}
	m.txCommitted.Inc()
}

func (m *Metrics) IncTxRolledBack() {
	if m == nil {
		return
	}
	m.txRolledBack.Inc()
}

// StartPostgresCollector samples sql.DB pool stats on the scrape interval
// until ctx is canceled.
func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: postgres stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.pgStats.Set(float64(stats.OpenConnections), "open_connections")
				m.pgStats.Set(float64(stats.InUse), "in_use")
				m.pgStats.Set(float64(stats.Idle), "idle")
				m.pgStats.Set(float64(stats.WaitCount), "wait_count")
				m.pgStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.pgStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	if err := m.repoOps.WritePrometheus(w); err != nil {
		return err
	}
	if err := m.repoLatency.WritePrometheus(w); err != nil {
		return err
	}
	if err := m.cacheHits.WritePrometheus(w); err != nil {
		return err
	}
	if err := m.cacheMisses.WritePrometheus(w); err != nil {
		return err
	}
	if err := m.cacheSize.WritePrometheus(w); err != nil {
		return err
	}
	if err := m.txTotal.WritePrometheus(w); err != nil {
		return err
	}
	if err := m.txCommitted.WritePrometheus(w); err != nil {
		return err
	}
	if err := m.txRolledBack.WritePrometheus(w); err != nil {
		return err
	}
	return m.pgStats.WritePrometheus(w)
}
