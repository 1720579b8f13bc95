package db

import (
	"bufio"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/data/repos/testutil"
	"github.com/agentsx-dev/axai-pg/observability"
)

func metricValue(tb testing.TB, m *observability.Metrics, name string) float64 {
	tb.Helper()
	var buf strings.Builder
	if err := m.WritePrometheus(&buf); err != nil {
		tb.Fatalf("WritePrometheus: %v", err)
	}
	scanner := bufio.NewScanner(strings.NewReader(buf.String()))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, name+" ") {
			continue
		}
		v, err := strconv.ParseFloat(strings.Fields(line)[1], 64)
		if err != nil {
			tb.Fatalf("parse %q: %v", line, err)
		}
		return v
	}
	return 0
}

func TestWithTxCounters(t *testing.T) {
	gdb := testutil.DB(t)
	t.Setenv("METRICS_ENABLED", "true")
	m := observability.Init(testutil.Logger(t))
	if m == nil {
		t.Fatalf("metrics not enabled")
	}

	svc := &PostgresService{
		db:  gdb,
		cfg: Config{Pool: PoolConfig{AcquireTimeout: 30 * time.Second}},
		log: testutil.Logger(t),
	}
	svc.SetMetrics(m)

	started := metricValue(t, m, "axai_pg_transactions_total")
	committed := metricValue(t, m, "axai_pg_transactions_committed_total")
	rolledBack := metricValue(t, m, "axai_pg_transactions_rolled_back_total")

	ctx := context.Background()
	if err := svc.WithTx(ctx, func(tx *gorm.DB) error { return nil }); err != nil {
		t.Fatalf("WithTx (commit): %v", err)
	}
	boom := errors.New("boom")
	if err := svc.WithTx(ctx, func(tx *gorm.DB) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("WithTx (rollback): expected wrapped sentinel, got %v", err)
	}

	if got := metricValue(t, m, "axai_pg_transactions_total"); got != started+2 {
		t.Fatalf("transactions_total: expected %v, got %v", started+2, got)
	}
	if got := metricValue(t, m, "axai_pg_transactions_committed_total"); got != committed+1 {
		t.Fatalf("transactions_committed_total: expected %v, got %v", committed+1, got)
	}
	if got := metricValue(t, m, "axai_pg_transactions_rolled_back_total"); got != rolledBack+1 {
		t.Fatalf("transactions_rolled_back_total: expected %v, got %v", rolledBack+1, got)
	}
}

func TestWithTxDeadline(t *testing.T) {
	gdb := testutil.DB(t)
	svc := &PostgresService{
		db:  gdb,
		cfg: Config{Pool: PoolConfig{AcquireTimeout: 30 * time.Second}},
		log: testutil.Logger(t),
	}

	// The acquire timeout becomes the transaction's context deadline.
	if err := svc.WithTx(context.Background(), func(tx *gorm.DB) error {
		deadline, ok := tx.Statement.Context.Deadline()
		if !ok {
			return errors.New("no deadline on transaction context")
		}
		if remaining := time.Until(deadline); remaining > 30*time.Second {
			return errors.New("deadline exceeds the acquire timeout")
		}
		return nil
	}); err != nil {
		t.Fatalf("WithTx: %v", err)
	}
}
