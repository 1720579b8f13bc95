package observability

import (
	"strings"
	"testing"
)

func TestCounter(t *testing.T) {
	c := NewCounter("test_total", "test counter")
	c.Inc()
	c.Add(2)
	if c.Value() != 3 {
		t.Fatalf("expected 3, got %f", c.Value())
	}

	var sb strings.Builder
	if err := c.WritePrometheus(&sb); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "# TYPE test_total counter") {
		t.Fatalf("missing TYPE line: %q", out)
	}
	if !strings.Contains(out, "test_total 3") {
		t.Fatalf("missing sample: %q", out)
	}
}

func TestCounterVec(t *testing.T) {
	c := NewCounterVec("ops_total", "ops", []string{"entity", "op"})
	c.Inc("user", "create")
	c.Inc("user", "create")
	c.Inc("document", "get")

	var sb strings.Builder
	if err := c.WritePrometheus(&sb); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `ops_total{entity="user",op="create"} 2`) {
		t.Fatalf("missing labeled sample: %q", out)
	}
	if !strings.Contains(out, `ops_total{entity="document",op="get"} 1`) {
		t.Fatalf("missing labeled sample: %q", out)
	}
}

func TestGaugeVec(t *testing.T) {
	g := NewGaugeVec("pool_stats", "pool", []string{"metric"})
	g.Set(7, "open")
	g.Set(2, "idle")
	g.Set(5, "open")

	var sb strings.Builder
	if err := g.WritePrometheus(&sb); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `pool_stats{metric="open"} 5`) {
		t.Fatalf("set did not overwrite: %q", out)
	}
}

func TestHistogramVec(t *testing.T) {
	h := NewHistogramVec("latency_seconds", "latency", []string{"op"}, []float64{0.01, 0.1, 1})
	h.Observe(0.05, "get")
	h.Observe(0.5, "get")
	h.Observe(5, "get")

	var sb strings.Builder
	if err := h.WritePrometheus(&sb); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "# TYPE latency_seconds histogram") {
		t.Fatalf("missing TYPE line: %q", out)
	}
	if !strings.Contains(out, `latency_seconds_count{op="get"} 3`) {
		t.Fatalf("missing count: %q", out)
	}
	// 0.05 and 0.5 fall under le="1"; 5 only under +Inf.
	if !strings.Contains(out, `le="1"`) || !strings.Contains(out, `le="+Inf"`) {
		t.Fatalf("missing buckets: %q", out)
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.IncCacheHit("user")
	m.IncTxStarted()
	m.SetCacheEntries(3)

	var c *Counter
	c.Inc()
	var cv *CounterVec
	cv.Inc("a")
}
