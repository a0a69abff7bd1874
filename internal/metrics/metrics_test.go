package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderObserveProxy(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	r.ObserveProxy("optimize-bio", "live")
	r.ObserveProxy("optimize-bio", "no_credential")
	r.ObserveProxy("optimize-bio", "no_credential")

	if got := testutil.ToFloat64(r.proxyRequests.WithLabelValues("optimize-bio", "no_credential")); got != 2 {
		t.Fatalf("expected 2 mock responses, got %v", got)
	}
	if got := testutil.ToFloat64(r.proxyRequests.WithLabelValues("optimize-bio", "live")); got != 1 {
		t.Fatalf("expected 1 live response, got %v", got)
	}
}

func TestRecorderObserveUpstreamAndProfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	r.ObserveUpstream("analyze-message", 300*time.Millisecond, nil)
	r.ObserveUpstream("analyze-message", time.Second, errors.New("boom"))
	r.ObserveProfile(72, []string{"Primary Photo", "Keep", "Keep"})

	if got := testutil.CollectAndCount(r.upstreamLatency); got != 2 {
		t.Fatalf("expected 2 latency series, got %d", got)
	}
	if got := testutil.ToFloat64(r.photoVerdicts.WithLabelValues("Keep")); got != 2 {
		t.Fatalf("expected 2 keep verdicts, got %v", got)
	}
}

func TestRecorderObserveLimiterError(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	r.ObserveLimiterError("redis")
	r.ObserveLimiterError("redis")

	if got := testutil.ToFloat64(r.limiterErrors.WithLabelValues("redis")); got != 2 {
		t.Fatalf("expected 2 limiter errors, got %v", got)
	}
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	second, err := New(reg)
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}

	first.ObserveProxy("optimize-bio", "live")
	if got := testutil.ToFloat64(second.proxyRequests.WithLabelValues("optimize-bio", "live")); got != 1 {
		t.Fatalf("expected shared counter, got %v", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveProxy("x", "live")
	r.ObserveUpstream("x", time.Second, nil)
	r.ObserveProfile(10, []string{"Keep"})
	r.ObserveLimiterError("redis")
}
