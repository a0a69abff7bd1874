package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "profilemax"

// Recorder agrupa los collectors de Prometheus del servicio. Un *Recorder nil es válido y no hace nada.
type Recorder struct {
	proxyRequests   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	compositeScore  prometheus.Histogram
	photoVerdicts   *prometheus.CounterVec
	limiterErrors   *prometheus.CounterVec
}

// New registra los collectors en reg. Si ya estaban registrados reutiliza los existentes.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	proxyRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "requests_total",
			Help:      "Proxy requests by endpoint and result source (live or a mock reason).",
		},
		[]string{"endpoint", "source"},
	)
	upstreamLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "upstream_duration_seconds",
			Help:      "Latency of language-model calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"endpoint", "status"},
	)
	compositeScore := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "composite_score",
			Help:      "Distribution of composite profile scores.",
			Buckets:   []float64{50, 65, 75, 85, 100},
		},
	)
	photoVerdicts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "photo_recommendations_total",
			Help:      "Simulated photo recommendations by verdict.",
		},
		[]string{"recommendation"},
	)
	limiterErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "limiter_errors_total",
			Help:      "Rate limiter backend failures; the call is allowed through.",
		},
		[]string{"backend"},
	)

	r := &Recorder{}
	var err error
	if r.proxyRequests, err = registerCounterVec(reg, proxyRequests); err != nil {
		return nil, err
	}
	if r.upstreamLatency, err = registerHistogramVec(reg, upstreamLatency); err != nil {
		return nil, err
	}
	if r.compositeScore, err = registerHistogram(reg, compositeScore); err != nil {
		return nil, err
	}
	if r.photoVerdicts, err = registerCounterVec(reg, photoVerdicts); err != nil {
		return nil, err
	}
	if r.limiterErrors, err = registerCounterVec(reg, limiterErrors); err != nil {
		return nil, err
	}
	return r, nil
}

// ObserveProxy cuenta una respuesta de proxy. source es "live" o el motivo del mock.
func (r *Recorder) ObserveProxy(endpoint, source string) {
	if r == nil {
		return
	}
	r.proxyRequests.WithLabelValues(endpoint, source).Inc()
}

// ObserveUpstream mide una llamada al proveedor.
func (r *Recorder) ObserveUpstream(endpoint string, d time.Duration, err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.upstreamLatency.WithLabelValues(endpoint, status).Observe(d.Seconds())
}

// ObserveProfile registra el score compuesto y el veredicto de cada foto.
func (r *Recorder) ObserveProfile(overall int, recommendations []string) {
	if r == nil {
		return
	}
	r.compositeScore.Observe(float64(overall))
	for _, rec := range recommendations {
		r.photoVerdicts.WithLabelValues(rec).Inc()
	}
}

// ObserveLimiterError cuenta una falla del backend del rate limiter.
func (r *Recorder) ObserveLimiterError(backend string) {
	if r == nil {
		return
	}
	r.limiterErrors.WithLabelValues(backend).Inc()
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerHistogramVec(reg prometheus.Registerer, h *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	if err := reg.Register(h); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return h, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return h, nil
}
