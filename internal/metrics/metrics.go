// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the route computation pipeline.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route computation outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeTrailNotFound   = "trail_not_found"
	OutcomeNoRoute         = "no_route"
	OutcomeBadGeometry     = "bad_geometry"
	OutcomeElevationFailed = "elevation_failed"
	OutcomeError           = "error"
)

// Collector bundles the service's Prometheus metrics. A nil *Collector is
// valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	RouteComputations *prometheus.CounterVec
	DecodeFailures    prometheus.Counter
	ElevationLookups  prometheus.Histogram
	ElevationSamples  prometheus.Histogram
	TrailsInCatalog   prometheus.Gauge
}

// NewCollector registers metrics against reg, defaulting to the global
// registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "happyhiker_http_requests_total",
		Help: "HTTP requests served, labeled by route, method and status code.",
	}, []string{"route", "method", "code"}), "happyhiker_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "happyhiker_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"}), "happyhiker_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	computations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "happyhiker_route_computations_total",
		Help: "Route plans attempted, labeled by outcome.",
	}, []string{"outcome"}), "happyhiker_route_computations_total")
	if err != nil {
		return nil, err
	}

	decodeFailures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "happyhiker_polyline_decode_failures_total",
		Help: "Encoded polylines that failed to decode.",
	}), "happyhiker_polyline_decode_failures_total")
	if err != nil {
		return nil, err
	}

	lookups, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "happyhiker_elevation_lookup_duration_seconds",
		Help:    "Time spent fetching elevations for one route.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}), "happyhiker_elevation_lookup_duration_seconds")
	if err != nil {
		return nil, err
	}

	samples, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "happyhiker_elevation_samples",
		Help:    "Number of sampled points sent for elevation lookup per route.",
		Buckets: []float64{1, 10, 25, 50, 75, 100},
	}), "happyhiker_elevation_samples")
	if err != nil {
		return nil, err
	}

	trails, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "happyhiker_trails_in_catalog",
		Help: "Trails currently stored.",
	}), "happyhiker_trails_in_catalog")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		HTTPRequests:      requests,
		HTTPDurations:     durations,
		RouteComputations: computations,
		DecodeFailures:    decodeFailures,
		ElevationLookups:  lookups,
		ElevationSamples:  samples,
		TrailsInCatalog:   trails,
	}, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps next, recording requests under the route label.
func (c *Collector) Instrument(route string, next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (c *Collector) ObserveRoute(outcome string) {
	if c == nil {
		return
	}
	c.RouteComputations.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveDecodeFailure() {
	if c == nil {
		return
	}
	c.DecodeFailures.Inc()
}

func (c *Collector) ObserveElevationLookup(d time.Duration, samples int) {
	if c == nil {
		return
	}
	c.ElevationLookups.Observe(d.Seconds())
	c.ElevationSamples.Observe(float64(samples))
}

func (c *Collector) SetTrailCount(n int) {
	if c == nil {
		return
	}
	c.TrailsInCatalog.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}
