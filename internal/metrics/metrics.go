// Package metrics exposes jump sequence counters over Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jask/jumptap/internal/jump"
)

const (
	namespace = "jumptap"
	subsystem = "jump"
)

// Manager owns the collectors and implements jump.Observer.
type Manager struct {
	registry *prometheus.Registry

	started    *prometheus.CounterVec
	superseded *prometheus.CounterVec
	completed  *prometheus.CounterVec
	landings   prometheus.Counter
	airtime    prometheus.Histogram
}

var _ jump.Observer = (*Manager)(nil)

// Option configures a Manager.
type Option func(*options)

type options struct {
	buckets []float64
}

// WithAirtimeBuckets overrides the airtime histogram buckets, in seconds.
func WithAirtimeBuckets(b []float64) Option {
	return func(o *options) { o.buckets = b }
}

// NewManager registers all collectors on a private registry.
func NewManager(opts ...Option) *Manager {
	o := options{buckets: []float64{0.5, 0.75, 0.9, 1, 1.25, 1.5, 2}}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "sequences_started_total",
			Help: "Animation sequences started, by gesture.",
		}, []string{"event"}),
		superseded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "sequences_superseded_total",
			Help: "Sequences cancelled by a newer gesture before settling, by gesture.",
		}, []string{"event"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "sequences_completed_total",
			Help: "Sequences that ran to rest, by gesture.",
		}, []string{"event"}),
		landings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "landings_total",
			Help: "Ground contacts, one per completed click.",
		}),
		airtime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name:    "airtime_seconds",
			Help:    "Time from release to ground contact.",
			Buckets: o.buckets,
		}),
	}
	m.registry.MustRegister(m.started, m.superseded, m.completed, m.landings, m.airtime)
	return m
}

func (m *Manager) Registry() *prometheus.Registry { return m.registry }

func (m *Manager) SequenceStarted(ev jump.Event) {
	m.started.WithLabelValues(ev.String()).Inc()
}

func (m *Manager) SequenceSuperseded(ev jump.Event) {
	m.superseded.WithLabelValues(ev.String()).Inc()
}

func (m *Manager) SequenceCompleted(ev jump.Event) {
	m.completed.WithLabelValues(ev.String()).Inc()
}

func (m *Manager) Landed(airtime time.Duration) {
	m.landings.Inc()
	m.airtime.Observe(airtime.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr until ctx is done.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen: %w", err)
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics serve: %w", err)
	}
	return nil
}
