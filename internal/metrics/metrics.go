// Package metrics exports tutorial engine activity to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "circlet"
	subsystem = "tutorial"
)

// Reasons a start request is dropped.
const (
	DropGuard     = "guard"
	DropCompleted = "completed"
	DropNoFlow    = "no_flow"
)

// Step directions.
const (
	DirectionNext     = "next"
	DirectionPrevious = "previous"
)

// Metrics holds the tutorial collectors. A nil *Metrics records nothing.
type Metrics struct {
	starts          *prometheus.CounterVec
	startsDropped   *prometheus.CounterVec
	completions     *prometheus.CounterVec
	skips           *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	sessionDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg uses the
// default registerer. Collectors already registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		starts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "starts_total",
			Help:      "Tutorial sessions started.",
		}, []string{"user_type"}),
		startsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "starts_dropped_total",
			Help:      "Start requests ignored, by reason.",
		}, []string{"reason"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "completions_total",
			Help:      "Tutorial sessions completed.",
		}, []string{"user_type"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "skips_total",
			Help:      "Tutorial sessions skipped.",
		}, []string{"user_type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "step_transitions_total",
			Help:      "Step changes within a session, by direction.",
		}, []string{"direction"}),
		sessionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "session_duration_seconds",
			Help:      "Time from start to completion or skip.",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1800},
		}, []string{"outcome"}),
	}

	var err error
	if m.starts, err = register(reg, m.starts); err != nil {
		return nil, err
	}
	if m.startsDropped, err = register(reg, m.startsDropped); err != nil {
		return nil, err
	}
	if m.completions, err = register(reg, m.completions); err != nil {
		return nil, err
	}
	if m.skips, err = register(reg, m.skips); err != nil {
		return nil, err
	}
	if m.transitions, err = register(reg, m.transitions); err != nil {
		return nil, err
	}
	if m.sessionDuration, err = register(reg, m.sessionDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, returning the existing collector when an identical
// one is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register tutorial metric: %w", err)
	}
	return c, nil
}

// MustNew is New that panics on registration failure.
func MustNew(reg prometheus.Registerer) *Metrics {
	m, err := New(reg)
	if err != nil {
		panic(err)
	}
	return m
}

// Handler serves g in the Prometheus exposition format. A nil g uses the
// default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) StartAccepted(userType string) {
	if m == nil {
		return
	}
	m.starts.WithLabelValues(userType).Inc()
}

func (m *Metrics) StartDropped(reason string) {
	if m == nil {
		return
	}
	m.startsDropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) Completed(userType string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(userType).Inc()
	m.sessionDuration.WithLabelValues("completed").Observe(elapsed.Seconds())
}

func (m *Metrics) Skipped(userType string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.skips.WithLabelValues(userType).Inc()
	m.sessionDuration.WithLabelValues("skipped").Observe(elapsed.Seconds())
}

func (m *Metrics) StepChanged(direction string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(direction).Inc()
}
