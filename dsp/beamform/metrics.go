package beamform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-beamform/dsp/core"
)

// Failure reasons reported on beamformer_failures_total.
const (
	ReasonInvalidConfiguration = "invalid_configuration"
	ReasonCanceled             = "canceled"
	ReasonDeadline             = "deadline_exceeded"
	ReasonInternal             = "internal"
)

// Metrics bundles the Prometheus collectors updated by beamformer runs.
// A nil *Metrics records nothing.
type Metrics struct {
	Runs       prometheus.Counter
	Directions prometheus.Counter
	Failures   *prometheus.CounterVec
	Duration   prometheus.Histogram
}

// NewMetrics registers the beamformer collectors against reg, defaulting to
// the global Prometheus registry when nil. Registering twice against the
// same registry returns the collectors already in place.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	runs, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beamformer_runs_total",
		Help: "Total number of completed delay-and-sum runs.",
	}), "beamformer_runs_total")
	if err != nil {
		return nil, err
	}
	directions, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beamformer_directions_total",
		Help: "Total number of look directions computed by completed runs.",
	}), "beamformer_directions_total")
	if err != nil {
		return nil, err
	}
	failures, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "beamformer_failures_total",
		Help: "Total number of failed delay-and-sum runs, labeled by reason.",
	}, []string{"reason"}), "beamformer_failures_total")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "beamformer_run_duration_seconds",
		Help:    "Wall-clock duration of delay-and-sum runs in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}), "beamformer_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Runs:       runs,
		Directions: directions,
		Failures:   failures,
		Duration:   duration,
	}, nil
}

func (m *Metrics) observe(directions int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	if m.Duration != nil {
		m.Duration.Observe(elapsed.Seconds())
	}
	if err != nil {
		if m.Failures != nil {
			m.Failures.WithLabelValues(FailureReason(err)).Inc()
		}
		return
	}
	if m.Runs != nil {
		m.Runs.Inc()
	}
	if m.Directions != nil {
		m.Directions.Add(float64(directions))
	}
}

// FailureReason maps a beamformer error to its metrics label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonDeadline
	case errors.Is(err, core.ErrInvalidConfiguration):
		return ReasonInvalidConfiguration
	default:
		return ReasonInternal
	}
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("beamform: collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("beamform: collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("beamform: collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
