package beamform

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/synth"
)

func TestMetricsRecordRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	f := newFixture(t, 5, synth.NoNoise, 1)
	weights := UniformWeights(5)
	for range 2 {
		if _, err := DelayAndSum(f.geom, f.signals, []float64{0, 1, 2}, weights, testFs, WithMetrics(m)); err != nil {
			t.Fatalf("DelayAndSum: %v", err)
		}
	}
	if _, err := DelayAndSum(f.geom, f.signals, nil, weights, testFs, WithMetrics(m)); err == nil {
		t.Fatal("expected error for empty angles")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DelayAndSumContext(ctx, f.geom, f.signals, []float64{0}, weights, testFs, WithMetrics(m)); err == nil {
		t.Fatal("expected error for cancelled context")
	}

	if got := testutil.ToFloat64(m.Runs); got != 2 {
		t.Fatalf("beamformer_runs_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Directions); got != 6 {
		t.Fatalf("beamformer_directions_total = %v, want 6", got)
	}
	if got := testutil.ToFloat64(m.Failures.WithLabelValues(ReasonInvalidConfiguration)); got != 1 {
		t.Fatalf("beamformer_failures_total{reason=invalid_configuration} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Failures.WithLabelValues(ReasonCanceled)); got != 1 {
		t.Fatalf("beamformer_failures_total{reason=canceled} = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "beamformer_run_duration_seconds"); count != 4 {
		t.Fatalf("beamformer_run_duration_seconds sample_count = %d, want 4", count)
	}
}

func TestNewMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	second, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics (second): %v", err)
	}

	first.Runs.Inc()
	if got := testutil.ToFloat64(second.Runs); got != 1 {
		t.Fatalf("second collector runs = %v, want 1", got)
	}
}

func TestNewMetricsRejectsIncompatibleCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "beamformer_failures_total",
		Help: "Total number of failed delay-and-sum runs, labeled by reason.",
	}, []string{"reason"}))

	if _, err := NewMetrics(reg); err == nil {
		t.Fatal("expected error for incompatible collector")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.observe(3, 0, nil)
	m.observe(3, 0, errors.New("boom"))
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("beamform: %w", context.Canceled), ReasonCanceled},
		{fmt.Errorf("beamform: %w", context.DeadlineExceeded), ReasonDeadline},
		{fmt.Errorf("beamform: bad: %w", core.ErrInvalidConfiguration), ReasonInvalidConfiguration},
		{errors.New("boom"), ReasonInternal},
	}
	for _, tc := range tests {
		if got := FailureReason(tc.err); got != tc.want {
			t.Fatalf("FailureReason(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func histogramSampleCount(t *testing.T, reg prometheus.Gatherer, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name || mf.GetType() != dto.MetricType_HISTOGRAM {
			continue
		}
		for _, metric := range mf.GetMetric() {
			return metric.GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("histogram %s not found", name)
	return 0
}
