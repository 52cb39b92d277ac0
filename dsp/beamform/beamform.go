package beamform

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-beamform/dsp/array"
	"github.com/cwbudde/algo-beamform/dsp/buffer"
	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/delay"
	"github.com/cwbudde/algo-beamform/dsp/interp"
)

var scratch = buffer.NewPool()

// DelayAndSum steers geom towards every angle in angles and returns the
// N_theta×N output matrix. signals holds one row per sensor sampled at fs;
// weights holds one shading weight per sensor.
func DelayAndSum(geom *array.ULA, signals *core.Matrix, angles, weights []float64, fs float64, opts ...Option) (*core.Matrix, error) {
	return DelayAndSumContext(context.Background(), geom, signals, angles, weights, fs, opts...)
}

// DelayAndSumContext is DelayAndSum with cancellation. ctx is checked
// before each look direction; a cancelled run returns no output.
func DelayAndSumContext(ctx context.Context, geom *array.ULA, signals *core.Matrix, angles, weights []float64, fs float64, opts ...Option) (*core.Matrix, error) {
	cfg := applyOptions(opts)
	start := time.Now()

	out, err := run(ctx, cfg, geom, signals, angles, weights, fs)
	cfg.metrics.observe(len(angles), time.Since(start), err)
	if cfg.logger != nil {
		attrs := []any{
			"directions", len(angles),
			"workers", cfg.workers,
			"interpolation", cfg.mode.String(),
			"duration", time.Since(start),
		}
		if signals != nil {
			attrs = append(attrs, "sensors", signals.Rows(), "samples", signals.Cols())
		}
		if err != nil {
			cfg.logger.DebugContext(ctx, "beamform run failed", append(attrs, "error", err)...)
		} else {
			cfg.logger.DebugContext(ctx, "beamform run", attrs...)
		}
	}
	return out, err
}

func run(ctx context.Context, cfg config, geom *array.ULA, signals *core.Matrix, angles, weights []float64, fs float64) (*core.Matrix, error) {
	if err := validate(cfg, geom, signals, angles, weights, fs); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("beamform: %w", err)
	}

	var ipOpts []interp.Option
	if cfg.sincN > 0 {
		ipOpts = append(ipOpts, interp.WithSincN(cfg.sincN))
	}
	ip, err := interp.New(cfg.mode, ipOpts...)
	if err != nil {
		return nil, fmt.Errorf("beamform: %v: %w", err, core.ErrInvalidConfiguration)
	}

	gains := make([]float64, len(weights))
	copy(gains, weights)
	if cfg.normalize {
		inv := 1 / float64(len(weights))
		for m := range gains {
			gains[m] *= inv
		}
	}

	out, err := core.NewMatrix(len(angles), signals.Cols())
	if err != nil {
		return nil, err
	}

	s := &steerer{
		geom:    geom,
		signals: signals,
		gains:   gains,
		fs:      fs,
		c0:      cfg.soundSpeed,
		ip:      ip,
	}

	workers := min(cfg.workers, len(angles))
	if workers == 1 {
		w := s.newWork()
		defer w.release()
		for i, theta := range angles {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("beamform: %w", err)
			}
			if err := w.steer(out.Row(i), theta); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	jobs := make(chan int, workers*2)
	errs := make([]error, len(angles))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := s.newWork()
			defer w.release()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = fmt.Errorf("beamform: %w", err)
					continue
				}
				errs[i] = w.steer(out.Row(i), angles[i])
			}
		}()
	}
	for i := range angles {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// steerer holds the read-only inputs shared by all workers.
type steerer struct {
	geom    *array.ULA
	signals *core.Matrix
	gains   []float64
	fs      float64
	c0      float64
	ip      *interp.Interpolator
}

// work is the per-goroutine scratch space.
type work struct {
	*steerer
	buf     *buffer.Scratch
	delays  []float64
	shifted []float64
	scaled  []float64
}

func (s *steerer) newWork() *work {
	n := s.signals.Cols()
	buf := scratch.Get(s.geom.Count(), n, n)
	return &work{
		steerer: s,
		buf:     buf,
		delays:  buf.Row(0),
		shifted: buf.Row(1),
		scaled:  buf.Row(2),
	}
}

func (w *work) release() {
	scratch.Put(w.buf)
	w.buf = nil
}

// steer accumulates the weighted, delay-compensated sensor rows into dst.
// dst must be zero on entry.
func (w *work) steer(dst []float64, theta float64) error {
	w.geom.DelaysInto(w.delays, theta, w.c0)
	for m, tau := range w.delays {
		if err := delay.Advance(w.shifted, w.signals.Row(m), delay.Seconds(tau, w.fs), w.ip); err != nil {
			return fmt.Errorf("beamform: sensor %d at %.4f rad: %w", m, theta, err)
		}
		vecmath.ScaleBlock(w.scaled, w.shifted, w.gains[m])
		vecmath.AddBlockInPlace(dst, w.scaled)
	}
	return nil
}

func validate(cfg config, geom *array.ULA, signals *core.Matrix, angles, weights []float64, fs float64) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("beamform: "+format+": %w", append(args, core.ErrInvalidConfiguration)...)
	}
	switch {
	case geom == nil:
		return bad("nil array geometry")
	case signals == nil:
		return bad("nil signal matrix")
	case signals.Rows() != geom.Count():
		return bad("signal matrix has %d rows, array has %d sensors", signals.Rows(), geom.Count())
	case signals.Cols() < 1:
		return bad("signal rows are empty")
	case len(weights) != geom.Count():
		return bad("got %d weights for %d sensors", len(weights), geom.Count())
	case len(angles) == 0:
		return bad("no steering angles")
	case !(fs > 0) || math.IsInf(fs, 0):
		return bad("sample rate must be > 0: %v", fs)
	case !(cfg.soundSpeed > 0) || math.IsInf(cfg.soundSpeed, 0):
		return bad("sound speed must be > 0: %v", cfg.soundSpeed)
	}
	for i, theta := range angles {
		if !core.IsFinite(theta) {
			return bad("steering angle %d is not finite: %v", i, theta)
		}
	}
	for m, w := range weights {
		if !core.IsFinite(w) {
			return bad("weight %d is not finite: %v", m, w)
		}
	}
	return nil
}
