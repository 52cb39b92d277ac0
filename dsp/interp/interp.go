package interp

import (
	"fmt"
	"math"
)

// Mode selects the interpolation kernel.
type Mode int

const (
	Linear Mode = iota
	Hermite
	Lagrange3
	Lanczos3
	Sinc
)

const defaultSincHalfN = 8

var modeNames = map[Mode]string{
	Linear:    "linear",
	Hermite:   "hermite",
	Lagrange3: "lagrange3",
	Lanczos3:  "lanczos3",
	Sinc:      "sinc",
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode resolves a mode name such as "hermite".
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return Hermite, fmt.Errorf("interp: unknown mode %q", name)
}

// Interpolator reads finite signals at fractional positions.
// It holds no per-signal state and is safe for concurrent use.
type Interpolator struct {
	mode  Mode
	halfN int
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithSincN sets the one-sided tap count of the Sinc kernel. Values < 1 are ignored.
func WithSincN(halfN int) Option {
	return func(p *Interpolator) {
		if halfN >= 1 {
			p.halfN = halfN
		}
	}
}

// New returns an Interpolator for mode.
func New(mode Mode, opts ...Option) (*Interpolator, error) {
	if _, ok := modeNames[mode]; !ok {
		return nil, fmt.Errorf("interp: unsupported mode %d", int(mode))
	}
	p := &Interpolator{mode: mode, halfN: defaultSincHalfN}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Mode returns the configured kernel.
func (p *Interpolator) Mode() Mode {
	return p.mode
}

// At returns x evaluated at fractional index pos. Taps that fall outside
// [0, len(x)) contribute zero.
func (p *Interpolator) At(x []float64, pos float64) float64 {
	k := math.Floor(pos)
	if k < -float64(p.reach()) || k > float64(len(x)+p.reach()) {
		return 0
	}
	n := int(k)
	t := pos - k
	if t == 0 {
		return tap(x, n)
	}

	switch p.mode {
	case Linear:
		return Linear2(t, tap(x, n), tap(x, n+1))
	case Hermite:
		return Hermite4(t, tap(x, n-1), tap(x, n), tap(x, n+1), tap(x, n+2))
	case Lagrange3:
		return Lagrange4(t, tap(x, n-1), tap(x, n), tap(x, n+1), tap(x, n+2))
	case Lanczos3:
		return windowedSinc(x, n, t, 3, lanczosWeight)
	default:
		return windowedSinc(x, n, t, p.halfN, blackmanSincWeight)
	}
}

// reach is the largest tap distance a kernel touches.
func (p *Interpolator) reach() int {
	switch p.mode {
	case Linear:
		return 1
	case Hermite, Lagrange3:
		return 2
	case Lanczos3:
		return 3
	default:
		return p.halfN
	}
}

func tap(x []float64, i int) float64 {
	if i < 0 || i >= len(x) {
		return 0
	}
	return x[i]
}

// Linear2 interpolates between x0 and x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Lagrange4 evaluates the cubic through (-1,xm1), (0,x0), (1,x1), (2,x2) at t.
func Lagrange4(t, xm1, x0, x1, x2 float64) float64 {
	tp1 := t + 1
	tm1 := t - 1
	tm2 := t - 2
	return -t*tm1*tm2/6*xm1 +
		tp1*tm1*tm2/2*x0 -
		tp1*t*tm2/2*x1 +
		tp1*t*tm1/6*x2
}

// windowedSinc sums 2*half taps around n+t and normalizes by the kernel
// weight so constant signals pass unchanged.
func windowedSinc(x []float64, n int, t float64, half int, weight func(d float64, half int) float64) float64 {
	var acc, norm float64
	for k := n - half + 1; k <= n+half; k++ {
		w := weight(float64(n-k)+t, half)
		norm += w
		acc += w * tap(x, k)
	}
	if norm == 0 {
		return 0
	}
	return acc / norm
}

func lanczosWeight(d float64, a int) float64 {
	fa := float64(a)
	if math.Abs(d) >= fa {
		return 0
	}
	return sinc(d) * sinc(d/fa)
}

func blackmanSincWeight(d float64, half int) float64 {
	fh := float64(half)
	if math.Abs(d) >= fh {
		return 0
	}
	// Blackman window centered on d = 0 spanning (-half, half).
	phase := math.Pi * d / fh
	w := 0.42 + 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	return sinc(d) * w
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
