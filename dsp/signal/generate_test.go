package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-beamform/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 0, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSinePhase(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	s, err := g.Sine(10, 2, math.Pi/2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s[0]-2) > 1e-12 {
		t.Fatalf("s[0] = %v, want 2", s[0])
	}
	if _, err := g.Sine(10, 1, 0, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if n1[i] < -1 || n1[i] > 1 {
			t.Fatalf("noise[%d] = %v out of range", i, n1[i])
		}
	}
}

func TestSuccessiveDrawsAreIndependent(t *testing.T) {
	g := NewGeneratorWithOptions(nil, WithSeed(7))
	a, _ := g.Gaussian(1, 8)
	b, _ := g.Gaussian(1, 8)
	for i := range a {
		if a[i] == b[i] {
			t.Fatalf("draws repeat at %d", i)
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(99)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("reseeded stream differs at %d", i)
		}
	}
}

func TestGaussianStatistics(t *testing.T) {
	g := NewGeneratorWithOptions(nil, WithSeed(3))
	n, err := g.Gaussian(0.5, 200000)
	if err != nil {
		t.Fatal(err)
	}

	mean := 0.0
	for _, v := range n {
		mean += v
	}
	mean /= float64(len(n))

	if math.Abs(mean) > 0.01 {
		t.Fatalf("mean = %v, want ~0", mean)
	}
	if p := Power(n); math.Abs(p-0.25) > 0.01 {
		t.Fatalf("power = %v, want ~0.25", p)
	}
}

func TestAddGaussianValidation(t *testing.T) {
	g := NewGenerator()
	if err := g.AddGaussian(make([]float64, 4), -1); err == nil {
		t.Fatal("expected error for negative stddev")
	}
	if err := g.AddGaussian(make([]float64, 4), math.NaN()); err == nil {
		t.Fatal("expected error for NaN stddev")
	}

	buf := []float64{1, 2}
	if err := g.AddGaussian(buf, 0); err != nil || buf[0] != 1 || buf[1] != 2 {
		t.Fatalf("zero stddev changed data: %v, %v", buf, err)
	}
}

func TestPhaseRange(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 100; i++ {
		if p := g.Phase(); p < 0 || p >= 2*math.Pi {
			t.Fatalf("phase %v out of [0, 2pi)", p)
		}
	}
}

func TestPower(t *testing.T) {
	if p := Power([]float64{1, -1, 1, -1}); p != 1 {
		t.Fatalf("Power = %v, want 1", p)
	}
	if p := Power(nil); p != 0 {
		t.Fatalf("Power(nil) = %v, want 0", p)
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}
}
