package fastmath

import (
	"math"
	"testing"
)

func TestSinCosAccuracy(t *testing.T) {
	const steps = 10000
	for i := 0; i < steps; i++ {
		phase := float64(i) / steps
		sin, cos := SinCos(phase)

		wantSin, wantCos := math.Sincos(2 * math.Pi * phase)
		if math.Abs(sin-wantSin) > 1e-4 {
			t.Fatalf("SinCos(%v) sin = %v, want %v", phase, sin, wantSin)
		}
		if math.Abs(cos-wantCos) > 1e-4 {
			t.Fatalf("SinCos(%v) cos = %v, want %v", phase, cos, wantCos)
		}
	}
}

func TestSinCosUnitCircle(t *testing.T) {
	const steps = 4096
	for i := 0; i < steps; i++ {
		phase := float64(i) / steps
		sin, cos := SinCos(phase)

		mag := sin*sin + cos*cos
		if mag < 0.99 || mag > 1.01 {
			t.Fatalf("SinCos(%v): sin^2+cos^2 = %v, want ~1", phase, mag)
		}
	}
}

func TestSinCosQuadrantBoundaries(t *testing.T) {
	tests := []struct {
		phase, sin, cos float64
	}{
		{0, 0, 1},
		{0.25, 1, 0},
		{0.5, 0, -1},
		{0.75, -1, 0},
	}
	for _, tc := range tests {
		sin, cos := SinCos(tc.phase)
		if math.Abs(sin-tc.sin) > 1e-6 || math.Abs(cos-tc.cos) > 1e-6 {
			t.Errorf("SinCos(%v) = (%v, %v), want (%v, %v)", tc.phase, sin, cos, tc.sin, tc.cos)
		}
	}
}

func TestSinCosNegativePhaseClamped(t *testing.T) {
	sin, cos := SinCos(-0.3)
	if sin != 0 || math.Abs(cos-1) > 1e-12 {
		t.Errorf("SinCos(-0.3) = (%v, %v), want (0, 1)", sin, cos)
	}
}

func TestPow2M1(t *testing.T) {
	for i := -10; i <= 10; i++ {
		x := float64(i) / 10
		got := Pow2M1(x)

		want := math.Exp2(x) - 1
		if math.Abs(got-want) > 2e-3 {
			t.Errorf("Pow2M1(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestPowExactAtUnityExponent(t *testing.T) {
	for _, a := range []float64{0.25, 0.5, 1, 2, 4, 440} {
		if got := Pow(a, 1); got != a {
			t.Errorf("Pow(%v, 1) = %v, want exact %v", a, got, a)
		}
	}
}

func TestPowRoughAccuracy(t *testing.T) {
	for _, a := range []float64{0.5, 1, 2, 4} {
		got := Pow(a, 0)
		if math.Abs(got-1) > 0.1 {
			t.Errorf("Pow(%v, 0) = %v, want ~1", a, got)
		}
	}
}

func TestPowMonotonicInExponent(t *testing.T) {
	prev := Pow(2, -4.0)
	for i := -39; i <= 40; i++ {
		b := float64(i) / 10
		got := Pow(2, b)
		if got < prev {
			t.Fatalf("Pow(2, %v) = %v < previous %v, want monotonic", b, got, prev)
		}
		prev = got
	}
}

func TestPowFiniteAndNonNegative(t *testing.T) {
	inputs := []float64{0, 1e-300, 0.1, 1, 10, 1e300}
	exps := []float64{-1e3, -1, 0, 1, 1e3}
	for _, a := range inputs {
		for _, b := range exps {
			got := Pow(a, b)
			if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 {
				t.Errorf("Pow(%v, %v) = %v, want finite non-negative", a, b, got)
			}
		}
	}
}

func TestSoftLimitRange(t *testing.T) {
	inputs := []float64{0, 0.1, 0.5, 1, 1.5, 2, 10, 1e6, 1e300, math.MaxFloat64}
	for _, x := range inputs {
		got := SoftLimit(x)
		if got <= -1 || got >= 1 {
			t.Errorf("SoftLimit(%v) = %v, want in (-1, 1)", x, got)
		}
	}
}

func TestSoftLimitOdd(t *testing.T) {
	for _, x := range []float64{0.1, 0.7, 1.3, 2, 100} {
		if got, want := SoftLimit(-x), -SoftLimit(x); got != want {
			t.Errorf("SoftLimit(-%v) = %v, want %v", x, got, want)
		}
	}
}

func TestSoftLimitMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for i := -4000; i <= 4000; i++ {
		x := float64(i) / 1000
		got := SoftLimit(x)
		if got < prev {
			t.Fatalf("SoftLimit(%v) = %v < previous %v, want non-decreasing", x, got, prev)
		}
		prev = got
	}
}

func TestSoftLimitNearLinearForSmallInput(t *testing.T) {
	if got := SoftLimit(0.01); math.Abs(got-0.01) > 1e-4 {
		t.Errorf("SoftLimit(0.01) = %v, want ~0.01", got)
	}
}

func TestFractionRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.125, 0.25, 1.0 / 3.0, 0.5, 0.75, 0.999} {
		got := Fraction(FractionToUint32(v))
		if math.Abs(got-v) > 1e-6 {
			t.Errorf("round trip %v -> %v", v, got)
		}
	}
}

func TestFractionToUint32WrapsWholeCycles(t *testing.T) {
	if got, want := FractionToUint32(1.25), FractionToUint32(0.25); got != want {
		t.Errorf("FractionToUint32(1.25) = %d, want %d", got, want)
	}
	if got, want := FractionToUint32(-0.75), FractionToUint32(0.25); got != want {
		t.Errorf("FractionToUint32(-0.75) = %d, want %d", got, want)
	}
}

func BenchmarkSinCos(b *testing.B) {
	var sink float64
	for i := 0; i < b.N; i++ {
		s, _ := SinCos(float64(i&1023) / 1024)
		sink += s
	}
	_ = sink
}

func BenchmarkSoftLimit(b *testing.B) {
	var sink float64
	for i := 0; i < b.N; i++ {
		sink += SoftLimit(float64(i&7) - 3.5)
	}
	_ = sink
}
