package kernel

import (
	"math"
	"testing"
)

func TestGTTonemapZero(t *testing.T) {
	got := GTTonemap(RGB{0, 0, 0})
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("GTTonemap(0) = %v, want 0", got)
	}
}

func TestGTTonemapContinuity(t *testing.T) {
	// The piecewise curve must be continuous across the toe/linear
	// breakpoint at x = 0.22 and the linear/shoulder breakpoint at x = 0.62.
	const eps = 1e-5
	for _, bp := range []float32{0.22, 0.62} {
		below := gtCurve(bp - eps)
		above := gtCurve(bp + eps)
		if math.Abs(float64(above-below)) > 1e-3 {
			t.Errorf("discontinuity at x=%v: below %v, above %v", bp, below, above)
		}
	}
}

func TestGTTonemapMonotonic(t *testing.T) {
	prev := float32(-1)
	for x := float32(0); x <= 10; x += 0.01 {
		y := gtCurve(x)
		if y < prev-1e-6 {
			t.Fatalf("curve decreases at x=%v: %v < %v", x, y, prev)
		}
		prev = y
	}
}

func TestGTTonemapSaturates(t *testing.T) {
	// The shoulder approaches the display maximum from below.
	for _, x := range []float32{1, 5, 50, 500} {
		y := gtCurve(x)
		if y > gtP {
			t.Errorf("gtCurve(%v) = %v exceeds P=%v", x, y, float32(gtP))
		}
	}
	if y := gtCurve(100); y < 0.99 {
		t.Errorf("gtCurve(100) = %v, want near 1", y)
	}
}

func TestGTTonemapLinearSection(t *testing.T) {
	// Between the breakpoints the curve is the identity-slope line
	// m + a(x - m), which for a=1 is x itself.
	for _, x := range []float32{0.3, 0.45, 0.6} {
		y := gtCurve(x)
		if math.Abs(float64(y-x)) > 1e-6 {
			t.Errorf("linear section at %v = %v, want %v", x, y, x)
		}
	}
}

func TestACESTonemapRange(t *testing.T) {
	for _, x := range []float32{0, 0.1, 0.5, 1, 4, 100} {
		y := acesCurve(x)
		if y < 0 || y > 1 {
			t.Errorf("acesCurve(%v) = %v outside [0, 1]", x, y)
		}
	}
	if acesCurve(0) != 0 {
		t.Errorf("acesCurve(0) = %v, want 0", acesCurve(0))
	}
}

func TestACESTonemapKnownValues(t *testing.T) {
	// x = 1: 1*(2.51+0.03) / (1*(2.43+0.59)+0.14) = 2.54/3.16.
	want := float32(2.54 / 3.16)
	got := acesCurve(1)
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("acesCurve(1) = %v, want %v", got, want)
	}
}

func TestGamma(t *testing.T) {
	got := Gamma(RGB{1, 0, 0.5})
	if got.R != 1 || got.G != 0 {
		t.Errorf("Gamma endpoints = %v, want R=1 G=0", got)
	}
	want := float32(math.Pow(0.5, 1/2.2))
	if math.Abs(float64(got.B-want)) > 1e-5 {
		t.Errorf("Gamma(0.5) = %v, want %v", got.B, want)
	}
}

func TestTonemapString(t *testing.T) {
	if TonemapGT.String() != "GT" || TonemapACES.String() != "ACES" {
		t.Errorf("Tonemap names: %q, %q", TonemapGT.String(), TonemapACES.String())
	}
}
