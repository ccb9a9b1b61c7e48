package assess

import (
	"math"
	"testing"

	"ablab/adapters/stats/dist"
	"ablab/internal/testkit"
)

func closeTo(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestShapiroWilk_RoystonWorkedExample(t *testing.T) {
	// The n=11 weight sample from Royston's AS R94 paper, a strongly
	// non-normal sample with a published W.
	sample := []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}

	w, p := ShapiroWilk(sample, dist.New())
	if !closeTo(w, 0.7888146948, 1e-6) {
		t.Fatalf("W = %.10f, want 0.7888146948", w)
	}
	if !closeTo(p, 0.0067038140, 1e-6) {
		t.Fatalf("p = %.10f, want 0.0067038140", p)
	}
	if p >= 0.05 {
		t.Fatal("expected normality to be rejected")
	}
}

func TestShapiroWilk_NormalSamplesPass(t *testing.T) {
	d := dist.New()
	cases := []struct {
		name   string
		sample []float64
		w, p   float64
	}{
		{"tight n=10", testkit.SmallA, 0.9839820705, 0.9828902223},
		{"shifted n=10", testkit.SmallB, 0.9726917845, 0.9146187006},
		{"normal n=40", testkit.NormalA, 0.9481162944, 0.0653285296},
		{"wide n=40", testkit.NormalWide, 0.9892647844, 0.9643820306},
	}
	for _, tc := range cases {
		w, p := ShapiroWilk(tc.sample, d)
		if !closeTo(w, tc.w, 1e-6) || !closeTo(p, tc.p, 1e-6) {
			t.Fatalf("%s: got (W=%.10f, p=%.10f), want (%.10f, %.10f)", tc.name, w, p, tc.w, tc.p)
		}
		if p < 0.05 {
			t.Fatalf("%s: normality falsely rejected (p=%g)", tc.name, p)
		}
	}
}

func TestShapiroWilk_SkewedSampleRejected(t *testing.T) {
	w, p := ShapiroWilk(testkit.SkewedA, dist.New())
	if !closeTo(w, 0.7333603370, 1e-6) {
		t.Fatalf("W = %.10f, want 0.7333603370", w)
	}
	if !closeTo(p, 2.1198349549e-05, 1e-9) {
		t.Fatalf("p = %.12g, want 2.1198349549e-05", p)
	}
}

func TestShapiroWilk_MinimumSampleSize(t *testing.T) {
	// n=3 uses the exact arcsine form; an ordered spread sample must yield
	// a valid W in (0, 1] and a p in [0, 1].
	w, p := ShapiroWilk([]float64{1.0, 2.0, 4.0}, dist.New())
	if w <= 0 || w > 1 {
		t.Fatalf("W out of range: %v", w)
	}
	if p < 0 || p > 1 {
		t.Fatalf("p out of range: %v", p)
	}
}
