package assess

import (
	"testing"

	"ablab/adapters/stats/dist"
	"ablab/internal/testkit"
)

func TestLevene_HomogeneousVariances(t *testing.T) {
	stat, p, ok := Levene(testkit.NormalA, testkit.NormalB, dist.New())
	if !ok {
		t.Fatal("statistic unexpectedly degenerate")
	}
	if !closeTo(stat, 3.1957665507, 1e-6) {
		t.Fatalf("F = %.10f, want 3.1957665507", stat)
	}
	if !closeTo(p, 0.0777132333, 1e-6) {
		t.Fatalf("p = %.10f, want 0.0777132333", p)
	}
	if p < 0.05 {
		t.Fatal("homogeneity falsely rejected")
	}
}

func TestLevene_UnequalVariancesRejected(t *testing.T) {
	stat, p, ok := Levene(testkit.NormalA, testkit.NormalWide, dist.New())
	if !ok {
		t.Fatal("statistic unexpectedly degenerate")
	}
	if !closeTo(stat, 27.7275860873, 1e-5) {
		t.Fatalf("F = %.10f, want 27.7275860873", stat)
	}
	if !closeTo(p, 1.2004406849e-06, 1e-10) {
		t.Fatalf("p = %.12g, want 1.2004406849e-06", p)
	}
}

func TestLevene_ConstantSamplesDegenerate(t *testing.T) {
	_, _, ok := Levene([]float64{4, 4, 4, 4}, []float64{9, 9, 9, 9}, dist.New())
	if ok {
		t.Fatal("expected the degenerate flag for constant samples")
	}
}
