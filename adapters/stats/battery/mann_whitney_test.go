package battery

import (
	"testing"

	"ablab/adapters/stats/dist"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
	"ablab/internal/testkit"
)

func TestMannWhitney_ExactFullySeparatedSamples(t *testing.T) {
	ex := NewMannWhitneyExecutor(dist.New())
	result, err := ex.Run(continuousPair(
		[]float64{1.1, 2.3, 3.1, 4.2, 5.5},
		[]float64{6.1, 7.2, 8.3, 9.4, 10.5},
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Statistic != 0 {
		t.Fatalf("U = %v, want 0 for full separation", result.Statistic)
	}
	// 2 / C(10,5) = 2/252, the exact two-sided tail.
	if !closeTo(result.PValue, 0.0079365079, 1e-10) {
		t.Fatalf("p = %.12g, want 0.0079365079", result.PValue)
	}
	if result.Effect.Kind != verdict.MedianDifference {
		t.Fatalf("effect kind = %s", result.Effect.Kind)
	}
	if !closeTo(result.Effect.Value, 5.2, 1e-9) {
		t.Fatalf("median difference = %v, want 5.2", result.Effect.Value)
	}
	if !closeTo(result.Effect.RankBiserial, -1, 1e-12) {
		t.Fatalf("rank-biserial = %v, want -1", result.Effect.RankBiserial)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", result.Warnings)
	}
}

func TestMannWhitney_ExactOverlappingSamples(t *testing.T) {
	ex := NewMannWhitneyExecutor(dist.New())
	result, err := ex.Run(continuousPair(
		[]float64{3.1, 4.5, 2.8, 5.2, 3.9, 4.1},
		[]float64{4.0, 5.1, 3.5, 6.0, 4.8, 5.5},
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Statistic != 9 {
		t.Fatalf("U = %v, want 9", result.Statistic)
	}
	if !closeTo(result.PValue, 0.1796536797, 1e-10) {
		t.Fatalf("p = %.12g, want 0.1796536797", result.PValue)
	}
	if !closeTo(result.Effect.Value, 0.95, 1e-9) {
		t.Fatalf("median difference = %v, want 0.95", result.Effect.Value)
	}
	if !closeTo(result.Effect.RankBiserial, -0.5, 1e-12) {
		t.Fatalf("rank-biserial = %v, want -0.5", result.Effect.RankBiserial)
	}
}

func TestMannWhitney_LargeSamplesUseNormalApproximation(t *testing.T) {
	// n=25 per group exceeds the exact-enumeration bound.
	ex := NewMannWhitneyExecutor(dist.New())
	result, err := ex.Run(continuousPair(testkit.SkewedA, testkit.SkewedB))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Statistic != 165 {
		t.Fatalf("U = %v, want 165", result.Statistic)
	}
	if !closeTo(result.PValue, 0.0043415185, 1e-8) {
		t.Fatalf("p = %.12g, want 0.0043415185", result.PValue)
	}
	if !closeTo(result.Effect.RankBiserial, -0.472, 1e-9) {
		t.Fatalf("rank-biserial = %v, want -0.472", result.Effect.RankBiserial)
	}
}

func TestMannWhitney_TiesForceApproximationWithWarning(t *testing.T) {
	ex := NewMannWhitneyExecutor(dist.New())
	result, err := ex.Run(continuousPair(
		[]float64{1, 2, 2, 3, 4},
		[]float64{2, 3, 3, 4, 5},
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !hasWarningCode(result.Warnings, experiment.WarningTiedRanks) {
		t.Fatalf("missing tied-ranks warning, got %v", result.Warnings)
	}
	if result.PValue <= 0 || result.PValue > 1 {
		t.Fatalf("p out of range: %v", result.PValue)
	}
}

func TestMannWhitney_AllIdenticalValuesDegenerate(t *testing.T) {
	ex := NewMannWhitneyExecutor(dist.New())
	result, err := ex.Run(continuousPair(
		[]float64{5, 5, 5},
		[]float64{5, 5, 5},
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !result.Degenerate() {
		t.Fatalf("missing degenerate flag, warnings %v", result.Warnings)
	}
	if result.PValue != 1 {
		t.Fatalf("p = %v, want 1", result.PValue)
	}
	if result.Effect.Value != 0 {
		t.Fatalf("median difference = %v, want 0", result.Effect.Value)
	}
}

func hasWarningCode(warnings []experiment.WarningCode, want experiment.WarningCode) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}
