package battery

import (
	"errors"
	"testing"

	"ablab/domain/core"
	"ablab/domain/decision"
	"ablab/internal/testkit"
)

func TestBattery_StampsVerdictFields(t *testing.T) {
	b := New(0.01)
	dec := decision.TestDecision{Test: decision.StudentTTest, Rule: "assumptions_hold"}

	result, err := b.Run(dec, continuousPair(testkit.SmallA, testkit.SmallB))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Test != decision.StudentTTest {
		t.Fatalf("test = %s", result.Test)
	}
	if result.Alpha != 0.01 {
		t.Fatalf("alpha = %v, want 0.01", result.Alpha)
	}
	if !result.Significant {
		t.Fatalf("p = %g at alpha 0.01 should be significant", result.PValue)
	}
}

func TestBattery_InvalidAlphaFallsBackToDefault(t *testing.T) {
	if got := New(0).Alpha(); got != DefaultAlpha {
		t.Fatalf("alpha = %v, want %v", got, DefaultAlpha)
	}
	if got := New(1.5).Alpha(); got != DefaultAlpha {
		t.Fatalf("alpha = %v, want %v", got, DefaultAlpha)
	}
}

func TestBattery_UnknownTestRejected(t *testing.T) {
	_, err := New(0.05).Run(decision.TestDecision{Test: "anova"}, continuousPair(testkit.SmallA, testkit.SmallB))
	if !errors.Is(err, core.ErrUnknownTest) {
		t.Fatalf("expected ErrUnknownTest, got %v", err)
	}
}

func TestBattery_DegenerateNeverSignificant(t *testing.T) {
	dec := decision.TestDecision{Test: decision.WelchTTest, Rule: "variances_unequal"}
	result, err := New(0.05).Run(dec, continuousPair([]float64{7, 7, 7}, []float64{7, 7, 7}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Significant {
		t.Fatal("a degenerate result must never be significant")
	}
	if !result.Degenerate() {
		t.Fatalf("missing degenerate flag, warnings %v", result.Warnings)
	}
}
