// Package decision holds the test-selection engine: a pure, deterministic
// mapping from metric type and assumption diagnostics to the statistically
// valid test. The branch order is significant and encoded as an explicit
// rule table so the tie-break ordering stays auditable in isolation.
package decision

import (
	"fmt"

	"ablab/domain/experiment"
)

// TestType identifies a statistical hypothesis test
type TestType string

const (
	ChiSquared   TestType = "chi_squared"
	FishersExact TestType = "fishers_exact"
	StudentTTest TestType = "student_ttest"
	WelchTTest   TestType = "welch_ttest"
	MannWhitneyU TestType = "mann_whitney_u"
)

// Named thresholds of the decision tree. MinExpectedCell is the classic
// chi-squared robustness floor: the asymptotic approximation is unreliable
// when any expected cell count drops below it.
const (
	MinExpectedCell = 5.0
	AssumptionAlpha = 0.05
)

// TestDecision records the chosen test and the threshold that selected it.
// Never mutated after creation.
type TestDecision struct {
	Test      TestType `json:"test"`
	Rule      string   `json:"rule"`
	Rationale string   `json:"rationale"`
}

// continuousRule is one ordered branch of the continuous decision tree.
// First match wins.
type continuousRule struct {
	name   string
	test   TestType
	fires  func(r experiment.AssumptionReport) bool
	reason func(r experiment.AssumptionReport) string
}

// Normality is checked before variance equality: once normality fails, a
// non-parametric test is required regardless of variance structure. Only
// among approximately-normal samples does the variance branch matter.
var continuousRules = []continuousRule{
	{
		name: "normality_rejected",
		test: MannWhitneyU,
		fires: func(r experiment.AssumptionReport) bool {
			return r.NormalityControl.Rejected(AssumptionAlpha) ||
				r.NormalityTreatment.Rejected(AssumptionAlpha)
		},
		reason: func(r experiment.AssumptionReport) string {
			p := r.NormalityControl.PValue
			if r.NormalityTreatment.Rejected(AssumptionAlpha) &&
				(!r.NormalityControl.Rejected(AssumptionAlpha) || r.NormalityTreatment.PValue < p) {
				p = r.NormalityTreatment.PValue
			}
			return fmt.Sprintf("Shapiro-Wilk rejected normality (p=%.4g < %.2f); falling back to a rank-based test", p, AssumptionAlpha)
		},
	},
	{
		name: "variances_unequal",
		test: WelchTTest,
		fires: func(r experiment.AssumptionReport) bool {
			return r.Homogeneity.UnequalVariances(AssumptionAlpha)
		},
		reason: func(r experiment.AssumptionReport) string {
			if r.Homogeneity.Status == experiment.HomogeneityDegenerate {
				return "variance-homogeneity test degenerate (zero variance); treating variances as unequal"
			}
			return fmt.Sprintf("Levene test rejected equal variances (p=%.4g < %.2f)", r.Homogeneity.PValue, AssumptionAlpha)
		},
	},
	{
		name:  "assumptions_hold",
		test:  StudentTTest,
		fires: func(experiment.AssumptionReport) bool { return true },
		reason: func(r experiment.AssumptionReport) string {
			return fmt.Sprintf("normality not rejected and variances homogeneous (Levene p=%.4g)", r.Homogeneity.PValue)
		},
	},
}

// SelectDiscrete picks the test for a 2x2 contingency table.
func SelectDiscrete(table experiment.ContingencyTable) TestDecision {
	if table.MinExpected < MinExpectedCell {
		return TestDecision{
			Test: FishersExact,
			Rule: "sparse_expected_cells",
			Rationale: fmt.Sprintf("minimum expected cell count %.2f < %.0f; chi-squared approximation unreliable, using exact test",
				table.MinExpected, MinExpectedCell),
		}
	}
	return TestDecision{
		Test: ChiSquared,
		Rule: "expected_cells_adequate",
		Rationale: fmt.Sprintf("all expected cell counts >= %.0f (minimum %.2f); chi-squared approximation valid",
			MinExpectedCell, table.MinExpected),
	}
}

// SelectContinuous walks the ordered rule table; the first firing rule wins.
func SelectContinuous(report experiment.AssumptionReport) TestDecision {
	for _, rule := range continuousRules {
		if rule.fires(report) {
			return TestDecision{Test: rule.test, Rule: rule.name, Rationale: rule.reason(report)}
		}
	}
	// Unreachable: the last rule always fires.
	return TestDecision{Test: StudentTTest, Rule: "assumptions_hold"}
}
