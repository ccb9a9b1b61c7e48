package battery

import (
	"ablab/adapters/stats/dist"
	"ablab/domain/decision"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
)

// ChiSquaredExecutor runs the Pearson chi-squared test on the 2x2 table.
// No continuity correction is applied, matching the standard 2x2 chi-squared;
// degrees of freedom is always 1.
type ChiSquaredExecutor struct {
	dist *dist.Distributions
}

// NewChiSquaredExecutor creates the chi-squared executor
func NewChiSquaredExecutor(d *dist.Distributions) *ChiSquaredExecutor {
	return &ChiSquaredExecutor{dist: d}
}

func (e *ChiSquaredExecutor) Test() decision.TestType { return decision.ChiSquared }

func (e *ChiSquaredExecutor) Run(pair experiment.VariantPair) (verdict.TestResult, error) {
	table := experiment.NewContingencyTable(pair)

	statistic := 0.0
	degenerate := false
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			expected := table.Expected[i][j]
			if expected == 0 {
				// A zero margin means no variation in the outcome at all.
				degenerate = true
				continue
			}
			diff := float64(table.Counts[i][j]) - expected
			statistic += diff * diff / expected
		}
	}

	result := verdict.TestResult{
		Statistic:        statistic,
		DegreesOfFreedom: 1,
		PValue:           e.dist.ChiSquarePValue(statistic, 1),
		Effect:           discreteEffect(table, e.dist),
	}
	if degenerate {
		result.Statistic = 0
		result.PValue = 1
		result.Warnings = append(result.Warnings, experiment.WarningDegenerateSample)
	}
	return result, nil
}

// discreteEffect reports the rate difference (treatment minus control) with
// a Newcombe/Wilson 95% interval, shared by both discrete executors.
func discreteEffect(table experiment.ContingencyTable, d *dist.Distributions) verdict.EffectEstimate {
	diff := table.Rate(1) - table.Rate(0)
	ci := newcombeDifferenceCI(
		table.Counts[0][1], table.RowTotal(0),
		table.Counts[1][1], table.RowTotal(1),
		0.95, d,
	)
	return verdict.EffectEstimate{Kind: verdict.RateDifference, Value: diff, CI: &ci}
}
