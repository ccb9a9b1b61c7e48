package battery

import (
	"math"

	"ablab/adapters/stats/dist"
	"ablab/domain/decision"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
)

// FishersExactExecutor computes the exact two-sided p-value for a 2x2 table
// from the hypergeometric distribution: the sum of the probabilities of all
// tables with the observed margins no more likely than the observed one.
type FishersExactExecutor struct {
	dist *dist.Distributions
}

// NewFishersExactExecutor creates the Fisher's exact test executor
func NewFishersExactExecutor(d *dist.Distributions) *FishersExactExecutor {
	return &FishersExactExecutor{dist: d}
}

func (e *FishersExactExecutor) Test() decision.TestType { return decision.FishersExact }

func (e *FishersExactExecutor) Run(pair experiment.VariantPair) (verdict.TestResult, error) {
	table := experiment.NewContingencyTable(pair)

	row1 := table.RowTotal(0)
	row2 := table.RowTotal(1)
	col1 := table.ColumnTotal(1) // successes
	a := table.Counts[0][1]      // control successes

	lo := 0
	if col1 > row2 {
		lo = col1 - row2
	}
	hi := col1
	if row1 < col1 {
		hi = row1
	}

	// Relative tolerance keeps floating-point noise from excluding tables
	// exactly as likely as the observed one.
	const tol = 1 + 1e-7
	pObs := hypergeomPMF(a, row1, row2, col1)
	pValue := 0.0
	for k := lo; k <= hi; k++ {
		if p := hypergeomPMF(k, row1, row2, col1); p <= pObs*tol {
			pValue += p
		}
	}
	if pValue > 1 {
		pValue = 1
	}

	result := verdict.TestResult{
		// The odds-ratio numerator ad/bc is conventionally reported as the
		// Fisher statistic; the p-value does not depend on it.
		Statistic: oddsRatio(table),
		PValue:    pValue,
		Effect:    discreteEffect(table, e.dist),
	}
	if table.ColumnTotal(0) == 0 || table.ColumnTotal(1) == 0 {
		result.Warnings = append(result.Warnings, experiment.WarningDegenerateSample)
	}
	return result, nil
}

// hypergeomPMF evaluates the hypergeometric probability of k successes in
// row 1 given fixed margins, via log-factorials for numeric stability.
func hypergeomPMF(k, row1, row2, col1 int) float64 {
	if k < 0 || k > row1 || col1-k < 0 || col1-k > row2 {
		return 0
	}
	return math.Exp(
		logChoose(row1, k) + logChoose(row2, col1-k) - logChoose(row1+row2, col1),
	)
}

func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	ln1, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return ln1 - lk - lnk
}

func oddsRatio(t experiment.ContingencyTable) float64 {
	num := float64(t.Counts[0][0] * t.Counts[1][1])
	den := float64(t.Counts[0][1] * t.Counts[1][0])
	if den == 0 {
		return math.MaxFloat64
	}
	return num / den
}
