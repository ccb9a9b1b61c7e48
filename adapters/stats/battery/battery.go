// Package battery executes the statistical test chosen by the decision
// engine against a cleaned variant pair. One executor per test, registered
// behind a common interface so execution stays decoupled from selection.
package battery

import (
	"ablab/adapters/stats/dist"
	"ablab/domain/core"
	"ablab/domain/decision"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
)

// DefaultAlpha is the significance level used when the caller does not
// configure one.
const DefaultAlpha = 0.05

// Executor runs one specific hypothesis test.
type Executor interface {
	Test() decision.TestType
	Run(pair experiment.VariantPair) (verdict.TestResult, error)
}

// Battery dispatches a TestDecision to its executor and applies the verdict
// rule p < alpha.
type Battery struct {
	alpha     float64
	executors map[decision.TestType]Executor
}

// New creates a battery with every supported executor registered.
func New(alpha float64) *Battery {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	d := dist.New()
	b := &Battery{alpha: alpha, executors: make(map[decision.TestType]Executor)}
	for _, ex := range []Executor{
		NewChiSquaredExecutor(d),
		NewFishersExactExecutor(d),
		NewStudentTTestExecutor(d),
		NewWelchTTestExecutor(d),
		NewMannWhitneyExecutor(d),
	} {
		b.executors[ex.Test()] = ex
	}
	return b
}

// Alpha returns the configured significance level.
func (b *Battery) Alpha() float64 { return b.alpha }

// Run executes the chosen test and stamps the verdict. A degenerate result
// is never reported significant, and its non-significance is flagged so the
// presentation layer shows "no variation observed" instead of a spurious
// verdict.
func (b *Battery) Run(dec decision.TestDecision, pair experiment.VariantPair) (verdict.TestResult, error) {
	ex, ok := b.executors[dec.Test]
	if !ok {
		return verdict.TestResult{}, core.ErrUnknownTest
	}
	result, err := ex.Run(pair)
	if err != nil {
		return verdict.TestResult{}, err
	}
	result.Test = dec.Test
	result.Alpha = b.alpha
	result.Significant = !result.Degenerate() && result.PValue < b.alpha
	return result, nil
}
