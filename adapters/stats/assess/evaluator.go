// Package assess computes the diagnostic statistics that feed the
// test-selection decision tree: expected cell counts for discrete metrics,
// normality and variance-homogeneity checks for continuous ones. It never
// chooses a test itself.
package assess

import (
	"ablab/adapters/stats/dist"
	"ablab/domain/experiment"
)

// Evaluator derives assumption diagnostics from a cleaned variant pair.
type Evaluator struct {
	dist *dist.Distributions
}

// NewEvaluator creates an assumption evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{dist: dist.New()}
}

// EvaluateDiscrete builds the 2x2 contingency table with its
// expected-frequency matrix. No assumption report is produced for discrete
// metrics; eligibility is read straight off the expected counts.
func (e *Evaluator) EvaluateDiscrete(pair experiment.VariantPair) experiment.ContingencyTable {
	return experiment.NewContingencyTable(pair)
}

// EvaluateContinuous runs the normality check per sample (within the
// Shapiro-Wilk size range) and the variance-homogeneity check across both.
// Out-of-range and degenerate checks are recovered locally per the
// documented fallback rules and noted in the report warnings; they are never
// surfaced as errors.
func (e *Evaluator) EvaluateContinuous(pair experiment.VariantPair) experiment.AssumptionReport {
	report := experiment.AssumptionReport{
		N1: pair.Control.N(),
		N2: pair.Treatment.N(),
	}

	report.NormalityControl = e.normality(pair.Control, &report)
	report.NormalityTreatment = e.normality(pair.Treatment, &report)

	stat, p, ok := Levene(pair.Control.Values, pair.Treatment.Values, e.dist)
	if !ok {
		report.Homogeneity = experiment.HomogeneityCheck{Status: experiment.HomogeneityDegenerate}
		report.Warnings = append(report.Warnings, experiment.WarningZeroVariance)
	} else {
		report.Homogeneity = experiment.HomogeneityCheck{
			Status:    experiment.HomogeneityTested,
			Statistic: stat,
			PValue:    p,
		}
	}
	return report
}

func (e *Evaluator) normality(s experiment.Sample, report *experiment.AssumptionReport) experiment.NormalityCheck {
	switch {
	case s.ConstantValue():
		report.Warnings = append(report.Warnings, experiment.WarningZeroVariance)
		return experiment.NormalityCheck{Status: experiment.NormalitySkippedDegenerate}
	case s.N() < ShapiroMinN:
		report.Warnings = append(report.Warnings, experiment.WarningNormalitySkippedLow)
		return experiment.NormalityCheck{Status: experiment.NormalitySkippedLow}
	case s.N() > ShapiroMaxN:
		// Large-sample fallback: assume approximate normality by the CLT.
		report.Warnings = append(report.Warnings, experiment.WarningNormalitySkippedCLT)
		return experiment.NormalityCheck{Status: experiment.NormalitySkippedCLT}
	default:
		w, p := ShapiroWilk(s.Values, e.dist)
		return experiment.NormalityCheck{Status: experiment.NormalityTested, W: w, PValue: p}
	}
}
