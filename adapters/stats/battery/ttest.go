package battery

import (
	"math"

	"github.com/montanaflynn/stats"

	"ablab/adapters/stats/dist"
	"ablab/domain/decision"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
)

// StudentTTestExecutor runs the two-sample t-test assuming equal variances.
type StudentTTestExecutor struct {
	dist *dist.Distributions
}

// NewStudentTTestExecutor creates the pooled-variance t-test executor
func NewStudentTTestExecutor(d *dist.Distributions) *StudentTTestExecutor {
	return &StudentTTestExecutor{dist: d}
}

func (e *StudentTTestExecutor) Test() decision.TestType { return decision.StudentTTest }

func (e *StudentTTestExecutor) Run(pair experiment.VariantPair) (verdict.TestResult, error) {
	return runTTest(pair, true, e.dist), nil
}

// WelchTTestExecutor runs the two-sample t-test with the
// Welch-Satterthwaite degrees-of-freedom correction for unequal variances.
type WelchTTestExecutor struct {
	dist *dist.Distributions
}

// NewWelchTTestExecutor creates the unequal-variances t-test executor
func NewWelchTTestExecutor(d *dist.Distributions) *WelchTTestExecutor {
	return &WelchTTestExecutor{dist: d}
}

func (e *WelchTTestExecutor) Test() decision.TestType { return decision.WelchTTest }

func (e *WelchTTestExecutor) Run(pair experiment.VariantPair) (verdict.TestResult, error) {
	return runTTest(pair, false, e.dist), nil
}

func runTTest(pair experiment.VariantPair, equalVariance bool, d *dist.Distributions) verdict.TestResult {
	x, y := pair.Control.Values, pair.Treatment.Values
	n1, n2 := float64(len(x)), float64(len(y))

	m1, _ := stats.Mean(x)
	m2, _ := stats.Mean(y)
	v1, _ := stats.SampleVariance(x)
	v2, _ := stats.SampleVariance(y)
	diff := m2 - m1

	var se, df float64
	if equalVariance {
		pooled := ((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2)
		se = math.Sqrt(pooled * (1/n1 + 1/n2))
		df = n1 + n2 - 2
	} else {
		se = math.Sqrt(v1/n1 + v2/n2)
		a, b := v1/n1, v2/n2
		df = (a + b) * (a + b) / (a*a/(n1-1) + b*b/(n2-1))
	}

	// Zero pooled variance: the t statistic is 0/0 or inf/0. Flag the
	// degenerate sample instead of letting a NaN escape as a verdict.
	if se == 0 {
		result := verdict.TestResult{
			Effect:   verdict.EffectEstimate{Kind: verdict.MeanDifference, Value: diff},
			Warnings: []experiment.WarningCode{experiment.WarningDegenerateSample},
		}
		if diff == 0 {
			result.PValue = 1 // all values identical across both samples
		}
		return result
	}

	t := diff / se
	q := d.TQuantile(0.975, df)
	ci := verdict.Interval{Lower: diff - q*se, Upper: diff + q*se, Level: 0.95}
	return verdict.TestResult{
		Statistic:        t,
		DegreesOfFreedom: df,
		PValue:           d.TTestPValue(t, df),
		Effect:           verdict.EffectEstimate{Kind: verdict.MeanDifference, Value: diff, CI: &ci},
	}
}
