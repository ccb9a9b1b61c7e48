package verdict

import (
	"time"

	"ablab/domain/decision"
	"ablab/domain/experiment"
)

// EffectKind names the family of the point estimate
type EffectKind string

const (
	RateDifference   EffectKind = "rate_difference"
	MeanDifference   EffectKind = "mean_difference"
	MedianDifference EffectKind = "median_difference"
)

// Interval is a two-sided confidence interval
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"` // e.g. 0.95
}

// EffectEstimate is the magnitude of the variant difference, distinct from
// the p-value which only indicates detectability.
type EffectEstimate struct {
	Kind  EffectKind `json:"kind"`
	Value float64    `json:"value"` // treatment minus control
	CI    *Interval  `json:"confidence_interval,omitempty"`
	// RankBiserial accompanies the Mann-Whitney median difference.
	RankBiserial float64 `json:"rank_biserial,omitempty"`
}

// TestResult is the terminal artifact of one executed test.
type TestResult struct {
	Test             decision.TestType        `json:"test"`
	Statistic        float64                  `json:"statistic"`
	DegreesOfFreedom float64                  `json:"degrees_of_freedom,omitempty"`
	PValue           float64                  `json:"p_value"`
	Effect           EffectEstimate           `json:"effect"`
	Alpha            float64                  `json:"alpha"`
	Significant      bool                     `json:"significant"`
	Warnings         []experiment.WarningCode `json:"warnings,omitempty"`
}

// Degenerate reports whether the result carries the no-variation flag and
// must not be read as an ordinary non-significant outcome.
func (r TestResult) Degenerate() bool {
	for _, w := range r.Warnings {
		if w == experiment.WarningDegenerateSample {
			return true
		}
	}
	return false
}

// GroupSummary holds the per-variant descriptive statistics shown next to a
// continuous-metric result.
type GroupSummary struct {
	Label  string  `json:"label"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
}

// VariantRate holds a per-variant conversion rate with its Wilson interval,
// the chart data for a discrete-metric result.
type VariantRate struct {
	Label     string   `json:"label"`
	Successes int      `json:"successes"`
	Trials    int      `json:"trials"`
	Rate      float64  `json:"rate"`
	CI        Interval `json:"confidence_interval"`
}

// AnalysisReport is the complete output artifact of one pipeline run,
// consumed only by presentation.
type AnalysisReport struct {
	RunID          string                       `json:"run_id"`
	ExperimentName string                       `json:"experiment_name,omitempty"`
	VariantColumn  string                       `json:"variant_column"`
	MetricColumn   string                       `json:"metric_column"`
	MetricType     experiment.MetricType        `json:"metric_type"`
	Contingency    *experiment.ContingencyTable `json:"contingency_table,omitempty"`
	Assumptions    *experiment.AssumptionReport `json:"assumption_report,omitempty"`
	Decision       decision.TestDecision        `json:"decision"`
	Result         TestResult                   `json:"result"`
	Groups         []GroupSummary               `json:"group_summaries,omitempty"`
	Rates          []VariantRate                `json:"variant_rates,omitempty"`
	DroppedRows    int                          `json:"dropped_rows,omitempty"`
	Warnings       []experiment.WarningCode     `json:"warnings,omitempty"`
	AnalyzedAt     time.Time                    `json:"analyzed_at"`
}
