// Package app orchestrates the analysis pipeline: preparation, assumption
// evaluation, test selection, execution, and report assembly. One request is
// one synchronous run over its own immutable data; nothing is shared across
// runs.
package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"ablab/adapters/stats/assess"
	"ablab/adapters/stats/battery"
	"ablab/adapters/stats/dist"
	"ablab/domain/dataset"
	"ablab/domain/decision"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
	"ablab/internal/errors"
	"ablab/internal/prepare"
)

// AnalysisRequest carries everything one pipeline run needs. The table is
// the caller's parsed upload; the run never mutates it.
type AnalysisRequest struct {
	Table          dataset.Table
	ExperimentName string
	VariantColumn  string
	MetricColumn   string
	MetricType     experiment.MetricType
	// ControlLabel optionally pins the control group; empty means the
	// first-seen variant label is control.
	ControlLabel string
	// Alpha is the significance level; zero means the 0.05 default.
	Alpha float64
}

// AnalysisService runs the pipeline end to end.
type AnalysisService struct {
	evaluator *assess.Evaluator
	dist      *dist.Distributions
}

// NewAnalysisService creates an analysis service
func NewAnalysisService() *AnalysisService {
	return &AnalysisService{
		evaluator: assess.NewEvaluator(),
		dist:      dist.New(),
	}
}

// Analyze executes one complete run. Validation errors from preparation
// abort before any test executes; numeric edge cases surface as report
// warnings, never as silently wrong verdicts.
func (s *AnalysisService) Analyze(req AnalysisRequest) (*verdict.AnalysisReport, error) {
	if !req.MetricType.Valid() {
		return nil, errors.InvalidInput("metric type must be \"discrete\" or \"continuous\"")
	}

	pair, err := prepare.Prepare(req.Table, req.VariantColumn, req.MetricColumn, req.MetricType, prepare.Options{
		ControlLabel: req.ControlLabel,
	})
	if err != nil {
		return nil, err
	}

	report := &verdict.AnalysisReport{
		RunID:          uuid.NewString(),
		ExperimentName: req.ExperimentName,
		VariantColumn:  req.VariantColumn,
		MetricColumn:   req.MetricColumn,
		MetricType:     req.MetricType,
		DroppedRows:    pair.DroppedRows,
		AnalyzedAt:     time.Now().UTC(),
	}

	var dec decision.TestDecision
	switch req.MetricType {
	case experiment.MetricDiscrete:
		table := s.evaluator.EvaluateDiscrete(pair)
		report.Contingency = &table
		report.Rates = s.variantRates(table)
		dec = decision.SelectDiscrete(table)
	case experiment.MetricContinuous:
		assumptions := s.evaluator.EvaluateContinuous(pair)
		report.Assumptions = &assumptions
		report.Groups = groupSummaries(pair)
		dec = decision.SelectContinuous(assumptions)
	}
	report.Decision = dec

	result, err := battery.New(req.Alpha).Run(dec, pair)
	if err != nil {
		return nil, errors.Wrap(err, "executing "+string(dec.Test))
	}
	report.Result = result
	report.Warnings = collectWarnings(pair, report.Assumptions, result)
	return report, nil
}

// variantRates builds the per-variant conversion rates with Wilson 95%
// intervals, the chart data for discrete results.
func (s *AnalysisService) variantRates(table experiment.ContingencyTable) []verdict.VariantRate {
	rates := make([]verdict.VariantRate, 0, 2)
	for i := 0; i < 2; i++ {
		rates = append(rates, verdict.VariantRate{
			Label:     table.RowLabels[i],
			Successes: table.Counts[i][1],
			Trials:    table.RowTotal(i),
			Rate:      table.Rate(i),
			CI:        battery.WilsonInterval(table.Counts[i][1], table.RowTotal(i), 0.95, s.dist),
		})
	}
	return rates
}

func groupSummaries(pair experiment.VariantPair) []verdict.GroupSummary {
	summaries := make([]verdict.GroupSummary, 0, 2)
	for _, sample := range []experiment.Sample{pair.Control, pair.Treatment} {
		mean, _ := stats.Mean(sample.Values)
		sd, _ := stats.StandardDeviationSample(sample.Values)
		median, _ := stats.Median(sample.Values)
		summaries = append(summaries, verdict.GroupSummary{
			Label:  sample.Label,
			N:      sample.N(),
			Mean:   mean,
			StdDev: sd,
			Median: median,
		})
	}
	return summaries
}

// collectWarnings merges preparation, assumption, and execution warnings,
// deduplicated, in pipeline order.
func collectWarnings(pair experiment.VariantPair, assumptions *experiment.AssumptionReport, result verdict.TestResult) []experiment.WarningCode {
	var all []experiment.WarningCode
	if pair.DroppedRows > 0 {
		all = append(all, experiment.WarningRowsDropped)
	}
	if assumptions != nil {
		all = append(all, assumptions.Warnings...)
	}
	all = append(all, result.Warnings...)

	seen := map[experiment.WarningCode]bool{}
	deduped := all[:0]
	for _, w := range all {
		if !seen[w] {
			seen[w] = true
			deduped = append(deduped, w)
		}
	}
	if len(deduped) == 0 {
		return nil
	}
	return deduped
}
