package experiment

import (
	"ablab/domain/core"
)

// MetricType tags the kind of metric under analysis
type MetricType string

const (
	MetricDiscrete   MetricType = "discrete"
	MetricContinuous MetricType = "continuous"
)

// Valid reports whether the metric type is one of the recognized tags.
func (m MetricType) Valid() bool {
	return m == MetricDiscrete || m == MetricContinuous
}

// Sample is an ordered sequence of observations for one variant.
// For discrete metrics values are binary-coded {0, 1}.
// INVARIANT: non-empty, no missing values after cleaning.
type Sample struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

func (s Sample) N() int { return len(s.Values) }

// Successes counts the 1-coded observations of a binary sample.
func (s Sample) Successes() int {
	n := 0
	for _, v := range s.Values {
		if v == 1 {
			n++
		}
	}
	return n
}

// ConstantValue reports whether every observation equals the first one.
// Vacuously true for samples of size one.
func (s Sample) ConstantValue() bool {
	for _, v := range s.Values[1:] {
		if v != s.Values[0] {
			return false
		}
	}
	return true
}

// VariantPair holds the two cleaned samples of one analysis run.
// INVARIANT: both samples non-empty, same metric, disjoint row origin.
type VariantPair struct {
	Control    Sample     `json:"control"`
	Treatment  Sample     `json:"treatment"`
	Metric     MetricType `json:"metric_type"`
	MetricName string     `json:"metric_name"`
	// DroppedRows counts rows removed during cleaning (non-numeric or
	// missing metric values, missing variant labels).
	DroppedRows int `json:"dropped_rows"`
}

// Validate enforces the pair invariants shared by every downstream stage.
func (p VariantPair) Validate() error {
	if p.Control.N() == 0 {
		return core.NewInsufficientDataError(p.Control.Label)
	}
	if p.Treatment.N() == 0 {
		return core.NewInsufficientDataError(p.Treatment.Label)
	}
	return nil
}

// WarningCode represents structured warning types attached to a run
type WarningCode string

const (
	WarningDegenerateSample    WarningCode = "DEGENERATE_SAMPLE"     // All-identical values; statistic undefined
	WarningZeroVariance        WarningCode = "ZERO_VARIANCE"         // One sample constant; homogeneity degenerate
	WarningNormalitySkippedCLT WarningCode = "NORMALITY_SKIPPED_CLT" // n too large; normality assumed by CLT
	WarningNormalitySkippedLow WarningCode = "NORMALITY_SKIPPED_LOW" // n too small for the normality test
	WarningRowsDropped         WarningCode = "ROWS_DROPPED"          // Non-coercible rows removed during prep
	WarningTiedRanks           WarningCode = "TIED_RANKS"            // Mann-Whitney used tie-corrected approximation
)
