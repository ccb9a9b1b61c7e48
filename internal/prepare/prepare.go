// Package prepare validates and coerces the two input columns of an upload
// into clean per-variant samples. Validation failures abort the pipeline
// before any test runs; they are the user's errors, surfaced verbatim.
package prepare

import (
	"sort"
	"strconv"
	"strings"

	"ablab/domain/core"
	"ablab/domain/dataset"
	"ablab/domain/experiment"
)

// Options tune preparation. The zero value follows the defaults: first-seen
// variant label is the control group.
type Options struct {
	// ControlLabel pins which variant label is the control group. Empty
	// means encounter order decides.
	ControlLabel string
}

// Prepare groups the metric column by the variant column and coerces values
// according to the metric type.
func Prepare(table dataset.Table, variantColumn, metricColumn string, metric experiment.MetricType, opts Options) (experiment.VariantPair, error) {
	pair := experiment.VariantPair{Metric: metric, MetricName: metricColumn}

	vi, ok := table.ColumnIndex(variantColumn)
	if !ok {
		return pair, core.NewColumnNotFoundError(variantColumn)
	}
	mi, ok := table.ColumnIndex(metricColumn)
	if !ok {
		return pair, core.NewColumnNotFoundError(metricColumn)
	}

	// First pass: keep non-null rows, record distinct variant labels in
	// encounter order.
	type row struct {
		label string
		value string
	}
	rows := make([]row, 0, len(table.Rows))
	var labels []string
	seen := map[string]bool{}
	dropped := 0
	for i := range table.Rows {
		label := table.Cell(i, vi)
		value := table.Cell(i, mi)
		if label == "" || value == "" {
			dropped++
			continue
		}
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
		rows = append(rows, row{label, value})
	}
	if len(labels) != 2 {
		return pair, core.NewVariantCountError(variantColumn, len(labels))
	}

	control, treatment := labels[0], labels[1]
	if opts.ControlLabel != "" && strings.EqualFold(opts.ControlLabel, treatment) {
		control, treatment = treatment, control
	}

	groups := map[string][]float64{}
	switch metric {
	case experiment.MetricDiscrete:
		values := make([]string, len(rows))
		for i, r := range rows {
			values[i] = normalizeToken(r.value)
		}
		mapping, err := binaryDomain(values, metricColumn)
		if err != nil {
			return pair, err
		}
		for _, r := range rows {
			groups[r.label] = append(groups[r.label], mapping[normalizeToken(r.value)])
		}
	case experiment.MetricContinuous:
		for _, r := range rows {
			v, err := strconv.ParseFloat(r.value, 64)
			if err != nil {
				dropped++
				continue
			}
			groups[r.label] = append(groups[r.label], v)
		}
	}

	pair.Control = experiment.Sample{Label: control, Values: groups[control]}
	pair.Treatment = experiment.Sample{Label: treatment, Values: groups[treatment]}
	pair.DroppedRows = dropped
	if err := pair.Validate(); err != nil {
		return pair, err
	}
	return pair, nil
}

// binaryDomain maps the distinct normalized values of a discrete metric to
// {0, 1}. More than two distinct values is the user's error. With two
// values, the smaller one (numeric order when both parse, lexicographic
// otherwise) codes 0, so a native {0,1} or {no,yes} column keeps its
// natural coding.
func binaryDomain(values []string, column string) (map[string]float64, error) {
	distinct := map[string]bool{}
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) > 2 {
		return nil, core.NewInvalidMetricDomainError(column, len(distinct))
	}

	keys := make([]string, 0, 2)
	for k := range distinct {
		keys = append(keys, k)
	}
	if len(keys) == 1 {
		// Single observed outcome: a degenerate but valid table.
		return map[string]float64{keys[0]: binaryCode(keys[0])}, nil
	}

	_, aNum := parseNumeric(keys[0])
	_, bNum := parseNumeric(keys[1])
	if aNum && bNum {
		sort.Slice(keys, func(i, j int) bool {
			vi, _ := parseNumeric(keys[i])
			vj, _ := parseNumeric(keys[j])
			return vi < vj
		})
	} else {
		sort.Strings(keys)
	}
	return map[string]float64{keys[0]: 0, keys[1]: 1}, nil
}

func binaryCode(token string) float64 {
	if v, ok := parseNumeric(token); ok && v == 1 {
		return 1
	}
	switch token {
	case "true", "yes", "y", "t":
		return 1
	}
	return 0
}

func parseNumeric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
