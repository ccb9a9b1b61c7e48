// Package testkit builds synthetic experiment datasets for tests and demos.
// Everything is seeded; the same seed always yields the same table.
package testkit

import (
	"math/rand"
	"strconv"

	"ablab/domain/dataset"
)

// Generator produces deterministic synthetic A/B datasets.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator from a fixed seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NormalSample draws n values from N(mean, sd).
func (g *Generator) NormalSample(n int, mean, sd float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + sd*g.rng.NormFloat64()
	}
	return out
}

// BernoulliSample draws n binary outcomes with success probability p.
func (g *Generator) BernoulliSample(n int, p float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		if g.rng.Float64() < p {
			out[i] = 1
		}
	}
	return out
}

// ContinuousTable lays two float samples out as a variant/metric table,
// control rows first.
func ContinuousTable(controlLabel string, control []float64, treatmentLabel string, treatment []float64) dataset.Table {
	t := dataset.Table{Columns: []string{"variant", "metric"}}
	for _, v := range control {
		t.Rows = append(t.Rows, []string{controlLabel, strconv.FormatFloat(v, 'g', -1, 64)})
	}
	for _, v := range treatment {
		t.Rows = append(t.Rows, []string{treatmentLabel, strconv.FormatFloat(v, 'g', -1, 64)})
	}
	return t
}

// DiscreteTable lays success/failure counts out as a variant/outcome table,
// control rows first, successes before failures within each variant.
func DiscreteTable(controlLabel string, controlSuccesses, controlFailures int, treatmentLabel string, treatmentSuccesses, treatmentFailures int) dataset.Table {
	t := dataset.Table{Columns: []string{"variant", "converted"}}
	appendRows := func(label string, successes, failures int) {
		for i := 0; i < successes; i++ {
			t.Rows = append(t.Rows, []string{label, "1"})
		}
		for i := 0; i < failures; i++ {
			t.Rows = append(t.Rows, []string{label, "0"})
		}
	}
	appendRows(controlLabel, controlSuccesses, controlFailures)
	appendRows(treatmentLabel, treatmentSuccesses, treatmentFailures)
	return t
}
