package assess

import (
	"math"

	"github.com/montanaflynn/stats"

	"ablab/adapters/stats/dist"
)

// Levene computes the Brown-Forsythe variant of Levene's variance-homogeneity
// test across two samples: absolute deviations from each group median, then a
// one-way ANOVA F statistic on those deviations. The median-centered form is
// robust to non-normality, which is why the decision tree may consult it even
// when normality already failed.
//
// ok is false when the statistic is degenerate (all deviations identical,
// e.g. constant samples); callers must apply the unequal-variances fallback.
func Levene(x, y []float64, d *dist.Distributions) (statistic, pValue float64, ok bool) {
	zx := absDeviations(x)
	zy := absDeviations(y)

	n1, n2 := float64(len(zx)), float64(len(zy))
	total := n1 + n2
	const k = 2

	mx, _ := stats.Mean(zx)
	my, _ := stats.Mean(zy)
	mAll := (mx*n1 + my*n2) / total

	between := (total - k) * (n1*(mx-mAll)*(mx-mAll) + n2*(my-mAll)*(my-mAll))
	within := 0.0
	for _, v := range zx {
		within += (v - mx) * (v - mx)
	}
	for _, v := range zy {
		within += (v - my) * (v - my)
	}
	within *= k - 1

	if within == 0 {
		return 0, 0, false
	}

	statistic = between / within
	if math.IsNaN(statistic) || math.IsInf(statistic, 0) {
		return 0, 0, false
	}
	return statistic, d.FTestPValue(statistic, k-1, int(total)-k), true
}

func absDeviations(sample []float64) []float64 {
	med, _ := stats.Median(sample)
	z := make([]float64, len(sample))
	for i, v := range sample {
		z[i] = math.Abs(v - med)
	}
	return z
}
