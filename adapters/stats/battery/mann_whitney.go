package battery

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"ablab/adapters/stats/dist"
	"ablab/domain/decision"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
)

// Exact enumeration bound: below this the U distribution is computed by
// dynamic programming (no ties), above it the normal approximation with tie
// and continuity corrections is used.
const mannWhitneyExactMaxN = 20

// MannWhitneyExecutor runs the rank-based Mann-Whitney U test.
type MannWhitneyExecutor struct {
	dist *dist.Distributions
}

// NewMannWhitneyExecutor creates the Mann-Whitney U executor
func NewMannWhitneyExecutor(d *dist.Distributions) *MannWhitneyExecutor {
	return &MannWhitneyExecutor{dist: d}
}

func (e *MannWhitneyExecutor) Test() decision.TestType { return decision.MannWhitneyU }

func (e *MannWhitneyExecutor) Run(pair experiment.VariantPair) (verdict.TestResult, error) {
	x, y := pair.Control.Values, pair.Treatment.Values
	n1, n2 := len(x), len(y)

	u1, tieTerm, hasTies := uStatistic(x, y)
	nn := float64(n1) * float64(n2)

	var result verdict.TestResult
	result.Statistic = u1

	total := float64(n1 + n2)
	if tieTerm == total*total*total-total { // one tie group: all values identical
		result.PValue = 1
		result.Warnings = append(result.Warnings, experiment.WarningDegenerateSample)
	} else if !hasTies && n1 <= mannWhitneyExactMaxN && n2 <= mannWhitneyExactMaxN {
		result.PValue = exactUPValue(u1, n1, n2)
	} else {
		result.PValue = e.approxPValue(u1, n1, n2, tieTerm)
		if hasTies {
			result.Warnings = append(result.Warnings, experiment.WarningTiedRanks)
		}
	}

	med1, _ := stats.Median(x)
	med2, _ := stats.Median(y)
	result.Effect = verdict.EffectEstimate{
		Kind:         verdict.MedianDifference,
		Value:        med2 - med1,
		RankBiserial: 2*u1/nn - 1,
	}
	return result, nil
}

// uStatistic computes U for the control sample using midranks, plus the tie
// correction term sum(t^3 - t) over tie groups.
func uStatistic(x, y []float64) (u1, tieTerm float64, hasTies bool) {
	type obs struct {
		value   float64
		control bool
	}
	all := make([]obs, 0, len(x)+len(y))
	for _, v := range x {
		all = append(all, obs{v, true})
	}
	for _, v := range y {
		all = append(all, obs{v, false})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].value < all[j].value })

	r1 := 0.0
	for i := 0; i < len(all); {
		j := i
		for j < len(all) && all[j].value == all[i].value {
			j++
		}
		midrank := float64(i+j+1) / 2 // 1-based average rank of the tie group
		for k := i; k < j; k++ {
			if all[k].control {
				r1 += midrank
			}
		}
		if t := float64(j - i); t > 1 {
			hasTies = true
			tieTerm += t*t*t - t
		}
		i = j
	}
	n1 := float64(len(x))
	u1 = r1 - n1*(n1+1)/2
	return u1, tieTerm, hasTies
}

// exactUPValue computes the two-sided p-value by enumerating the exact null
// distribution of U via the standard partition recurrence
// c(m, n, u) = c(m-1, n, u-n) + c(m, n-1, u).
func exactUPValue(u1 float64, n1, n2 int) float64 {
	u := u1
	if other := float64(n1*n2) - u1; other < u {
		u = other
	}
	k := int(math.Floor(u + 1e-9))

	cum := cumulativeUCount(n1, n2, k)
	total := math.Exp(logChoose(n1+n2, n1))
	p := 2 * cum / total
	if p > 1 {
		p = 1
	}
	return p
}

// cumulativeUCount counts arrangements with U <= k using memoized recursion.
func cumulativeUCount(n1, n2, k int) float64 {
	memo := make(map[[3]int]float64)
	var cnt func(m, n, u int) float64
	cnt = func(m, n, u int) float64 {
		if u < 0 {
			return 0
		}
		if m == 0 || n == 0 {
			if u == 0 {
				return 1
			}
			return 0
		}
		key := [3]int{m, n, u}
		if v, ok := memo[key]; ok {
			return v
		}
		v := cnt(m-1, n, u-n) + cnt(m, n-1, u)
		memo[key] = v
		return v
	}
	cum := 0.0
	for j := 0; j <= k; j++ {
		cum += cnt(n1, n2, j)
	}
	return cum
}

// approxPValue applies the normal approximation with tie correction and a
// 0.5 continuity correction.
func (e *MannWhitneyExecutor) approxPValue(u1 float64, n1, n2 int, tieTerm float64) float64 {
	fn1, fn2 := float64(n1), float64(n2)
	total := fn1 + fn2
	mu := fn1 * fn2 / 2
	sigma := math.Sqrt(fn1 * fn2 / 12 * ((total + 1) - tieTerm/(total*(total-1))))
	if sigma == 0 {
		return 1
	}
	z := (math.Abs(u1-mu) - 0.5) / sigma
	if z < 0 {
		z = 0
	}
	p := 2 * e.dist.NormalSurvival(z)
	if p > 1 {
		p = 1
	}
	return p
}
