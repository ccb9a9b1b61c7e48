package assess

import (
	"math"
	"sort"

	"ablab/adapters/stats/dist"
)

// Valid sample-size range for the Shapiro-Wilk normality test. Outside this
// range the caller falls back to the CLT rule (large n) or skips (small n).
const (
	ShapiroMinN = 3
	ShapiroMaxN = 5000
)

// ShapiroWilk computes the W statistic and p-value following Royston's 1995
// approximation (AS R94). The caller must keep n within
// [ShapiroMinN, ShapiroMaxN] and ensure the sample is not constant.
func ShapiroWilk(sample []float64, d *dist.Distributions) (w, pValue float64) {
	n := len(sample)
	x := make([]float64, n)
	copy(x, sample)
	sort.Float64s(x)

	// Expected normal order statistics (Blom scores) and their norm.
	m := make([]float64, n)
	mm := 0.0
	for i := 0; i < n; i++ {
		m[i] = d.NormalQuantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mm += m[i] * m[i]
	}

	rsn := 1.0 / math.Sqrt(float64(n))
	a := make([]float64, n)
	if n > 5 {
		an := polyval([]float64{m[n-1] / math.Sqrt(mm), 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}, rsn)
		an1 := polyval([]float64{m[n-2] / math.Sqrt(mm), 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}, rsn)
		phi := (mm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1], a[n-2] = an, an1
		a[0], a[1] = -an, -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	} else {
		an := polyval([]float64{m[n-1] / math.Sqrt(mm), 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}, rsn)
		a[n-1] = an
		a[0] = -an
		phi := (mm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	num, den := 0.0, 0.0
	for i, v := range x {
		num += a[i] * v
		den += (v - mean) * (v - mean)
	}
	w = num * num / den

	switch {
	case n == 3:
		// Exact for n=3.
		p := (6 / math.Pi) * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return w, clamp01(p)
	case n <= 11:
		g := polyval([]float64{-2.273, 0.459}, float64(n))
		lw := -math.Log(g - math.Log(1-w))
		mu := polyval([]float64{0.5440, -0.39978, 0.025054, -0.0006714}, float64(n))
		sigma := math.Exp(polyval([]float64{1.3822, -0.77857, 0.062767, -0.0020322}, float64(n)))
		return w, clamp01(d.NormalSurvival((lw - mu) / sigma))
	default:
		u := math.Log(float64(n))
		lw := math.Log(1 - w)
		mu := polyval([]float64{-1.5861, -0.31082, -0.083751, 0.0038915}, u)
		sigma := math.Exp(polyval([]float64{-0.4803, -0.082676, 0.0030302}, u))
		return w, clamp01(d.NormalSurvival((lw - mu) / sigma))
	}
}

// polyval evaluates c[0] + c[1]*x + c[2]*x^2 + ...
func polyval(c []float64, x float64) float64 {
	s := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		s = s*x + c[i]
	}
	return s
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
