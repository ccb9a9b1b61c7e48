// Package dist provides unified access to the sampling distributions used
// by the assumption checks and test executors.
package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions wraps the distribution functions behind one type so every
// p-value in the engine comes from a single place.
type Distributions struct{}

// New creates a new distributions utility
func New() *Distributions {
	return &Distributions{}
}

// TTestPValue computes the two-tailed p-value for a t statistic. The degrees
// of freedom may be fractional (Welch-Satterthwaite correction).
func (d *Distributions) TTestPValue(tStatistic, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return 2 * tDist.Survival(math.Abs(tStatistic))
}

// TQuantile computes the quantile of the t-distribution, used for
// confidence intervals around a mean difference.
func (d *Distributions) TQuantile(p, degreesOfFreedom float64) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return tDist.Quantile(p)
}

// ChiSquarePValue computes the upper-tail p-value for a chi-squared statistic.
func (d *Distributions) ChiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}
	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return chiDist.Survival(chiSquare)
}

// FTestPValue computes the upper-tail p-value for an F statistic
// (Levene-style variance-homogeneity test).
func (d *Distributions) FTestPValue(fStatistic float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}
	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return fDist.Survival(fStatistic)
}

// NormalCDF computes the standard normal cumulative distribution function.
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalSurvival computes the standard normal upper-tail probability.
func (d *Distributions) NormalSurvival(x float64) float64 {
	return distuv.UnitNormal.Survival(x)
}

// NormalQuantile computes the standard normal quantile (inverse CDF).
func (d *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
