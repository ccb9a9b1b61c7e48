package battery

import (
	"math"

	"ablab/adapters/stats/dist"
	"ablab/domain/verdict"
)

// WilsonInterval computes the Wilson score interval for a binomial
// proportion. Wilson is used over Wald throughout for its small-sample
// robustness (it never escapes [0,1] and behaves near 0% and 100%).
func WilsonInterval(successes, trials int, level float64, d *dist.Distributions) verdict.Interval {
	if trials == 0 {
		return verdict.Interval{Level: level}
	}
	z := d.NormalQuantile(1 - (1-level)/2)
	n := float64(trials)
	p := float64(successes) / n

	denom := 1 + z*z/n
	center := (p + z*z/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom
	return verdict.Interval{Lower: center - half, Upper: center + half, Level: level}
}

// newcombeDifferenceCI computes the confidence interval for the rate
// difference (treatment minus control) using Newcombe's hybrid of the two
// Wilson score intervals.
func newcombeDifferenceCI(succControl, nControl, succTreatment, nTreatment int, level float64, d *dist.Distributions) verdict.Interval {
	ciC := WilsonInterval(succControl, nControl, level, d)
	ciT := WilsonInterval(succTreatment, nTreatment, level, d)
	pC := float64(succControl) / float64(nControl)
	pT := float64(succTreatment) / float64(nTreatment)
	diff := pT - pC

	lo := diff - math.Sqrt((pC-ciC.Lower)*(pC-ciC.Lower)+(ciT.Upper-pT)*(ciT.Upper-pT))
	hi := diff + math.Sqrt((ciC.Upper-pC)*(ciC.Upper-pC)+(pT-ciT.Lower)*(pT-ciT.Lower))
	return verdict.Interval{Lower: lo, Upper: hi, Level: level}
}
