package experiment

// NormalityStatus records whether the normality test actually ran for a
// sample, and if not, which size rule exempted it.
type NormalityStatus string

const (
	NormalityTested            NormalityStatus = "tested"
	NormalitySkippedCLT        NormalityStatus = "skipped_clt"        // n above test range; assumed normal by CLT
	NormalitySkippedLow        NormalityStatus = "skipped_low"        // n below test range
	NormalitySkippedDegenerate NormalityStatus = "skipped_degenerate" // constant sample; W undefined
)

// NormalityCheck is the per-sample Shapiro-Wilk outcome.
// W and PValue are meaningful only when Status == NormalityTested.
type NormalityCheck struct {
	Status NormalityStatus `json:"status"`
	W      float64         `json:"w,omitempty"`
	PValue float64         `json:"p_value,omitempty"`
}

// Rejected reports whether the test ran and found a significant departure
// from normality at the given alpha. Skipped checks never reject.
func (c NormalityCheck) Rejected(alpha float64) bool {
	return c.Status == NormalityTested && c.PValue < alpha
}

// HomogeneityStatus records whether the variance-equality test was
// computable for the pair.
type HomogeneityStatus string

const (
	HomogeneityTested     HomogeneityStatus = "tested"
	HomogeneityDegenerate HomogeneityStatus = "degenerate" // zero variance; treated as unequal
)

// HomogeneityCheck is the Levene-style variance-equality outcome.
type HomogeneityCheck struct {
	Status    HomogeneityStatus `json:"status"`
	Statistic float64           `json:"statistic,omitempty"`
	PValue    float64           `json:"p_value,omitempty"`
}

// UnequalVariances reports whether the decision tree should treat the two
// variances as unequal. A degenerate check counts as unequal per the
// zero-variance fallback rule.
func (c HomogeneityCheck) UnequalVariances(alpha float64) bool {
	if c.Status == HomogeneityDegenerate {
		return true
	}
	return c.PValue < alpha
}

// AssumptionReport carries the continuous-metric diagnostics used purely to
// branch the decision tree. Produced once per VariantPair, immutable after.
type AssumptionReport struct {
	N1 int `json:"n1"`
	N2 int `json:"n2"`

	NormalityControl   NormalityCheck `json:"normality_control"`
	NormalityTreatment NormalityCheck `json:"normality_treatment"`

	Homogeneity HomogeneityCheck `json:"homogeneity"`

	Warnings []WarningCode `json:"warnings,omitempty"`
}
