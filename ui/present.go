package ui

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"

	"ablab/domain/decision"
	"ablab/domain/verdict"
)

// Presentation wraps an AnalysisReport with the human-readable layer: the
// verdict line, the rendered interpretation, and display names.
type Presentation struct {
	Report         *verdict.AnalysisReport
	TestName       string
	Verdict        string
	Interpretation template.HTML
}

var testNames = map[decision.TestType]string{
	decision.ChiSquared:   "Pearson's Chi-squared Test",
	decision.FishersExact: "Fisher's Exact Test",
	decision.StudentTTest: "Student's t-Test (Equal Variances)",
	decision.WelchTTest:   "Welch's t-Test (Unequal Variances)",
	decision.MannWhitneyU: "Mann-Whitney U Test (Non-parametric)",
}

// Present maps the numeric report onto verdict text and interpretation.
// A degenerate result reads "no variation observed", never a plain
// non-significant verdict.
func Present(report *verdict.AnalysisReport) Presentation {
	p := Presentation{
		Report:   report,
		TestName: testNames[report.Result.Test],
	}

	control, treatment := variantLabels(report)
	switch {
	case report.Result.Degenerate():
		p.Verdict = "no variation observed"
		p.Interpretation = renderMarkdown(fmt.Sprintf(
			"The samples show no usable variation in **%s**, so the %s statistic is undefined. "+
				"Collect more varied data before drawing a conclusion.",
			report.MetricColumn, p.TestName))
	case report.Result.Significant:
		p.Verdict = fmt.Sprintf("statistically significant at α=%.2g", report.Result.Alpha)
		p.Interpretation = renderMarkdown(fmt.Sprintf(
			"This suggests that **%s** has a significant impact on **%s** compared to **%s** "+
				"(%s, p=%.4g).",
			treatment, report.MetricColumn, control, p.TestName, report.Result.PValue))
	default:
		p.Verdict = fmt.Sprintf("not statistically significant at α=%.2g", report.Result.Alpha)
		p.Interpretation = renderMarkdown(fmt.Sprintf(
			"We do not have enough evidence to claim a significant difference in **%s** "+
				"between the variants (%s, p=%.4g).",
			report.MetricColumn, p.TestName, report.Result.PValue))
	}
	return p
}

func variantLabels(report *verdict.AnalysisReport) (control, treatment string) {
	control, treatment = "control", "treatment"
	if report.Contingency != nil {
		control, treatment = report.Contingency.RowLabels[0], report.Contingency.RowLabels[1]
	}
	if len(report.Groups) == 2 {
		control, treatment = report.Groups[0].Label, report.Groups[1].Label
	}
	return control, treatment
}

func renderMarkdown(md string) template.HTML {
	html := markdown.ToHTML([]byte(md), nil, nil)
	return template.HTML(strings.TrimSpace(string(html)))
}
