package output

import (
	"fmt"
	"strings"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

// MarkdownFormatter emits a Markdown report. The CLI renders it with glamour
// when writing to a terminal; redirected output stays plain Markdown.
type MarkdownFormatter struct{}

// FormatResults renders one run as a Markdown report.
func (mf *MarkdownFormatter) FormatResults(params simulation.Parameters, results *simulation.Results) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Retirement Simulation Results\n\n")
	sb.WriteString(fmt.Sprintf("- **Initial portfolio:** %s\n", formatMoney(params.InitialPortfolio)))
	sb.WriteString(fmt.Sprintf("- **Annual withdrawal:** %s (%s)\n",
		formatMoney(params.AnnualWithdrawal), withdrawalLabel(params)))
	sb.WriteString(fmt.Sprintf("- **Horizon:** %d years over %d trials\n",
		params.RetirementYears, results.SuccessCount+results.FailureCount))
	sb.WriteString(fmt.Sprintf("- **Success rate:** %s%% (%s)\n",
		results.SuccessRate.StringFixed(1), riskBand(results.SuccessRate)))
	sb.WriteString(fmt.Sprintf("- **Median final value:** %s\n", formatMoney(results.MedianFinalValue)))
	if fa := results.FailureAnalysis; fa != nil {
		sb.WriteString(fmt.Sprintf("- **Failure years:** median %d, average %s\n",
			fa.MedianFailureYear, fa.AverageFailureYear.StringFixed(1)))
	}
	sb.WriteString("\n## Percentile Bands\n\n")

	sb.WriteString("| Year | P10 | P25 | P50 | P75 | P90 |\n")
	sb.WriteString("|-----:|----:|----:|----:|----:|----:|\n")
	for _, row := range percentileSampleYears(results.Percentiles) {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			row.Year,
			formatMoney(row.P10),
			formatMoney(row.P25),
			formatMoney(row.P50),
			formatMoney(row.P75),
			formatMoney(row.P90)))
	}

	sb.WriteString("\n## Final Value Distribution\n\n")
	sb.WriteString("| Range | Count |\n")
	sb.WriteString("|-------|------:|\n")
	for _, bucket := range results.Distribution {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", bucket.Label, bucket.Count))
	}

	return sb.String(), nil
}

// FormatComparison renders a comparison set as a Markdown report.
func (mf *MarkdownFormatter) FormatComparison(set *scenario.ComparisonSet) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Scenario Comparison\n\n")
	sb.WriteString("| Scenario | Success Rate | Median Final | Rate vs Base |\n")
	sb.WriteString("|----------|-------------:|-------------:|-------------:|\n")
	for _, result := range set.All() {
		diff := "-"
		if result.Name != scenario.BaseScenarioName {
			diff = deltaSign(result.SuccessRateDiff.Sign()) + result.SuccessRateDiff.Abs().StringFixed(1) + "pp"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s%% | %s | %s |\n",
			result.Name,
			result.Results.SuccessRate.StringFixed(1),
			formatMoney(result.Results.MedianFinalValue),
			diff))
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString("\n## Recommendations\n\n")
		for _, rec := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String(), nil
}
