package output

import (
	"fmt"
	"strings"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

// CSVFormatter emits spreadsheet-ready output: one percentile row per year,
// followed by the distribution buckets.
type CSVFormatter struct{}

// FormatResults renders the full (unsampled) percentile series and histogram.
func (cf *CSVFormatter) FormatResults(params simulation.Parameters, results *simulation.Results) (string, error) {
	var sb strings.Builder

	sb.WriteString("Metric,Value\n")
	sb.WriteString(fmt.Sprintf("Success Rate,%s\n", results.SuccessRate.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Success Count,%d\n", results.SuccessCount))
	sb.WriteString(fmt.Sprintf("Failure Count,%d\n", results.FailureCount))
	sb.WriteString(fmt.Sprintf("Median Final Value,%s\n", results.MedianFinalValue.StringFixed(2)))
	if fa := results.FailureAnalysis; fa != nil {
		sb.WriteString(fmt.Sprintf("Average Failure Year,%s\n", fa.AverageFailureYear.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("Median Failure Year,%d\n", fa.MedianFailureYear))
	}
	sb.WriteString("\n")

	sb.WriteString("Year,P10,P25,P50,P75,P90\n")
	for _, row := range results.Percentiles {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%s\n",
			row.Year,
			row.P10.StringFixed(2),
			row.P25.StringFixed(2),
			row.P50.StringFixed(2),
			row.P75.StringFixed(2),
			row.P90.StringFixed(2)))
	}
	sb.WriteString("\n")

	sb.WriteString("Range,Count\n")
	for _, bucket := range results.Distribution {
		sb.WriteString(fmt.Sprintf("%s,%d\n", csvEscape(bucket.Label), bucket.Count))
	}

	return sb.String(), nil
}

// FormatComparison renders one row per scenario.
func (cf *CSVFormatter) FormatComparison(set *scenario.ComparisonSet) (string, error) {
	var sb strings.Builder

	sb.WriteString("Scenario,SuccessRate,MedianFinalValue,SuccessRateDiff,MedianFinalDiff\n")
	for _, result := range set.All() {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s\n",
			result.Name,
			result.Results.SuccessRate.StringFixed(2),
			result.Results.MedianFinalValue.StringFixed(2),
			result.SuccessRateDiff.StringFixed(2),
			result.MedianFinalDiff.StringFixed(2)))
	}

	return sb.String(), nil
}

// csvEscape quotes a field containing commas.
func csvEscape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
