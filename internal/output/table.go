package output

import (
	"fmt"
	"strings"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

const tableWidth = 80

// TableFormatter renders results as a fixed-width console table.
type TableFormatter struct{}

// FormatResults renders one run: summary card, percentile bands sampled every
// five years, the final-value histogram and the failure analysis.
func (tf *TableFormatter) FormatResults(params simulation.Parameters, results *simulation.Results) (string, error) {
	var sb strings.Builder

	sb.WriteString("RETIREMENT SIMULATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Initial Portfolio:  %s\n", formatMoney(params.InitialPortfolio)))
	sb.WriteString(fmt.Sprintf("Annual Withdrawal:  %s (%s)\n",
		formatMoney(params.AnnualWithdrawal), withdrawalLabel(params)))
	sb.WriteString(fmt.Sprintf("Horizon:            %d years\n", params.RetirementYears))
	sb.WriteString(fmt.Sprintf("Trials:             %d\n", results.SuccessCount+results.FailureCount))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Success Rate:       %s%%  (%s)\n",
		results.SuccessRate.StringFixed(1), riskBand(results.SuccessRate)))
	sb.WriteString(fmt.Sprintf("Succeeded / Failed: %d / %d\n",
		results.SuccessCount, results.FailureCount))
	sb.WriteString(fmt.Sprintf("Median Final Value: %s\n", formatMoney(results.MedianFinalValue)))

	if fa := results.FailureAnalysis; fa != nil {
		sb.WriteString(fmt.Sprintf("Failures deplete around year %d (median), %s (average)\n",
			fa.MedianFailureYear, fa.AverageFailureYear.StringFixed(1)))
	}
	sb.WriteString("\n")

	tf.writePercentileTable(&sb, results.Percentiles)
	tf.writeDistribution(&sb, results)

	return sb.String(), nil
}

func (tf *TableFormatter) writePercentileTable(sb *strings.Builder, percentiles []simulation.YearPercentile) {
	yearWidth := 6
	numWidth := 14

	sb.WriteString("PORTFOLIO VALUE PERCENTILES\n")
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		yearWidth, "Year",
		numWidth, "P10",
		numWidth, "P25",
		numWidth, "P50",
		numWidth, "P75",
		numWidth, "P90"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	for _, row := range percentileSampleYears(percentiles) {
		sb.WriteString(fmt.Sprintf("%-*d %*s %*s %*s %*s %*s\n",
			yearWidth, row.Year,
			numWidth, formatMoney(row.P10),
			numWidth, formatMoney(row.P25),
			numWidth, formatMoney(row.P50),
			numWidth, formatMoney(row.P75),
			numWidth, formatMoney(row.P90)))
	}
	sb.WriteString("\n")
}

func (tf *TableFormatter) writeDistribution(sb *strings.Builder, results *simulation.Results) {
	total := results.SuccessCount + results.FailureCount

	sb.WriteString("FINAL VALUE DISTRIBUTION\n")
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	maxCount := 0
	for _, bucket := range results.Distribution {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
	}

	const barWidth = 40
	for _, bucket := range results.Distribution {
		bar := 0
		if maxCount > 0 {
			bar = bucket.Count * barWidth / maxCount
		}
		share := float64(bucket.Count) / float64(total) * 100
		sb.WriteString(fmt.Sprintf("%-16s %6d (%5.1f%%) %s\n",
			bucket.Label, bucket.Count, share, strings.Repeat("#", bar)))
	}
	sb.WriteString("\n")
}

// FormatComparison renders a bear/base/bull comparison table with deltas
// against the base scenario.
func (tf *TableFormatter) FormatComparison(set *scenario.ComparisonSet) (string, error) {
	var sb strings.Builder

	nameWidth := 12
	numWidth := 16

	sb.WriteString("SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Success Rate",
		numWidth, "Median Final",
		numWidth, "Rate vs Base",
		numWidth, "Median vs Base"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	for _, result := range set.All() {
		rateDiff := "-"
		medianDiff := "-"
		if result.Name != scenario.BaseScenarioName {
			rateDiff = deltaSign(result.SuccessRateDiff.Sign()) + result.SuccessRateDiff.Abs().StringFixed(1) + "pp"
			medianDiff = deltaSign(result.MedianFinalDiff.Sign()) + formatMoney(result.MedianFinalDiff.Abs())
		}

		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
			nameWidth, result.Name,
			numWidth, result.Results.SuccessRate.StringFixed(1)+"%",
			numWidth, formatMoney(result.Results.MedianFinalValue),
			numWidth, rateDiff,
			numWidth, medianDiff))
	}
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	if len(set.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, rec := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String(), nil
}

func deltaSign(sign int) string {
	if sign < 0 {
		return "-"
	}
	return "+"
}

func withdrawalLabel(params simulation.Parameters) string {
	if params.WithdrawalAdjustment == simulation.WithdrawalInflation {
		return fmt.Sprintf("inflation-adjusted at %s%%", params.InflationRate.StringFixed(1))
	}
	return "flat"
}
