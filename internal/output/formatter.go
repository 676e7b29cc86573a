// Package output renders simulation and comparison results for the console
// and for export: fixed-width tables, CSV, JSON and Markdown.
package output

import (
	"fmt"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
	"github.com/shopspring/decimal"
)

// Formatter renders a simulation run or a scenario comparison.
type Formatter interface {
	FormatResults(params simulation.Parameters, results *simulation.Results) (string, error)
	FormatComparison(set *scenario.ComparisonSet) (string, error)
}

// NewFormatter returns the formatter for the named format: "table", "csv",
// "json" or "markdown".
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "table", "":
		return &TableFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// percentileSampleYears returns the years shown in the condensed percentile
// table: every fifth year plus the final one.
func percentileSampleYears(percentiles []simulation.YearPercentile) []simulation.YearPercentile {
	var sampled []simulation.YearPercentile
	last := len(percentiles) - 1
	for i, row := range percentiles {
		if i%5 == 0 || i == last {
			sampled = append(sampled, row)
		}
	}
	return sampled
}

// riskBand labels a success rate the way the dashboard's summary card does.
func riskBand(successRate decimal.Decimal) string {
	switch {
	case successRate.GreaterThanOrEqual(decimal.NewFromInt(95)):
		return "Low Risk"
	case successRate.GreaterThanOrEqual(decimal.NewFromInt(85)):
		return "Moderate Risk"
	case successRate.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return "Elevated Risk"
	default:
		return "High Risk"
	}
}
