package simulation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// aggregate reduces the raw trial set to the reported statistics. Trials are
// discarded after this step; only the reduction is returned to the caller.
func aggregate(params *Parameters, trials []trial) *Results {
	successCount := 0
	for _, t := range trials {
		if !t.failed() {
			successCount++
		}
	}
	failureCount := len(trials) - successCount

	results := &Results{
		SuccessRate: decimal.NewFromInt(int64(successCount)).
			Div(decimal.NewFromInt(int64(len(trials)))).
			Mul(hundred),
		SuccessCount: successCount,
		FailureCount: failureCount,
		Percentiles:  make([]YearPercentile, 0, params.RetirementYears+1),
	}

	// Cross-sectional percentile bands, one per year including year 0.
	column := make([]decimal.Decimal, len(trials))
	for year := 0; year <= params.RetirementYears; year++ {
		for i, t := range trials {
			column[i] = t.values[year]
		}
		sortDecimals(column)

		results.Percentiles = append(results.Percentiles, YearPercentile{
			Year: year,
			P10:  percentileOf(column, 0.10),
			P25:  percentileOf(column, 0.25),
			P50:  percentileOf(column, 0.50),
			P75:  percentileOf(column, 0.75),
			P90:  percentileOf(column, 0.90),
		})
	}

	// The final-year column is still sorted; reuse it for the median and
	// the outcome histogram.
	results.MedianFinalValue = percentileOf(column, 0.50)
	results.Distribution = buildDistribution(column)

	if failureCount > 0 {
		results.FailureAnalysis = analyzeFailures(trials)
	}

	return results
}

// sortDecimals sorts in place, ascending.
func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool {
		return values[i].LessThan(values[j])
	})
}

// percentileOf computes the p-quantile of a sorted slice using linear
// interpolation between the bracketing order statistics.
func percentileOf(sorted []decimal.Decimal, p float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}

	index := p * float64(len(sorted)-1)
	lower := int(index)
	if index == float64(lower) {
		return sorted[lower]
	}

	fraction := decimal.NewFromFloat(index - float64(lower))
	return sorted[lower].Add(sorted[lower+1].Sub(sorted[lower]).Mul(fraction))
}

// analyzeFailures computes the mean and median failure year over failed
// trials only.
func analyzeFailures(trials []trial) *FailureAnalysis {
	var failureYears []int
	sum := 0
	for _, t := range trials {
		if t.failed() {
			failureYears = append(failureYears, t.failureYear)
			sum += t.failureYear
		}
	}

	sort.Ints(failureYears)

	mid := len(failureYears) / 2
	median := failureYears[mid]
	if len(failureYears)%2 == 0 {
		median = (failureYears[mid-1] + failureYears[mid]) / 2
	}

	return &FailureAnalysis{
		AverageFailureYear: decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(len(failureYears)))),
		MedianFailureYear: median,
	}
}

// buildDistribution buckets the sorted final values into currency-range bins.
// Bin boundaries scale with the observed range; depleted trials (final value
// floored at zero) always get their own leading bucket.
func buildDistribution(sortedFinals []decimal.Decimal) []DistributionBucket {
	depleted := 0
	for _, v := range sortedFinals {
		if v.IsZero() {
			depleted++
		} else {
			break
		}
	}

	buckets := []DistributionBucket{{Label: "Depleted ($0)", Count: depleted}}

	maxVal, _ := sortedFinals[len(sortedFinals)-1].Float64()

	var boundaries []float64
	switch {
	case maxVal <= 0:
		return buckets
	case maxVal < 100000:
		boundaries = []float64{0, 10000, 25000, 50000, 75000, 100000}
	case maxVal < 1000000:
		boundaries = []float64{0, 100000, 250000, 500000, 750000, 1000000}
	case maxVal < 3000000:
		boundaries = []float64{0, 250000, 500000, 1000000, 1500000, 2000000, 2500000, 3000000}
	default:
		boundaries = []float64{0, 250000, 500000, 1000000, 2000000, 3000000, 5000000, 10000000}
		if maxVal > 10000000 {
			boundaries = append(boundaries, 20000000)
		}
	}

	finals := make([]float64, 0, len(sortedFinals)-depleted)
	for _, v := range sortedFinals[depleted:] {
		f, _ := v.Float64()
		finals = append(finals, f)
	}

	for i := 0; i < len(boundaries)-1; i++ {
		low, high := boundaries[i], boundaries[i+1]
		count := 0
		for _, f := range finals {
			if f > low && f <= high {
				count++
			}
		}
		buckets = append(buckets, DistributionBucket{
			Label: bucketLabel(low, high),
			Count: count,
		})
	}

	// Overflow bucket for values beyond the last boundary.
	last := boundaries[len(boundaries)-1]
	count := 0
	for _, f := range finals {
		if f > last {
			count++
		}
	}
	if count > 0 {
		buckets = append(buckets, DistributionBucket{
			Label: bucketLabel(last, -1),
			Count: count,
		})
	}

	return buckets
}

// bucketLabel formats a currency range like "$250K-$500K" or "$10.0M+".
func bucketLabel(low, high float64) string {
	formatVal := func(v float64) string {
		if v >= 1000000 {
			return fmt.Sprintf("$%.1fM", v/1000000)
		}
		return fmt.Sprintf("$%.0fK", v/1000)
	}

	if high < 0 {
		return formatVal(low) + "+"
	}
	return formatVal(low) + "-" + formatVal(high)
}
