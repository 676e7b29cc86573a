package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestPercentileOf_ExactOrderStatistic(t *testing.T) {
	sorted := decimals(10, 20, 30, 40, 50)

	// index = 0.5 * 4 = 2 exactly.
	assert.True(t, percentileOf(sorted, 0.50).Equal(decimal.NewFromInt(30)))
	assert.True(t, percentileOf(sorted, 0.0).Equal(decimal.NewFromInt(10)))
	assert.True(t, percentileOf(sorted, 1.0).Equal(decimal.NewFromInt(50)))
}

func TestPercentileOf_LinearInterpolation(t *testing.T) {
	sorted := decimals(10, 20, 30, 40)

	// index = 0.5 * 3 = 1.5, halfway between 20 and 30.
	assert.True(t, percentileOf(sorted, 0.50).Equal(decimal.NewFromInt(25)))

	// index = 0.25 * 3 = 0.75, 10 + 0.75*(20-10) = 17.5.
	got := percentileOf(sorted, 0.25)
	assert.True(t, got.Equal(decimal.NewFromFloat(17.5)), "got %s", got)
}

func TestPercentileOf_Empty(t *testing.T) {
	assert.True(t, percentileOf(nil, 0.5).IsZero())
}

func TestAnalyzeFailures_MedianAndMean(t *testing.T) {
	trials := []trial{
		{failureYear: 5},
		{failureYear: 7},
		{failureYear: 12},
		{failureYear: noFailure},
	}

	fa := analyzeFailures(trials)
	require.NotNil(t, fa)

	assert.Equal(t, 7, fa.MedianFailureYear)
	assert.True(t, fa.AverageFailureYear.Equal(decimal.NewFromInt(8)), "got %s", fa.AverageFailureYear)
}

func TestAnalyzeFailures_EvenCountAveragesMiddlePair(t *testing.T) {
	trials := []trial{
		{failureYear: 4},
		{failureYear: 10},
	}

	fa := analyzeFailures(trials)
	assert.Equal(t, 7, fa.MedianFailureYear)
	assert.True(t, fa.AverageFailureYear.Equal(decimal.NewFromInt(7)))
}

func TestBuildDistribution_DepletedBucketLeads(t *testing.T) {
	finals := decimals(0, 0, 0, 150000, 400000, 900000)

	buckets := buildDistribution(finals)
	require.NotEmpty(t, buckets)

	assert.Equal(t, "Depleted ($0)", buckets[0].Label)
	assert.Equal(t, 3, buckets[0].Count)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, len(finals), total)
}

func TestBuildDistribution_AllDepleted(t *testing.T) {
	buckets := buildDistribution(decimals(0, 0, 0))

	require.Len(t, buckets, 1)
	assert.Equal(t, 3, buckets[0].Count)
}

func TestBuildDistribution_OverflowBucket(t *testing.T) {
	finals := decimals(0, 500000, 25000000)

	buckets := buildDistribution(finals)
	last := buckets[len(buckets)-1]
	assert.Equal(t, "$20.0M+", last.Label)
	assert.Equal(t, 1, last.Count)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, len(finals), total)
}

func TestBucketLabel(t *testing.T) {
	assert.Equal(t, "$250K-$500K", bucketLabel(250000, 500000))
	assert.Equal(t, "$1.0M-$2.0M", bucketLabel(1000000, 2000000))
	assert.Equal(t, "$10.0M+", bucketLabel(10000000, -1))
}
