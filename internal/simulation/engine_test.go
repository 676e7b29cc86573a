package simulation

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// createTestParameters returns the spec's reference "4% rule" configuration:
// $1M portfolio, 60/40 equity/bonds, $40K inflation-adjusted withdrawal.
func createTestParameters() Parameters {
	return Parameters{
		InitialPortfolio: decimal.NewFromInt(1000000),
		RetirementYears:  30,
		Allocation: Allocation{
			Equity:      decimal.NewFromInt(60),
			Bonds:       decimal.NewFromInt(40),
			RealEstate:  decimal.Zero,
			Commodities: decimal.Zero,
		},
		AnnualWithdrawal:     decimal.NewFromInt(40000),
		WithdrawalAdjustment: WithdrawalInflation,
		Market: MarketAssumptions{
			Equity: ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(7),
				Volatility:     decimal.NewFromInt(18),
			},
			Bonds: ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(3),
				Volatility:     decimal.NewFromInt(6),
			},
		},
		InflationRate:  decimal.NewFromInt(2),
		NumSimulations: 1000,
	}
}

func TestEngine_Run_TrialCountConservation(t *testing.T) {
	engine := NewEngine(EngineConfig{Seed: 42})

	results, err := engine.Run(context.Background(), createTestParameters())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if results.SuccessCount+results.FailureCount != 1000 {
		t.Errorf("expected success+failure == 1000, got %d+%d",
			results.SuccessCount, results.FailureCount)
	}
}

func TestEngine_Run_PercentileMonotonicity(t *testing.T) {
	engine := NewEngine(EngineConfig{Seed: 7})
	params := createTestParameters()

	results, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(results.Percentiles) != params.RetirementYears+1 {
		t.Fatalf("expected %d percentile rows, got %d",
			params.RetirementYears+1, len(results.Percentiles))
	}

	for _, row := range results.Percentiles {
		if row.P10.GreaterThan(row.P25) || row.P25.GreaterThan(row.P50) ||
			row.P50.GreaterThan(row.P75) || row.P75.GreaterThan(row.P90) {
			t.Errorf("year %d: percentiles not monotonic: %s %s %s %s %s",
				row.Year, row.P10, row.P25, row.P50, row.P75, row.P90)
		}
	}

	// Year 0 is always the initial portfolio, before any growth or withdrawal.
	year0 := results.Percentiles[0]
	if !year0.P10.Equal(params.InitialPortfolio) || !year0.P90.Equal(params.InitialPortfolio) {
		t.Errorf("year 0 band should equal initial portfolio, got p10=%s p90=%s",
			year0.P10, year0.P90)
	}
}

func TestEngine_Run_ZeroVolatilityIsDeterministic(t *testing.T) {
	params := createTestParameters()
	params.Market.Equity.Volatility = decimal.Zero
	params.Market.Bonds.Volatility = decimal.Zero

	engine := NewEngine(EngineConfig{Seed: 99})
	results, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, row := range results.Percentiles {
		if !row.P10.Equal(row.P50) || !row.P50.Equal(row.P90) {
			t.Errorf("year %d: zero volatility should collapse the band, got p10=%s p50=%s p90=%s",
				row.Year, row.P10, row.P50, row.P90)
		}
	}

	if !results.SuccessRate.IsZero() && !results.SuccessRate.Equal(decimal.NewFromInt(100)) {
		t.Errorf("zero volatility success rate must be 0%% or 100%%, got %s", results.SuccessRate)
	}
}

func TestEngine_Run_ZeroWithdrawalNeverFails(t *testing.T) {
	params := createTestParameters()
	params.AnnualWithdrawal = decimal.Zero

	engine := NewEngine(EngineConfig{Seed: 3})
	results, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !results.SuccessRate.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100%% success with zero withdrawal, got %s", results.SuccessRate)
	}
	if results.FailureAnalysis != nil {
		t.Error("expected no failure analysis when every trial succeeds")
	}
}

func TestEngine_Run_ReproducibleWithFixedSeed(t *testing.T) {
	params := createTestParameters()

	first, err := NewEngine(EngineConfig{Seed: 12345}).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("first run returned error: %v", err)
	}

	// Different worker count, same seed: per-trial seeding makes scheduling
	// irrelevant to the output.
	second, err := NewEngine(EngineConfig{Seed: 12345, Workers: 1}).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results from identical seeds")
	}
}

func TestEngine_Run_FourPercentRuleScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10000-trial scenario in short mode")
	}

	params := createTestParameters()
	params.NumSimulations = 10000

	engine := NewEngine(EngineConfig{Seed: 2024})
	results, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// Historically this configuration lands roughly in the 85-95% band;
	// assert a generous range rather than an exact figure.
	if results.SuccessRate.LessThan(decimal.NewFromInt(70)) {
		t.Errorf("success rate %s implausibly low for a 4%% rule scenario", results.SuccessRate)
	}
	if results.SuccessRate.GreaterThan(decimal.NewFromInt(100)) {
		t.Errorf("success rate %s exceeds 100%%", results.SuccessRate)
	}
	if !results.MedianFinalValue.IsPositive() {
		t.Errorf("expected positive median final value, got %s", results.MedianFinalValue)
	}
}

func TestEngine_Run_DistributionCountsSumToTrials(t *testing.T) {
	engine := NewEngine(EngineConfig{Seed: 8})
	params := createTestParameters()

	results, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	total := 0
	for _, bucket := range results.Distribution {
		if bucket.Count < 0 {
			t.Errorf("bucket %q has negative count %d", bucket.Label, bucket.Count)
		}
		total += bucket.Count
	}
	if total != params.NumSimulations {
		t.Errorf("distribution counts sum to %d, want %d", total, params.NumSimulations)
	}
}

func TestEngine_Run_FailureAnalysis(t *testing.T) {
	params := createTestParameters()
	// Withdrawing a fifth of the portfolio every year exhausts every trial.
	params.AnnualWithdrawal = decimal.NewFromInt(200000)

	engine := NewEngine(EngineConfig{Seed: 17})
	results, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if results.FailureCount != params.NumSimulations {
		t.Fatalf("expected every trial to fail, got %d failures", results.FailureCount)
	}
	if results.FailureAnalysis == nil {
		t.Fatal("expected failure analysis when trials fail")
	}

	fa := results.FailureAnalysis
	if fa.MedianFailureYear < 1 || fa.MedianFailureYear > params.RetirementYears {
		t.Errorf("median failure year %d outside horizon", fa.MedianFailureYear)
	}
	if fa.AverageFailureYear.LessThan(decimal.NewFromInt(1)) ||
		fa.AverageFailureYear.GreaterThan(decimal.NewFromInt(int64(params.RetirementYears))) {
		t.Errorf("average failure year %s outside horizon", fa.AverageFailureYear)
	}
}

func TestEngine_Run_ValidationShortCircuits(t *testing.T) {
	params := createTestParameters()
	params.NumSimulations = 1

	results, err := NewEngine(EngineConfig{}).Run(context.Background(), params)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if results != nil {
		t.Error("expected nil results on validation failure")
	}
}

func TestEngine_Run_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := createTestParameters()
	params.NumSimulations = 50000
	params.RetirementYears = 60

	results, err := NewEngine(EngineConfig{Seed: 1}).Run(ctx, params)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if results != nil {
		t.Error("expected no partial results after cancellation")
	}
}

func TestEngine_Run_ProgressCallback(t *testing.T) {
	var mu sync.Mutex
	var calls int
	var last int

	params := createTestParameters()
	engine := NewEngine(EngineConfig{
		Seed:          5,
		ProgressEvery: 100,
		Progress: func(completed, total int) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if completed > last {
				last = completed
			}
		},
	})

	if _, err := engine.Run(context.Background(), params); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if calls == 0 {
		t.Error("expected progress callbacks")
	}
	if last != params.NumSimulations {
		t.Errorf("expected final progress report of %d, got %d", params.NumSimulations, last)
	}
}
