package simulation

import (
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// noFailure marks a trial that survived the full horizon.
const noFailure = -1

// trial is one simulated trajectory: post-withdrawal total portfolio value
// for years 0..RetirementYears, plus the year the portfolio went to zero.
type trial struct {
	values      []decimal.Decimal
	failureYear int
}

func (t trial) failed() bool { return t.failureYear != noFailure }

// finalValue is the portfolio value at the end of the horizon, 0 if failed.
func (t trial) finalValue() decimal.Decimal {
	return t.values[len(t.values)-1]
}

// runTrial advances one multi-asset portfolio through the horizon: grow each
// class by an independently sampled annual return, subtract the year's
// withdrawal proportionally across classes, and freeze the trajectory at zero
// once the withdrawal exhausts the portfolio.
//
// withdrawals holds the precomputed gross withdrawal for years 1..N; the
// inflation schedule is shared across trials so it is built once per run.
func runTrial(params *Parameters, withdrawals []decimal.Decimal, sampler *normalSampler) trial {
	years := params.RetirementYears

	t := trial{
		values:      make([]decimal.Decimal, years+1),
		failureYear: noFailure,
	}
	t.values[0] = params.InitialPortfolio

	// Split the starting capital by allocation.
	var classValues [len(AssetClasses)]decimal.Decimal
	for i, class := range AssetClasses {
		classValues[i] = params.InitialPortfolio.Mul(params.Allocation.Get(class)).Div(hundred)
	}

	for year := 1; year <= years; year++ {
		// Growth step: each class draws its own z, no cross-asset correlation.
		total := decimal.Zero
		for i, class := range AssetClasses {
			if classValues[i].IsZero() {
				continue
			}
			assumptions := params.Market.Get(class)
			z := decimal.NewFromFloat(sampler.Next())
			annualReturn := assumptions.ExpectedReturn.Add(z.Mul(assumptions.Volatility))
			// A draw many sigmas out can push the return below -100% and the
			// class value negative. It stays in the total uncorrected; the
			// exhaustion check below clamps the recorded trajectory at zero.
			classValues[i] = classValues[i].Mul(one.Add(annualReturn.Div(hundred)))
			total = total.Add(classValues[i])
		}

		withdrawal := withdrawals[year-1]

		if total.LessThanOrEqual(withdrawal) {
			// Portfolio exhausted: record the failure year and hold the
			// trajectory flat at zero for the remaining years.
			t.failureYear = year
			for i := range classValues {
				classValues[i] = decimal.Zero
			}
			for y := year; y <= years; y++ {
				t.values[y] = decimal.Zero
			}
			return t
		}

		// Subtract the withdrawal proportionally so the current allocation
		// ratios survive the drawdown.
		remaining := total.Sub(withdrawal)
		factor := remaining.Div(total)
		for i := range classValues {
			classValues[i] = classValues[i].Mul(factor)
		}

		t.values[year] = remaining
	}

	return t
}

// withdrawalSchedule precomputes the gross withdrawal for years 1..N.
// With inflation adjustment, year t withdraws annual * (1+i/100)^(t-1).
func withdrawalSchedule(params *Parameters) []decimal.Decimal {
	schedule := make([]decimal.Decimal, params.RetirementYears)

	if params.WithdrawalAdjustment != WithdrawalInflation || params.InflationRate.IsZero() {
		for i := range schedule {
			schedule[i] = params.AnnualWithdrawal
		}
		return schedule
	}

	growth := one.Add(params.InflationRate.Div(hundred))
	current := params.AnnualWithdrawal
	for i := range schedule {
		schedule[i] = current
		current = current.Mul(growth)
	}
	return schedule
}
