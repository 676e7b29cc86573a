package scenario

import (
	"context"
	"testing"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParameters() simulation.Parameters {
	return simulation.Parameters{
		InitialPortfolio: decimal.NewFromInt(1000000),
		RetirementYears:  30,
		Allocation: simulation.Allocation{
			Equity: decimal.NewFromInt(60),
			Bonds:  decimal.NewFromInt(40),
		},
		AnnualWithdrawal:     decimal.NewFromInt(40000),
		WithdrawalAdjustment: simulation.WithdrawalInflation,
		Market: simulation.MarketAssumptions{
			Equity: simulation.ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(7),
				Volatility:     decimal.NewFromInt(18),
			},
			Bonds: simulation.ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(3),
				Volatility:     decimal.NewFromInt(6),
			},
		},
		InflationRate:  decimal.NewFromInt(2),
		NumSimulations: 1000,
	}
}

func TestDefinition_Apply(t *testing.T) {
	base := baseParameters()
	bear := Definition{
		Name:           "bear",
		ReturnDelta:    decimal.NewFromInt(-2),
		InflationDelta: decimal.NewFromInt(1),
	}

	derived := bear.Apply(base)

	assert.True(t, derived.Market.Equity.ExpectedReturn.Equal(decimal.NewFromInt(5)))
	assert.True(t, derived.Market.Bonds.ExpectedReturn.Equal(decimal.NewFromInt(1)))
	assert.True(t, derived.InflationRate.Equal(decimal.NewFromInt(3)))

	// The base parameter set is untouched.
	assert.True(t, base.Market.Equity.ExpectedReturn.Equal(decimal.NewFromInt(7)))
	assert.True(t, base.InflationRate.Equal(decimal.NewFromInt(2)))
}

func TestPresets_ContainBearBaseBull(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 3)

	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"bear", "base", "bull"}, names)
}

func TestEngine_Compare(t *testing.T) {
	sim := simulation.NewEngine(simulation.EngineConfig{Seed: 42})
	engine := NewEngine(sim)

	set, err := engine.Compare(context.Background(), baseParameters(), nil)
	require.NoError(t, err)
	require.NotNil(t, set.BaseResult)
	require.Len(t, set.AlternativeResults, 2)

	assert.Equal(t, "base", set.BaseResult.Name)
	assert.True(t, set.BaseResult.SuccessRateDiff.IsZero())

	var bear, bull *Result
	for i := range set.AlternativeResults {
		switch set.AlternativeResults[i].Name {
		case "bear":
			bear = &set.AlternativeResults[i]
		case "bull":
			bull = &set.AlternativeResults[i]
		}
	}
	require.NotNil(t, bear)
	require.NotNil(t, bull)

	// Lower returns plus higher inflation cannot beat the base case, and the
	// bull case cannot trail it.
	assert.True(t, bear.SuccessRateDiff.LessThanOrEqual(decimal.Zero),
		"bear success diff %s should not be positive", bear.SuccessRateDiff)
	assert.True(t, bull.SuccessRateDiff.GreaterThanOrEqual(decimal.Zero),
		"bull success diff %s should not be negative", bull.SuccessRateDiff)

	assert.NotEmpty(t, set.Recommendations)
	assert.Len(t, set.All(), 3)
}

func TestEngine_Compare_MissingBase(t *testing.T) {
	sim := simulation.NewEngine(simulation.EngineConfig{Seed: 1})
	engine := NewEngine(sim)

	_, err := engine.Compare(context.Background(), baseParameters(), []Definition{
		{Name: "bear", ReturnDelta: decimal.NewFromInt(-2)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBaseScenarioMissing)
}

func TestEngine_Compare_PropagatesValidationError(t *testing.T) {
	sim := simulation.NewEngine(simulation.EngineConfig{Seed: 1})
	engine := NewEngine(sim)

	bad := baseParameters()
	bad.NumSimulations = 10

	_, err := engine.Compare(context.Background(), bad, nil)
	require.Error(t, err)
}
