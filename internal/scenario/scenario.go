// Package scenario derives comparative parameter sets (bear/base/bull) from a
// base configuration and runs the simulation engine once per scenario. It is
// a thin orchestration layer; all the math lives in the simulation package.
package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
	"github.com/shopspring/decimal"
)

// ErrBaseScenarioMissing reports a definition list with no "base" entry to
// anchor the deltas. Callers can treat it as a correctable input error.
var ErrBaseScenarioMissing = errors.New(`scenario "base" not found in definitions`)

// Definition is a named set of deltas layered onto the base parameters.
// ReturnDelta shifts every asset class's expected return by that many
// percentage points; InflationDelta shifts the inflation rate.
type Definition struct {
	Name           string          `json:"name" yaml:"name"`
	ReturnDelta    decimal.Decimal `json:"returnDelta" yaml:"return_delta"`
	InflationDelta decimal.Decimal `json:"inflationDelta" yaml:"inflation_delta"`
}

// BaseScenarioName identifies the unmodified scenario inside a comparison.
const BaseScenarioName = "base"

// Presets returns the standard bear/base/bull trio.
func Presets() []Definition {
	return []Definition{
		{
			Name:           "bear",
			ReturnDelta:    decimal.NewFromInt(-2),
			InflationDelta: decimal.NewFromInt(1),
		},
		{Name: BaseScenarioName},
		{
			Name:           "bull",
			ReturnDelta:    decimal.NewFromInt(2),
			InflationDelta: decimal.NewFromInt(-1),
		},
	}
}

// Apply layers the definition's deltas onto a copy of the base parameters.
func (d Definition) Apply(base simulation.Parameters) simulation.Parameters {
	derived := base
	derived.Market.Equity.ExpectedReturn = base.Market.Equity.ExpectedReturn.Add(d.ReturnDelta)
	derived.Market.Bonds.ExpectedReturn = base.Market.Bonds.ExpectedReturn.Add(d.ReturnDelta)
	derived.Market.RealEstate.ExpectedReturn = base.Market.RealEstate.ExpectedReturn.Add(d.ReturnDelta)
	derived.Market.Commodities.ExpectedReturn = base.Market.Commodities.ExpectedReturn.Add(d.ReturnDelta)
	derived.InflationRate = base.InflationRate.Add(d.InflationDelta)
	return derived
}

// Result pairs one scenario's simulation output with its deltas vs base.
type Result struct {
	Name       string                `json:"name"`
	Definition Definition            `json:"definition"`
	Results    *simulation.Results   `json:"results"`
	Parameters simulation.Parameters `json:"parameters"`

	// Deltas vs the base scenario; zero for the base itself.
	SuccessRateDiff decimal.Decimal `json:"successRateDiff"`
	MedianFinalDiff decimal.Decimal `json:"medianFinalDiff"`
}

// ComparisonSet is the full output of a comparative run.
type ComparisonSet struct {
	BaseResult         *Result  `json:"baseResult"`
	AlternativeResults []Result `json:"alternativeResults"`
	Recommendations    []string `json:"recommendations"`
}

// All returns every result, base first.
func (cs *ComparisonSet) All() []Result {
	out := make([]Result, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// Engine orchestrates comparative scenario runs.
type Engine struct {
	Sim *simulation.Engine
}

// NewEngine creates a comparison engine over the given simulation engine.
func NewEngine(sim *simulation.Engine) *Engine {
	return &Engine{Sim: sim}
}

// Compare runs the base parameters once per definition and computes deltas
// against the base scenario. The definitions must include a scenario named
// "base"; it anchors the deltas.
func (ce *Engine) Compare(ctx context.Context, base simulation.Parameters, definitions []Definition) (*ComparisonSet, error) {
	if len(definitions) == 0 {
		definitions = Presets()
	}

	var baseDef *Definition
	for i := range definitions {
		if definitions[i].Name == BaseScenarioName {
			baseDef = &definitions[i]
			break
		}
	}
	if baseDef == nil {
		return nil, ErrBaseScenarioMissing
	}

	baseResults, err := ce.Sim.Run(ctx, baseDef.Apply(base))
	if err != nil {
		return nil, fmt.Errorf("base scenario failed: %w", err)
	}

	set := &ComparisonSet{
		BaseResult: &Result{
			Name:       BaseScenarioName,
			Definition: *baseDef,
			Parameters: baseDef.Apply(base),
			Results:    baseResults,
		},
	}

	for _, def := range definitions {
		if def.Name == BaseScenarioName {
			continue
		}

		params := def.Apply(base)
		results, err := ce.Sim.Run(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("scenario %q failed: %w", def.Name, err)
		}

		set.AlternativeResults = append(set.AlternativeResults, Result{
			Name:            def.Name,
			Definition:      def,
			Parameters:      params,
			Results:         results,
			SuccessRateDiff: results.SuccessRate.Sub(baseResults.SuccessRate),
			MedianFinalDiff: results.MedianFinalValue.Sub(baseResults.MedianFinalValue),
		})
	}

	set.Recommendations = buildRecommendations(set)
	return set, nil
}

// buildRecommendations derives short guidance strings from the spread of
// outcomes across scenarios.
func buildRecommendations(set *ComparisonSet) []string {
	var recs []string

	base := set.BaseResult.Results
	switch {
	case base.SuccessRate.GreaterThanOrEqual(decimal.NewFromInt(95)):
		recs = append(recs, "Base plan has a high success rate; the withdrawal level looks sustainable.")
	case base.SuccessRate.GreaterThanOrEqual(decimal.NewFromInt(85)):
		recs = append(recs, "Base plan success rate is moderate; consider a small reduction in withdrawals or an extra income buffer.")
	default:
		recs = append(recs, "Base plan success rate is low; reduce the withdrawal amount or shorten the horizon.")
	}

	for _, alt := range set.AlternativeResults {
		if alt.Name != "bear" {
			continue
		}
		if alt.Results.SuccessRate.LessThan(decimal.NewFromInt(75)) {
			recs = append(recs, "The bear scenario drops below a 75% success rate; stress-test the plan with a larger cash reserve.")
		}
	}

	return recs
}
