package simulation

import (
	"github.com/shopspring/decimal"
)

// WithdrawalAdjustment selects how the annual withdrawal evolves over the horizon.
type WithdrawalAdjustment string

const (
	// WithdrawalNone keeps the withdrawal flat at its year-1 nominal value.
	WithdrawalNone WithdrawalAdjustment = "none"
	// WithdrawalInflation grows the withdrawal by the inflation rate each year.
	WithdrawalInflation WithdrawalAdjustment = "inflation"
)

// AssetClass identifies one of the four supported portfolio components.
type AssetClass string

const (
	Equity      AssetClass = "equity"
	Bonds       AssetClass = "bonds"
	RealEstate  AssetClass = "realEstate"
	Commodities AssetClass = "commodities"
)

// AssetClasses lists the supported classes in canonical order.
var AssetClasses = [4]AssetClass{Equity, Bonds, RealEstate, Commodities}

// Allocation holds the portfolio split as percentages summing to 100.
type Allocation struct {
	Equity      decimal.Decimal `json:"equity" yaml:"equity"`
	Bonds       decimal.Decimal `json:"bonds" yaml:"bonds"`
	RealEstate  decimal.Decimal `json:"realEstate" yaml:"real_estate"`
	Commodities decimal.Decimal `json:"commodities" yaml:"commodities"`
}

// Get returns the percentage allocated to the given class.
func (a Allocation) Get(class AssetClass) decimal.Decimal {
	switch class {
	case Equity:
		return a.Equity
	case Bonds:
		return a.Bonds
	case RealEstate:
		return a.RealEstate
	case Commodities:
		return a.Commodities
	}
	return decimal.Zero
}

// Total returns the sum of all four percentages.
func (a Allocation) Total() decimal.Decimal {
	return a.Equity.Add(a.Bonds).Add(a.RealEstate).Add(a.Commodities)
}

// ClassAssumptions holds the annual return distribution for one asset class,
// both expressed as percentages per year (7 means 7%).
type ClassAssumptions struct {
	ExpectedReturn decimal.Decimal `json:"expectedReturn" yaml:"expected_return"`
	Volatility     decimal.Decimal `json:"volatility" yaml:"volatility"`
}

// MarketAssumptions holds per-class return assumptions for the full class set.
type MarketAssumptions struct {
	Equity      ClassAssumptions `json:"equity" yaml:"equity"`
	Bonds       ClassAssumptions `json:"bonds" yaml:"bonds"`
	RealEstate  ClassAssumptions `json:"realEstate" yaml:"real_estate"`
	Commodities ClassAssumptions `json:"commodities" yaml:"commodities"`
}

// Get returns the assumptions for the given class.
func (m MarketAssumptions) Get(class AssetClass) ClassAssumptions {
	switch class {
	case Equity:
		return m.Equity
	case Bonds:
		return m.Bonds
	case RealEstate:
		return m.RealEstate
	case Commodities:
		return m.Commodities
	}
	return ClassAssumptions{}
}

// Parameters describes one simulation run. It is treated as immutable once
// handed to the engine.
type Parameters struct {
	InitialPortfolio     decimal.Decimal      `json:"initialPortfolio"`
	RetirementYears      int                  `json:"retirementYears"`
	Allocation           Allocation           `json:"allocation"`
	AnnualWithdrawal     decimal.Decimal      `json:"annualWithdrawal"`
	WithdrawalAdjustment WithdrawalAdjustment `json:"withdrawalAdjustment"`
	Market               MarketAssumptions    `json:"market"`
	InflationRate        decimal.Decimal      `json:"inflationRate"`
	NumSimulations       int                  `json:"numSimulations"`
}

// YearPercentile holds the cross-sectional percentile band for one year.
type YearPercentile struct {
	Year int             `json:"year"`
	P10  decimal.Decimal `json:"p10"`
	P25  decimal.Decimal `json:"p25"`
	P50  decimal.Decimal `json:"p50"`
	P75  decimal.Decimal `json:"p75"`
	P90  decimal.Decimal `json:"p90"`
}

// DistributionBucket is one histogram bin over final portfolio values.
type DistributionBucket struct {
	Label string `json:"rangeLabel"`
	Count int    `json:"count"`
}

// FailureAnalysis summarizes when failed trials ran out of money.
type FailureAnalysis struct {
	AverageFailureYear decimal.Decimal `json:"averageFailureYear"`
	MedianFailureYear  int             `json:"medianFailureYear"`
}

// Results is the immutable outcome of a simulation run.
type Results struct {
	SuccessRate      decimal.Decimal      `json:"successRate"` // percent, 0-100
	SuccessCount     int                  `json:"successCount"`
	FailureCount     int                  `json:"failureCount"`
	Percentiles      []YearPercentile     `json:"percentiles"`
	Distribution     []DistributionBucket `json:"distribution"`
	MedianFinalValue decimal.Decimal      `json:"medianFinalValue"`
	FailureAnalysis  *FailureAnalysis     `json:"failureAnalysis,omitempty"`
}
