package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MinSimulations and MaxSimulations bound the trial count.
	MinSimulations = 1000
	MaxSimulations = 50000

	// MaxRetirementYears bounds the projection horizon.
	MaxRetirementYears = 60
)

// allocationTolerance is the floating-point slack allowed on the 100% sum.
var allocationTolerance = decimal.NewFromFloat(0.01)

// ValidationError reports a parameter that failed validation. The message is
// intended to be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the parameter set before any sampling happens. It returns
// a *ValidationError describing the first violation found, or nil.
func (p *Parameters) Validate() error {
	if !p.InitialPortfolio.IsPositive() {
		return &ValidationError{
			Field:   "initialPortfolio",
			Message: "initial portfolio must be greater than zero",
		}
	}

	if p.AnnualWithdrawal.IsNegative() {
		return &ValidationError{
			Field:   "annualWithdrawal",
			Message: "annual withdrawal cannot be negative",
		}
	}

	if p.RetirementYears < 1 || p.RetirementYears > MaxRetirementYears {
		return &ValidationError{
			Field:   "retirementYears",
			Message: fmt.Sprintf("retirement years must be between 1 and %d", MaxRetirementYears),
		}
	}

	for _, class := range AssetClasses {
		if p.Allocation.Get(class).IsNegative() {
			return &ValidationError{
				Field:   "allocation",
				Message: fmt.Sprintf("%s allocation cannot be negative", class),
			}
		}
		if p.Market.Get(class).Volatility.IsNegative() {
			return &ValidationError{
				Field:   "market",
				Message: fmt.Sprintf("%s volatility cannot be negative", class),
			}
		}
	}

	hundred := decimal.NewFromInt(100)
	if p.Allocation.Total().Sub(hundred).Abs().GreaterThan(allocationTolerance) {
		return &ValidationError{
			Field:   "allocation",
			Message: "allocation must sum to 100%",
		}
	}

	switch p.WithdrawalAdjustment {
	case WithdrawalNone, WithdrawalInflation:
	default:
		return &ValidationError{
			Field:   "withdrawalAdjustment",
			Message: fmt.Sprintf("unknown withdrawal adjustment %q", p.WithdrawalAdjustment),
		}
	}

	if p.NumSimulations < MinSimulations || p.NumSimulations > MaxSimulations {
		return &ValidationError{
			Field:   "numberOfSimulations",
			Message: fmt.Sprintf("number of simulations must be between %d and %d", MinSimulations, MaxSimulations),
		}
	}

	return nil
}
