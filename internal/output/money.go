package output

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney renders a decimal dollar amount with currency grouping,
// e.g. "$1,234,567.89".
func formatMoney(d decimal.Decimal) string {
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
