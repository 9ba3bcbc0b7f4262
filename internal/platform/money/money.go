// Package money converts worked hours into gross pay.
package money

import "github.com/shopspring/decimal"

// Gross returns hours * wage rounded to cents.
func Gross(hours float64, wage decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(hours).Mul(wage).Round(2)
}

// Format renders an amount with two decimals, the way the reports print it.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ParseWage reads a wage from text. Empty text means no wage.
func ParseWage(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
