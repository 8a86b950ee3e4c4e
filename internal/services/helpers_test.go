package services

import "github.com/shopspring/decimal"

// dec builds a decimal from its string form, for readable test values.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
