package record

import "github.com/shopspring/decimal"

// Money is an exact decimal amount. P&L, margin, and cash values all flow
// through decimal arithmetic so aggregates never accumulate binary-float
// drift. Rendered with two fraction digits at the presentation edge.
type Money = decimal.Decimal

// MoneyFromString parses an exact decimal amount like "-123.45".
func MoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// Cash builds a Money from an integer number of cents.
func Cash(cents int64) Money {
	return decimal.New(cents, -2)
}

// SumMoney adds a slice of amounts.
func SumMoney(vs []Money) Money {
	total := decimal.Zero
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}
