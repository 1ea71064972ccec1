// agg holds the grouping and ratio primitives every metric view is built
// from. All division-by-zero policy lives here so each view inherits the
// same guards instead of re-deriving them.
package agg

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradebook/record"
)

// Group pairs a key with the records that share it.
type Group[K comparable, V any] struct {
	Key   K
	Items []V
}

// GroupBy partitions items by key. Output order is the order keys were
// first encountered; callers needing a different order sort afterward.
func GroupBy[K comparable, V any](items []V, key func(V) K) []Group[K, V] {
	index := make(map[K]int, len(items))
	var out []Group[K, V]
	for _, item := range items {
		k := key(item)
		i, seen := index[k]
		if !seen {
			i = len(out)
			index[k] = i
			out = append(out, Group[K, V]{Key: k})
		}
		out[i].Items = append(out[i].Items, item)
	}
	return out
}

// Tally is the running win/loss/breakeven count and P&L sum for a set of
// closed trades.
type Tally struct {
	TotalTrades     int
	WinningTrades   int
	LosingTrades    int
	BreakevenTrades int
	PL              record.Money
}

// Add folds one trade into the tally.
func (t *Tally) Add(tr record.ClosedTrade) {
	t.TotalTrades++
	switch {
	case tr.Winning():
		t.WinningTrades++
	case tr.Losing():
		t.LosingTrades++
	default:
		t.BreakevenTrades++
	}
	t.PL = t.PL.Add(tr.RealizedPL)
}

// NewTally tallies a trade set.
func NewTally(trades []record.ClosedTrade) Tally {
	var t Tally
	for _, tr := range trades {
		t.Add(tr)
	}
	return t
}

// WinRate returns winning/(winning+losing)*100. Breakeven trades are
// excluded from the denominator; an empty or breakeven-only set yields 0,
// never NaN.
func WinRate(t Tally) float64 {
	decided := t.WinningTrades + t.LosingTrades
	if decided == 0 {
		return 0
	}
	return float64(t.WinningTrades) / float64(decided) * 100
}

// ProfitFactor returns gross profit over gross loss magnitude. With no
// losing trades the factor is undefined: ok is false and callers report a
// null, never a thrown error or +Inf.
func ProfitFactor(trades []record.ClosedTrade) (float64, bool) {
	grossProfit := decimal.Zero
	grossLoss := decimal.Zero
	for _, tr := range trades {
		if tr.Winning() {
			grossProfit = grossProfit.Add(tr.RealizedPL)
		} else if tr.Losing() {
			grossLoss = grossLoss.Add(tr.RealizedPL)
		}
	}
	if grossLoss.IsZero() {
		return 0, false
	}
	return grossProfit.Div(grossLoss.Abs()).InexactFloat64(), true
}

// Ratio divides pl by risk with the shared zero-guard: a zero or absent
// denominator yields ok=false rather than a division by zero. Used for
// profit-on-risk and margin efficiency.
func Ratio(pl record.Money, risk record.Money) (float64, bool) {
	if risk.IsZero() {
		return 0, false
	}
	return pl.Div(risk).InexactFloat64(), true
}

// SumMarginUsed adds the defined margin across a trade set, ignoring
// trades without one.
func SumMarginUsed(trades []record.ClosedTrade) record.Money {
	total := decimal.Zero
	for _, tr := range trades {
		if tr.MarginUsed != nil {
			total = total.Add(*tr.MarginUsed)
		}
	}
	return total
}
