// metrics is the engine's public surface: one pure function per dashboard
// view. A caller collects a Dataset once per render, then runs any of the
// views over it in any order, concurrently if it likes — nothing here holds
// state or performs I/O.
package metrics

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradebook/agg"
	"github.com/rustyeddy/tradebook/record"
)

// Query scopes a dashboard render. Today is the caller's clock, passed
// explicitly so results are deterministic; an empty Asset means every asset
// type and a zero Range means all history.
type Query struct {
	UserID string
	Asset  record.AssetType
	Range  record.DateRange
	Today  record.Date
}

// Dataset is the normalized, filtered input every view reads from. Built
// once per invocation by Collect; never mutated by a view.
type Dataset struct {
	Query  Query
	Trades []record.ClosedTrade
	Opens  []record.OpenPosition
	Flows  []record.CashFlowEvent
	Skips  record.Skips
}

// Skipped is the diagnostic count of rows dropped during normalization,
// reported alongside every view so one bad row never blanks a panel.
func (ds Dataset) Skipped() int { return ds.Skips.Total() }

// Collect normalizes raw repository rows into a Dataset. Filtering order:
// user, then asset type, then date range (inclusive bounds). Cash flows
// carry no asset type and only get the user and range filters; open
// positions are point-in-time and only get the user and asset filters.
func Collect(q Query, positions []record.RawPosition, cash []record.RawCashTransaction, log zerolog.Logger) Dataset {
	var ownPositions []record.RawPosition
	for _, p := range positions {
		if p.UserID == q.UserID {
			ownPositions = append(ownPositions, p)
		}
	}
	var ownCash []record.RawCashTransaction
	for _, c := range cash {
		if c.UserID == q.UserID {
			ownCash = append(ownCash, c)
		}
	}

	trades, opens, skips := record.Normalize(ownPositions, log)
	flows, cashSkips := record.NormalizeCash(ownCash, log)
	skips.MissingRealizedPL += cashSkips.MissingRealizedPL
	skips.BadDate += cashSkips.BadDate
	skips.BadCashRow += cashSkips.BadCashRow

	if q.Asset != "" {
		trades = filterTrades(trades, func(t record.ClosedTrade) bool { return t.AssetType == q.Asset })
		var kept []record.OpenPosition
		for _, o := range opens {
			if o.AssetType == q.Asset {
				kept = append(kept, o)
			}
		}
		opens = kept
	}

	if !q.Range.IsZero() {
		trades = filterTrades(trades, func(t record.ClosedTrade) bool { return q.Range.Contains(t.ExitDate) })
		var kept []record.CashFlowEvent
		for _, f := range flows {
			if q.Range.Contains(f.OccurredAt) {
				kept = append(kept, f)
			}
		}
		flows = kept
	}

	return Dataset{Query: q, Trades: trades, Opens: opens, Flows: flows, Skips: skips}
}

func filterTrades(trades []record.ClosedTrade, keep func(record.ClosedTrade) bool) []record.ClosedTrade {
	var out []record.ClosedTrade
	for _, t := range trades {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// unrealizedTotal sums open-position P&L for point-in-time figures.
func (ds Dataset) unrealizedTotal() record.Money {
	total := decimal.Zero
	for _, o := range ds.Opens {
		total = total.Add(o.UnrealizedPL)
	}
	return total
}

// Performance is the shared per-group aggregate every rollup view reports.
type Performance struct {
	TotalTrades     int
	WinningTrades   int
	LosingTrades    int
	BreakevenTrades int
	WinRate         float64 // percent, 0-100
	PL              record.Money
}

func performanceOf(trades []record.ClosedTrade) Performance {
	tally := agg.NewTally(trades)
	return Performance{
		TotalTrades:     tally.TotalTrades,
		WinningTrades:   tally.WinningTrades,
		LosingTrades:    tally.LosingTrades,
		BreakevenTrades: tally.BreakevenTrades,
		WinRate:         agg.WinRate(tally),
		PL:              tally.PL,
	}
}

// Overview is the headline panel: totals across the whole filtered set.
type Overview struct {
	Performance
	ProfitFactor *float64 // nil when there are no losing trades
	UnrealizedPL record.Money
	Skipped      int
}

// Summary computes the headline overview. Empty input yields the zero
// value, never an error.
func Summary(ds Dataset) Overview {
	out := Overview{
		Performance:  performanceOf(ds.Trades),
		UnrealizedPL: ds.unrealizedTotal(),
		Skipped:      ds.Skipped(),
	}
	if pf, ok := agg.ProfitFactor(ds.Trades); ok {
		out.ProfitFactor = &pf
	}
	return out
}

// NetCashFlow is the signed sum of cash events in range, margin reserves
// and releases included.
type NetCashFlow struct {
	Total   record.Money
	Skipped int
}

func CashFlow(ds Dataset) NetCashFlow {
	total := decimal.Zero
	for _, f := range ds.Flows {
		total = total.Add(f.Amount)
	}
	return NetCashFlow{Total: total, Skipped: ds.Skipped()}
}
