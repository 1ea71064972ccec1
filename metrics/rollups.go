package metrics

import (
	"sort"

	"github.com/rustyeddy/tradebook/agg"
	"github.com/rustyeddy/tradebook/buckets"
	"github.com/rustyeddy/tradebook/record"
)

// SymbolPerformance is one row of the per-symbol rollup.
type SymbolPerformance struct {
	Symbol string
	Performance
}

// SymbolReport lists symbols alphabetically.
type SymbolReport struct {
	Symbols []SymbolPerformance
	Skipped int
}

func BySymbol(ds Dataset) SymbolReport {
	groups := agg.GroupBy(ds.Trades, func(t record.ClosedTrade) string { return t.Symbol })
	rows := make([]SymbolPerformance, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, SymbolPerformance{Symbol: g.Key, Performance: performanceOf(g.Items)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })
	return SymbolReport{Symbols: rows, Skipped: ds.Skipped()}
}

// StrategyPerformance is one row of the per-strategy rollup. ProfitOnRisk
// is P&L over the strategy's summed margin; nil when no trade in the group
// recorded a defined risk.
type StrategyPerformance struct {
	Strategy string
	Performance
	ProfitOnRisk *float64
}

// StrategyReport lists strategies alphabetically; trades with no recorded
// strategy group under "unspecified".
type StrategyReport struct {
	Strategies []StrategyPerformance
	Skipped    int
}

func ByStrategy(ds Dataset) StrategyReport {
	groups := agg.GroupBy(ds.Trades, func(t record.ClosedTrade) string {
		if t.StrategyType == "" {
			return "unspecified"
		}
		return t.StrategyType
	})
	rows := make([]StrategyPerformance, 0, len(groups))
	for _, g := range groups {
		row := StrategyPerformance{Strategy: g.Key, Performance: performanceOf(g.Items)}
		if r, ok := agg.Ratio(row.PL, agg.SumMarginUsed(g.Items)); ok {
			row.ProfitOnRisk = &r
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Strategy < rows[j].Strategy })
	return StrategyReport{Strategies: rows, Skipped: ds.Skipped()}
}

// DayOfWeekPerformance is one weekday row, derived from the exit date.
type DayOfWeekPerformance struct {
	Day string
	Performance
}

// DayOfWeekReport always carries all seven rows in Monday..Sunday order,
// zero-filled for idle days.
type DayOfWeekReport struct {
	Days    []DayOfWeekPerformance
	Skipped int
}

func ByDayOfWeek(ds Dataset) DayOfWeekReport {
	byDay := make(map[string][]record.ClosedTrade)
	for _, t := range ds.Trades {
		day := buckets.DayOfWeek(t.ExitDate)
		byDay[day] = append(byDay[day], t)
	}
	rows := make([]DayOfWeekPerformance, 0, len(buckets.WeekdayOrder))
	for _, day := range buckets.WeekdayOrder {
		rows = append(rows, DayOfWeekPerformance{Day: day, Performance: performanceOf(byDay[day])})
	}
	return DayOfWeekReport{Days: rows, Skipped: ds.Skipped()}
}

// DTEPerformance is one days-to-expiration bucket row.
type DTEPerformance struct {
	Bucket string
	Performance
}

// DTEReport carries every table bucket in table order, zero-filled.
// Non-option trades (no expiration) are excluded outright; trades already
// past expiration (negative DTE) are excluded and counted in
// SkippedNegativeDTE rather than bucketed as zero days.
type DTEReport struct {
	Buckets            []DTEPerformance
	SkippedNegativeDTE int
	Skipped            int
}

func ByDTE(ds Dataset, table buckets.DTETable) DTEReport {
	byBucket := make(map[string][]record.ClosedTrade)
	negative := 0
	for _, t := range ds.Trades {
		if t.DaysToExpiration == nil {
			continue
		}
		label, ok := table.Bucket(*t.DaysToExpiration)
		if !ok {
			negative++
			continue
		}
		byBucket[label] = append(byBucket[label], t)
	}
	rows := make([]DTEPerformance, 0, len(table))
	for _, label := range table.Labels() {
		rows = append(rows, DTEPerformance{Bucket: label, Performance: performanceOf(byBucket[label])})
	}
	return DTEReport{Buckets: rows, SkippedNegativeDTE: negative, Skipped: ds.Skipped()}
}

// EntryTimePerformance is one intraday-window row.
type EntryTimePerformance struct {
	Bucket string
	Performance
}

// EntryTimeReport carries the table's windows in order. Date-only trades
// land in Unknown, which is reported separately so it never skews the
// time-of-day win-rate comparison.
type EntryTimeReport struct {
	Buckets []EntryTimePerformance
	Unknown EntryTimePerformance
	Skipped int
}

func ByEntryTime(ds Dataset, table buckets.EntryTimeTable) EntryTimeReport {
	byBucket := make(map[string][]record.ClosedTrade)
	for _, t := range ds.Trades {
		label := table.Bucket(t.EntryMinute)
		byBucket[label] = append(byBucket[label], t)
	}
	rows := make([]EntryTimePerformance, 0, len(table))
	for _, label := range table.Labels() {
		rows = append(rows, EntryTimePerformance{Bucket: label, Performance: performanceOf(byBucket[label])})
	}
	return EntryTimeReport{
		Buckets: rows,
		Unknown: EntryTimePerformance{
			Bucket:      buckets.UnknownEntryTime,
			Performance: performanceOf(byBucket[buckets.UnknownEntryTime]),
		},
		Skipped: ds.Skipped(),
	}
}

// ContractMonthPerformance is one futures contract-month row.
type ContractMonthPerformance struct {
	ContractMonth string
	Performance
}

// ContractMonthReport lists months chronologically. Contract months are
// copied through from the broker as "YYYY-MM" keys, so lexicographic order
// is chronological order.
type ContractMonthReport struct {
	Months  []ContractMonthPerformance
	Skipped int
}

func ByContractMonth(ds Dataset) ContractMonthReport {
	withMonth := filterTrades(ds.Trades, func(t record.ClosedTrade) bool { return t.ContractMonth != "" })
	groups := agg.GroupBy(withMonth, func(t record.ClosedTrade) string { return t.ContractMonth })
	rows := make([]ContractMonthPerformance, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, ContractMonthPerformance{ContractMonth: g.Key, Performance: performanceOf(g.Items)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ContractMonth < rows[j].ContractMonth })
	return ContractMonthReport{Months: rows, Skipped: ds.Skipped()}
}

// CoinPerformance is one crypto-coin row.
type CoinPerformance struct {
	Coin string
	Performance
}

// CoinReport lists coins alphabetically.
type CoinReport struct {
	Coins   []CoinPerformance
	Skipped int
}

func ByCoin(ds Dataset) CoinReport {
	withCoin := filterTrades(ds.Trades, func(t record.ClosedTrade) bool { return t.Coin != "" })
	groups := agg.GroupBy(withCoin, func(t record.ClosedTrade) string { return t.Coin })
	rows := make([]CoinPerformance, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, CoinPerformance{Coin: g.Key, Performance: performanceOf(g.Items)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Coin < rows[j].Coin })
	return CoinReport{Coins: rows, Skipped: ds.Skipped()}
}

// MarginEfficiency is P&L per unit of margin for one futures symbol.
// Efficiency is nil when the symbol's trades recorded no margin.
type MarginEfficiency struct {
	Symbol     string
	PL         record.Money
	MarginUsed record.Money
	Efficiency *float64
}

// MarginEfficiencyReport lists futures symbols alphabetically. Only valid
// for trades that actually reserve margin, so everything else is excluded
// by definition.
type MarginEfficiencyReport struct {
	Symbols []MarginEfficiency
	Skipped int
}

func ByMarginEfficiency(ds Dataset) MarginEfficiencyReport {
	margined := filterTrades(ds.Trades, func(t record.ClosedTrade) bool {
		return t.AssetType == record.AssetFutures && t.MarginUsed != nil
	})
	groups := agg.GroupBy(margined, func(t record.ClosedTrade) string { return t.Symbol })
	rows := make([]MarginEfficiency, 0, len(groups))
	for _, g := range groups {
		tally := agg.NewTally(g.Items)
		row := MarginEfficiency{
			Symbol:     g.Key,
			PL:         tally.PL,
			MarginUsed: agg.SumMarginUsed(g.Items),
		}
		if r, ok := agg.Ratio(row.PL, row.MarginUsed); ok {
			row.Efficiency = &r
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })
	return MarginEfficiencyReport{Symbols: rows, Skipped: ds.Skipped()}
}

// ExpirationStatusReport splits option outcomes by how the position ended:
// ran to expiration versus closed manually.
type ExpirationStatusReport struct {
	Expired Performance
	Closed  Performance
	Skipped int
}

func ByExpirationStatus(ds Dataset) ExpirationStatusReport {
	var expired, closed []record.ClosedTrade
	for _, t := range ds.Trades {
		switch t.Disposition {
		case record.DispositionExpired:
			expired = append(expired, t)
		case record.DispositionClosed:
			closed = append(closed, t)
		}
	}
	return ExpirationStatusReport{
		Expired: performanceOf(expired),
		Closed:  performanceOf(closed),
		Skipped: ds.Skipped(),
	}
}
