// series builds the ordered calendar series behind the P&L, ROI, and
// drawdown charts. Every builder walks one tick per calendar day inside the
// resolved range, so charts never see a missing x-axis point.
package series

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradebook/record"
)

// PLPoint is one calendar-day tick of the P&L series.
type PLPoint struct {
	Date         record.Date
	PL           record.Money // realized on this day
	CumulativePL record.Money // carried forward through gap days
}

// ROIPoint is one calendar-day tick of the return-on-investment series.
type ROIPoint struct {
	Date           record.Date
	PortfolioValue record.Money
	NetCashFlow    record.Money
	ROI            float64 // percent
}

// DrawdownPoint is one calendar-day tick of the drawdown series.
type DrawdownPoint struct {
	Date     record.Date
	Peak     record.Money
	Current  record.Money
	Drawdown float64 // percent decline from peak, never negative
}

// BuildPL accumulates realized P&L per exit day across the range. Days with
// no closed trades still get a tick carrying the prior cumulative value
// forward and a zero per-day P&L. Open-position unrealized P&L is not
// merged here; the façade reports it as a separate field.
func BuildPL(trades []record.ClosedTrade, rng record.DateRange) []PLPoint {
	rng = resolveRange(trades, nil, rng)
	if rng.IsZero() {
		return nil
	}

	byDay := dailyRealized(trades)
	cumulative := decimal.Zero
	var out []PLPoint
	for d := rng.Start; !d.After(rng.End); d = d.Next() {
		day := byDay[d.Key()]
		cumulative = cumulative.Add(day)
		out = append(out, PLPoint{Date: d, PL: day, CumulativePL: cumulative})
	}
	return out
}

// BuildROI computes a money-weighted return per calendar day: portfolio
// value is cumulative realized P&L plus net cash flow to that day, with the
// caller's current unrealized P&L applied at the final tick only (open
// positions are point-in-time, never historical). ROI is
// (value - netCashFlow) / netCashFlow * 100, or 0 when net cash flow is
// zero. This is an approximation, not a time-weighted return, and net cash
// flow deliberately includes margin reserve/release events even though
// short-lived futures margin swings then count as contributions — changing
// that would change historical ROI values users already rely on.
func BuildROI(trades []record.ClosedTrade, flows []record.CashFlowEvent, unrealized record.Money, rng record.DateRange) []ROIPoint {
	rng = resolveRange(trades, flows, rng)
	if rng.IsZero() {
		return nil
	}

	realizedByDay := dailyRealized(trades)
	cashByDay := dailyCash(flows)

	cumRealized := decimal.Zero
	cumCash := decimal.Zero
	var out []ROIPoint
	for d := rng.Start; !d.After(rng.End); d = d.Next() {
		cumRealized = cumRealized.Add(realizedByDay[d.Key()])
		cumCash = cumCash.Add(cashByDay[d.Key()])

		value := cumRealized.Add(cumCash)
		if d.Equal(rng.End) {
			value = value.Add(unrealized)
		}

		roi := 0.0
		if !cumCash.IsZero() {
			roi = value.Sub(cumCash).Div(cumCash).InexactFloat64() * 100
		}
		out = append(out, ROIPoint{
			Date:           d,
			PortfolioValue: value,
			NetCashFlow:    cumCash,
			ROI:            roi,
		})
	}
	return out
}

// BuildDrawdown tracks the running peak of portfolio value across the
// range. Drawdown is (peak - current) / peak * 100, 0 whenever current is
// at or above the peak; the peak only increases and never resets inside the
// queried range.
func BuildDrawdown(trades []record.ClosedTrade, flows []record.CashFlowEvent, unrealized record.Money, rng record.DateRange) []DrawdownPoint {
	roi := BuildROI(trades, flows, unrealized, rng)
	if len(roi) == 0 {
		return nil
	}

	peak := roi[0].PortfolioValue
	out := make([]DrawdownPoint, 0, len(roi))
	for _, p := range roi {
		if p.PortfolioValue.GreaterThan(peak) {
			peak = p.PortfolioValue
		}
		dd := 0.0
		if peak.IsPositive() && p.PortfolioValue.LessThan(peak) {
			dd = peak.Sub(p.PortfolioValue).Div(peak).InexactFloat64() * 100
		}
		out = append(out, DrawdownPoint{
			Date:     p.Date,
			Peak:     peak,
			Current:  p.PortfolioValue,
			Drawdown: dd,
		})
	}
	return out
}

// LastNDays is the per-day P&L window ending on today, inclusive. Every day
// in the window gets a tick, zero P&L on idle days.
func LastNDays(trades []record.ClosedTrade, today record.Date, n int) []PLPoint {
	if n <= 0 || today.IsZero() {
		return nil
	}
	rng := record.DateRange{Start: today.AddDays(-(n - 1)), End: today}

	var inWindow []record.ClosedTrade
	for _, tr := range trades {
		if rng.Contains(tr.ExitDate) {
			inWindow = append(inWindow, tr)
		}
	}
	byDay := dailyRealized(inWindow)
	cumulative := decimal.Zero
	var out []PLPoint
	for d := rng.Start; !d.After(rng.End); d = d.Next() {
		day := byDay[d.Key()]
		cumulative = cumulative.Add(day)
		out = append(out, PLPoint{Date: d, PL: day, CumulativePL: cumulative})
	}
	return out
}

func dailyRealized(trades []record.ClosedTrade) map[string]record.Money {
	byDay := make(map[string]record.Money, len(trades))
	for _, tr := range trades {
		key := tr.ExitDate.Key()
		byDay[key] = byDay[key].Add(tr.RealizedPL)
	}
	return byDay
}

func dailyCash(flows []record.CashFlowEvent) map[string]record.Money {
	byDay := make(map[string]record.Money, len(flows))
	for _, f := range flows {
		key := f.OccurredAt.Key()
		byDay[key] = byDay[key].Add(f.Amount)
	}
	return byDay
}

// resolveRange fills an absent range from the earliest and latest dates
// present in the inputs. Returns the zero range when there is nothing to
// anchor on.
func resolveRange(trades []record.ClosedTrade, flows []record.CashFlowEvent, rng record.DateRange) record.DateRange {
	if !rng.Start.IsZero() && !rng.End.IsZero() {
		return rng
	}

	var dates []record.Date
	for _, tr := range trades {
		dates = append(dates, tr.ExitDate)
	}
	for _, f := range flows {
		dates = append(dates, f.OccurredAt)
	}
	if len(dates) == 0 {
		return record.DateRange{}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if rng.Start.IsZero() {
		rng.Start = dates[0]
	}
	if rng.End.IsZero() {
		rng.End = dates[len(dates)-1]
	}
	if rng.End.Before(rng.Start) {
		return record.DateRange{}
	}
	return rng
}
