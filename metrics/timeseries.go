package metrics

import (
	"github.com/rustyeddy/tradebook/record"
	"github.com/rustyeddy/tradebook/series"
)

// PLReport is the cumulative realized P&L chart. UnrealizedPL is the
// current open-position total, reported separately rather than merged into
// the realized series; callers combine them when they want one number.
type PLReport struct {
	Points       []series.PLPoint
	UnrealizedPL record.Money
	Skipped      int
}

func PLOverTime(ds Dataset) PLReport {
	return PLReport{
		Points:       series.BuildPL(ds.Trades, ds.Query.Range),
		UnrealizedPL: ds.unrealizedTotal(),
		Skipped:      ds.Skipped(),
	}
}

// ROIReport is the money-weighted return chart; see series.BuildROI for the
// documented approximation.
type ROIReport struct {
	Points  []series.ROIPoint
	Skipped int
}

func ROIOverTime(ds Dataset) ROIReport {
	return ROIReport{
		Points:  series.BuildROI(ds.Trades, ds.Flows, ds.unrealizedTotal(), ds.Query.Range),
		Skipped: ds.Skipped(),
	}
}

// DrawdownReport is the percent-off-peak chart.
type DrawdownReport struct {
	Points  []series.DrawdownPoint
	Skipped int
}

func DrawdownOverTime(ds Dataset) DrawdownReport {
	return DrawdownReport{
		Points:  series.BuildDrawdown(ds.Trades, ds.Flows, ds.unrealizedTotal(), ds.Query.Range),
		Skipped: ds.Skipped(),
	}
}

// DailyReport is the per-day P&L window ending on the query's Today.
type DailyReport struct {
	Points  []series.PLPoint
	Skipped int
}

func DailyPL(ds Dataset, days int) DailyReport {
	return DailyReport{
		Points:  series.LastNDays(ds.Trades, ds.Query.Today, days),
		Skipped: ds.Skipped(),
	}
}
