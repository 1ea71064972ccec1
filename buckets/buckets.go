// buckets classifies trade timestamps into the discrete labels the
// dashboard groups by: weekday, intraday entry window, and days to
// expiration. Tables are ordered and configurable; calendar keys live on
// record.Date.
package buckets

import (
	"fmt"

	"github.com/rustyeddy/tradebook/record"
)

// DayOfWeek returns the weekday label for the date a trade's outcome was
// realized. Derived from the civil exit date, never recomputed in UTC from
// a timestamp.
func DayOfWeek(d record.Date) string {
	return d.Weekday().String()
}

// WeekdayOrder is the fixed reporting order for day-of-week views.
var WeekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// UnknownEntryTime labels date-only records. They are reported separately
// and excluded from time-of-day win-rate comparisons.
const UnknownEntryTime = "unknown"

// EntryBucket is one fixed-width intraday interval. Minutes are counted
// from midnight; Start is inclusive, End exclusive.
type EntryBucket struct {
	Label string
	Start int
	End   int
}

// EntryTimeTable is an ordered set of non-overlapping intraday intervals.
type EntryTimeTable []EntryBucket

// DefaultEntryTimeTable covers the US equity session.
func DefaultEntryTimeTable() EntryTimeTable {
	return EntryTimeTable{
		{Label: "pre-market", Start: 4 * 60, End: 9*60 + 30},
		{Label: "open-hour", Start: 9*60 + 30, End: 11 * 60},
		{Label: "midday", Start: 11 * 60, End: 15 * 60},
		{Label: "power-hour", Start: 15 * 60, End: 16 * 60},
		{Label: "after-hours", Start: 16 * 60, End: 20 * 60},
	}
}

// Validate checks the table is ordered and non-overlapping.
func (t EntryTimeTable) Validate() error {
	for i, b := range t {
		if b.Label == "" {
			return fmt.Errorf("entry bucket %d has no label", i)
		}
		if b.Start < 0 || b.End > 24*60 || b.Start >= b.End {
			return fmt.Errorf("entry bucket %q has bad bounds [%d, %d)", b.Label, b.Start, b.End)
		}
		if i > 0 && b.Start < t[i-1].End {
			return fmt.Errorf("entry bucket %q overlaps %q", b.Label, t[i-1].Label)
		}
	}
	return nil
}

// Labels returns the bucket labels in table order.
func (t EntryTimeTable) Labels() []string {
	out := make([]string, len(t))
	for i, b := range t {
		out[i] = b.Label
	}
	return out
}

// Bucket maps a minute-of-day to its label. Negative minutes (date-only
// records) and minutes outside every interval land in UnknownEntryTime.
func (t EntryTimeTable) Bucket(minute int) string {
	if minute < 0 {
		return UnknownEntryTime
	}
	for _, b := range t {
		if minute >= b.Start && minute < b.End {
			return b.Label
		}
	}
	return UnknownEntryTime
}

// DTERange is one days-to-expiration bucket. Max < 0 means open-ended.
type DTERange struct {
	Label string
	Min   int
	Max   int
}

// DTETable is an ordered set of non-overlapping DTE ranges.
type DTETable []DTERange

func DefaultDTETable() DTETable {
	return DTETable{
		{Label: "0", Min: 0, Max: 0},
		{Label: "1-3", Min: 1, Max: 3},
		{Label: "4-7", Min: 4, Max: 7},
		{Label: "8-14", Min: 8, Max: 14},
		{Label: "15-30", Min: 15, Max: 30},
		{Label: "31+", Min: 31, Max: -1},
	}
}

func (t DTETable) Validate() error {
	for i, r := range t {
		if r.Label == "" {
			return fmt.Errorf("dte range %d has no label", i)
		}
		if r.Min < 0 {
			return fmt.Errorf("dte range %q has negative minimum", r.Label)
		}
		if r.Max >= 0 && r.Max < r.Min {
			return fmt.Errorf("dte range %q has max below min", r.Label)
		}
		if i > 0 {
			prev := t[i-1]
			if prev.Max < 0 {
				return fmt.Errorf("dte range %q follows open-ended %q", r.Label, prev.Label)
			}
			if r.Min <= prev.Max {
				return fmt.Errorf("dte range %q overlaps %q", r.Label, prev.Label)
			}
		}
	}
	return nil
}

func (t DTETable) Labels() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Label
	}
	return out
}

// Bucket maps a days-to-expiration count to its range label. Negative DTE
// (already past expiration) does not belong to any bucket; ok is false and
// the caller reports it in skip diagnostics instead of bucketing it as 0.
func (t DTETable) Bucket(dte int) (string, bool) {
	if dte < 0 {
		return "", false
	}
	for _, r := range t {
		if dte >= r.Min && (r.Max < 0 || dte <= r.Max) {
			return r.Label, true
		}
	}
	return "", false
}
