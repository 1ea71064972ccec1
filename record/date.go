package record

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a civil calendar date. "2024-03-05" always means that calendar
// day: comparisons and weekday derivation happen on the year/month/day
// fields directly and are never shifted by the evaluating process's time
// zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates a timestamp to the calendar date in the timestamp's own
// location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Key returns the "YYYY-MM-DD" grouping key.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MonthKey returns the "YYYY-MM" grouping key.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

func (d Date) String() string { return d.Key() }

// Weekday returns the civil weekday of the date itself. Evaluated in UTC on
// the raw Y/M/D fields, so the answer is the same in every process time
// zone.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(o Date) bool {
	return d.time().Before(o.time())
}

func (d Date) After(o Date) bool {
	return d.time().After(o.time())
}

func (d Date) Equal(o Date) bool {
	return d == o
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.time().AddDate(0, 0, n))
}

// Next returns the following calendar day.
func (d Date) Next() Date { return d.AddDays(1) }

// DaysBetween returns the number of calendar days from a to b. Negative
// when b precedes a.
func DaysBetween(a, b Date) int {
	return int(b.time().Sub(a.time()) / (24 * time.Hour))
}

// DateRange is an inclusive calendar-date interval. The zero value means
// "all history".
type DateRange struct {
	Start Date
	End   Date
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether d falls inside the range, bounds inclusive. A
// zero bound on either side leaves that side unbounded.
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}
