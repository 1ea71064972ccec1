package buckets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/record"
)

func TestDayOfWeek(t *testing.T) {
	t.Parallel()

	d, err := record.ParseDate("2024-03-06")
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", DayOfWeek(d))
}

func TestEntryTimeTableBucket(t *testing.T) {
	t.Parallel()

	table := DefaultEntryTimeTable()
	require.NoError(t, table.Validate())

	tests := []struct {
		name   string
		minute int
		want   string
	}{
		{"date-only record", -1, UnknownEntryTime},
		{"before pre-market", 3 * 60, UnknownEntryTime},
		{"pre-market", 8 * 60, "pre-market"},
		{"open bell", 9*60 + 30, "open-hour"},
		{"last open-hour minute", 11*60 - 1, "open-hour"},
		{"midday", 12 * 60, "midday"},
		{"power hour", 15*60 + 30, "power-hour"},
		{"after hours", 17 * 60, "after-hours"},
		{"late night", 22 * 60, UnknownEntryTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Bucket(tt.minute))
		})
	}
}

func TestEntryTimeTableValidate(t *testing.T) {
	t.Parallel()

	bad := EntryTimeTable{
		{Label: "a", Start: 0, End: 120},
		{Label: "b", Start: 60, End: 180}, // overlaps a
	}
	assert.Error(t, bad.Validate())

	empty := EntryTimeTable{{Label: "", Start: 0, End: 60}}
	assert.Error(t, empty.Validate())

	inverted := EntryTimeTable{{Label: "x", Start: 120, End: 60}}
	assert.Error(t, inverted.Validate())
}

func TestDTETableBucket(t *testing.T) {
	t.Parallel()

	table := DefaultDTETable()
	require.NoError(t, table.Validate())

	tests := []struct {
		dte  int
		want string
		ok   bool
	}{
		{0, "0", true},
		{1, "1-3", true},
		{3, "1-3", true},
		{7, "4-7", true},
		{14, "8-14", true},
		{30, "15-30", true},
		{31, "31+", true},
		{400, "31+", true},
		{-1, "", false}, // past expiration, never bucketed as 0
	}
	for _, tt := range tests {
		got, ok := table.Bucket(tt.dte)
		assert.Equal(t, tt.ok, ok, "dte %d", tt.dte)
		assert.Equal(t, tt.want, got, "dte %d", tt.dte)
	}
}

func TestDTETableValidate(t *testing.T) {
	t.Parallel()

	overlap := DTETable{
		{Label: "0-5", Min: 0, Max: 5},
		{Label: "5-10", Min: 5, Max: 10},
	}
	assert.Error(t, overlap.Validate())

	afterOpen := DTETable{
		{Label: "0+", Min: 0, Max: -1},
		{Label: "tail", Min: 10, Max: 20},
	}
	assert.Error(t, afterOpen.Validate())
}
