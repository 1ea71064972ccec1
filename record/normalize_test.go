package record

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) *Money {
	m := decimal.RequireFromString(s)
	return &m
}

func TestNormalizeClosedTrade(t *testing.T) {
	t.Parallel()

	dte := 14
	minute := 9*60 + 45
	raws := []RawPosition{{
		ID:               "P1",
		UserID:           "u1",
		Symbol:           "SPY",
		AssetType:        AssetOption,
		StrategyType:     "iron_condor",
		EntryDate:        "2024-04-01",
		EntryMinute:      &minute,
		ExitDate:         "2024-04-10",
		ExitPrice:        money("1.25"),
		RealizedPL:       money("150.00"),
		MarginUsed:       money("500.00"),
		DaysToExpiration: &dte,
		Expired:          boolPtr(false),
	}}

	trades, opens, skips := Normalize(raws, zerolog.Nop())
	require.Len(t, trades, 1)
	assert.Empty(t, opens)
	assert.Equal(t, 0, skips.Total())

	tr := trades[0]
	assert.Equal(t, "SPY", tr.Symbol)
	assert.Equal(t, "2024-04-01", tr.EntryDate.Key())
	assert.Equal(t, "2024-04-10", tr.ExitDate.Key())
	assert.Equal(t, minute, tr.EntryMinute)
	require.NotNil(t, tr.DaysToExpiration)
	assert.Equal(t, 14, *tr.DaysToExpiration)
	assert.Equal(t, DispositionClosed, tr.Disposition)
	assert.True(t, tr.Winning())
	require.NotNil(t, tr.MarginUsed)
	assert.True(t, tr.MarginUsed.Equal(decimal.RequireFromString("500.00")))
}

func TestNormalizeOpenPosition(t *testing.T) {
	t.Parallel()

	raws := []RawPosition{{
		ID:           "P2",
		UserID:       "u1",
		Symbol:       "AAPL",
		AssetType:    AssetStock,
		EntryDate:    "2024-04-01",
		UnrealizedPL: money("-32.10"),
		// no exit date and no exit price: still open
	}}

	trades, opens, skips := Normalize(raws, zerolog.Nop())
	assert.Empty(t, trades)
	require.Len(t, opens, 1)
	assert.Equal(t, 0, skips.Total())
	assert.True(t, opens[0].UnrealizedPL.Equal(decimal.RequireFromString("-32.10")))
}

func TestNormalizeMissingRealizedPL(t *testing.T) {
	t.Parallel()

	// Exit date present but realized P&L missing is a data-integrity
	// error: the row must be skipped, not zeroed.
	raws := []RawPosition{{
		ID:        "P3",
		UserID:    "u1",
		Symbol:    "TSLA",
		AssetType: AssetStock,
		EntryDate: "2024-04-01",
		ExitDate:  "2024-04-02",
	}}

	trades, opens, skips := Normalize(raws, zerolog.Nop())
	assert.Empty(t, trades)
	assert.Empty(t, opens)
	assert.Equal(t, 1, skips.MissingRealizedPL)
	assert.Equal(t, 1, skips.Total())
}

func TestNormalizeBadDates(t *testing.T) {
	t.Parallel()

	raws := []RawPosition{
		{
			ID: "P4", UserID: "u1", Symbol: "QQQ", AssetType: AssetStock,
			EntryDate: "not-a-date", ExitDate: "2024-04-02",
			RealizedPL: money("10"),
		},
		{
			// exit before entry violates the trade invariant
			ID: "P5", UserID: "u1", Symbol: "QQQ", AssetType: AssetStock,
			EntryDate: "2024-04-10", ExitDate: "2024-04-02",
			RealizedPL: money("10"),
		},
	}

	trades, _, skips := Normalize(raws, zerolog.Nop())
	assert.Empty(t, trades)
	assert.Equal(t, 2, skips.BadDate)
}

func TestNormalizeInapplicableFieldsStayNil(t *testing.T) {
	t.Parallel()

	raws := []RawPosition{{
		ID: "P6", UserID: "u1", Symbol: "BTC", AssetType: AssetCrypto,
		Coin:      "BTC",
		EntryDate: "2024-04-01", ExitDate: "2024-04-02",
		RealizedPL: money("0"),
	}}

	trades, _, _ := Normalize(raws, zerolog.Nop())
	require.Len(t, trades, 1)
	assert.Nil(t, trades[0].DaysToExpiration, "crypto has no expiration")
	assert.Nil(t, trades[0].MarginUsed)
	assert.Equal(t, -1, trades[0].EntryMinute, "date-only record")
	assert.True(t, trades[0].Breakeven())
}

func TestNormalizeCash(t *testing.T) {
	t.Parallel()

	raws := []RawCashTransaction{
		{ID: "C1", UserID: "u1", Amount: money("1000"), OccurredAt: "2024-01-02", Kind: "deposit"},
		{ID: "C2", UserID: "u1", Amount: money("-10"), OccurredAt: "2024-01-03", Kind: "fee"},
		{ID: "C3", UserID: "u1", Amount: money("-1"), OccurredAt: "2024-01-03", Kind: "mystery"},
		{ID: "C4", UserID: "u1", OccurredAt: "2024-01-03", Kind: "fee"},
		{ID: "C5", UserID: "u1", Amount: money("5"), OccurredAt: "bad", Kind: "fee"},
	}

	events, skips := NormalizeCash(raws, zerolog.Nop())
	require.Len(t, events, 2)
	assert.Equal(t, 3, skips.BadCashRow)
	assert.Equal(t, CashDeposit, events[0].Kind)
	assert.Equal(t, CashFee, events[1].Kind)
}

func boolPtr(b bool) *bool { return &b }
