package metrics

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/record"
)

func money(s string) *record.Money {
	m := decimal.RequireFromString(s)
	return &m
}

func rawClosed(id, user, symbol string, asset record.AssetType, exit, pl string) record.RawPosition {
	return record.RawPosition{
		ID: id, UserID: user, Symbol: symbol, AssetType: asset,
		EntryDate: exit, ExitDate: exit,
		RealizedPL: money(pl),
	}
}

func query(user string) Query {
	today, _ := record.ParseDate("2024-06-01")
	return Query{UserID: user, Today: today}
}

func TestCollectFiltersByUser(t *testing.T) {
	t.Parallel()

	raws := []record.RawPosition{
		rawClosed("P1", "u1", "SPY", record.AssetStock, "2024-01-01", "100"),
		rawClosed("P2", "someone-else", "SPY", record.AssetStock, "2024-01-01", "999"),
	}
	ds := Collect(query("u1"), raws, nil, zerolog.Nop())
	require.Len(t, ds.Trades, 1)
	assert.Equal(t, "P1", ds.Trades[0].ID)
}

func TestCollectAssetThenRange(t *testing.T) {
	t.Parallel()

	start, _ := record.ParseDate("2024-01-02")
	end, _ := record.ParseDate("2024-01-03")
	q := query("u1")
	q.Asset = record.AssetStock
	q.Range = record.DateRange{Start: start, End: end}

	raws := []record.RawPosition{
		rawClosed("P1", "u1", "SPY", record.AssetStock, "2024-01-01", "1"),   // in asset, out of range
		rawClosed("P2", "u1", "SPY", record.AssetStock, "2024-01-02", "2"),   // kept, inclusive start
		rawClosed("P3", "u1", "SPY", record.AssetStock, "2024-01-03", "3"),   // kept, inclusive end
		rawClosed("P4", "u1", "BTC", record.AssetCrypto, "2024-01-02", "4"),  // wrong asset
	}
	ds := Collect(q, raws, nil, zerolog.Nop())
	require.Len(t, ds.Trades, 2)
	assert.Equal(t, "P2", ds.Trades[0].ID)
	assert.Equal(t, "P3", ds.Trades[1].ID)
}

func TestCollectCountsSkips(t *testing.T) {
	t.Parallel()

	raws := []record.RawPosition{
		rawClosed("P1", "u1", "SPY", record.AssetStock, "2024-01-01", "100"),
		{ID: "P2", UserID: "u1", Symbol: "SPY", AssetType: record.AssetStock,
			EntryDate: "2024-01-01", ExitDate: "2024-01-02"}, // closed, no realized P&L
	}
	ds := Collect(query("u1"), raws, nil, zerolog.Nop())
	assert.Len(t, ds.Trades, 1)
	assert.Equal(t, 1, ds.Skipped())
}

func TestSummaryScenario(t *testing.T) {
	t.Parallel()

	raws := []record.RawPosition{
		rawClosed("P1", "u1", "A", record.AssetStock, "2024-01-01", "100"),
		rawClosed("P2", "u1", "A", record.AssetStock, "2024-01-02", "-40"),
		rawClosed("P3", "u1", "A", record.AssetStock, "2024-01-03", "60"),
	}
	ds := Collect(query("u1"), raws, nil, zerolog.Nop())

	sum := Summary(ds)
	assert.Equal(t, 3, sum.TotalTrades)
	assert.Equal(t, 2, sum.WinningTrades)
	assert.Equal(t, 1, sum.LosingTrades)
	assert.InDelta(t, 66.67, sum.WinRate, 0.005)
	assert.True(t, sum.PL.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, sum.ProfitFactor)
	assert.InDelta(t, 4.0, *sum.ProfitFactor, 1e-9)
}

func TestSummaryIncludesUnrealized(t *testing.T) {
	t.Parallel()

	raws := []record.RawPosition{
		rawClosed("P1", "u1", "A", record.AssetStock, "2024-01-01", "10"),
		{ID: "P2", UserID: "u1", Symbol: "B", AssetType: record.AssetStock,
			EntryDate: "2024-01-01", UnrealizedPL: money("-5.50")},
	}
	ds := Collect(query("u1"), raws, nil, zerolog.Nop())

	sum := Summary(ds)
	assert.Equal(t, 1, sum.TotalTrades, "open positions never count as trades")
	assert.True(t, sum.UnrealizedPL.Equal(decimal.RequireFromString("-5.50")))
	assert.Nil(t, sum.ProfitFactor, "no losers")
}

func TestSummaryEmpty(t *testing.T) {
	t.Parallel()

	ds := Collect(query("u1"), nil, nil, zerolog.Nop())
	sum := Summary(ds)
	assert.Equal(t, 0, sum.TotalTrades)
	assert.InDelta(t, 0, sum.WinRate, 1e-9)
	assert.True(t, sum.PL.IsZero())
	assert.Nil(t, sum.ProfitFactor)
	assert.Equal(t, 0, sum.Skipped)
}

func TestCashFlowRoundTrip(t *testing.T) {
	t.Parallel()

	cash := []record.RawCashTransaction{
		{ID: "C1", UserID: "u1", Amount: money("1000"), OccurredAt: "2024-01-01", Kind: "deposit"},
		{ID: "C2", UserID: "u1", Amount: money("-10"), OccurredAt: "2024-01-02", Kind: "fee"},
		{ID: "C3", UserID: "u1", Amount: money("-500"), OccurredAt: "2024-01-02", Kind: "trade_cash"},
		{ID: "C4", UserID: "u1", Amount: money("-200"), OccurredAt: "2024-01-03", Kind: "margin_reserve"},
		{ID: "C5", UserID: "u1", Amount: money("200"), OccurredAt: "2024-01-04", Kind: "margin_release"},
	}
	ds := Collect(query("u1"), nil, cash, zerolog.Nop())

	flow := CashFlow(ds)
	assert.True(t, flow.Total.Equal(decimal.NewFromInt(290)),
		"got %s", flow.Total)
}

func TestCashFlowRangeInclusive(t *testing.T) {
	t.Parallel()

	start, _ := record.ParseDate("2024-01-02")
	end, _ := record.ParseDate("2024-01-02")
	q := query("u1")
	q.Range = record.DateRange{Start: start, End: end}

	cash := []record.RawCashTransaction{
		{ID: "C1", UserID: "u1", Amount: money("1000"), OccurredAt: "2024-01-01", Kind: "deposit"},
		{ID: "C2", UserID: "u1", Amount: money("-10"), OccurredAt: "2024-01-02", Kind: "fee"},
	}
	ds := Collect(q, nil, cash, zerolog.Nop())
	assert.True(t, CashFlow(ds).Total.Equal(decimal.NewFromInt(-10)))
}

func TestCashFlowEmpty(t *testing.T) {
	t.Parallel()

	flow := CashFlow(Collect(query("u1"), nil, nil, zerolog.Nop()))
	assert.True(t, flow.Total.IsZero())
}
