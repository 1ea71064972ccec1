// record holds the canonical shapes the aggregation engine operates on.
// Raw broker rows are normalized into these once at the boundary; everything
// downstream is asset-type-agnostic unless a metric is asset-specific by
// definition.
package record

// AssetType tags which market a record came from.
type AssetType string

const (
	AssetStock   AssetType = "stock"
	AssetOption  AssetType = "option"
	AssetCrypto  AssetType = "crypto"
	AssetFutures AssetType = "futures"
)

// Disposition records how an option position ended.
type Disposition string

const (
	DispositionExpired Disposition = "expired"
	DispositionClosed  Disposition = "closed_manually"
)

// ClosedTrade is a fully realized round trip. Winning iff RealizedPL > 0,
// losing iff < 0, breakeven iff == 0. Optional asset-specific fields stay
// nil when not applicable so aggregates can tell "not applicable" from
// "zero value".
type ClosedTrade struct {
	ID           string
	UserID       string
	Symbol       string
	AssetType    AssetType
	StrategyType string

	EntryDate Date
	ExitDate  Date

	// EntryMinute is minutes after midnight of EntryDate, or -1 when the
	// record is date-only.
	EntryMinute int

	DaysToExpiration *int
	Disposition      Disposition
	ContractMonth    string
	Coin             string

	RealizedPL Money
	MarginUsed *Money
}

func (t ClosedTrade) Winning() bool   { return t.RealizedPL.IsPositive() }
func (t ClosedTrade) Losing() bool    { return t.RealizedPL.IsNegative() }
func (t ClosedTrade) Breakeven() bool { return t.RealizedPL.IsZero() }

// OpenPosition contributes only to point-in-time totals, never to
// historical buckets.
type OpenPosition struct {
	ID           string
	UserID       string
	Symbol       string
	AssetType    AssetType
	UnrealizedPL Money
}

// CashFlowKind classifies a cash-affecting event.
type CashFlowKind string

const (
	CashDeposit        CashFlowKind = "deposit"
	CashWithdrawal     CashFlowKind = "withdrawal"
	CashTradeEffect    CashFlowKind = "trade_cash"
	CashFee            CashFlowKind = "fee"
	CashMarginReserve  CashFlowKind = "margin_reserve"
	CashMarginRelease  CashFlowKind = "margin_release"
	CashFuturesRealize CashFlowKind = "futures_realized"
)

func (k CashFlowKind) Valid() bool {
	switch k {
	case CashDeposit, CashWithdrawal, CashTradeEffect, CashFee,
		CashMarginReserve, CashMarginRelease, CashFuturesRealize:
		return true
	}
	return false
}

// CashFlowEvent is one signed cash movement. Net cash flow over a range is
// the signed sum; margin reserves and releases are both included so
// reserved-but-unrealized margin shows as a deduction until released.
type CashFlowEvent struct {
	ID         string
	UserID     string
	Amount     Money
	OccurredAt Date
	Kind       CashFlowKind
}
