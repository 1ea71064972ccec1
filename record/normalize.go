package record

import (
	"github.com/rs/zerolog"
)

// RawPosition is a position row as the repository returns it: the superset
// of fields across stock, option, crypto, and futures records, before any
// invariant has been checked. String dates are "YYYY-MM-DD"; optional
// fields are pointers so absent and zero stay distinguishable.
type RawPosition struct {
	ID           string
	UserID       string
	Symbol       string
	AssetType    AssetType
	StrategyType string

	EntryDate   string
	EntryMinute *int

	ExitDate  string
	ExitPrice *Money

	RealizedPL   *Money
	UnrealizedPL *Money
	MarginUsed   *Money

	DaysToExpiration *int
	Expired          *bool

	ContractMonth string
	Coin          string
}

// RawCashTransaction is a cash-transaction row before validation.
type RawCashTransaction struct {
	ID         string
	UserID     string
	Amount     *Money
	OccurredAt string
	Kind       string
}

// Skips counts rows rejected during normalization. Bad rows are skipped and
// surfaced here rather than thrown, so one row can never blank out a whole
// dashboard panel.
type Skips struct {
	MissingRealizedPL int
	BadDate           int
	BadCashRow        int
}

func (s Skips) Total() int {
	return s.MissingRealizedPL + s.BadDate + s.BadCashRow
}

func (s *Skips) add(o Skips) {
	s.MissingRealizedPL += o.MissingRealizedPL
	s.BadDate += o.BadDate
	s.BadCashRow += o.BadCashRow
}

// Normalize maps raw position rows into closed trades and open positions.
// A row missing both exit price and exit date is open. A row with an exit
// date but no realized P&L is a data-integrity error: it is skipped with a
// logged warning, never silently zeroed. Asset-specific fields are copied
// through untouched; inapplicable ones stay nil.
func Normalize(raws []RawPosition, log zerolog.Logger) ([]ClosedTrade, []OpenPosition, Skips) {
	var (
		trades []ClosedTrade
		opens  []OpenPosition
		skips  Skips
	)
	for _, raw := range raws {
		trade, open, s, ok := normalizeOne(raw, log)
		skips.add(s)
		if !ok {
			continue
		}
		if open != nil {
			opens = append(opens, *open)
			continue
		}
		trades = append(trades, *trade)
	}
	return trades, opens, skips
}

func normalizeOne(raw RawPosition, log zerolog.Logger) (*ClosedTrade, *OpenPosition, Skips, bool) {
	if raw.ExitDate == "" && raw.ExitPrice == nil {
		open := OpenPosition{
			ID:        raw.ID,
			UserID:    raw.UserID,
			Symbol:    raw.Symbol,
			AssetType: raw.AssetType,
		}
		if raw.UnrealizedPL != nil {
			open.UnrealizedPL = *raw.UnrealizedPL
		}
		return nil, &open, Skips{}, true
	}

	if raw.RealizedPL == nil {
		log.Warn().
			Str("position", raw.ID).
			Str("symbol", raw.Symbol).
			Msg("closed position has no realized P&L, skipping")
		return nil, nil, Skips{MissingRealizedPL: 1}, false
	}

	entry, err := ParseDate(raw.EntryDate)
	if err != nil {
		log.Warn().Str("position", raw.ID).Err(err).Msg("bad entry date, skipping")
		return nil, nil, Skips{BadDate: 1}, false
	}
	exit, err := ParseDate(raw.ExitDate)
	if err != nil {
		log.Warn().Str("position", raw.ID).Err(err).Msg("bad exit date, skipping")
		return nil, nil, Skips{BadDate: 1}, false
	}
	if exit.Before(entry) {
		log.Warn().Str("position", raw.ID).
			Str("entry", entry.Key()).Str("exit", exit.Key()).
			Msg("exit precedes entry, skipping")
		return nil, nil, Skips{BadDate: 1}, false
	}

	trade := ClosedTrade{
		ID:            raw.ID,
		UserID:        raw.UserID,
		Symbol:        raw.Symbol,
		AssetType:     raw.AssetType,
		StrategyType:  raw.StrategyType,
		EntryDate:     entry,
		ExitDate:      exit,
		EntryMinute:   -1,
		RealizedPL:    *raw.RealizedPL,
		MarginUsed:    raw.MarginUsed,
		ContractMonth: raw.ContractMonth,
		Coin:          raw.Coin,
	}
	if raw.EntryMinute != nil {
		trade.EntryMinute = *raw.EntryMinute
	}
	if raw.DaysToExpiration != nil {
		dte := *raw.DaysToExpiration
		trade.DaysToExpiration = &dte
	}
	if raw.Expired != nil {
		if *raw.Expired {
			trade.Disposition = DispositionExpired
		} else {
			trade.Disposition = DispositionClosed
		}
	}
	return &trade, nil, Skips{}, true
}

// NormalizeCash maps raw cash-transaction rows into cash-flow events,
// skipping rows with a missing amount, an unknown kind, or an unparseable
// date.
func NormalizeCash(raws []RawCashTransaction, log zerolog.Logger) ([]CashFlowEvent, Skips) {
	var (
		events []CashFlowEvent
		skips  Skips
	)
	for _, raw := range raws {
		kind := CashFlowKind(raw.Kind)
		if raw.Amount == nil || !kind.Valid() {
			log.Warn().Str("transaction", raw.ID).Str("kind", raw.Kind).
				Msg("malformed cash transaction, skipping")
			skips.BadCashRow++
			continue
		}
		at, err := ParseDate(raw.OccurredAt)
		if err != nil {
			log.Warn().Str("transaction", raw.ID).Err(err).
				Msg("bad cash transaction date, skipping")
			skips.BadCashRow++
			continue
		}
		events = append(events, CashFlowEvent{
			ID:         raw.ID,
			UserID:     raw.UserID,
			Amount:     *raw.Amount,
			OccurredAt: at,
			Kind:       kind,
		})
	}
	return events, skips
}
