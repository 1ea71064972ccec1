package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradebook/record"
)

type SQLite struct {
	db *sql.DB
}

var _ Repository = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) InsertPosition(p record.RawPosition) error {
	_, err := s.db.Exec(`
		INSERT INTO positions
		(position_id, user_id, symbol, asset_type, strategy_type, entry_date, entry_minute,
		 exit_date, exit_price, realized_pl, unrealized_pl, margin_used,
		 days_to_expiration, expired, contract_month, coin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Symbol, string(p.AssetType), p.StrategyType,
		p.EntryDate, intOrNull(p.EntryMinute),
		strOrNull(p.ExitDate), moneyOrNull(p.ExitPrice), moneyOrNull(p.RealizedPL),
		moneyOrNull(p.UnrealizedPL), moneyOrNull(p.MarginUsed),
		intOrNull(p.DaysToExpiration), boolOrNull(p.Expired),
		p.ContractMonth, p.Coin,
	)
	return err
}

func (s *SQLite) InsertCashTransaction(c record.RawCashTransaction) error {
	_, err := s.db.Exec(`
		INSERT INTO cash_transactions
		(transaction_id, user_id, amount, occurred_at, kind)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, moneyOrNull(c.Amount), c.OccurredAt, c.Kind,
	)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func strOrNull(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func intOrNull(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolOrNull(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func moneyOrNull(v *record.Money) any {
	if v == nil {
		return nil
	}
	return v.String()
}
