package journal

import (
	"database/sql"
	"fmt"

	"github.com/rustyeddy/tradebook/record"
)

const positionColumns = `position_id, user_id, symbol, asset_type, strategy_type,
	entry_date, entry_minute, exit_date, exit_price, realized_pl, unrealized_pl,
	margin_used, days_to_expiration, expired, contract_month, coin`

// ListPositions returns raw position rows for a user, optionally narrowed
// by asset type, open/closed status, and exit-date range. Rows come back
// ordered by exit date so callers feeding the engine see chronological
// input; open rows sort first with their NULL exit dates.
func (s *SQLite) ListPositions(userID string, opts ListOptions) ([]record.RawPosition, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE user_id = ?`
	args := []any{userID}

	if opts.Asset != "" {
		query += ` AND asset_type = ?`
		args = append(args, string(opts.Asset))
	}
	switch opts.Status {
	case StatusOpen:
		query += ` AND exit_date IS NULL AND exit_price IS NULL`
	case StatusClosed:
		query += ` AND (exit_date IS NOT NULL OR exit_price IS NOT NULL)`
	}
	if !opts.Range.Start.IsZero() {
		query += ` AND exit_date >= ?`
		args = append(args, opts.Range.Start.Key())
	}
	if !opts.Range.End.IsZero() {
		query += ` AND exit_date <= ?`
		args = append(args, opts.Range.End.Key())
	}
	query += ` ORDER BY exit_date ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	var out []record.RawPosition
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPosition(rows *sql.Rows) (record.RawPosition, error) {
	var (
		p           record.RawPosition
		asset       string
		entryMinute sql.NullInt64
		exitDate    sql.NullString
		exitPrice   sql.NullString
		realized    sql.NullString
		unrealized  sql.NullString
		margin      sql.NullString
		dte         sql.NullInt64
		expired     sql.NullBool
	)
	err := rows.Scan(
		&p.ID, &p.UserID, &p.Symbol, &asset, &p.StrategyType,
		&p.EntryDate, &entryMinute, &exitDate, &exitPrice, &realized,
		&unrealized, &margin, &dte, &expired, &p.ContractMonth, &p.Coin,
	)
	if err != nil {
		return record.RawPosition{}, err
	}

	p.AssetType = record.AssetType(asset)
	if entryMinute.Valid {
		v := int(entryMinute.Int64)
		p.EntryMinute = &v
	}
	if exitDate.Valid {
		p.ExitDate = exitDate.String
	}
	if p.ExitPrice, err = nullMoney(exitPrice); err != nil {
		return record.RawPosition{}, err
	}
	if p.RealizedPL, err = nullMoney(realized); err != nil {
		return record.RawPosition{}, err
	}
	if p.UnrealizedPL, err = nullMoney(unrealized); err != nil {
		return record.RawPosition{}, err
	}
	if p.MarginUsed, err = nullMoney(margin); err != nil {
		return record.RawPosition{}, err
	}
	if dte.Valid {
		v := int(dte.Int64)
		p.DaysToExpiration = &v
	}
	if expired.Valid {
		v := expired.Bool
		p.Expired = &v
	}
	return p, nil
}

// ListCashTransactions returns cash rows for a user in chronological order,
// optionally bounded by an inclusive date range.
func (s *SQLite) ListCashTransactions(userID string, rng record.DateRange) ([]record.RawCashTransaction, error) {
	query := `SELECT transaction_id, user_id, amount, occurred_at, kind
		FROM cash_transactions WHERE user_id = ?`
	args := []any{userID}

	if !rng.Start.IsZero() {
		query += ` AND occurred_at >= ?`
		args = append(args, rng.Start.Key())
	}
	if !rng.End.IsZero() {
		query += ` AND occurred_at <= ?`
		args = append(args, rng.End.Key())
	}
	query += ` ORDER BY occurred_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cash transactions: %w", err)
	}
	defer rows.Close()

	var out []record.RawCashTransaction
	for rows.Next() {
		var (
			c      record.RawCashTransaction
			amount sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.UserID, &amount, &c.OccurredAt, &c.Kind); err != nil {
			return nil, fmt.Errorf("scan cash transaction: %w", err)
		}
		if c.Amount, err = nullMoney(amount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullMoney(v sql.NullString) (*record.Money, error) {
	if !v.Valid {
		return nil, nil
	}
	m, err := record.MoneyFromString(v.String)
	if err != nil {
		return nil, fmt.Errorf("bad money column %q: %w", v.String, err)
	}
	return &m, nil
}
