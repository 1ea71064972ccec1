// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rustyeddy/tradebook/pkg/id"
	"github.com/rustyeddy/tradebook/record"
)

// ImportPositionsCSV loads broker-exported position rows into the store.
// Expected header:
//
//	user_id,symbol,asset_type,strategy_type,entry_date,entry_minute,
//	exit_date,exit_price,realized_pl,unrealized_pl,margin_used,
//	days_to_expiration,expired,contract_month,coin
//
// Empty cells stay NULL. Rows get fresh ULIDs; validation happens later in
// the normalizer, so a dirty export still imports and surfaces as skip
// diagnostics instead of failing the whole file.
func (s *SQLite) ImportPositionsCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"user_id", "symbol", "asset_type", "entry_date"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("csv missing %q column", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read csv row: %w", err)
		}

		p := record.RawPosition{
			ID:            id.New(),
			UserID:        cell(row, "user_id"),
			Symbol:        cell(row, "symbol"),
			AssetType:     record.AssetType(cell(row, "asset_type")),
			StrategyType:  cell(row, "strategy_type"),
			EntryDate:     cell(row, "entry_date"),
			ExitDate:      cell(row, "exit_date"),
			ContractMonth: cell(row, "contract_month"),
			Coin:          cell(row, "coin"),
		}
		if p.EntryMinute, err = csvInt(cell(row, "entry_minute")); err != nil {
			return count, fmt.Errorf("row %d entry_minute: %w", count+1, err)
		}
		if p.ExitPrice, err = csvMoney(cell(row, "exit_price")); err != nil {
			return count, fmt.Errorf("row %d exit_price: %w", count+1, err)
		}
		if p.RealizedPL, err = csvMoney(cell(row, "realized_pl")); err != nil {
			return count, fmt.Errorf("row %d realized_pl: %w", count+1, err)
		}
		if p.UnrealizedPL, err = csvMoney(cell(row, "unrealized_pl")); err != nil {
			return count, fmt.Errorf("row %d unrealized_pl: %w", count+1, err)
		}
		if p.MarginUsed, err = csvMoney(cell(row, "margin_used")); err != nil {
			return count, fmt.Errorf("row %d margin_used: %w", count+1, err)
		}
		if p.DaysToExpiration, err = csvInt(cell(row, "days_to_expiration")); err != nil {
			return count, fmt.Errorf("row %d days_to_expiration: %w", count+1, err)
		}
		if p.Expired, err = csvBool(cell(row, "expired")); err != nil {
			return count, fmt.Errorf("row %d expired: %w", count+1, err)
		}

		if err := s.InsertPosition(p); err != nil {
			return count, fmt.Errorf("insert position: %w", err)
		}
		count++
	}
	return count, nil
}

// ImportCashCSV loads cash-transaction rows. Expected header:
//
//	user_id,amount,occurred_at,kind
func (s *SQLite) ImportCashCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"user_id", "amount", "occurred_at", "kind"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("csv missing %q column", required)
		}
	}

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read csv row: %w", err)
		}

		c := record.RawCashTransaction{
			ID:         id.New(),
			UserID:     row[col["user_id"]],
			OccurredAt: row[col["occurred_at"]],
			Kind:       row[col["kind"]],
		}
		if c.Amount, err = csvMoney(row[col["amount"]]); err != nil {
			return count, fmt.Errorf("row %d amount: %w", count+1, err)
		}

		if err := s.InsertCashTransaction(c); err != nil {
			return count, fmt.Errorf("insert cash transaction: %w", err)
		}
		count++
	}
	return count, nil
}

func csvInt(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func csvBool(v string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func csvMoney(v string) (*record.Money, error) {
	if v == "" {
		return nil, nil
	}
	m, err := record.MoneyFromString(v)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
