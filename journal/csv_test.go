package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/record"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportPositionsCSV(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	path := writeCSV(t, `user_id,symbol,asset_type,strategy_type,entry_date,entry_minute,exit_date,exit_price,realized_pl,unrealized_pl,margin_used,days_to_expiration,expired,contract_month,coin
u1,SPY,option,vertical,2024-01-05,585,2024-01-10,1.50,125.25,,400,7,false,,
u1,AAPL,stock,,2024-01-08,,,,,-3.50,,,,,
u1,ES,futures,,2024-01-03,,2024-01-04,,80,,1200,,,2024-03,
`)

	n, err := s.ImportPositionsCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows, err := s.ListPositions("u1", ListOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, p := range rows {
		assert.NotEmpty(t, p.ID, "imported rows get ULIDs")
	}

	closed, err := s.ListPositions("u1", ListOptions{Status: StatusClosed})
	require.NoError(t, err)
	assert.Len(t, closed, 2)

	futures, err := s.ListPositions("u1", ListOptions{Asset: record.AssetFutures})
	require.NoError(t, err)
	require.Len(t, futures, 1)
	assert.Equal(t, "2024-03", futures[0].ContractMonth)
	require.NotNil(t, futures[0].MarginUsed)
	assert.True(t, futures[0].MarginUsed.Equal(decimal.NewFromInt(1200)))
}

func TestImportPositionsCSVMissingColumn(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	path := writeCSV(t, "user_id,symbol\nu1,SPY\n")

	_, err := s.ImportPositionsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset_type")
}

func TestImportCashCSV(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	path := writeCSV(t, `user_id,amount,occurred_at,kind
u1,1000,2024-01-02,deposit
u1,-10,2024-01-03,fee
`)

	n, err := s.ImportCashCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := s.ListCashTransactions("u1", record.DateRange{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestImportCSVBadMoney(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	path := writeCSV(t, `user_id,symbol,asset_type,entry_date,realized_pl
u1,SPY,stock,2024-01-05,not-money
`)

	_, err := s.ImportPositionsCSV(path)
	assert.Error(t, err)
}
