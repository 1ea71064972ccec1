package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/metrics"
	"github.com/rustyeddy/tradebook/record"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A personal trading journal with performance analytics",
	Long: `Tradebook keeps a journal of stock, option, crypto, and futures
positions in SQLite and derives the performance views a trading dashboard
shows:

  - Win rate, profit factor, realized and unrealized P&L
  - P&L, ROI, and drawdown over time
  - Day-of-week, entry-time, and days-to-expiration buckets
  - Per-symbol, per-strategy, per-contract-month, and per-coin rollups
  - Margin efficiency, expiration outcomes, and net cash flow`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile   string
	dbPath    string
	userID    string
	assetFlag string
	fromFlag  string
	toFlag    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user ID to report on")
}

// loadConfig resolves the config file and --db override.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}
	return cfg, nil
}

// buildQuery assembles the engine query from the shared flags. Today comes
// from the wall clock here, at the outermost layer; the engine itself never
// reads a clock.
func buildQuery() (metrics.Query, error) {
	if userID == "" {
		return metrics.Query{}, fmt.Errorf("--user is required")
	}

	q := metrics.Query{
		UserID: userID,
		Asset:  record.AssetType(assetFlag),
		Today:  record.DateOf(time.Now()),
	}
	if fromFlag != "" {
		start, err := record.ParseDate(fromFlag)
		if err != nil {
			return metrics.Query{}, fmt.Errorf("--from: %w", err)
		}
		q.Range.Start = start
	}
	if toFlag != "" {
		end, err := record.ParseDate(toFlag)
		if err != nil {
			return metrics.Query{}, fmt.Errorf("--to: %w", err)
		}
		q.Range.End = end
	}
	return q, nil
}

// collectDataset opens the journal, fetches the raw rows, and normalizes
// them once for whatever views the command runs.
func collectDataset(cfg *config.Config, q metrics.Query, log zerolog.Logger) (metrics.Dataset, error) {
	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return metrics.Dataset{}, fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	positions, err := store.ListPositions(q.UserID, journal.ListOptions{})
	if err != nil {
		return metrics.Dataset{}, fmt.Errorf("query positions: %w", err)
	}
	cash, err := store.ListCashTransactions(q.UserID, record.DateRange{})
	if err != nil {
		return metrics.Dataset{}, fmt.Errorf("query cash transactions: %w", err)
	}

	return metrics.Collect(q, positions, cash, log), nil
}
