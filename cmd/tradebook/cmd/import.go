package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import broker CSV exports into the journal",
	Long: `Load position or cash-transaction rows from a CSV export.

Examples:
  tradebook import positions trades.csv -d trades.db
  tradebook import cash transfers.csv -d trades.db`,
}

var importPositionsCmd = &cobra.Command{
	Use:   "positions <file.csv>",
	Short: "Import position rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportPositions,
}

var importCashCmd = &cobra.Command{
	Use:   "cash <file.csv>",
	Short: "Import cash-transaction rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCash,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importPositionsCmd)
	importCmd.AddCommand(importCashCmd)
}

func openStore() (*journal.SQLite, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return store, nil
}

func runImportPositions(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportPositionsCSV(args[0])
	if err != nil {
		return fmt.Errorf("import positions: %w", err)
	}
	fmt.Printf("imported %d position(s)\n", n)
	return nil
}

func runImportCash(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportCashCSV(args[0])
	if err != nil {
		return fmt.Errorf("import cash transactions: %w", err)
	}
	fmt.Printf("imported %d cash transaction(s)\n", n)
	return nil
}
