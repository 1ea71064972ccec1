package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/metrics"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Derive performance views from the journal",
	Long: `Compute a performance view over the journaled records.

Subcommands:
  summary    - headline win rate, P&L, and profit factor
  symbols    - per-symbol rollup
  strategies - per-strategy rollup with profit-on-risk
  weekdays   - P&L bucketed by exit weekday
  dte        - option P&L bucketed by days to expiration
  entrytime  - P&L bucketed by intraday entry window
  months     - futures P&L by contract month
  coins      - crypto P&L by coin
  margin     - futures margin efficiency per symbol
  expiration - expired vs manually closed option outcomes
  cashflow   - net cash flow over the range
  pl         - cumulative P&L series
  roi        - ROI series
  drawdown   - drawdown series
  daily      - per-day P&L for the last N days

Examples:
  tradebook report summary -d trades.db -u rusty
  tradebook report symbols -u rusty --asset stock --from 2024-01-01 --to 2024-06-30
  tradebook report daily -u rusty --days 30`,
}

var daysFlag int

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.PersistentFlags().StringVarP(&assetFlag, "asset", "a", "", "asset type filter (stock|option|crypto|futures)")
	reportCmd.PersistentFlags().StringVar(&fromFlag, "from", "", "range start (YYYY-MM-DD), inclusive")
	reportCmd.PersistentFlags().StringVar(&toFlag, "to", "", "range end (YYYY-MM-DD), inclusive")

	reportCmd.AddCommand(
		viewCmd("summary", "Headline performance summary", runSummary),
		viewCmd("symbols", "Per-symbol performance", runSymbols),
		viewCmd("strategies", "Per-strategy performance", runStrategies),
		viewCmd("weekdays", "Performance by exit weekday", runWeekdays),
		viewCmd("dte", "Performance by days to expiration", runDTE),
		viewCmd("entrytime", "Performance by entry-time window", runEntryTime),
		viewCmd("months", "Performance by futures contract month", runMonths),
		viewCmd("coins", "Performance by coin", runCoins),
		viewCmd("margin", "Margin efficiency per futures symbol", runMargin),
		viewCmd("expiration", "Expired vs manually closed outcomes", runExpiration),
		viewCmd("cashflow", "Net cash flow", runCashFlow),
		viewCmd("pl", "Cumulative P&L series", runPL),
		viewCmd("roi", "ROI series", runROI),
		viewCmd("drawdown", "Drawdown series", runDrawdown),
	)

	dailyCmd := viewCmd("daily", "Per-day P&L for the last N days", runDaily)
	dailyCmd.Flags().IntVar(&daysFlag, "days", 7, "number of days in the window")
	reportCmd.AddCommand(dailyCmd)
}

// viewCmd wraps a render function with the shared config/query/dataset
// plumbing every view needs.
func viewCmd(use, short string, render func(metrics.Dataset) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			q, err := buildQuery()
			if err != nil {
				return err
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			ds, err := collectDataset(cfg, q, log)
			if err != nil {
				return err
			}
			if err := render(ds); err != nil {
				return err
			}
			if n := ds.Skipped(); n > 0 {
				fmt.Printf("\n%d malformed record(s) skipped\n", n)
			}
			return nil
		},
	}
}

func printPerf(label string, p metrics.Performance) {
	fmt.Printf("%-16s %6d trades  %3dW/%3dL/%3dB  win %6.2f%%  P&L %12s\n",
		label, p.TotalTrades, p.WinningTrades, p.LosingTrades, p.BreakevenTrades,
		p.WinRate, p.PL.StringFixed(2))
}

func runSummary(ds metrics.Dataset) error {
	sum := metrics.Summary(ds)
	printPerf("all trades", sum.Performance)
	fmt.Printf("unrealized P&L   %s\n", sum.UnrealizedPL.StringFixed(2))
	if sum.ProfitFactor != nil {
		fmt.Printf("profit factor    %.2f\n", *sum.ProfitFactor)
	} else {
		fmt.Println("profit factor    n/a (no losing trades)")
	}
	return nil
}

func runSymbols(ds metrics.Dataset) error {
	for _, row := range metrics.BySymbol(ds).Symbols {
		printPerf(row.Symbol, row.Performance)
	}
	return nil
}

func runStrategies(ds metrics.Dataset) error {
	for _, row := range metrics.ByStrategy(ds).Strategies {
		printPerf(row.Strategy, row.Performance)
		if row.ProfitOnRisk != nil {
			fmt.Printf("%-16s profit on risk %.2f\n", "", *row.ProfitOnRisk)
		}
	}
	return nil
}

func runWeekdays(ds metrics.Dataset) error {
	for _, row := range metrics.ByDayOfWeek(ds).Days {
		printPerf(row.Day, row.Performance)
	}
	return nil
}

func runDTE(ds metrics.Dataset) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	report := metrics.ByDTE(ds, cfg.DTETable())
	for _, row := range report.Buckets {
		printPerf(row.Bucket+" DTE", row.Performance)
	}
	if report.SkippedNegativeDTE > 0 {
		fmt.Printf("%d trade(s) past expiration excluded\n", report.SkippedNegativeDTE)
	}
	return nil
}

func runEntryTime(ds metrics.Dataset) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	report := metrics.ByEntryTime(ds, cfg.EntryTimeTable())
	for _, row := range report.Buckets {
		printPerf(row.Bucket, row.Performance)
	}
	if report.Unknown.TotalTrades > 0 {
		printPerf("(no entry time)", report.Unknown.Performance)
	}
	return nil
}

func runMonths(ds metrics.Dataset) error {
	for _, row := range metrics.ByContractMonth(ds).Months {
		printPerf(row.ContractMonth, row.Performance)
	}
	return nil
}

func runCoins(ds metrics.Dataset) error {
	for _, row := range metrics.ByCoin(ds).Coins {
		printPerf(row.Coin, row.Performance)
	}
	return nil
}

func runMargin(ds metrics.Dataset) error {
	for _, row := range metrics.ByMarginEfficiency(ds).Symbols {
		eff := "n/a"
		if row.Efficiency != nil {
			eff = fmt.Sprintf("%.4f", *row.Efficiency)
		}
		fmt.Printf("%-8s P&L %12s  margin %12s  efficiency %s\n",
			row.Symbol, row.PL.StringFixed(2), row.MarginUsed.StringFixed(2), eff)
	}
	return nil
}

func runExpiration(ds metrics.Dataset) error {
	report := metrics.ByExpirationStatus(ds)
	printPerf("expired", report.Expired)
	printPerf("closed manually", report.Closed)
	return nil
}

func runCashFlow(ds metrics.Dataset) error {
	flow := metrics.CashFlow(ds)
	fmt.Printf("net cash flow %s\n", flow.Total.StringFixed(2))
	return nil
}

func runPL(ds metrics.Dataset) error {
	report := metrics.PLOverTime(ds)
	for _, p := range report.Points {
		fmt.Printf("%s  day %12s  cumulative %12s\n",
			p.Date.Key(), p.PL.StringFixed(2), p.CumulativePL.StringFixed(2))
	}
	fmt.Printf("unrealized P&L %s\n", report.UnrealizedPL.StringFixed(2))
	return nil
}

func runROI(ds metrics.Dataset) error {
	for _, p := range metrics.ROIOverTime(ds).Points {
		fmt.Printf("%s  value %12s  contributed %12s  roi %7.2f%%\n",
			p.Date.Key(), p.PortfolioValue.StringFixed(2), p.NetCashFlow.StringFixed(2), p.ROI)
	}
	return nil
}

func runDrawdown(ds metrics.Dataset) error {
	for _, p := range metrics.DrawdownOverTime(ds).Points {
		fmt.Printf("%s  peak %12s  current %12s  drawdown %6.2f%%\n",
			p.Date.Key(), p.Peak.StringFixed(2), p.Current.StringFixed(2), p.Drawdown)
	}
	return nil
}

func runDaily(ds metrics.Dataset) error {
	for _, p := range metrics.DailyPL(ds, daysFlag).Points {
		fmt.Printf("%s  %12s\n", p.Date.Key(), p.PL.StringFixed(2))
	}
	return nil
}
