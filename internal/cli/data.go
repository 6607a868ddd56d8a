// Package cli provides the command-line interface for the backtesting application.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"spread-trader/internal/feed"
	"spread-trader/internal/models"
)

// addDataCommands adds price data commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Price data acquisition and analysis",
		Long:  "Fetch intraday prices from Alpha Vantage and analyze stored series.",
	}

	dataCmd.AddCommand(newDataFetchCmd(app))
	dataCmd.AddCommand(newDataAnalyzeCmd(app))

	rootCmd.AddCommand(dataCmd)
}

func newDataFetchCmd(app *App) *cobra.Command {
	var (
		symbol   string
		interval string
		months   int
		full     bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch intraday bars from Alpha Vantage",
		Long: `Fetch intraday bars for a symbol and persist them to CSV and SQLite.

A pause is applied between consecutive requests to stay inside the
provider rate limit. A failed fetch aborts the command; partial data
from earlier requests is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Config.Credentials.AlphaVantage.APIKey == "" {
				output.Error("No Alpha Vantage API key configured.")
				output.Dim("Set alphavantage.api_key in credentials.toml or ALPHAVANTAGE_API_KEY.")
				return fmt.Errorf("missing API key")
			}

			client := feed.NewClient(feed.ClientConfig{
				APIKey: app.Config.Credentials.AlphaVantage.APIKey,
				Pause:  time.Duration(app.Config.Data.FetchPauseS) * time.Second,
			}, app.Logger)

			size := feed.OutputCompact
			if full {
				size = feed.OutputFull
			}

			ctx := cmd.Context()

			var err error
			var result []models.IntradayBar
			if months > 1 {
				result, err = client.FetchMonths(ctx, symbol, interval, months)
			} else {
				result, err = client.FetchIntraday(ctx, symbol, interval, size)
			}
			if err != nil {
				output.Error("Fetch failed: %v", err)
				return err
			}

			if len(result) == 0 {
				output.Warning("No bars returned for %s", symbol)
				return nil
			}

			path, err := feed.SaveCSV(result, symbol, interval, app.Config.Data.CSVDir, time.Now())
			if err != nil {
				return err
			}

			if app.Store != nil {
				if err := app.Store.SaveBars(ctx, symbol, interval, result); err != nil {
					output.Warning("SQLite persist failed: %v", err)
				}
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol": symbol,
					"bars":   len(result),
					"from":   result[0].Timestamp,
					"to":     result[len(result)-1].Timestamp,
					"file":   path,
				})
			}

			output.Success("Fetched %d bars for %s", len(result), symbol)
			output.Printf("  Range: %s to %s\n",
				result[0].Timestamp.Format("2006-01-02 15:04"),
				result[len(result)-1].Timestamp.Format("2006-01-02 15:04"))
			output.Printf("  Saved: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", app.Config.Data.Symbol, "ticker symbol")
	cmd.Flags().StringVar(&interval, "interval", app.Config.Data.Interval, "bar interval (1min, 5min, 15min, 30min, 60min)")
	cmd.Flags().IntVar(&months, "months", 1, "number of monthly slices to fetch")
	cmd.Flags().BoolVar(&full, "full", false, "request the full series instead of the compact tail")

	return cmd
}

func newDataAnalyzeCmd(app *App) *cobra.Command {
	var (
		symbol string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize a stored intraday series",
		Long:  "Aggregate an intraday CSV into daily bars and report return and volatility statistics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			bars, err := feed.LoadCSV(file)
			if err != nil {
				output.Error("Failed to load %s: %v", file, err)
				return err
			}

			days := feed.DailyBars(bars)
			stats, err := feed.ComputeStats(symbol, days)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("%s Daily Summary", stats.Symbol)
			output.Printf("  Trading Days:    %d (%s to %s)\n", stats.Days, FormatDate(stats.Start), FormatDate(stats.End))
			output.Printf("  First Close:     %.2f\n", stats.FirstClose)
			output.Printf("  Last Close:      %.2f\n", stats.LastClose)
			output.Printf("  Period Return:   %s\n", output.FormatPercentColored(stats.PeriodReturn))
			output.Printf("  Mean Daily Ret:  %s\n", FormatPercent(stats.MeanDailyRet))
			output.Printf("  Daily Vol:       %.2f%%\n", stats.DailyVol)
			output.Printf("  Annualized Vol:  %.2f%%\n", stats.AnnualizedVol)
			output.Printf("  Close Range:     %.2f to %.2f\n", stats.LowestClose, stats.HighestClose)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", app.Config.Data.Symbol, "ticker symbol")
	cmd.Flags().StringVar(&file, "file", "", "intraday CSV file to analyze")
	cmd.MarkFlagRequired("file")

	return cmd
}
