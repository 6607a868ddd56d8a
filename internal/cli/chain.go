// Package cli provides the command-line interface for the backtesting application.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spread-trader/internal/chain"
	"spread-trader/internal/models"
	"spread-trader/pkg/utils"
)

// addChainCommands adds option chain commands.
func addChainCommands(rootCmd *cobra.Command, app *App) {
	chainCmd := &cobra.Command{
		Use:   "chain",
		Short: "Option chain snapshot management",
		Long:  "Import option chain CSV snapshots and inspect stored quotes.",
	}

	chainCmd.AddCommand(newChainImportCmd(app))
	chainCmd.AddCommand(newChainShowCmd(app))

	rootCmd.AddCommand(chainCmd)
}

func newChainImportCmd(app *App) *cobra.Command {
	var (
		symbol string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an option chain CSV into SQLite",
		Long: `Import daily option quote snapshots from a CSV file.

The file must carry the columns date, expiration_date, option_type,
strike, bid, ask and delta. Rows with an unknown option type are
rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			quotes, err := chain.Load(file)
			if err != nil {
				output.Error("Failed to load %s: %v", file, err)
				return err
			}

			if app.Store == nil {
				output.Error("SQLite store unavailable")
				return errStoreUnavailable
			}

			if err := app.Store.SaveQuotes(cmd.Context(), symbol, quotes); err != nil {
				output.Error("Import failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol": symbol,
					"quotes": len(quotes),
					"file":   file,
				})
			}

			output.Success("Imported %d quotes for %s", len(quotes), symbol)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", app.Config.Data.Symbol, "underlying symbol")
	cmd.Flags().StringVar(&file, "file", "", "chain CSV file to import")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newChainShowCmd(app *App) *cobra.Command {
	var (
		symbol  string
		date    string
		putOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show stored quotes for a trading day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			day, err := utils.ParseDay(date)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			day = models.Day(day)

			if app.Store == nil {
				output.Error("SQLite store unavailable")
				return errStoreUnavailable
			}

			quotes, err := app.Store.GetQuotes(cmd.Context(), symbol, day, day)
			if err != nil {
				return err
			}

			samedayExpiry := chain.SameDayExpiry(quotes, day)
			if putOnly {
				samedayExpiry = chain.Puts(samedayExpiry)
			}
			chain.SortByStrike(samedayExpiry)

			if output.IsJSON() {
				return output.JSON(samedayExpiry)
			}

			if len(samedayExpiry) == 0 {
				output.Warning("No same-day expiry quotes for %s on %s", symbol, date)
				return nil
			}

			output.Bold("%s %s (same-day expiry)", symbol, date)
			table := NewTable(output, "TYPE", "STRIKE", "BID", "ASK", "DELTA")
			for _, q := range samedayExpiry {
				table.AddRow(
					string(q.Type),
					FormatStrike(q.Strike),
					fmt.Sprintf("%.2f", q.Bid),
					fmt.Sprintf("%.2f", q.Ask),
					FormatDelta(q.Delta),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", app.Config.Data.Symbol, "underlying symbol")
	cmd.Flags().StringVar(&date, "date", "", "trading day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&putOnly, "puts", false, "show puts only")
	cmd.MarkFlagRequired("date")

	return cmd
}
