// Package cli provides the command-line interface for the backtesting application.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spread-trader/internal/backtest"
	"spread-trader/internal/chain"
	"spread-trader/internal/feed"
	"spread-trader/internal/models"
	"spread-trader/internal/store"
	"spread-trader/internal/strategy"
	"spread-trader/pkg/utils"
)

// addBacktestCommands adds backtest commands.
func addBacktestCommands(rootCmd *cobra.Command, app *App) {
	backtestCmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run and review bull put spread backtests",
	}

	backtestCmd.AddCommand(newBacktestRunCmd(app))
	backtestCmd.AddCommand(newBacktestRunsCmd(app))

	rootCmd.AddCommand(backtestCmd)
}

func newBacktestRunCmd(app *App) *cobra.Command {
	var (
		symbol     string
		priceFile  string
		chainFile  string
		startStr   string
		endStr     string
		capital    float64
		rsiMin     float64
		target     float64
		stop       float64
		width      float64
		maxPos     float64
		showTrades bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a backtest over a date range",
		Long: `Run the bull put spread strategy over daily bars and chain snapshots.

Prices come from an intraday CSV (aggregated to daily bars) and option
quotes from a chain CSV. Weekends, market holidays and days without
price data are skipped. Entries require RSI at or above the threshold
with the fast moving average at or above the slow one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			start, err := utils.ParseDay(startStr)
			if err != nil {
				return err
			}
			end, err := utils.ParseDay(endStr)
			if err != nil {
				return err
			}

			intraday, err := feed.LoadCSV(priceFile)
			if err != nil {
				output.Error("Failed to load prices: %v", err)
				return err
			}
			daily := feed.DailyBars(intraday)

			quotes, err := chain.Load(chainFile)
			if err != nil {
				output.Error("Failed to load chain: %v", err)
				return err
			}

			params := strategy.Params{
				EntryRSIThreshold: rsiMin,
				ProfitTargetPct:   target,
				StopLossPct:       stop,
				Width:             width,
				MaxPositionSize:   maxPos,
			}

			engine, err := backtest.New(daily, quotes, app.Logger)
			if err != nil {
				return err
			}

			result, err := engine.Run(cmd.Context(), backtest.Config{
				Start:          start,
				End:            end,
				InitialCapital: capital,
				Params:         params,
			})
			if err != nil {
				output.Error("Backtest failed: %v", err)
				return err
			}

			if save && app.Store != nil {
				runID, err := app.Store.SaveRun(cmd.Context(), &store.RunRecord{
					Symbol:         symbol,
					Start:          start,
					End:            end,
					InitialCapital: capital,
					FinalAccount:   result.FinalAccount,
					TotalReturn:    result.Performance.TotalReturn,
					WinRate:        result.Performance.WinRate,
					TotalTrades:    result.Performance.TotalTrades,
					RSIThreshold:   rsiMin,
					ProfitTarget:   target,
					StopLoss:       stop,
					Width:          width,
					MaxPositionPct: maxPos,
				})
				if err != nil {
					output.Warning("Failed to save run: %v", err)
				} else if err := app.Store.SaveTrades(cmd.Context(), runID, result.Trades); err != nil {
					output.Warning("Failed to save trades: %v", err)
				} else {
					output.Dim("Saved as run #%d", runID)
				}
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			renderResult(output, result, capital, showTrades)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", app.Config.Data.Symbol, "underlying symbol")
	cmd.Flags().StringVar(&priceFile, "prices", "", "intraday price CSV file")
	cmd.Flags().StringVar(&chainFile, "chain", "", "option chain CSV file")
	cmd.Flags().StringVar(&startStr, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&capital, "capital", app.Config.Backtest.InitialCapital, "initial account value")
	cmd.Flags().Float64Var(&rsiMin, "rsi", app.Config.Strategy.EntryRSIThreshold, "entry RSI threshold")
	cmd.Flags().Float64Var(&target, "target", app.Config.Strategy.ProfitTargetPct, "profit target as fraction of max risk")
	cmd.Flags().Float64Var(&stop, "stop", app.Config.Strategy.StopLossPct, "stop loss as multiple of initial credit")
	cmd.Flags().Float64Var(&width, "width", app.Config.Strategy.Width, "distance between short and long strikes")
	cmd.Flags().Float64Var(&maxPos, "max-position", app.Config.Strategy.MaxPositionSize, "max risk per trade as fraction of account")
	cmd.Flags().BoolVar(&showTrades, "trades", false, "list every closed trade")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to SQLite")
	cmd.MarkFlagRequired("prices")
	cmd.MarkFlagRequired("chain")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func renderResult(output *Output, result *models.BacktestResult, capital float64, showTrades bool) {
	perf := result.Performance

	output.Bold("Backtest Result")
	output.Printf("  Initial Capital: %s\n", FormatUSD(capital))
	output.Printf("  Final Account:   %s\n", FormatUSD(result.FinalAccount))
	output.Printf("  Total Return:    %s\n", output.FormatPercentColored(perf.TotalReturn))
	output.Printf("  Trades:          %d\n", perf.TotalTrades)
	if perf.TotalTrades > 0 {
		output.Printf("  Win Rate:        %.1f%%\n", perf.WinRate)
		output.Printf("  Avg Return:      %s per trade\n", FormatPercent(perf.AverageReturn))
	}

	if result.OpenPosition != nil {
		pos := result.OpenPosition
		output.Println()
		output.Warning("Open position at end of run (unrealized):")
		output.Printf("  Entered %s, expires %s, %dx %s/%s credit %s\n",
			FormatDate(pos.EntryDate), FormatDate(pos.ExpiryDate),
			pos.Contracts,
			FormatStrike(pos.ShortLeg.Strike), FormatStrike(pos.LongLeg.Strike),
			FormatUSD(pos.InitialCredit))
	}

	if showTrades && len(result.Trades) > 0 {
		output.Println()
		table := NewTable(output, "ENTRY", "EXIT", "P&L", "RETURN")
		for _, t := range result.Trades {
			table.AddRow(
				FormatDate(t.EntryDate),
				FormatDate(t.ExitDate),
				output.FormatPnL(t.ProfitLoss),
				output.FormatPercentColored(t.ProfitPct*100),
			)
		}
		table.Render()
	}
}

func newBacktestRunsCmd(app *App) *cobra.Command {
	var (
		symbol string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved backtest runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Store == nil {
				output.Error("SQLite store unavailable")
				return errStoreUnavailable
			}

			runs, err := app.Store.GetRuns(cmd.Context(), symbol, limit)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(runs)
			}

			if len(runs) == 0 {
				output.Dim("No saved runs.")
				return nil
			}

			table := NewTable(output, "ID", "SYMBOL", "RANGE", "TRADES", "WIN%", "RETURN")
			for _, r := range runs {
				table.AddRow(
					fmt.Sprintf("%d", r.ID),
					r.Symbol,
					fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")),
					fmt.Sprintf("%d", r.TotalTrades),
					fmt.Sprintf("%.1f", r.WinRate),
					output.FormatPercentColored(r.TotalReturn),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "filter by symbol")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")

	return cmd
}
