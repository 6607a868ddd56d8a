// Package cli provides the command-line interface for the backtesting application.
package cli

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"spread-trader/internal/config"
	"spread-trader/internal/logging"
	"spread-trader/internal/store"
)

// errStoreUnavailable is returned when a command needs SQLite and the
// store failed to initialize.
var errStoreUnavailable = errors.New("sqlite store unavailable")

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize SQLite store
	dataStore, err := store.NewSQLiteStore(cfg.Data.SQLitePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, persistence disabled")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Data.SQLitePath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "spread-trader",
		Short: "Bull put spread backtester for same-day expiry options",
		Long: `Spread Trader backtests a bull put credit spread strategy on historical
equity prices and option chain snapshots.

It fetches intraday prices from Alpha Vantage, annotates daily bars with
RSI and moving averages, selects spreads by delta band and strike width,
and simulates position management with profit target and stop loss exits.

Use 'spread-trader help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/spread-trader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addChainCommands(rootCmd, app)
	addBacktestCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Spread Trader v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Data Configuration")
	output.Printf("  Symbol:          %s\n", cfg.Data.Symbol)
	output.Printf("  Interval:        %s\n", cfg.Data.Interval)
	output.Printf("  CSV Directory:   %s\n", cfg.Data.CSVDir)
	output.Printf("  SQLite Path:     %s\n", cfg.Data.SQLitePath)
	output.Printf("  Fetch Pause:     %ds\n", cfg.Data.FetchPauseS)
	output.Println()

	output.Bold("Strategy Configuration")
	output.Printf("  RSI Threshold:   %.1f\n", cfg.Strategy.EntryRSIThreshold)
	output.Printf("  Profit Target:   %.0f%% of max risk\n", cfg.Strategy.ProfitTargetPct*100)
	output.Printf("  Stop Loss:       %.0f%% of credit\n", cfg.Strategy.StopLossPct*100)
	output.Printf("  Strike Width:    %.1f\n", cfg.Strategy.Width)
	output.Printf("  Max Position:    %.1f%% of account\n", cfg.Strategy.MaxPositionSize*100)
	output.Println()

	output.Bold("Backtest Configuration")
	output.Printf("  Initial Capital: %s\n", FormatUSD(cfg.Backtest.InitialCapital))

	return nil
}
