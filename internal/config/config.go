// Package config provides configuration management for the backtester.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Data        DataConfig     `mapstructure:"data"`
	Strategy    StrategyConfig `mapstructure:"strategy"`
	Backtest    BacktestConfig `mapstructure:"backtest"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	Credentials Credentials    `mapstructure:"-"` // Loaded separately
}

// DataConfig holds data acquisition and storage configuration.
type DataConfig struct {
	Symbol      string `mapstructure:"symbol"`
	Interval    string `mapstructure:"interval"`
	CSVDir      string `mapstructure:"csv_dir"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	FetchPauseS int    `mapstructure:"fetch_pause_seconds"`
}

// StrategyConfig holds the default bull put spread parameters.
type StrategyConfig struct {
	EntryRSIThreshold float64 `mapstructure:"entry_rsi_threshold"`
	ProfitTargetPct   float64 `mapstructure:"profit_target_pct"`
	StopLossPct       float64 `mapstructure:"stop_loss_pct"`
	Width             float64 `mapstructure:"width_between_strikes"`
	MaxPositionSize   float64 `mapstructure:"max_position_size"`
}

// BacktestConfig holds default backtest run parameters.
type BacktestConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// Credentials holds API credentials. The quote-provider key is always
// injected through configuration or environment, never embedded in code.
type Credentials struct {
	AlphaVantage AlphaVantageCredentials `mapstructure:"alphavantage"`
}

// AlphaVantageCredentials holds the Alpha Vantage API key.
type AlphaVantageCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/spread-trader"
	}
	return filepath.Join(home, ".config", "spread-trader")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return err
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.symbol", "QQQ")
	v.SetDefault("data.interval", "1min")
	v.SetDefault("data.csv_dir", "data")
	v.SetDefault("data.sqlite_path", filepath.Join(DefaultConfigDir(), "spread-trader.db"))
	v.SetDefault("data.fetch_pause_seconds", 15)

	v.SetDefault("strategy.entry_rsi_threshold", 40.0)
	v.SetDefault("strategy.profit_target_pct", 0.50)
	v.SetDefault("strategy.stop_loss_pct", 1.5)
	v.SetDefault("strategy.width_between_strikes", 5.0)
	v.SetDefault("strategy.max_position_size", 0.05)

	v.SetDefault("backtest.initial_capital", 100000.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.Credentials.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("SPREAD_TRADER_DATA_DIR"); v != "" {
		cfg.Data.CSVDir = v
	}
	if v := os.Getenv("SPREAD_TRADER_SQLITE_PATH"); v != "" {
		cfg.Data.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Strategy.Width <= 0 {
		return fmt.Errorf("width_between_strikes must be positive, got %v", c.Strategy.Width)
	}
	if c.Strategy.MaxPositionSize <= 0 || c.Strategy.MaxPositionSize > 1 {
		return fmt.Errorf("max_position_size must be in (0, 1], got %v", c.Strategy.MaxPositionSize)
	}
	if c.Strategy.ProfitTargetPct <= 0 {
		return fmt.Errorf("profit_target_pct must be positive, got %v", c.Strategy.ProfitTargetPct)
	}
	if c.Strategy.StopLossPct <= 0 {
		return fmt.Errorf("stop_loss_pct must be positive, got %v", c.Strategy.StopLossPct)
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive, got %v", c.Backtest.InitialCapital)
	}
	if c.Data.FetchPauseS < 0 {
		return fmt.Errorf("fetch_pause_seconds must be non-negative, got %d", c.Data.FetchPauseS)
	}
	return nil
}
