package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Spread Trader Configuration

[data]
# Underlying symbol to fetch and backtest
symbol = "QQQ"
# Bar interval for intraday fetches: 1min, 5min, 15min, 30min, 60min
interval = "1min"
# Directory for CSV price files
csv_dir = "data"
# Pause between successive provider fetches (free tier rate limit)
fetch_pause_seconds = 15

[strategy]
# RSI level gating entries
entry_rsi_threshold = 40.0
# Exit at this fraction of max profit
profit_target_pct = 0.50
# Exit at this fraction of max loss
stop_loss_pct = 1.5
# Dollar width between short and long put strikes
width_between_strikes = 5.0
# Maximum fraction of account equity at risk per trade
max_position_size = 0.05

[backtest]
initial_capital = 100000.0

[logging]
# debug, info, warn, error
level = "info"
console = true
file = true
`

const credentialsTemplate = `# Spread Trader Credentials
# Keep this file private. The ALPHAVANTAGE_API_KEY environment variable
# overrides the value below.

[alphavantage]
api_key = ""
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	// Credentials are sensitive, restrict permissions.
	return os.WriteFile(path, []byte(credentialsTemplate), 0600)
}
