// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"spread-trader/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Intraday bars for historical OHLCV data
	CREATE TABLE IF NOT EXISTS bars (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		interval TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(symbol, interval, timestamp)
	);

	-- Daily option quote snapshots
	CREATE TABLE IF NOT EXISTS option_quotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		quote_date DATE NOT NULL,
		expiration_date DATE NOT NULL,
		option_type TEXT NOT NULL,
		strike REAL NOT NULL,
		bid REAL NOT NULL,
		ask REAL NOT NULL,
		delta REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(symbol, quote_date, expiration_date, option_type, strike)
	);

	-- Backtest runs
	CREATE TABLE IF NOT EXISTS backtest_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		initial_capital REAL NOT NULL,
		final_account REAL NOT NULL,
		total_return REAL NOT NULL,
		win_rate REAL NOT NULL,
		total_trades INTEGER NOT NULL,
		rsi_threshold REAL NOT NULL,
		profit_target REAL NOT NULL,
		stop_loss REAL NOT NULL,
		width REAL NOT NULL,
		max_position_pct REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Closed trades per run
	CREATE TABLE IF NOT EXISTS trade_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		entry_date DATE NOT NULL,
		exit_date DATE NOT NULL,
		profit_loss REAL NOT NULL,
		profit_pct REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES backtest_runs(id)
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_bars_symbol_interval ON bars(symbol, interval);
	CREATE INDEX IF NOT EXISTS idx_bars_timestamp ON bars(timestamp);
	CREATE INDEX IF NOT EXISTS idx_quotes_symbol_date ON option_quotes(symbol, quote_date);
	CREATE INDEX IF NOT EXISTS idx_quotes_expiration ON option_quotes(expiration_date);
	CREATE INDEX IF NOT EXISTS idx_runs_symbol ON backtest_runs(symbol);
	CREATE INDEX IF NOT EXISTS idx_trade_records_run ON trade_records(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Bar Methods
// ============================================================================

// SaveBars saves intraday bars to the database.
func (s *SQLiteStore) SaveBars(ctx context.Context, symbol, interval string, bars []models.IntradayBar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO bars (symbol, interval, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		_, err := stmt.ExecContext(ctx, symbol, interval, b.Timestamp, b.Open, b.High, b.Low, b.Close, b.Volume)
		if err != nil {
			return fmt.Errorf("failed to insert bar: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBars retrieves intraday bars from the database.
func (s *SQLiteStore) GetBars(ctx context.Context, symbol, interval string, from, to time.Time) ([]models.IntradayBar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, open, high, low, close, volume
		FROM bars
		WHERE symbol = ? AND interval = ? AND timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp ASC
	`, symbol, interval, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	var bars []models.IntradayBar
	for rows.Next() {
		b := models.IntradayBar{Symbol: symbol}
		if err := rows.Scan(&b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bars: %w", err)
	}

	return bars, nil
}

// GetBarsFreshness returns the timestamp of the most recent stored bar.
func (s *SQLiteStore) GetBarsFreshness(ctx context.Context, symbol, interval string) (time.Time, error) {
	var timestamp sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(timestamp) FROM bars WHERE symbol = ? AND interval = ?
	`, symbol, interval).Scan(&timestamp)
	if err != nil && err != sql.ErrNoRows {
		return time.Time{}, fmt.Errorf("failed to get bars freshness: %w", err)
	}
	if !timestamp.Valid {
		return time.Time{}, nil
	}
	return timestamp.Time, nil
}

// ============================================================================
// Option Quote Methods
// ============================================================================

// SaveQuotes saves option quote snapshots to the database.
func (s *SQLiteStore) SaveQuotes(ctx context.Context, symbol string, quotes []models.OptionQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO option_quotes (symbol, quote_date, expiration_date, option_type, strike, bid, ask, delta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		_, err := stmt.ExecContext(ctx, symbol, q.Date, q.ExpirationDate, string(q.Type), q.Strike, q.Bid, q.Ask, q.Delta)
		if err != nil {
			return fmt.Errorf("failed to insert option quote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetQuotes retrieves option quotes whose quote date falls in [from, to].
func (s *SQLiteStore) GetQuotes(ctx context.Context, symbol string, from, to time.Time) ([]models.OptionQuote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT quote_date, expiration_date, option_type, strike, bid, ask, delta
		FROM option_quotes
		WHERE symbol = ? AND quote_date >= ? AND quote_date <= ?
		ORDER BY quote_date ASC, expiration_date ASC, strike ASC
	`, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query option quotes: %w", err)
	}
	defer rows.Close()

	var quotes []models.OptionQuote
	for rows.Next() {
		var q models.OptionQuote
		var typ string
		if err := rows.Scan(&q.Date, &q.ExpirationDate, &typ, &q.Strike, &q.Bid, &q.Ask, &q.Delta); err != nil {
			return nil, fmt.Errorf("failed to scan option quote: %w", err)
		}
		q.Type = models.OptionType(typ)
		q.Date = models.Day(q.Date)
		q.ExpirationDate = models.Day(q.ExpirationDate)
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating option quotes: %w", err)
	}

	return quotes, nil
}

// ============================================================================
// Run & Trade Methods
// ============================================================================

// SaveRun persists a backtest run and returns its row id.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO backtest_runs (symbol, start_date, end_date, initial_capital, final_account, total_return, win_rate, total_trades, rsi_threshold, profit_target, stop_loss, width, max_position_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Symbol, run.Start, run.End, run.InitialCapital, run.FinalAccount, run.TotalReturn, run.WinRate, run.TotalTrades, run.RSIThreshold, run.ProfitTarget, run.StopLoss, run.Width, run.MaxPositionPct)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// SaveTrades persists the closed trades of a run.
func (s *SQLiteStore) SaveTrades(ctx context.Context, runID int64, trades []models.TradeRecord) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trade_records (run_id, entry_date, exit_date, profit_loss, profit_pct)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		_, err := stmt.ExecContext(ctx, runID, t.EntryDate, t.ExitDate, t.ProfitLoss, t.ProfitPct)
		if err != nil {
			return fmt.Errorf("failed to insert trade record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrades retrieves trade records from the database.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error) {
	query := "SELECT entry_date, exit_date, profit_loss, profit_pct FROM trade_records WHERE 1=1"
	args := []interface{}{}

	if filter.RunID > 0 {
		query += " AND run_id = ?"
		args = append(args, filter.RunID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND entry_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND exit_date <= ?"
		args = append(args, filter.EndDate)
	}
	if filter.WinsOnly {
		query += " AND profit_loss > 0"
	}

	query += " ORDER BY entry_date ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade records: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		var t models.TradeRecord
		if err := rows.Scan(&t.EntryDate, &t.ExitDate, &t.ProfitLoss, &t.ProfitPct); err != nil {
			return nil, fmt.Errorf("failed to scan trade record: %w", err)
		}
		t.EntryDate = models.Day(t.EntryDate)
		t.ExitDate = models.Day(t.ExitDate)
		trades = append(trades, t)
	}

	return trades, rows.Err()
}

// GetRuns retrieves recent backtest runs, newest first.
func (s *SQLiteStore) GetRuns(ctx context.Context, symbol string, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, symbol, start_date, end_date, initial_capital, final_account, total_return, win_rate, total_trades, rsi_threshold, profit_target, stop_loss, width, max_position_pct, created_at
		FROM backtest_runs WHERE 1=1`
	args := []interface{}{}

	if symbol != "" {
		query += " AND symbol = ?"
		args = append(args, symbol)
	}

	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Symbol, &r.Start, &r.End, &r.InitialCapital, &r.FinalAccount, &r.TotalReturn, &r.WinRate, &r.TotalTrades, &r.RSIThreshold, &r.ProfitTarget, &r.StopLoss, &r.Width, &r.MaxPositionPct, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}
