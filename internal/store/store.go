// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"spread-trader/internal/models"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Intraday bars
	SaveBars(ctx context.Context, symbol, interval string, bars []models.IntradayBar) error
	GetBars(ctx context.Context, symbol, interval string, from, to time.Time) ([]models.IntradayBar, error)
	GetBarsFreshness(ctx context.Context, symbol, interval string) (time.Time, error)

	// Option quotes
	SaveQuotes(ctx context.Context, symbol string, quotes []models.OptionQuote) error
	GetQuotes(ctx context.Context, symbol string, from, to time.Time) ([]models.OptionQuote, error)

	// Backtest runs and trades
	SaveRun(ctx context.Context, run *RunRecord) (int64, error)
	SaveTrades(ctx context.Context, runID int64, trades []models.TradeRecord) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error)
	GetRuns(ctx context.Context, symbol string, limit int) ([]RunRecord, error)

	// Lifecycle
	Close() error
}

// RunRecord captures the parameters and outcome of one backtest run.
type RunRecord struct {
	ID             int64
	Symbol         string
	Start          time.Time
	End            time.Time
	InitialCapital float64
	FinalAccount   float64
	TotalReturn    float64
	WinRate        float64
	TotalTrades    int
	RSIThreshold   float64
	ProfitTarget   float64
	StopLoss       float64
	Width          float64
	MaxPositionPct float64
	CreatedAt      time.Time
}

// TradeFilter represents filters for querying trade records.
type TradeFilter struct {
	RunID     int64
	StartDate time.Time
	EndDate   time.Time
	WinsOnly  bool
	Limit     int
}
