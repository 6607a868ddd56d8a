package models

import "time"

// ContractMultiplier is the share count per option contract.
const ContractMultiplier = 100

// SpreadCandidate is a priced bull put spread that passed selection and is
// ready to open. It is transient: produced by the selector, consumed by the
// driver to create a Position.
type SpreadCandidate struct {
	ShortLeg  OptionQuote
	LongLeg   OptionQuote
	Contracts int
	NetCredit float64 // per share: short bid - long ask
	MaxRisk   float64 // dollars across all contracts
	MaxProfit float64 // dollars across all contracts
}

// Width returns the strike distance between the short and long legs.
func (c SpreadCandidate) Width() float64 {
	return c.ShortLeg.Strike - c.LongLeg.Strike
}

// Position is an open bull put spread. At most one position exists at a
// time; it is created from an accepted SpreadCandidate and removed on close.
type Position struct {
	EntryDate     time.Time
	ExpiryDate    time.Time
	ShortLeg      OptionQuote
	LongLeg       OptionQuote
	Contracts     int
	InitialCredit float64 // dollars collected across all contracts
	MaxRisk       float64 // dollars across all contracts
}

// TradeRecord is an append-only record of a closed position.
type TradeRecord struct {
	EntryDate  time.Time
	ExitDate   time.Time
	ProfitLoss float64
	ProfitPct  float64 // realized value as a fraction of max risk
}

// Win reports whether the trade closed profitably.
func (t TradeRecord) Win() bool {
	return t.ProfitLoss > 0
}

// EventAction labels a per-day event in the backtest log.
type EventAction string

const (
	ActionEntry EventAction = "ENTRY"
	ActionExit  EventAction = "EXIT"
)

// DayEvent records a state change on a simulated trading day.
type DayEvent struct {
	Date         time.Time
	Action       EventAction
	AccountValue float64
	Detail       string
}

// Performance summarizes a completed backtest run.
type Performance struct {
	TotalReturn   float64 // percent on initial capital
	WinRate       float64 // percent of closed trades
	AverageReturn float64 // mean profit pct across trades, in percent
	TotalTrades   int
}

// BacktestResult is produced once, at the end of a run.
type BacktestResult struct {
	Events       []DayEvent
	Trades       []TradeRecord
	Performance  Performance
	FinalAccount float64

	// OpenPosition is a position still open when the run ended. It is
	// reported as-is, never marked to market or force-closed, and its
	// value is excluded from Performance.
	OpenPosition *Position
}
