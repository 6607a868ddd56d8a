// Package backtest drives the day-by-day simulation of the bull put spread
// strategy over historical price and options-chain data.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"spread-trader/internal/chain"
	"spread-trader/internal/indicators"
	"spread-trader/internal/logging"
	"spread-trader/internal/models"
	"spread-trader/internal/strategy"
)

// Exit reasons recorded on close events.
const (
	ExitProfitTarget = "profit_target"
	ExitStopLoss     = "stop_loss"
	ExitExpiry       = "expiry"
)

// Config describes a backtest run.
type Config struct {
	Start          time.Time
	End            time.Time
	InitialCapital float64
	Params         strategy.Params
}

// Validate checks the run configuration.
func (c Config) Validate() error {
	if c.Start.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if c.End.IsZero() {
		return fmt.Errorf("end date is required")
	}
	if c.End.Before(c.Start) {
		return fmt.Errorf("end date must not precede start date")
	}
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive")
	}
	return c.Params.Validate()
}

// Engine replays the strategy over a fixed dataset. The price series is
// annotated with indicators once at construction and treated as immutable;
// the engine owns no other state, so a single Engine can serve many runs.
type Engine struct {
	annotated []models.PriceBar
	chainData []models.OptionQuote
	logger    zerolog.Logger
}

// New creates an Engine over a raw daily price series and an options-chain
// dataset.
func New(priceData []models.PriceBar, chainData []models.OptionQuote, logger zerolog.Logger) (*Engine, error) {
	annotated, err := indicators.NewEngine().Annotate(priceData)
	if err != nil {
		return nil, fmt.Errorf("annotating price series: %w", err)
	}
	return &Engine{
		annotated: annotated,
		chainData: chainData,
		logger:    logger,
	}, nil
}

// runState is the mutable per-run simulation state. The engine exclusively
// owns the account value and the (at most one) open position.
type runState struct {
	account float64
	open    *models.Position
	trades  []models.TradeRecord
	events  []models.DayEvent
}

// Run executes the simulation over [cfg.Start, cfg.End]. Given identical
// inputs it produces an identical trade history: candidate ordering is
// canonical and no map iteration order leaks into decisions.
func (e *Engine) Run(ctx context.Context, cfg Config) (*models.BacktestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sel := strategy.NewSelector(cfg.Params, e.annotated, e.chainData, e.logger)
	st := &runState{
		account: cfg.InitialCapital,
		trades:  []models.TradeRecord{},
		events:  []models.DayEvent{},
	}

	end := models.Day(cfg.End)
	for date := models.Day(cfg.Start); !date.After(end); date = date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !IsTradingDay(date) {
			continue
		}
		if _, ok := sel.Bar(date); !ok {
			// No price data for the day: skip with no state change.
			continue
		}

		e.managePosition(date, sel, cfg.Params, st)

		if st.open == nil {
			e.tryEnter(date, sel, cfg.Params, st)
		}
	}

	result := &models.BacktestResult{
		Events:       st.events,
		Trades:       st.trades,
		Performance:  Summarize(st.trades, cfg.InitialCapital, st.account),
		FinalAccount: st.account,
		OpenPosition: st.open,
	}

	if st.open != nil {
		// Reported unrealized rather than force-closed; see BacktestResult.
		e.logger.Warn().
			Str("entry_date", st.open.EntryDate.Format("2006-01-02")).
			Str("expiry_date", st.open.ExpiryDate.Format("2006-01-02")).
			Msg("Run ended with an open position; excluded from performance")
	}

	return result, nil
}

// managePosition marks the open position against the day's chain snapshot
// and closes it when the profit target, stop loss, or expiry settlement
// applies. Missing chain data or missing leg quotes leave the position
// untouched for the day.
func (e *Engine) managePosition(date time.Time, sel *strategy.Selector, params strategy.Params, st *runState) {
	if st.open == nil {
		return
	}

	snapshot := chain.SameDayExpiry(sel.Chain(), date)
	if len(snapshot) == 0 {
		return
	}

	value, ok := strategy.CurrentValue(*st.open, snapshot)
	if !ok {
		return
	}

	profitPct := value / st.open.MaxRisk

	var reason string
	switch {
	case profitPct >= params.ProfitTargetPct:
		reason = ExitProfitTarget
	case profitPct <= -params.StopLossPct:
		reason = ExitStopLoss
	case models.SameDay(date, st.open.ExpiryDate):
		reason = ExitExpiry
	default:
		return
	}

	st.account += value
	st.trades = append(st.trades, models.TradeRecord{
		EntryDate:  st.open.EntryDate,
		ExitDate:   date,
		ProfitLoss: value,
		ProfitPct:  profitPct,
	})
	st.events = append(st.events, models.DayEvent{
		Date:         date,
		Action:       models.ActionExit,
		AccountValue: st.account,
		Detail:       reason,
	})
	logging.LogExit(e.logger, date, value, profitPct, reason)

	st.open = nil
}

// tryEnter consults the selector and opens a position when a candidate
// qualifies. Instruments expiring the same day are settled by an immediate
// management pass, so a 0DTE position never outlives its expiry date.
func (e *Engine) tryEnter(date time.Time, sel *strategy.Selector, params strategy.Params, st *runState) {
	cand, ok := sel.FindSpread(date, st.account)
	if !ok {
		return
	}

	st.open = &models.Position{
		EntryDate:     date,
		ExpiryDate:    models.Day(cand.ShortLeg.ExpirationDate),
		ShortLeg:      cand.ShortLeg,
		LongLeg:       cand.LongLeg,
		Contracts:     cand.Contracts,
		InitialCredit: cand.NetCredit * models.ContractMultiplier * float64(cand.Contracts),
		MaxRisk:       cand.MaxRisk,
	}
	st.events = append(st.events, models.DayEvent{
		Date:         date,
		Action:       models.ActionEntry,
		AccountValue: st.account,
		Detail: fmt.Sprintf("%gp/%gp x%d credit %.2f",
			cand.ShortLeg.Strike, cand.LongLeg.Strike, cand.Contracts, cand.NetCredit),
	})
	logging.LogEntry(e.logger, date, cand.ShortLeg.Strike, cand.LongLeg.Strike,
		cand.Contracts, st.open.InitialCredit)

	if models.SameDay(st.open.ExpiryDate, date) {
		e.managePosition(date, sel, params, st)
	}
}
