// Package strategy implements bull put credit spread selection and position
// valuation for same-day-expiry options.
package strategy

import (
	"spread-trader/internal/errors"
)

// Short-leg selection band: puts with delta in [DeltaBandLow, DeltaBandHigh]
// (absolute delta roughly 25-35%, the standard short-premium band).
const (
	DeltaBandLow  = -0.35
	DeltaBandHigh = -0.25
)

// Params enumerates the tunable strategy parameters.
type Params struct {
	// EntryRSIThreshold gates entries: trade only when RSI >= threshold.
	EntryRSIThreshold float64
	// ProfitTargetPct exits at this fraction of max profit.
	ProfitTargetPct float64
	// StopLossPct exits at this fraction of max loss.
	StopLossPct float64
	// Width is the dollar distance between short and long strikes.
	Width float64
	// MaxPositionSize is the fraction of account equity risked per trade.
	MaxPositionSize float64
}

// DefaultParams returns the stock parameter set.
func DefaultParams() Params {
	return Params{
		EntryRSIThreshold: 40,
		ProfitTargetPct:   0.50,
		StopLossPct:       1.5,
		Width:             5,
		MaxPositionSize:   0.05,
	}
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.Width <= 0 {
		return errors.NewValidationError("width_between_strikes", p.Width, "must be positive")
	}
	if p.MaxPositionSize <= 0 || p.MaxPositionSize > 1 {
		return errors.NewValidationError("max_position_size", p.MaxPositionSize, "must be in (0, 1]")
	}
	if p.ProfitTargetPct <= 0 {
		return errors.NewValidationError("profit_target_pct", p.ProfitTargetPct, "must be positive")
	}
	if p.StopLossPct <= 0 {
		return errors.NewValidationError("stop_loss_pct", p.StopLossPct, "must be positive")
	}
	return nil
}
