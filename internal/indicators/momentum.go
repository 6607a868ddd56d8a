package indicators

import (
	"fmt"

	"spread-trader/internal/models"
)

// RSI calculates the Relative Strength Index using a simple trailing mean of
// gains and losses (not Wilder smoothing): on a window of N bars,
// RS = avgGain/avgLoss and RSI = 100 - 100/(1+RS).
//
// Division follows IEEE float semantics on purpose: a window with zero
// average loss but positive gains yields RS=+Inf and RSI=100; a perfectly
// flat window yields RS=NaN and RSI=NaN. Neither case panics, and NaN fails
// every threshold comparison.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI_%d", r.period)
}

func (r *RSI) Period() int {
	return r.period
}

// Calculate returns an RSI series aligned to bars. The first period values
// are NaN because their trailing window includes the undefined first-bar
// price change.
func (r *RSI) Calculate(bars []models.PriceBar) ([]float64, error) {
	if r.period <= 0 {
		return nil, ErrInvalidPeriod
	}

	n := len(bars)
	result := nanSlice(n)
	if n < r.period+1 {
		return result, nil
	}

	closes := closePrices(bars)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	for i := r.period; i < n; i++ {
		avgGain := mean(gains[i-r.period+1 : i+1])
		avgLoss := mean(losses[i-r.period+1 : i+1])

		rs := avgGain / avgLoss
		result[i] = 100 - 100/(1+rs)
	}

	return result, nil
}
