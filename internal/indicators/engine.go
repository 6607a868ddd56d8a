package indicators

import (
	"sort"

	"spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// Default periods for the spread strategy's indicator set.
const (
	DefaultRSIPeriod  = 14
	DefaultFastPeriod = 20
	DefaultSlowPeriod = 50
)

// Engine annotates a daily price series with the indicator set consumed by
// the spread selector: RSI plus a fast and a slow SMA.
type Engine struct {
	rsi  *RSI
	fast *SMA
	slow *SMA
}

// NewEngine creates an Engine with the default periods.
func NewEngine() *Engine {
	return NewEngineWithPeriods(DefaultRSIPeriod, DefaultFastPeriod, DefaultSlowPeriod)
}

// NewEngineWithPeriods creates an Engine with explicit periods.
func NewEngineWithPeriods(rsiPeriod, fastPeriod, slowPeriod int) *Engine {
	return &Engine{
		rsi:  NewRSI(rsiPeriod),
		fast: NewSMA(fastPeriod),
		slow: NewSMA(slowPeriod),
	}
}

// Annotate computes all indicators over bars and returns a new series with
// the derived fields filled in. The input must be ordered by ascending date;
// the output is computed once and treated as immutable afterwards.
func (e *Engine) Annotate(bars []models.PriceBar) ([]models.PriceBar, error) {
	if len(bars) == 0 {
		return nil, errors.ErrEmptySeries
	}
	if !sort.SliceIsSorted(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	}) {
		return nil, errors.ErrUnsortedBars
	}

	rsi, err := e.rsi.Calculate(bars)
	if err != nil {
		return nil, err
	}
	fast, err := e.fast.Calculate(bars)
	if err != nil {
		return nil, err
	}
	slow, err := e.slow.Calculate(bars)
	if err != nil {
		return nil, err
	}

	annotated := make([]models.PriceBar, len(bars))
	copy(annotated, bars)
	for i := range annotated {
		annotated[i].RSI = rsi[i]
		annotated[i].SMAFast = fast[i]
		annotated[i].SMASlow = slow[i]
	}

	return annotated, nil
}
