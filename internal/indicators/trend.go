package indicators

import (
	"fmt"

	"spread-trader/internal/models"
)

// SMA calculates a simple moving average of closing prices.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string {
	return fmt.Sprintf("SMA_%d", s.period)
}

func (s *SMA) Period() int {
	return s.period
}

// Calculate returns an SMA series aligned to bars; the first period-1 values
// are NaN.
func (s *SMA) Calculate(bars []models.PriceBar) ([]float64, error) {
	if s.period <= 0 {
		return nil, ErrInvalidPeriod
	}

	n := len(bars)
	result := nanSlice(n)
	closes := closePrices(bars)

	for i := s.period - 1; i < n; i++ {
		result[i] = mean(closes[i-s.period+1 : i+1])
	}

	return result, nil
}
