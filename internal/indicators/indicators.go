// Package indicators computes rolling technical indicators over a daily
// price series. Values are aligned to the input series; positions where the
// trailing window is not yet full hold NaN. NaN compares false against
// every numeric threshold, so an undefined value can never satisfy an entry
// condition downstream.
package indicators

import (
	"errors"
	"math"

	"spread-trader/internal/models"
)

// Indicator calculation errors
var (
	ErrInvalidPeriod = errors.New("period must be positive")
)

func closePrices(bars []models.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
