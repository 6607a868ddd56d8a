// Package models provides domain models for the spread backtester.
package models

import (
	"math"
	"time"
)

// OptionType represents the type of an option contract.
type OptionType string

const (
	OptionPut  OptionType = "put"
	OptionCall OptionType = "call"
)

// PriceBar represents one trading day of the underlying, enriched with
// technical indicators. Indicator fields are NaN until their trailing
// window is full.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64

	RSI     float64
	SMAFast float64
	SMASlow float64
}

// HasIndicators reports whether every derived indicator on the bar holds a
// defined value.
func (b PriceBar) HasIndicators() bool {
	return !math.IsNaN(b.RSI) && !math.IsNaN(b.SMAFast) && !math.IsNaN(b.SMASlow)
}

// IntradayBar represents a single minute-level bar from the quote provider.
type IntradayBar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
	Symbol    string
}

// OptionQuote represents one row of the options-chain dataset. Quotes are
// externally sourced and read-only; the backtester never mutates them.
type OptionQuote struct {
	Date           time.Time
	ExpirationDate time.Time
	Type           OptionType
	Strike         float64
	Bid            float64
	Ask            float64
	Delta          float64
}

// IsSameDayExpiry reports whether the quote describes a contract expiring on
// its own quote date.
func (q OptionQuote) IsSameDayExpiry() bool {
	return SameDay(q.Date, q.ExpirationDate)
}

// Day truncates t to midnight UTC. All daily series are keyed by Day so that
// quotes and bars from different sources line up.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
