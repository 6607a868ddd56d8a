// Package chain loads options-chain datasets and selects same-day-expiry
// subsets for the backtester. The chain is externally sourced, read-only
// input; an empty selection for a date is an expected outcome, not an error.
package chain

import (
	"sort"
	"time"

	"spread-trader/internal/models"
)

// SameDayExpiry returns the quotes dated target whose contracts also expire
// on target: the 0DTE instruments for that day.
func SameDayExpiry(quotes []models.OptionQuote, target time.Time) []models.OptionQuote {
	var out []models.OptionQuote
	for _, q := range quotes {
		if models.SameDay(q.Date, target) && models.SameDay(q.ExpirationDate, target) {
			out = append(out, q)
		}
	}
	return out
}

// Puts returns only put quotes, preserving order.
func Puts(quotes []models.OptionQuote) []models.OptionQuote {
	var out []models.OptionQuote
	for _, q := range quotes {
		if q.Type == models.OptionPut {
			out = append(out, q)
		}
	}
	return out
}

// SortByStrike sorts quotes by strike ascending, in place. This is the
// canonical ordering: "first candidate" decisions are made against it so a
// run is reproducible regardless of input row order.
func SortByStrike(quotes []models.OptionQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Strike < quotes[j].Strike
	})
}

// FindQuote returns the first quote matching the exact strike and type, in
// the order given. The second return value reports whether a match exists.
func FindQuote(quotes []models.OptionQuote, strike float64, typ models.OptionType) (models.OptionQuote, bool) {
	for _, q := range quotes {
		if q.Strike == strike && q.Type == typ {
			return q, true
		}
	}
	return models.OptionQuote{}, false
}
