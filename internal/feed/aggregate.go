package feed

import (
	"math"
	"sort"
	"time"

	"spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// DailyBars collapses an intraday series into one bar per calendar day.
// Open is the first print of the day, close the last, high and low the
// extremes, volume the sum. Bars are returned in ascending date order.
func DailyBars(bars []models.IntradayBar) []models.PriceBar {
	byDay := make(map[time.Time]*models.PriceBar)
	first := make(map[time.Time]time.Time)
	last := make(map[time.Time]time.Time)

	for _, b := range bars {
		day := models.Day(b.Timestamp)
		agg, ok := byDay[day]
		if !ok {
			byDay[day] = &models.PriceBar{
				Date:   day,
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.Close,
				Volume: b.Volume,
			}
			first[day] = b.Timestamp
			last[day] = b.Timestamp
			continue
		}
		agg.High = math.Max(agg.High, b.High)
		agg.Low = math.Min(agg.Low, b.Low)
		agg.Volume += b.Volume
		if b.Timestamp.Before(first[day]) {
			agg.Open = b.Open
			first[day] = b.Timestamp
		}
		if b.Timestamp.After(last[day]) {
			agg.Close = b.Close
			last[day] = b.Timestamp
		}
	}

	days := make([]models.PriceBar, 0, len(byDay))
	for _, agg := range byDay {
		days = append(days, *agg)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}

// DailyStats summarizes a daily bar series for the data analyze command.
type DailyStats struct {
	Symbol        string
	Days          int
	Start         time.Time
	End           time.Time
	FirstClose    float64
	LastClose     float64
	PeriodReturn  float64
	MeanDailyRet  float64
	DailyVol      float64
	AnnualizedVol float64
	HighestClose  float64
	LowestClose   float64
}

// ComputeStats derives return and volatility statistics from a daily series.
// At least two bars are required to form a return.
func ComputeStats(symbol string, days []models.PriceBar) (DailyStats, error) {
	if len(days) < 2 {
		return DailyStats{}, errors.Wrap(errors.ErrEmptySeries, "need at least two daily bars")
	}

	stats := DailyStats{
		Symbol:       symbol,
		Days:         len(days),
		Start:        days[0].Date,
		End:          days[len(days)-1].Date,
		FirstClose:   days[0].Close,
		LastClose:    days[len(days)-1].Close,
		HighestClose: days[0].Close,
		LowestClose:  days[0].Close,
	}
	stats.PeriodReturn = (stats.LastClose/stats.FirstClose - 1) * 100

	rets := make([]float64, 0, len(days)-1)
	for i := 1; i < len(days); i++ {
		rets = append(rets, days[i].Close/days[i-1].Close-1)
		if days[i].Close > stats.HighestClose {
			stats.HighestClose = days[i].Close
		}
		if days[i].Close < stats.LowestClose {
			stats.LowestClose = days[i].Close
		}
	}

	var sum float64
	for _, r := range rets {
		sum += r
	}
	mean := sum / float64(len(rets))
	stats.MeanDailyRet = mean * 100

	var sq float64
	for _, r := range rets {
		sq += (r - mean) * (r - mean)
	}
	if len(rets) > 1 {
		stats.DailyVol = math.Sqrt(sq/float64(len(rets)-1)) * 100
	}
	stats.AnnualizedVol = stats.DailyVol * math.Sqrt(252)

	return stats, nil
}
