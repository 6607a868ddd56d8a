package backtest

import "spread-trader/internal/models"

// Summarize aggregates closed trades into run-level performance metrics.
// It is computed once, at the end of a run; an open position contributes
// nothing here.
func Summarize(trades []models.TradeRecord, initialCapital, finalAccount float64) models.Performance {
	perf := models.Performance{
		TotalReturn: (finalAccount/initialCapital - 1) * 100,
		TotalTrades: len(trades),
	}
	if len(trades) == 0 {
		return perf
	}

	var wins int
	var pctSum float64
	for _, t := range trades {
		if t.Win() {
			wins++
		}
		pctSum += t.ProfitPct
	}

	perf.WinRate = float64(wins) / float64(len(trades)) * 100
	perf.AverageReturn = pctSum / float64(len(trades)) * 100
	return perf
}
