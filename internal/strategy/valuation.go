package strategy

import (
	"spread-trader/internal/chain"
	"spread-trader/internal/models"
)

// CurrentValue computes the mark-to-market value of an open position against
// a later (or same-day) chain snapshot, as initial credit minus the cost to
// close: buying back the short leg at its ask and selling the long leg at
// its bid. Crossing the bid/ask this way is the conservative assumption.
//
// If either leg is missing from the snapshot the valuation is indeterminate
// and ok is false; the caller must skip managing the position for that date
// rather than force a close.
func CurrentValue(pos models.Position, snapshot []models.OptionQuote) (value float64, ok bool) {
	shortQuote, ok := chain.FindQuote(snapshot, pos.ShortLeg.Strike, models.OptionPut)
	if !ok {
		return 0, false
	}
	longQuote, ok := chain.FindQuote(snapshot, pos.LongLeg.Strike, models.OptionPut)
	if !ok {
		return 0, false
	}

	costToClose := (shortQuote.Ask - longQuote.Bid) * models.ContractMultiplier * float64(pos.Contracts)
	return pos.InitialCredit - costToClose, true
}
