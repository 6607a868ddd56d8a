package strategy

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"spread-trader/internal/chain"
	"spread-trader/internal/models"
)

// Selector decides whether to open a new bull put credit spread on a given
// day. Every rejection is a silent "no trade today": the absence of a
// signal is normal operating behaviour, never an error.
type Selector struct {
	params Params
	bars   map[time.Time]models.PriceBar
	chain  []models.OptionQuote
	logger zerolog.Logger
}

// NewSelector creates a Selector over an indicator-annotated daily price
// series and a full options-chain dataset. Both inputs are read-only.
func NewSelector(params Params, annotated []models.PriceBar, chainData []models.OptionQuote, logger zerolog.Logger) *Selector {
	bars := make(map[time.Time]models.PriceBar, len(annotated))
	for _, b := range annotated {
		bars[models.Day(b.Date)] = b
	}
	return &Selector{
		params: params,
		bars:   bars,
		chain:  chainData,
		logger: logger,
	}
}

// Bar returns the annotated price bar for a date.
func (s *Selector) Bar(date time.Time) (models.PriceBar, bool) {
	bar, ok := s.bars[models.Day(date)]
	return bar, ok
}

// Chain returns the full options-chain dataset the selector was built over.
func (s *Selector) Chain() []models.OptionQuote {
	return s.chain
}

// FindSpread looks for a qualifying bull put spread on date, sized against
// accountValue. The boolean result distinguishes "candidate found" from the
// normal no-trade outcome.
func (s *Selector) FindSpread(date time.Time, accountValue float64) (models.SpreadCandidate, bool) {
	bar, ok := s.Bar(date)
	if !ok {
		return models.SpreadCandidate{}, false
	}

	// Entry gate. NaN indicators fail both comparisons, so warmup bars and
	// flat-window RSI can never trigger a trade.
	if !(bar.RSI >= s.params.EntryRSIThreshold) || !(bar.SMAFast >= bar.SMASlow) {
		return models.SpreadCandidate{}, false
	}

	todays := chain.SameDayExpiry(s.chain, date)
	if len(todays) == 0 {
		return models.SpreadCandidate{}, false
	}

	puts := chain.Puts(todays)
	chain.SortByStrike(puts)

	shortLeg, ok := firstInDeltaBand(puts)
	if !ok {
		return models.SpreadCandidate{}, false
	}

	longStrike := shortLeg.Strike - s.params.Width
	longLeg, ok := chain.FindQuote(puts, longStrike, models.OptionPut)
	if !ok {
		// No exact strike at the configured width; no interpolation.
		return models.SpreadCandidate{}, false
	}

	netCredit := shortLeg.Bid - longLeg.Ask
	riskPerSpread := (s.params.Width - netCredit) * models.ContractMultiplier
	if riskPerSpread <= 0 {
		return models.SpreadCandidate{}, false
	}

	contracts := int(math.Floor(accountValue * s.params.MaxPositionSize / riskPerSpread))
	if contracts == 0 {
		return models.SpreadCandidate{}, false
	}

	cand := models.SpreadCandidate{
		ShortLeg:  shortLeg,
		LongLeg:   longLeg,
		Contracts: contracts,
		NetCredit: netCredit,
		MaxRisk:   riskPerSpread * float64(contracts),
		MaxProfit: netCredit * models.ContractMultiplier * float64(contracts),
	}

	s.logger.Debug().
		Str("date", date.Format("2006-01-02")).
		Float64("short_strike", shortLeg.Strike).
		Float64("long_strike", longLeg.Strike).
		Float64("net_credit", netCredit).
		Int("contracts", contracts).
		Msg("Spread candidate selected")

	return cand, true
}

// firstInDeltaBand returns the first put, in the order given, whose delta
// falls inside the short-leg selection band. Callers pass strike-sorted
// quotes so the choice is deterministic.
func firstInDeltaBand(puts []models.OptionQuote) (models.OptionQuote, bool) {
	for _, q := range puts {
		if q.Delta >= DeltaBandLow && q.Delta <= DeltaBandHigh {
			return q, true
		}
	}
	return models.OptionQuote{}, false
}
