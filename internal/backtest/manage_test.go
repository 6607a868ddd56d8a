package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"spread-trader/internal/models"
	"spread-trader/internal/strategy"
)

// richPosition is an open spread with enough credit that the profit target
// of half the max risk is attainable: credit 2.60/share over a 5-wide
// spread, 20 contracts, 5200 collected against 4800 at risk.
func richPosition(entry, expiry time.Time) *models.Position {
	return &models.Position{
		EntryDate:     entry,
		ExpiryDate:    expiry,
		ShortLeg:      enginePut(entry, 100, 3.00, 3.10, -0.30),
		LongLeg:       enginePut(entry, 95, 0.30, 0.40, -0.10),
		Contracts:     20,
		InitialCredit: 5200,
		MaxRisk:       4800,
	}
}

func manageFixture(t *testing.T, chainData []models.OptionQuote) (*Engine, *strategy.Selector) {
	t.Helper()
	days := tradingDays(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), 60)
	bars := risingSeries(days)

	engine, err := New(bars, chainData, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sel := strategy.NewSelector(strategy.DefaultParams(), bars, chainData, zerolog.Nop())
	return engine, sel
}

func TestManagePositionProfitTargetBeforeExpiry(t *testing.T) {
	entry := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	markDay := time.Date(2023, 6, 13, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)

	// Premium has collapsed: cost to close = (0.10-0.05)*100*20 = 100,
	// value 5100, 106% of max risk.
	snapshot := []models.OptionQuote{
		enginePut(markDay, 100, 0.08, 0.10, -0.05),
		enginePut(markDay, 95, 0.05, 0.07, -0.02),
	}
	engine, sel := manageFixture(t, snapshot)

	st := &runState{account: 100000, open: richPosition(entry, expiry)}
	engine.managePosition(markDay, sel, strategy.DefaultParams(), st)

	if st.open != nil {
		t.Fatal("profit target hit before expiry must close the position")
	}
	if len(st.trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(st.trades))
	}
	trade := st.trades[0]
	if !models.SameDay(trade.ExitDate, markDay) {
		t.Errorf("exit date = %v, want the mark day", trade.ExitDate)
	}
	if math.Abs(trade.ProfitLoss-5100) > 1e-9 {
		t.Errorf("ProfitLoss = %v, want 5100", trade.ProfitLoss)
	}
	if math.Abs(st.account-105100) > 1e-9 {
		t.Errorf("account = %v, want 105100", st.account)
	}
	if st.events[0].Detail != ExitProfitTarget {
		t.Errorf("exit reason = %q, want %q", st.events[0].Detail, ExitProfitTarget)
	}
}

func TestManagePositionStopLoss(t *testing.T) {
	entry := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	markDay := time.Date(2023, 6, 13, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)

	// Spread moved hard against the position: cost to close
	// (6.50-0.20)*100*20 = 12600, value -7400, 154% of max risk lost.
	snapshot := []models.OptionQuote{
		enginePut(markDay, 100, 6.40, 6.50, -0.85),
		enginePut(markDay, 95, 0.20, 0.30, -0.15),
	}
	engine, sel := manageFixture(t, snapshot)

	st := &runState{account: 100000, open: richPosition(entry, expiry)}
	engine.managePosition(markDay, sel, strategy.DefaultParams(), st)

	if st.open != nil {
		t.Fatal("stop loss hit must close the position")
	}
	if math.Abs(st.trades[0].ProfitLoss+7400) > 1e-9 {
		t.Errorf("ProfitLoss = %v, want -7400", st.trades[0].ProfitLoss)
	}
	if st.events[0].Detail != ExitStopLoss {
		t.Errorf("exit reason = %q, want %q", st.events[0].Detail, ExitStopLoss)
	}
}

func TestManagePositionHoldsBetweenThresholds(t *testing.T) {
	entry := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	markDay := time.Date(2023, 6, 13, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)

	// Cost to close (2.90-0.30)*100*20 = 5200: value 0, between the
	// profit target and the stop, before expiry. Nothing happens.
	snapshot := []models.OptionQuote{
		enginePut(markDay, 100, 2.80, 2.90, -0.30),
		enginePut(markDay, 95, 0.30, 0.40, -0.10),
	}
	engine, sel := manageFixture(t, snapshot)

	st := &runState{account: 100000, open: richPosition(entry, expiry)}
	engine.managePosition(markDay, sel, strategy.DefaultParams(), st)

	if st.open == nil {
		t.Fatal("position between thresholds before expiry must stay open")
	}
	if len(st.trades) != 0 || st.account != 100000 {
		t.Errorf("no close: trades=%d account=%v", len(st.trades), st.account)
	}
}

func TestManagePositionExpirySettlement(t *testing.T) {
	entry := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)

	snapshot := []models.OptionQuote{
		enginePut(expiry, 100, 2.80, 2.90, -0.30),
		enginePut(expiry, 95, 0.30, 0.40, -0.10),
	}
	engine, sel := manageFixture(t, snapshot)

	st := &runState{account: 100000, open: richPosition(entry, expiry)}
	engine.managePosition(expiry, sel, strategy.DefaultParams(), st)

	if st.open != nil {
		t.Fatal("expiry date must settle the position")
	}
	if st.events[0].Detail != ExitExpiry {
		t.Errorf("exit reason = %q, want %q", st.events[0].Detail, ExitExpiry)
	}
}

func TestManagePositionMissingQuotesLeavesOpen(t *testing.T) {
	entry := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	markDay := time.Date(2023, 6, 13, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		snapshot []models.OptionQuote
	}{
		{"no snapshot for the day", nil},
		{"short leg missing", []models.OptionQuote{enginePut(markDay, 95, 0.30, 0.40, -0.10)}},
		{"long leg missing", []models.OptionQuote{enginePut(markDay, 100, 2.80, 2.90, -0.30)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, sel := manageFixture(t, tc.snapshot)
			st := &runState{account: 100000, open: richPosition(entry, expiry)}
			engine.managePosition(markDay, sel, strategy.DefaultParams(), st)

			if st.open == nil {
				t.Error("indeterminate valuation must not force a close")
			}
			if len(st.trades) != 0 {
				t.Errorf("trades = %d, want 0", len(st.trades))
			}
		})
	}
}
