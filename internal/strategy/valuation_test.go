package strategy

import (
	"math"
	"testing"

	"spread-trader/internal/models"
)

func openPosition() models.Position {
	return models.Position{
		EntryDate:     testDay,
		ExpiryDate:    testDay,
		ShortLeg:      testPut(testDay, testDay, 100, 1.20, 1.30, -0.30),
		LongLeg:       testPut(testDay, testDay, 95, 0.30, 0.40, -0.10),
		Contracts:     11,
		InitialCredit: 880,
		MaxRisk:       4620,
	}
}

func TestCurrentValue(t *testing.T) {
	pos := openPosition()
	snapshot := []models.OptionQuote{
		testPut(testDay, testDay, 100, 0.50, 0.55, -0.20),
		testPut(testDay, testDay, 95, 0.10, 0.15, -0.05),
	}

	value, ok := CurrentValue(pos, snapshot)
	if !ok {
		t.Fatal("want a valuation")
	}

	// cost to close = (0.55 - 0.10) * 100 * 11 = 495; value = 880 - 495.
	if math.Abs(value-385) > 1e-9 {
		t.Errorf("value = %v, want 385", value)
	}
}

func TestCurrentValueAtMaxLoss(t *testing.T) {
	pos := openPosition()
	// Deep in the money: closing costs the full width.
	snapshot := []models.OptionQuote{
		testPut(testDay, testDay, 100, 9.95, 10.00, -0.95),
		testPut(testDay, testDay, 95, 5.00, 5.05, -0.90),
	}

	value, ok := CurrentValue(pos, snapshot)
	if !ok {
		t.Fatal("want a valuation")
	}

	// cost = (10.00 - 5.00) * 100 * 11 = 5500; value = 880 - 5500 = -4620,
	// exactly -MaxRisk.
	if math.Abs(value+pos.MaxRisk) > 1e-9 {
		t.Errorf("value = %v, want %v", value, -pos.MaxRisk)
	}
}

func TestCurrentValueMissingShortLeg(t *testing.T) {
	pos := openPosition()
	snapshot := []models.OptionQuote{
		testPut(testDay, testDay, 95, 0.10, 0.15, -0.05),
	}

	if _, ok := CurrentValue(pos, snapshot); ok {
		t.Error("missing short leg quote must make valuation indeterminate")
	}
}

func TestCurrentValueMissingLongLeg(t *testing.T) {
	pos := openPosition()
	snapshot := []models.OptionQuote{
		testPut(testDay, testDay, 100, 0.50, 0.55, -0.20),
	}

	if _, ok := CurrentValue(pos, snapshot); ok {
		t.Error("missing long leg quote must make valuation indeterminate")
	}
}
