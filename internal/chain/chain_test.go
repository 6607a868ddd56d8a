package chain

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"spread-trader/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func put(date, exp time.Time, strike, bid, ask, delta float64) models.OptionQuote {
	return models.OptionQuote{
		Date:           date,
		ExpirationDate: exp,
		Type:           models.OptionPut,
		Strike:         strike,
		Bid:            bid,
		Ask:            ask,
		Delta:          delta,
	}
}

func TestSameDayExpiry(t *testing.T) {
	target := day(2023, 6, 15)
	quotes := []models.OptionQuote{
		put(target, target, 100, 1.2, 1.3, -0.30),
		put(target, day(2023, 6, 16), 100, 2.0, 2.1, -0.32), // expires later
		put(day(2023, 6, 14), target, 100, 1.0, 1.1, -0.28), // quoted earlier
		put(target, target, 95, 0.3, 0.4, -0.10),
	}

	got := SameDayExpiry(quotes, target)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, q := range got {
		if !models.SameDay(q.Date, target) || !models.SameDay(q.ExpirationDate, target) {
			t.Errorf("quote %v leaked into same-day selection", q)
		}
	}
}

func TestSameDayExpiryEmpty(t *testing.T) {
	target := day(2023, 6, 15)
	quotes := []models.OptionQuote{
		put(target, day(2023, 6, 22), 100, 1.2, 1.3, -0.30),
	}
	if got := SameDayExpiry(quotes, target); len(got) != 0 {
		t.Errorf("want empty selection, got %d quotes", len(got))
	}
}

func TestPutsFiltersCalls(t *testing.T) {
	d := day(2023, 6, 15)
	quotes := []models.OptionQuote{
		put(d, d, 100, 1.2, 1.3, -0.30),
		{Date: d, ExpirationDate: d, Type: models.OptionCall, Strike: 100, Delta: 0.55},
		put(d, d, 95, 0.3, 0.4, -0.10),
	}

	got := Puts(quotes)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Strike != 100 || got[1].Strike != 95 {
		t.Errorf("Puts must preserve input order, got strikes %v, %v", got[0].Strike, got[1].Strike)
	}
}

func TestSortByStrikeIsStable(t *testing.T) {
	d := day(2023, 6, 15)
	quotes := []models.OptionQuote{
		put(d, d, 100, 1.2, 1.3, -0.30),
		put(d, d, 95, 0.3, 0.4, -0.10),
		put(d, d, 100, 1.1, 1.2, -0.29), // duplicate strike, later row
		put(d, d, 90, 0.1, 0.2, -0.05),
	}

	SortByStrike(quotes)

	wantStrikes := []float64{90, 95, 100, 100}
	for i, w := range wantStrikes {
		if quotes[i].Strike != w {
			t.Fatalf("index %d: strike %v, want %v", i, quotes[i].Strike, w)
		}
	}
	// Equal strikes keep their original relative order.
	if quotes[2].Bid != 1.2 || quotes[3].Bid != 1.1 {
		t.Errorf("stable sort violated for duplicate strikes: %v then %v", quotes[2].Bid, quotes[3].Bid)
	}
}

func TestFindQuote(t *testing.T) {
	d := day(2023, 6, 15)
	quotes := []models.OptionQuote{
		put(d, d, 95, 0.3, 0.4, -0.10),
		put(d, d, 100, 1.2, 1.3, -0.30),
	}

	q, ok := FindQuote(quotes, 100, models.OptionPut)
	if !ok || q.Bid != 1.2 {
		t.Errorf("FindQuote(100, put) = %v, %v", q, ok)
	}

	if _, ok := FindQuote(quotes, 97.5, models.OptionPut); ok {
		t.Errorf("no quote at 97.5, want ok=false")
	}
	if _, ok := FindQuote(quotes, 100, models.OptionCall); ok {
		t.Errorf("no call at 100, want ok=false")
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.csv")
	content := `date,expiration_date,option_type,strike,bid,ask,delta
2023-06-15,2023-06-15,put,100,1.20,1.30,-0.30
2023-06-15,2023-06-15,PUT,95,0.30,0.40,-0.10
2023-06-15,2023-06-15,call,105,0.80,0.90,0.45
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	quotes, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("len = %d, want 3", len(quotes))
	}
	if quotes[1].Type != models.OptionPut {
		t.Errorf("option type should be normalized to lower case, got %q", quotes[1].Type)
	}
	want := day(2023, 6, 15)
	if !quotes[0].Date.Equal(want) || !quotes[0].ExpirationDate.Equal(want) {
		t.Errorf("dates not normalized to midnight UTC: %v / %v", quotes[0].Date, quotes[0].ExpirationDate)
	}
}

func TestLoadCSVRejectsUnknownType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.csv")
	content := `date,expiration_date,option_type,strike,bid,ask,delta
2023-06-15,2023-06-15,straddle,100,1.20,1.30,-0.30
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("want error for unknown option_type")
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("want error for missing file")
	}
}
