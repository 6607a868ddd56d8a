package backtest

import (
	"testing"
	"time"
)

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2023, 6, 17, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2023, 6, 18, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2023, 6, 19, 0, 0, 0, 0, time.UTC)

	if !IsWeekend(saturday) || !IsWeekend(sunday) {
		t.Error("Saturday and Sunday are weekends")
	}
	if IsWeekend(monday) {
		t.Error("Monday is not a weekend")
	}
}

func TestHoliday(t *testing.T) {
	name, ok := Holiday(time.Date(2023, 6, 19, 0, 0, 0, 0, time.UTC))
	if !ok || name != "Juneteenth" {
		t.Errorf("2023-06-19 = %q, %v; want Juneteenth", name, ok)
	}

	if _, ok := Holiday(time.Date(2023, 6, 20, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("2023-06-20 is a regular session")
	}
}

func TestIsTradingDay(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2023-06-20", true},  // ordinary Tuesday
		{"2023-06-17", false}, // Saturday
		{"2023-06-19", false}, // Juneteenth
		{"2023-11-23", false}, // Thanksgiving
		{"2024-03-29", false}, // Good Friday
		{"2025-01-01", false}, // New Year's Day
		{"2023-07-03", true},  // day before Independence Day trades
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := IsTradingDay(d); got != tc.want {
			t.Errorf("IsTradingDay(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}
