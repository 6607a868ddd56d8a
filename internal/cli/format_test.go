package cli

import (
	"testing"
	"time"
)

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{999.5, "$999.50"},
		{1000, "$1,000.00"},
		{100000, "$100,000.00"},
		{1234567.89, "$1,234,567.89"},
		{-4620, "-$4,620.00"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.in); got != tc.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(3.456); got != "+3.46%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPercent(-1.5); got != "-1.50%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("got %q", got)
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(880); got != "+$880.00" {
		t.Errorf("got %q", got)
	}
	if got := FormatPnL(-220); got != "-$220.00" {
		t.Errorf("got %q", got)
	}
}

func TestFormatStrike(t *testing.T) {
	if got := FormatStrike(100); got != "100" {
		t.Errorf("got %q", got)
	}
	if got := FormatStrike(102.5); got != "102.50" {
		t.Errorf("got %q", got)
	}
}

func TestFormatVolume(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{500, "500"},
		{2500, "2.50 K"},
		{3400000, "3.40 M"},
		{1200000000, "1.20 B"},
	}
	for _, tc := range cases {
		if got := FormatVolume(tc.in); got != tc.want {
			t.Errorf("FormatVolume(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "15-Jun-2023" {
		t.Errorf("got %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("a very long label", 10); got != "a very ..." {
		t.Errorf("got %q", got)
	}
}
