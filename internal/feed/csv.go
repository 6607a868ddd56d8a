package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// DateTime is an intraday timestamp in "2006-01-02 15:04:05" CSV cells.
type DateTime struct {
	time.Time
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *DateTime) UnmarshalCSV(s string) error {
	t, err := time.Parse("2006-01-02 15:04:05", strings.TrimSpace(s))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (d DateTime) MarshalCSV() (string, error) {
	return d.Format("2006-01-02 15:04:05"), nil
}

type csvBar struct {
	Timestamp DateTime `csv:"timestamp"`
	Open      float64  `csv:"open"`
	High      float64  `csv:"high"`
	Low       float64  `csv:"low"`
	Close     float64  `csv:"close"`
	Volume    int64    `csv:"volume"`
	Symbol    string   `csv:"symbol"`
}

// FileName returns the dated CSV file name for a symbol and interval, e.g.
// "QQQ_1min_20230630.csv".
func FileName(symbol, interval string, asOf time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", symbol, interval, asOf.Format("20060102"))
}

// SaveCSV writes bars to a dated CSV file under dir, creating the directory
// if absent, and returns the file path.
func SaveCSV(bars []models.IntradayBar, symbol, interval, dir string, asOf time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dir, FileName(symbol, interval, asOf))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	rows := make([]csvBar, len(bars))
	for i, b := range bars {
		rows[i] = csvBar{
			Timestamp: DateTime{b.Timestamp},
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
			Symbol:    b.Symbol,
		}
	}

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// LoadCSV reads an intraday bar series previously written by SaveCSV.
func LoadCSV(path string) ([]models.IntradayBar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataError("bars", path, "opening price file", err)
	}
	defer f.Close()

	var rows []csvBar
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.NewDataError("bars", path, "parsing price CSV", err)
	}

	bars := make([]models.IntradayBar, len(rows))
	for i, r := range rows {
		bars[i] = models.IntradayBar{
			Timestamp: r.Timestamp.Time,
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
			Symbol:    r.Symbol,
		}
	}

	return bars, nil
}
