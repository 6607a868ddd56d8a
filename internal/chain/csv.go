package chain

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// Date is a calendar day parsed from "2006-01-02" CSV cells.
type Date struct {
	time.Time
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *Date) UnmarshalCSV(s string) error {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (d Date) MarshalCSV() (string, error) {
	return d.Format("2006-01-02"), nil
}

type chainRow struct {
	Date           Date    `csv:"date"`
	ExpirationDate Date    `csv:"expiration_date"`
	OptionType     string  `csv:"option_type"`
	Strike         float64 `csv:"strike"`
	Bid            float64 `csv:"bid"`
	Ask            float64 `csv:"ask"`
	Delta          float64 `csv:"delta"`
}

// Load reads an options-chain dataset from a CSV file with columns
// date, expiration_date, option_type, strike, bid, ask, delta.
func Load(path string) ([]models.OptionQuote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataError("chain", path, "opening chain file", err)
	}
	defer f.Close()

	var rows []chainRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.NewDataError("chain", path, "parsing chain CSV", err)
	}

	quotes := make([]models.OptionQuote, 0, len(rows))
	for i, row := range rows {
		typ := models.OptionType(strings.ToLower(strings.TrimSpace(row.OptionType)))
		if typ != models.OptionPut && typ != models.OptionCall {
			return nil, errors.NewDataError("chain", path,
				fmt.Sprintf("row %d: unknown option_type %q", i+1, row.OptionType), nil)
		}
		quotes = append(quotes, models.OptionQuote{
			Date:           models.Day(row.Date.Time),
			ExpirationDate: models.Day(row.ExpirationDate.Time),
			Type:           typ,
			Strike:         row.Strike,
			Bid:            row.Bid,
			Ask:            row.Ask,
			Delta:          row.Delta,
		})
	}

	return quotes, nil
}
