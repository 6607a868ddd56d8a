// Package feed fetches historical price data from the quote provider and
// persists it to CSV files. It is a replaceable collaborator of the
// backtester: the simulation core only ever sees the resulting bar series.
package feed

import (
	"context"

	"spread-trader/internal/models"
)

// OutputSize selects how much history the provider returns.
type OutputSize string

const (
	// OutputCompact returns the latest 100 data points.
	OutputCompact OutputSize = "compact"
	// OutputFull returns the provider's full intraday history window.
	OutputFull OutputSize = "full"
)

// Provider fetches ordered intraday bar series for a symbol. A fetch either
// succeeds completely or fails with a *errors.RemoteError or
// *errors.SchemaError; failures are surfaced, never retried internally.
type Provider interface {
	FetchIntraday(ctx context.Context, symbol, interval string, size OutputSize) ([]models.IntradayBar, error)
}
