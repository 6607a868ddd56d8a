package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"spread-trader/internal/errors"
	"spread-trader/internal/logging"
	"spread-trader/internal/models"
)

const (
	providerName   = "alphavantage"
	defaultBaseURL = "https://www.alphavantage.co/query"

	timestampLayout = "2006-01-02 15:04:05"
)

// ClientConfig holds Alpha Vantage client settings. The API key is injected
// through configuration, never embedded in code.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	// Pause is the delay inserted between successive fetches. The free
	// tier allows 5 calls per minute; pacing is explicit, there is no
	// retry-on-failure.
	Pause time.Duration
}

// Client fetches intraday time series from the Alpha Vantage API.
type Client struct {
	cfg    ClientConfig
	client *http.Client
	logger zerolog.Logger
}

// Compile-time interface check.
var _ Provider = (*Client)(nil)

// NewClient creates an Alpha Vantage client.
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchIntraday fetches an ordered minute-bar series for symbol. It fails
// with a *errors.RemoteError when the service reports an error payload or a
// non-success status, and with a *errors.SchemaError when the expected
// time-series key is absent from the response.
func (c *Client) FetchIntraday(ctx context.Context, symbol, interval string, size OutputSize) ([]models.IntradayBar, error) {
	start := time.Now()
	bars, err := c.fetchIntraday(ctx, symbol, interval, size)
	logging.LogFetch(c.logger, symbol, interval, len(bars), time.Since(start), err)
	return bars, err
}

func (c *Client) fetchIntraday(ctx context.Context, symbol, interval string, size OutputSize) ([]models.IntradayBar, error) {
	if c.cfg.APIKey == "" {
		return nil, errors.NewValidationError("api_key", "", "API key is required")
	}

	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("apikey", c.cfg.APIKey)
	q.Set("outputsize", string(size))
	q.Set("datatype", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewRemoteError(providerName, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewRemoteError(providerName, resp.StatusCode, "request failed", nil)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewRemoteError(providerName, resp.StatusCode, "decoding response body", err)
	}

	if raw, ok := payload["Error Message"]; ok {
		var msg string
		_ = json.Unmarshal(raw, &msg)
		return nil, errors.NewRemoteError(providerName, resp.StatusCode, msg, nil)
	}

	seriesKey := fmt.Sprintf("Time Series (%s)", interval)
	raw, ok := payload[seriesKey]
	if !ok {
		return nil, errors.NewSchemaError(providerName, seriesKey)
	}

	var series map[string]map[string]string
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, errors.NewDataError("timeseries", providerName, "parsing time series", err)
	}

	bars := make([]models.IntradayBar, 0, len(series))
	for ts, fields := range series {
		bar, err := parseBar(ts, fields, symbol)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	return bars, nil
}

func parseBar(ts string, fields map[string]string, symbol string) (models.IntradayBar, error) {
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return models.IntradayBar{}, errors.NewDataError("timeseries", providerName,
			fmt.Sprintf("parsing timestamp %q", ts), err)
	}

	open, err := parseField(fields, "1. open")
	if err != nil {
		return models.IntradayBar{}, err
	}
	high, err := parseField(fields, "2. high")
	if err != nil {
		return models.IntradayBar{}, err
	}
	low, err := parseField(fields, "3. low")
	if err != nil {
		return models.IntradayBar{}, err
	}
	closePx, err := parseField(fields, "4. close")
	if err != nil {
		return models.IntradayBar{}, err
	}
	volume, err := parseField(fields, "5. volume")
	if err != nil {
		return models.IntradayBar{}, err
	}

	return models.IntradayBar{
		Timestamp: t,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePx,
		Volume:    int64(volume),
		Symbol:    symbol,
	}, nil
}

func parseField(fields map[string]string, key string) (float64, error) {
	s, ok := fields[key]
	if !ok {
		return 0, errors.NewSchemaError(providerName, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewDataError("timeseries", providerName,
			fmt.Sprintf("parsing field %q", key), err)
	}
	return v, nil
}

// FetchMonths fetches up to months of history with one call per month,
// pausing between successive calls to respect the provider's rate limit. A
// slice failure is fatal to the whole fetch. Bars are deduplicated by
// timestamp and returned in ascending order.
func (c *Client) FetchMonths(ctx context.Context, symbol, interval string, months int) ([]models.IntradayBar, error) {
	var all []models.IntradayBar
	seen := make(map[time.Time]bool)

	for i := 0; i < months; i++ {
		if i > 0 && c.cfg.Pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.Pause):
			}
		}

		bars, err := c.FetchIntraday(ctx, symbol, interval, OutputFull)
		if err != nil {
			return nil, err
		}
		for _, b := range bars {
			if !seen[b.Timestamp] {
				seen[b.Timestamp] = true
				all = append(all, b)
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})

	return all, nil
}
