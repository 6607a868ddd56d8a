package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"spread-trader/internal/errors"
)

const sampleBody = `{
	"Meta Data": {
		"1. Information": "Intraday (1min) open, high, low, close prices and volume",
		"2. Symbol": "QQQ"
	},
	"Time Series (1min)": {
		"2023-06-15 09:31:00": {
			"1. open": "362.10",
			"2. high": "362.40",
			"3. low": "362.00",
			"4. close": "362.30",
			"5. volume": "120500"
		},
		"2023-06-15 09:30:00": {
			"1. open": "361.80",
			"2. high": "362.20",
			"3. low": "361.70",
			"4. close": "362.10",
			"5. volume": "254000"
		}
	}
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL}, zerolog.Nop())
}

func TestFetchIntraday(t *testing.T) {
	var gotQuery map[string]string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"function":   r.URL.Query().Get("function"),
			"symbol":     r.URL.Query().Get("symbol"),
			"interval":   r.URL.Query().Get("interval"),
			"apikey":     r.URL.Query().Get("apikey"),
			"outputsize": r.URL.Query().Get("outputsize"),
		}
		w.Write([]byte(sampleBody))
	})

	bars, err := client.FetchIntraday(context.Background(), "QQQ", "1min", OutputCompact)
	if err != nil {
		t.Fatalf("FetchIntraday: %v", err)
	}

	if gotQuery["function"] != "TIME_SERIES_INTRADAY" || gotQuery["symbol"] != "QQQ" ||
		gotQuery["interval"] != "1min" || gotQuery["apikey"] != "test-key" ||
		gotQuery["outputsize"] != "compact" {
		t.Errorf("unexpected query: %v", gotQuery)
	}

	if len(bars) != 2 {
		t.Fatalf("bars = %d, want 2", len(bars))
	}
	// Ascending by timestamp regardless of map order in the payload.
	if !bars[0].Timestamp.Before(bars[1].Timestamp) {
		t.Errorf("bars not sorted ascending: %v then %v", bars[0].Timestamp, bars[1].Timestamp)
	}
	first := bars[0]
	if first.Open != 361.80 || first.Close != 362.10 || first.Volume != 254000 {
		t.Errorf("first bar = %+v", first)
	}
	if first.Symbol != "QQQ" {
		t.Errorf("symbol = %q, want QQQ", first.Symbol)
	}
}

func TestFetchIntradayMissingAPIKey(t *testing.T) {
	client := NewClient(ClientConfig{}, zerolog.Nop())
	_, err := client.FetchIntraday(context.Background(), "QQQ", "1min", OutputCompact)

	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got %T: %v", err, err)
	}
}

func TestFetchIntradayErrorPayload(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	})

	_, err := client.FetchIntraday(context.Background(), "QQQ", "1min", OutputCompact)

	var rerr *errors.RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("want *RemoteError, got %T: %v", err, err)
	}
	if rerr.Message != "Invalid API call." {
		t.Errorf("message = %q", rerr.Message)
	}
}

func TestFetchIntradayMissingSeriesKey(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// A rate-limit note instead of the series key.
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage!"}`))
	})

	_, err := client.FetchIntraday(context.Background(), "QQQ", "1min", OutputCompact)

	var serr *errors.SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("want *SchemaError, got %T: %v", err, err)
	}
	if serr.Field != "Time Series (1min)" {
		t.Errorf("field = %q", serr.Field)
	}
}

func TestFetchIntradayHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchIntraday(context.Background(), "QQQ", "1min", OutputCompact)

	var rerr *errors.RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("want *RemoteError, got %T: %v", err, err)
	}
	if rerr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rerr.StatusCode)
	}
}

func TestFetchIntradayMissingField(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Time Series (1min)": {
				"2023-06-15 09:30:00": {"1. open": "361.80"}
			}
		}`))
	})

	_, err := client.FetchIntraday(context.Background(), "QQQ", "1min", OutputCompact)

	var serr *errors.SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("want *SchemaError, got %T: %v", err, err)
	}
}

func TestFetchMonthsDeduplicates(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(sampleBody))
	})

	// Pause left zero so the test runs immediately.
	bars, err := client.FetchMonths(context.Background(), "QQQ", "1min", 3)
	if err != nil {
		t.Fatalf("FetchMonths: %v", err)
	}

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	// Three identical slices collapse to the two unique timestamps.
	if len(bars) != 2 {
		t.Errorf("bars = %d, want 2 after dedupe", len(bars))
	}
}

func TestFetchMonthsFailureIsFatal(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.Write([]byte(`{"Error Message": "limit reached"}`))
			return
		}
		w.Write([]byte(sampleBody))
	})

	_, err := client.FetchMonths(context.Background(), "QQQ", "1min", 3)
	if err == nil {
		t.Fatal("want the second slice failure to abort the fetch")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want fetch to stop at the failure", calls)
	}
}
