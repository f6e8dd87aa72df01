package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockRadar/internal/model"
	"StockRadar/internal/quota"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher retrieves daily bars from the Yahoo Finance chart API.
// Rate-limited responses are retried with fixed backoff; every attempt,
// retries included, is recorded in the usage tracker first.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
	Tracker *quota.Tracker
	Suffix  string          // exchange suffix appended when absent, e.g. ".NS"
	Backoff []time.Duration // delays between rate-limited attempts
}

// NewYahooFetcher creates a fetcher with optional proxy support.
func NewYahooFetcher(tracker *quota.Tracker, proxyURL, suffix string, timeout time.Duration, backoff []time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Tracker: tracker,
		Suffix:  suffix,
		Backoff: backoff,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API. Quote
// columns are parallel arrays with JSON nulls on holidays and bad ticks,
// hence the interface{} elements.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Fetch retrieves the six-month daily series for the symbol. On HTTP 429
// it retries after each configured backoff delay; the last response's
// failure surfaces once retries are exhausted.
func (f *YahooFetcher) Fetch(ctx context.Context, symbol string) (model.Series, error) {
	ticker := symbol
	if f.Suffix != "" && !strings.HasSuffix(ticker, f.Suffix) {
		ticker += f.Suffix
	}
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=6mo",
		f.BaseURL, url.PathEscape(ticker))

	var lastErr error
	for attempt := 0; attempt <= len(f.Backoff); attempt++ {
		if attempt > 0 {
			delay := f.Backoff[attempt-1]
			log.Printf("[WARN] %s rate limited, retrying in %s (attempt %d/%d)",
				ticker, delay, attempt+1, len(f.Backoff)+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		f.Tracker.Record()
		series, retryable, err := f.fetchOnce(ctx, endpoint)
		if err == nil {
			return series, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("fetch %s: retries exhausted: %w", ticker, lastErr)
}

func (f *YahooFetcher) fetchOnce(ctx context.Context, endpoint string) (model.Series, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	series, err := decodeChart(body)
	if err != nil {
		return nil, false, err
	}
	return series, false, nil
}

func decodeChart(body []byte) (model.Series, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: missing quote columns")
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("yahoo: quote columns shorter than timestamps")
	}

	// Adjusted close is preferred over raw close when present.
	var adj []interface{}
	if len(result.Indicators.Adjclose) > 0 {
		adj = result.Indicators.Adjclose[0].Adjclose
	}

	bars := make(model.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, haveClose := toFloat(quote.Close[i])
		if i < len(adj) {
			if a, ok := toFloat(adj[i]); ok {
				c, haveClose = a, true
			}
		}
		if !haveClose {
			continue // nothing to backfill the price fields from
		}

		o, ok := toFloat(at(quote.Open, i))
		if !ok {
			o = c
		}
		h, ok := toFloat(at(quote.High, i))
		if !ok {
			h = c
		}
		l, ok := toFloat(at(quote.Low, i))
		if !ok {
			l = c
		}
		v, ok := toFloat(at(quote.Volume, i))
		if !ok {
			v = 0
		}

		day := time.Unix(ts, 0).UTC()
		bars = append(bars, model.Bar{
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: no usable bars")
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func at(col []interface{}, i int) interface{} {
	if i < len(col) {
		return col[i]
	}
	return nil
}
