package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"IndexPulse/internal/applog"
	"IndexPulse/internal/model"
)

// NSEFetcher implements SnapshotFetcher against the NSE equity-stockIndices
// API. The endpoint rejects bare clients, so every request carries a full
// set of browser headers and the session is primed against the market-data
// page first to pick up the required cookies.
type NSEFetcher struct {
	client  *http.Client
	baseURL string
	index   string
	retries int
	log     *applog.Logger
	primed  bool
}

// NewNSEFetcher creates a fetcher with optional proxy support.
func NewNSEFetcher(baseURL, index string, timeout time.Duration, retries int, proxyURL string, log *applog.Logger) *NSEFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	jar, _ := cookiejar.New(nil)
	if retries < 1 {
		retries = 1
	}
	return &NSEFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			Jar:       jar,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		index:   index,
		retries: retries,
		log:     log,
	}
}

func (f *NSEFetcher) Name() string { return "nse" }

func (f *NSEFetcher) setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", f.baseURL+"/market-data/live-equity-market?symbol="+url.QueryEscape(f.index))
	req.Header.Set("Origin", f.baseURL)
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("sec-ch-ua", `"Chromium";v="112", "Google Chrome";v="112", "Not:A-Brand";v="99"`)
	req.Header.Set("sec-ch-ua-mobile", "?0")
	req.Header.Set("sec-ch-ua-platform", `"Windows"`)
}

// prime visits the human-facing page so the cookie jar holds a live session
// before the API call.
func (f *NSEFetcher) prime(ctx context.Context) error {
	u := f.baseURL + "/market-data/live-equity-market?symbol=" + url.QueryEscape(f.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	f.setBrowserHeaders(req)
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("prime session: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	f.primed = true
	return nil
}

// nseRow mirrors one entry of the API's "data" array. Numeric fields come
// back as JSON numbers or as formatted strings depending on the gateway, so
// they decode into interface{} and go through toFloat.
type nseRow struct {
	Symbol        string      `json:"symbol"`
	Priority      int         `json:"priority"`
	LastPrice     interface{} `json:"lastPrice"`
	PreviousClose interface{} `json:"previousClose"`
	YearHigh      interface{} `json:"yearHigh"`
	YearLow       interface{} `json:"yearLow"`
}

type nseIndexResponse struct {
	Data []nseRow `json:"data"`
}

// FetchIndexSnapshot returns one PriceRecord per index constituent.
func (f *NSEFetcher) FetchIndexSnapshot(ctx context.Context) ([]model.PriceRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= f.retries; attempt++ {
		if !f.primed {
			if err := f.prime(ctx); err != nil {
				lastErr = err
				if attempt < f.retries {
					if waitErr := sleepCtx(ctx, backoff(attempt)); waitErr != nil {
						return nil, waitErr
					}
				}
				continue
			}
		}
		records, err := f.fetchOnce(ctx)
		if err == nil {
			return records, nil
		}
		lastErr = err
		f.primed = false // cookies may have expired; re-prime on retry
		f.log.WithError(err).Warnf("nse snapshot attempt %d/%d failed", attempt, f.retries)
		if attempt < f.retries {
			if waitErr := sleepCtx(ctx, backoff(attempt)); waitErr != nil {
				return nil, waitErr
			}
		}
	}
	return nil, fmt.Errorf("nse snapshot: %w", lastErr)
}

func (f *NSEFetcher) fetchOnce(ctx context.Context) ([]model.PriceRecord, error) {
	u := f.baseURL + "/api/equity-stockIndices?index=" + url.QueryEscape(f.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	f.setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nse fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nse read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nse: status %d", resp.StatusCode)
	}

	var idx nseIndexResponse
	if err := json.Unmarshal(body, &idx); err != nil {
		return nil, fmt.Errorf("nse decode: %w", err)
	}
	if len(idx.Data) == 0 {
		return nil, fmt.Errorf("nse: no data rows returned")
	}

	records := make([]model.PriceRecord, 0, len(idx.Data))
	for _, row := range idx.Data {
		// The payload includes the index aggregate itself as a priority row.
		if row.Priority != 0 || row.Symbol == f.index {
			continue
		}
		last, ok := toFloat(row.LastPrice)
		if !ok {
			f.log.Warnf("nse: dropping %s, unparseable lastPrice", row.Symbol)
			continue
		}
		prev, ok := toFloat(row.PreviousClose)
		if !ok {
			f.log.Warnf("nse: dropping %s, unparseable previousClose", row.Symbol)
			continue
		}
		rec := model.PriceRecord{
			Symbol:        row.Symbol,
			LastPrice:     last,
			PreviousClose: prev,
		}
		if v, ok := toFloat(row.YearHigh); ok {
			rec.Week52High = model.Opt(v)
		}
		if v, ok := toFloat(row.YearLow); ok {
			rec.Week52Low = model.Opt(v)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("nse: no constituent rows in response")
	}
	return records, nil
}

// toFloat accepts the numeric shapes the gateway produces: plain numbers
// and strings with thousands separators or a trailing percent sign.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(strings.TrimSuffix(n, "%"), ",", ""))
		if s == "" || s == "-" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
