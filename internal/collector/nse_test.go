package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"IndexPulse/internal/applog"
)

const nseFixture = `{
	"data": [
		{"symbol": "NIFTY 50", "priority": 1, "lastPrice": 22150.2, "previousClose": 22000.0},
		{"symbol": "RELIANCE", "priority": 0, "lastPrice": 2955.6, "previousClose": 2900.15,
		 "yearHigh": 3100.0, "yearLow": 2200.5},
		{"symbol": "TCS", "priority": 0, "lastPrice": "4,102.35", "previousClose": "4,050.00",
		 "yearHigh": "4,500.00", "yearLow": "3,200.00"},
		{"symbol": "NEWCO", "priority": 0, "lastPrice": 512.4, "previousClose": 500.0,
		 "yearHigh": "-", "yearLow": null}
	]
}`

func newNSETestServer(t *testing.T, primed *bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/market-data/live-equity-market", func(w http.ResponseWriter, r *http.Request) {
		*primed = true
		http.SetCookie(w, &http.Cookie{Name: "nsit", Value: "test-session"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/equity-stockIndices", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("index") != "NIFTY 50" {
			http.Error(w, "unknown index", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nseFixture))
	})
	return httptest.NewServer(mux)
}

func TestNSEFetcher_FetchIndexSnapshot(t *testing.T) {
	var primed bool
	srv := newNSETestServer(t, &primed)
	defer srv.Close()

	f := NewNSEFetcher(srv.URL, "NIFTY 50", 5*time.Second, 2, "", applog.Nop())
	records, err := f.FetchIndexSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !primed {
		t.Error("fetcher must prime the session before hitting the API")
	}

	// The index aggregate row is filtered out.
	if len(records) != 3 {
		t.Fatalf("expected 3 constituent records, got %d", len(records))
	}

	rel := records[0]
	if rel.Symbol != "RELIANCE" || rel.LastPrice != 2955.6 || rel.PreviousClose != 2900.15 {
		t.Errorf("unexpected RELIANCE record: %+v", rel)
	}
	if !rel.Week52High.Valid || rel.Week52High.Value != 3100.0 {
		t.Errorf("expected yearHigh 3100, got %+v", rel.Week52High)
	}

	// String numbers with thousands separators parse.
	tcs := records[1]
	if tcs.LastPrice != 4102.35 || !tcs.Week52Low.Valid || tcs.Week52Low.Value != 3200 {
		t.Errorf("unexpected TCS record: %+v", tcs)
	}

	// Unparseable optional fields are absent, not zero.
	newco := records[2]
	if newco.Week52High.Valid || newco.Week52Low.Valid {
		t.Errorf("absent range must stay absent: %+v", newco)
	}
}

func TestNSEFetcher_SendsBrowserHeaders(t *testing.T) {
	var apiHeaders http.Header
	mux := http.NewServeMux()
	mux.HandleFunc("/market-data/live-equity-market", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/equity-stockIndices", func(w http.ResponseWriter, r *http.Request) {
		apiHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nseFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewNSEFetcher(srv.URL, "NIFTY 50", 5*time.Second, 2, "", applog.Nop())
	if _, err := f.FetchIndexSnapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The gateway rejects clients missing the Chrome header set, including
	// the client hints.
	for _, h := range []string{
		"User-Agent", "Accept-Language", "Referer",
		"Sec-Fetch-Mode", "sec-ch-ua", "sec-ch-ua-mobile", "sec-ch-ua-platform",
	} {
		if apiHeaders.Get(h) == "" {
			t.Errorf("API request missing header %s", h)
		}
	}
	if got := apiHeaders.Get("sec-ch-ua-platform"); got != `"Windows"` {
		t.Errorf("unexpected sec-ch-ua-platform: %s", got)
	}
}

func TestNSEFetcher_RetriesThenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewNSEFetcher(srv.URL, "NIFTY 50", time.Second, 2, "", applog.Nop())
	if _, err := f.FetchIndexSnapshot(context.Background()); err == nil {
		t.Fatal("expected failure after exhausting retries")
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{12.5, 12.5, true},
		{"1,234.56", 1234.56, true},
		{"5.25%", 5.25, true},
		{"-", 0, false},
		{"12abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := toFloat(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("toFloat(%v): expected (%v, %v), got (%v, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}
