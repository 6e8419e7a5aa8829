package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func yahooServer(t *testing.T, bars int, withRange bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/^GSPC" {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		ts := make([]int64, bars)
		closes := make([]*float64, bars)
		highs := make([]*float64, bars)
		lows := make([]*float64, bars)
		for i := 0; i < bars; i++ {
			ts[i] = int64(1700000000 + i*86400)
			c, h, l := float64(100+i), float64(101+i), float64(99+i)
			closes[i], highs[i], lows[i] = &c, &h, &l
		}
		closes[1], highs[1], lows[1] = nil, nil, nil // holiday

		meta := map[string]any{"symbol": "^GSPC", "currency": "USD", "regularMarketPrice": 5845.0}
		if withRange {
			meta["fiftyTwoWeekHigh"] = 6000.0
			meta["fiftyTwoWeekLow"] = 5000.0
		}
		resp := map[string]any{"chart": map[string]any{"result": []any{map[string]any{
			"meta":      meta,
			"timestamp": ts,
			"indicators": map[string]any{"quote": []any{map[string]any{
				"open": closes, "high": highs, "low": lows, "close": closes, "volume": closes,
			}}},
		}}}}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestYahooFetcher_DerivesAveragesAndRange(t *testing.T) {
	srv := yahooServer(t, 210, false)
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	s, err := f.FetchSummary(context.Background(), "SNP500")
	if err != nil {
		t.Fatal(err)
	}
	p := s.Price
	if p.RegularMarketPrice != 5845 || p.Symbol != "SNP500" {
		t.Errorf("unexpected price module: %+v", p)
	}
	// 209 usable bars, closes 100,102..309; last 50 closes are 260..309.
	if p.FiftyDayAverage != 284.5 {
		t.Errorf("expected 50-day average 284.5, got %v", p.FiftyDayAverage)
	}
	if p.TwoHundredDayAverage == 0 {
		t.Error("expected 200-day average")
	}
	if p.FiftyTwoWeekHigh != 310 {
		t.Errorf("expected 52w high 310, got %v", p.FiftyTwoWeekHigh)
	}
}

func TestYahooFetcher_PrefersMetaRange(t *testing.T) {
	srv := yahooServer(t, 20, true)
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	s, err := f.FetchSummary(context.Background(), "SNP500")
	if err != nil {
		t.Fatal(err)
	}
	if s.Price.FiftyTwoWeekHigh != 6000 || s.Price.FiftyTwoWeekLow != 5000 {
		t.Errorf("expected meta range, got %v/%v", s.Price.FiftyTwoWeekHigh, s.Price.FiftyTwoWeekLow)
	}
	if s.Price.FiftyDayAverage != 0 {
		t.Errorf("expected no 50-day average with 19 bars, got %v", s.Price.FiftyDayAverage)
	}
}

func TestYahooFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	if _, err := f.FetchSummary(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error")
	}
}
