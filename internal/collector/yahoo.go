package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockDash/internal/calculator"
	"StockDash/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
// It only knows price data, so profile and financial modules stay empty.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps dashboard symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: yahooBaseURL,
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			"SNP500":  "^GSPC",
			"TLV":     "^TA125.TA",
			"FTSE100": "^FTSE",
			"DAX":     "^GDAXI",
			"BRK.B":   "BRK-B",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

type yahooMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	LongName           string  `json:"longName"`
	ShortName          string  `json:"shortName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta       yahooMeta `json:"meta"`
			Timestamp  []int64   `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooMeta, []model.OHLCV, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	if len(result.Indicators.Quote) > 0 {
		quote := result.Indicators.Quote[0]
		for i, ts := range result.Timestamp {
			o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
			if o == 0 && h == 0 && l == 0 && c == 0 {
				continue // skip null bars (holidays etc.)
			}
			bars = append(bars, model.OHLCV{
				Time:   time.Unix(ts, 0),
				Open:   o,
				High:   h,
				Low:    l,
				Close:  c,
				Volume: at(quote.Volume, i),
			})
		}
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return &result.Meta, bars, nil
}

// FetchSummary builds a price-only summary from one year of daily bars.
func (f *YahooFetcher) FetchSummary(ctx context.Context, symbol string) (*model.Summary, error) {
	meta, bars, err := f.fetchChart(ctx, symbol, "1d", "1y")
	if err != nil {
		return nil, err
	}

	price := meta.RegularMarketPrice
	if price == 0 && len(bars) > 0 {
		price = bars[len(bars)-1].Close
	}

	pm := model.PriceModule{
		Symbol:             symbol,
		ShortName:          meta.ShortName,
		LongName:           meta.LongName,
		RegularMarketPrice: price,
		Currency:           meta.Currency,
		FiftyTwoWeekHigh:   meta.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:    meta.FiftyTwoWeekLow,
	}

	if pm.FiftyTwoWeekHigh == 0 || pm.FiftyTwoWeekLow == 0 {
		if h, l, err := calculator.HighLow(bars, calculator.TradingDaysPerYear); err != nil {
			log.Printf("[WARN] %s 52-week range: %v", symbol, err)
		} else {
			pm.FiftyTwoWeekHigh, pm.FiftyTwoWeekLow = h, l
		}
	}
	if ma, err := calculator.MovingAverage(bars, 50); err != nil {
		log.Printf("[WARN] %s 50-day average: %v", symbol, err)
	} else {
		pm.FiftyDayAverage = ma
	}
	if ma, err := calculator.MovingAverage(bars, 200); err != nil {
		log.Printf("[WARN] %s 200-day average: %v", symbol, err)
	} else {
		pm.TwoHundredDayAverage = ma
	}

	return &model.Summary{Price: pm}, nil
}
