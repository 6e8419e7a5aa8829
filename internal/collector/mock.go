package collector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"StockDash/internal/model"
)

var mockPrices = map[string]float64{
	"AAPL":    238.45,
	"MSFT":    445.80,
	"GOOGL":   306.57,
	"TSLA":    285.60,
	"AMZN":    215.75,
	"NVDA":    925.50,
	"META":    585.20,
	"NFLX":    310.45,
	"TCEHY":   98.75,
	"BABA":    110.25,
	"SNP500":  5845.00,
	"TLV":     1625.00,
	"TOMUSD":  32150.50,
	"FTSE100": 8250.25,
	"DAX":     19485.75,
}

type mockMetrics struct {
	trailingPE    float64
	forwardPE     float64
	pegRatio      float64
	eps           float64
	dividendYield float64
}

var mockMetricsTable = map[string]mockMetrics{
	"AAPL":  {32.5, 28.4, 2.1, 7.34, 0.0042},
	"MSFT":  {38.2, 33.1, 2.4, 11.67, 0.0068},
	"GOOGL": {28.3, 25.8, 1.9, 10.80, 0},
	"TSLA":  {62.1, 54.3, 2.8, 4.59, 0},
	"AMZN":  {41.8, 37.2, 2.2, 5.15, 0},
	"NVDA":  {58.4, 48.2, 2.6, 15.84, 0.0028},
	"META":  {28.9, 24.1, 1.85, 20.26, 0},
	"NFLX":  {45.3, 39.7, 2.35, 6.84, 0},
}

var defaultMockMetrics = mockMetrics{25.5, 22.3, 1.8, 12.0, 0.015}

// MockFetcher builds placeholder summaries from static tables. Symbols
// without a table price get a random one in [50, 550).
type MockFetcher struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockFetcher creates a MockFetcher. A nil rng is seeded from the clock.
func NewMockFetcher(rng *rand.Rand) *MockFetcher {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &MockFetcher{rng: rng}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSummary(_ context.Context, symbol string) (*model.Summary, error) {
	price, ok := mockPrices[symbol]
	if !ok {
		m.mu.Lock()
		price = m.rng.Float64()*500 + 50
		m.mu.Unlock()
	}
	metrics, ok := mockMetricsTable[symbol]
	if !ok {
		metrics = defaultMockMetrics
	}

	return &model.Summary{
		Price: model.PriceModule{
			Symbol:                      symbol,
			ShortName:                   symbol,
			LongName:                    fmt.Sprintf("%s Corporation", symbol),
			RegularMarketPrice:          price,
			Currency:                    "USD",
			TrailingPE:                  metrics.trailingPE,
			ForwardPE:                   metrics.forwardPE,
			PEGRatio:                    metrics.pegRatio,
			EPS:                         metrics.eps,
			Beta:                        1.2,
			FiftyTwoWeekHigh:            price * 1.3,
			FiftyTwoWeekLow:             price * 0.7,
			FiftyDayAverage:             price * 1.05,
			TwoHundredDayAverage:        price * 1.02,
			TrailingAnnualDividendYield: metrics.dividendYield,
			DividendYield:               metrics.dividendYield,
		},
		Profile: model.ProfileModule{
			Sector:              "Technology",
			Industry:            "Software Infrastructure",
			Website:             fmt.Sprintf("https://www.%s.com", strings.ToLower(symbol)),
			LongBusinessSummary: fmt.Sprintf("%s is a leading company in the technology sector.", symbol),
			FullTimeEmployees:   180000,
		},
		Financial: model.FinancialModule{
			MarketCap:         price * 1e9,
			TotalRevenue:      394328000000,
			GrossProfits:      198987000000,
			OperatingCashflow: 110543000000,
			FreeCashflow:      95735000000,
			CurrentRatio:      1.35,
			DebtToEquity:      0.12,
			ReturnOnEquity:    0.78,
			ReturnOnAssets:    0.25,
			ReturnOnCapital:   0.45,
		},
	}, nil
}
