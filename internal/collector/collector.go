package collector

import (
	"context"
	"errors"
	"fmt"
	"log"

	"StockDash/internal/model"
)

// ErrNotFound is returned when no fetcher produced a usable price.
var ErrNotFound = errors.New("stock not found")

// Collector resolves quotes from a primary fetcher and falls back to a mock
// fetcher when the primary fails.
type Collector struct {
	Primary  Fetcher
	Fallback Fetcher
}

// NewCollector creates a new Collector. A nil fallback disables fallback.
func NewCollector(primary, fallback Fetcher) *Collector {
	return &Collector{Primary: primary, Fallback: fallback}
}

// Quote fetches a summary for symbol and maps it into the public quote shape.
// It returns the name of the fetcher that served the data.
func (c *Collector) Quote(ctx context.Context, symbol string, detailed bool) (*model.Quote, string, error) {
	source := c.Primary.Name()
	sum, err := c.Primary.FetchSummary(ctx, symbol)
	if err != nil {
		if c.Fallback == nil {
			return nil, source, fmt.Errorf("fetch summary from %s: %w", source, err)
		}
		log.Printf("[WARN] %s summary for %s failed, using %s: %v", source, symbol, c.Fallback.Name(), err)
		source = c.Fallback.Name()
		if sum, err = c.Fallback.FetchSummary(ctx, symbol); err != nil {
			return nil, source, fmt.Errorf("fetch summary from %s: %w", source, err)
		}
	}

	if sum == nil || sum.Price.RegularMarketPrice == 0 {
		return nil, source, ErrNotFound
	}
	return BuildQuote(sum, symbol, detailed), source, nil
}

// BuildQuote maps a summary into a Quote, applying display defaults.
func BuildQuote(sum *model.Summary, symbol string, detailed bool) *model.Quote {
	p, prof, fin := sum.Price, sum.Profile, sum.Financial

	q := &model.Quote{
		Symbol:           firstNonEmpty(p.Symbol, symbol),
		Name:             firstNonEmpty(p.LongName, p.ShortName, symbol),
		Price:            p.RegularMarketPrice,
		Currency:         firstNonEmpty(p.Currency, "USD"),
		MarketCap:        fin.MarketCap,
		PERatio:          firstNonZero(p.TrailingPE, p.ForwardPE),
		PEGRatio:         p.PEGRatio,
		EPS:              p.EPS,
		Dividend:         p.TrailingAnnualDividendYield,
		Beta:             p.Beta,
		FiftyTwoWeekHigh: p.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  p.FiftyTwoWeekLow,
	}
	if !detailed {
		return q
	}

	q.QuoteDetail = &model.QuoteDetail{
		Sector:               firstNonEmpty(prof.Sector, "N/A"),
		Industry:             firstNonEmpty(prof.Industry, "N/A"),
		Website:              prof.Website,
		Description:          firstNonEmpty(prof.LongBusinessSummary, "No description available"),
		Employees:            prof.FullTimeEmployees,
		Revenue:              fin.TotalRevenue,
		GrossProfit:          fin.GrossProfits,
		OperatingCashFlow:    fin.OperatingCashflow,
		FreeCashFlow:         fin.FreeCashflow,
		CurrentRatio:         fin.CurrentRatio,
		DebtToEquity:         fin.DebtToEquity,
		ROE:                  fin.ReturnOnEquity,
		ROA:                  fin.ReturnOnAssets,
		ROIC:                 fin.ReturnOnCapital,
		DividendYield:        p.DividendYield,
		FiftyDayAverage:      p.FiftyDayAverage,
		TwoHundredDayAverage: p.TwoHundredDayAverage,
		CurrentPrice:         p.RegularMarketPrice,
	}
	return q
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
