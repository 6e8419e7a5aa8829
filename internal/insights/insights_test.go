package insights

import (
	"math/rand/v2"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 3, 31, 15, 30, 0, 0, time.UTC)

func newSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func newTestProvider(seed uint64) *Provider {
	return NewProvider(
		WithRand(newSeededRand(seed)),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestConsensus_Listed(t *testing.T) {
	p := newTestProvider(1)
	tests := []struct {
		symbol   string
		buy      int
		analysts int
		rec      string
		upside   float64
	}{
		{"AAPL", 68, 45, "Buy", 13.48},
		{"MSFT", 75, 42, "Buy", 8.47},
		{"GOOGL", 65, 38, "Buy", 13.68},
		{"TSLA", 52, 40, "Hold", 15.56},
	}
	for _, tt := range tests {
		c := p.Consensus(tt.symbol)
		if c.BuyPercentage != tt.buy || c.NumberOfAnalysts != tt.analysts || c.Recommendation != tt.rec {
			t.Errorf("%s: unexpected consensus %+v", tt.symbol, c)
		}
		if c.Upside != tt.upside {
			t.Errorf("%s: expected upside %v, got %v", tt.symbol, tt.upside, c.Upside)
		}
		if sum := c.BuyPercentage + c.HoldPercentage + c.SellPercentage; sum != 100 {
			t.Errorf("%s: percentages sum to %d", tt.symbol, sum)
		}
	}
}

func TestConsensus_UnlistedRanges(t *testing.T) {
	p := newTestProvider(7)
	for i := 0; i < 200; i++ {
		c := p.Consensus("ZZZZ")
		if c.BuyPercentage < 50 || c.BuyPercentage >= 80 {
			t.Fatalf("buy out of range: %d", c.BuyPercentage)
		}
		if c.HoldPercentage < 15 || c.HoldPercentage >= 35 {
			t.Fatalf("hold out of range: %d", c.HoldPercentage)
		}
		if c.SellPercentage < 5 || c.SellPercentage >= 25 {
			t.Fatalf("sell out of range: %d", c.SellPercentage)
		}
		if c.TargetPrice < 200 || c.TargetPrice > 300 || c.CurrentPrice < 150 || c.CurrentPrice > 250 {
			t.Fatalf("prices out of range: %+v", c)
		}
		if c.NumberOfAnalysts < 30 || c.NumberOfAnalysts >= 60 {
			t.Fatalf("analysts out of range: %d", c.NumberOfAnalysts)
		}
		if c.Recommendation != "Buy" && c.Recommendation != "Hold" {
			t.Fatalf("unexpected recommendation %q", c.Recommendation)
		}
	}
}

func TestConsensus_SameSeedSameResult(t *testing.T) {
	a := newTestProvider(42).Consensus("ZZZZ")
	b := newTestProvider(42).Consensus("ZZZZ")
	if a != b {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestNews_ListedDatesFromClock(t *testing.T) {
	p := newTestProvider(1)
	news := p.News("AAPL")
	if len(news) != 4 {
		t.Fatalf("expected 4 articles, got %d", len(news))
	}
	if news[0].Date != "2025-03-31T13:30:00.000Z" {
		t.Errorf("unexpected first date %q", news[0].Date)
	}
	if news[3].Date != "2025-03-29T15:30:00.000Z" {
		t.Errorf("unexpected last date %q", news[3].Date)
	}
	if news[2].Sentiment != "negative" || news[2].Source != "CNBC" {
		t.Errorf("unexpected article %+v", news[2])
	}
	if got := len(p.News("MSFT")); got != 2 {
		t.Errorf("expected 2 MSFT articles, got %d", got)
	}
}

func TestNews_UnlistedFallback(t *testing.T) {
	p := newTestProvider(3)
	news := p.News("ACME")
	if len(news) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(news))
	}
	oldest := fixedNow.Add(-7 * 24 * time.Hour)
	for i, a := range news {
		if a.ID != "mock-"+strconv.Itoa(i) {
			t.Errorf("unexpected id %q", a.ID)
		}
		if !strings.Contains(a.Title, "ACME") || strings.Contains(a.Title, "{symbol}") {
			t.Errorf("title not filled: %q", a.Title)
		}
		if !strings.HasPrefix(a.Summary, "Latest developments regarding ACME") {
			t.Errorf("summary not filled: %q", a.Summary)
		}
		at, err := time.Parse(DateLayout, a.Date)
		if err != nil {
			t.Fatalf("bad date %q: %v", a.Date, err)
		}
		if at.After(fixedNow) || at.Before(oldest) {
			t.Errorf("date %s outside the last week", a.Date)
		}
		switch a.Sentiment {
		case "positive", "neutral", "negative":
		default:
			t.Errorf("unexpected sentiment %q", a.Sentiment)
		}
	}
}

func TestFinancials(t *testing.T) {
	p := newTestProvider(1)
	tests := []struct {
		symbol string
		eps    float64
		pe     float64
		divYld float64
	}{
		{"AAPL", 6.05, 30.65, 0.42},
		{"MSFT", 10.65, 38.5, 0.68},
		{"GOOGL", 5.58, 25.15, 0},
		{"ACME", 3.5, 25.0, 2.0},
	}
	for _, tt := range tests {
		f := p.Financials(tt.symbol)
		if f.EPS != tt.eps || f.PERatio != tt.pe || f.DividendYield != tt.divYld {
			t.Errorf("%s: unexpected financials %+v", tt.symbol, f)
		}
	}
	if f := p.Financials("AAPL"); f.Revenue != 383285000000 || f.NetMargin != 25.3 {
		t.Errorf("unexpected AAPL figures %+v", f)
	}
}

func TestManagement(t *testing.T) {
	p := newTestProvider(1)
	tests := []struct {
		symbol string
		team   int
		lead   string
		years  int
	}{
		{"AAPL", 5, "Tim Cook", 13},
		{"MSFT", 4, "Satya Nadella", 11},
		{"GOOGL", 4, "Sundar Pichai", 3},
		{"ACME", 3, "Chief Executive Officer", 0},
	}
	for _, tt := range tests {
		m := p.Management(tt.symbol)
		if len(m.Team) != tt.team || m.Team[0].Name != tt.lead || m.Team[0].YearsInRole != tt.years {
			t.Errorf("%s: unexpected team %+v", tt.symbol, m.Team)
		}
		if m.Vision == "" {
			t.Errorf("%s: empty vision", tt.symbol)
		}
	}
	if v := p.Management("ACME").Vision; !strings.HasPrefix(v, "ACME is committed") {
		t.Errorf("fallback vision not filled: %q", v)
	}
}

func TestSWOT(t *testing.T) {
	p := newTestProvider(1)
	s := p.SWOT("AAPL")
	if got := []int{len(s.Strengths), len(s.Weaknesses), len(s.Opportunities), len(s.Threats)}; !reflect.DeepEqual(got, []int{6, 5, 6, 6}) {
		t.Errorf("unexpected AAPL quadrant sizes %v", got)
	}
	fb := p.SWOT("ACME")
	if !reflect.DeepEqual(fb.Threats, []string{"Market competition and disruption", "Economic cyclicality", "Regulatory changes"}) {
		t.Errorf("unexpected fallback threats %v", fb.Threats)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	p := newTestProvider(1)
	s := p.SWOT("MSFT")
	s.Strengths[0] = "mutated"
	if p.SWOT("MSFT").Strengths[0] == "mutated" {
		t.Error("SWOT shares backing array with the table")
	}
	m := p.Management("AAPL")
	m.Team[0].Name = "mutated"
	if p.Management("AAPL").Team[0].Name == "mutated" {
		t.Error("Management shares backing array with the table")
	}
}

func TestWithData(t *testing.T) {
	doc := []byte(`
management:
  fallback:
    vision: "{symbol} builds things."
    team:
      - {name: Jane Doe, title: CEO, background: Founder}
news:
  fallback:
    count: 1
    max_age_hours: 1
    headlines: ["{symbol} news"]
    sources: [Wire]
    sentiments: [neutral]
`)
	opt, err := WithData(doc)
	if err != nil {
		t.Fatal(err)
	}
	p := NewProvider(opt, WithRand(newSeededRand(1)), WithClock(func() time.Time { return fixedNow }))
	if v := p.Management("AAPL").Vision; v != "AAPL builds things." {
		t.Errorf("expected custom table, got vision %q", v)
	}
	if news := p.News("AAPL"); len(news) != 1 || news[0].Title != "AAPL news" {
		t.Errorf("unexpected news %+v", news)
	}
}

func TestWithData_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "consensus: [\n"},
		{"empty team", "management:\n  fallback:\n    vision: x\n"},
		{"news fallback without headlines", "management:\n  fallback:\n    team: [{name: A}]\nnews:\n  fallback:\n    count: 2\n"},
	}
	for _, tt := range tests {
		if _, err := WithData([]byte(tt.doc)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
