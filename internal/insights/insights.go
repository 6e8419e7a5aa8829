package insights

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"StockDash/internal/model"
)

//go:embed insights.yaml
var insightsYAML []byte

// DateLayout is the wire format of news dates.
const DateLayout = "2006-01-02T15:04:05.000Z"

const symbolPlaceholder = "{symbol}"

type articleEntry struct {
	ID        string  `yaml:"id"`
	Title     string  `yaml:"title"`
	Source    string  `yaml:"source"`
	AgeHours  float64 `yaml:"age_hours"`
	Sentiment string  `yaml:"sentiment"`
	Summary   string  `yaml:"summary"`
}

type newsFallback struct {
	Count       int      `yaml:"count"`
	MaxAgeHours float64  `yaml:"max_age_hours"`
	Headlines   []string `yaml:"headlines"`
	Sources     []string `yaml:"sources"`
	Sentiments  []string `yaml:"sentiments"`
	Summary     string   `yaml:"summary"`
}

type tables struct {
	Consensus map[string]model.Consensus `yaml:"consensus"`
	News      struct {
		Articles map[string][]articleEntry `yaml:"articles"`
		Fallback newsFallback              `yaml:"fallback"`
	} `yaml:"news"`
	Financials struct {
		Symbols  map[string]model.Financials `yaml:"symbols"`
		Fallback model.Financials            `yaml:"fallback"`
	} `yaml:"financials"`
	Management struct {
		Symbols  map[string]model.Management `yaml:"symbols"`
		Fallback model.Management            `yaml:"fallback"`
	} `yaml:"management"`
	SWOT struct {
		Symbols  map[string]model.SWOT `yaml:"symbols"`
		Fallback model.SWOT            `yaml:"fallback"`
	} `yaml:"swot"`
}

// parse decodes and checks an insights table.
func parse(data []byte) (*tables, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse insights: %w", err)
	}
	fb := t.News.Fallback
	if fb.Count > 0 && (len(fb.Headlines) == 0 || len(fb.Sources) == 0 || len(fb.Sentiments) == 0) {
		return nil, errors.New("news fallback: headlines, sources and sentiments are required")
	}
	if fb.Count < 0 || fb.MaxAgeHours < 0 {
		return nil, errors.New("news fallback: count and max_age_hours must not be negative")
	}
	if len(t.Management.Fallback.Team) == 0 {
		return nil, errors.New("management fallback: empty team")
	}
	return &t, nil
}

var (
	defaultOnce   sync.Once
	defaultTables *tables
)

func defaults() *tables {
	defaultOnce.Do(func() {
		t, err := parse(insightsYAML)
		if err != nil {
			panic(err)
		}
		defaultTables = t
	})
	return defaultTables
}

// Provider serves the research panels next to a stock's chart: analyst
// consensus, news, financials, management and SWOT. Listed symbols read
// from a fixed table; consensus and news for other symbols are randomized.
// It is safe for concurrent use.
type Provider struct {
	data *tables
	now  func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Provider.
type Option func(*Provider)

// WithRand replaces the random source used for unlisted symbols.
func WithRand(rng *rand.Rand) Option {
	return func(p *Provider) { p.rng = rng }
}

// WithClock replaces the wall clock used to date news articles.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithData replaces the embedded table with a YAML document of the same shape.
func WithData(data []byte) (Option, error) {
	t, err := parse(data)
	if err != nil {
		return nil, err
	}
	return func(p *Provider) { p.data = t }, nil
}

// NewProvider returns a Provider over the embedded table.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.data == nil {
		p.data = defaults()
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return p
}

// Consensus returns analyst ratings for symbol with the upside to target.
func (p *Provider) Consensus(symbol string) model.Consensus {
	c, ok := p.data.Consensus[symbol]
	if !ok {
		c = p.randomConsensus()
	}
	if c.CurrentPrice > 0 {
		c.Upside = round2((c.TargetPrice - c.CurrentPrice) / c.CurrentPrice * 100)
	}
	return c
}

func (p *Provider) randomConsensus() model.Consensus {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := model.Consensus{
		BuyPercentage:    p.rng.IntN(30) + 50,
		HoldPercentage:   p.rng.IntN(20) + 15,
		SellPercentage:   p.rng.IntN(20) + 5,
		TargetPrice:      round2(200 + p.rng.Float64()*100),
		CurrentPrice:     round2(150 + p.rng.Float64()*100),
		NumberOfAnalysts: p.rng.IntN(30) + 30,
		Recommendation:   "Hold",
	}
	if p.rng.Float64() > 0.6 {
		c.Recommendation = "Buy"
	}
	return c
}

// News returns recent headlines for symbol, newest first for listed symbols.
func (p *Provider) News(symbol string) []model.NewsArticle {
	now := p.now().UTC()
	if entries, ok := p.data.News.Articles[symbol]; ok {
		out := make([]model.NewsArticle, len(entries))
		for i, e := range entries {
			out[i] = model.NewsArticle{
				ID:        e.ID,
				Title:     e.Title,
				Source:    e.Source,
				Date:      now.Add(-hours(e.AgeHours)).Format(DateLayout),
				Sentiment: e.Sentiment,
				Summary:   e.Summary,
			}
		}
		return out
	}

	fb := p.data.News.Fallback
	out := make([]model.NewsArticle, fb.Count)
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range out {
		out[i] = model.NewsArticle{
			ID:        "mock-" + strconv.Itoa(i),
			Title:     fill(fb.Headlines[p.rng.IntN(len(fb.Headlines))], symbol),
			Source:    fb.Sources[p.rng.IntN(len(fb.Sources))],
			Date:      now.Add(-hours(p.rng.Float64() * fb.MaxAgeHours)).Format(DateLayout),
			Sentiment: fb.Sentiments[p.rng.IntN(len(fb.Sentiments))],
			Summary:   fill(fb.Summary, symbol),
		}
	}
	return out
}

// Financials returns headline figures; unlisted symbols get the sector-neutral row.
func (p *Provider) Financials(symbol string) model.Financials {
	if f, ok := p.data.Financials.Symbols[symbol]; ok {
		return f
	}
	return p.data.Financials.Fallback
}

func (p *Provider) Management(symbol string) model.Management {
	m, ok := p.data.Management.Symbols[symbol]
	if !ok {
		m = p.data.Management.Fallback
		m.Vision = fill(m.Vision, symbol)
	}
	m.Team = slices.Clone(m.Team)
	return m
}

func (p *Provider) SWOT(symbol string) model.SWOT {
	s, ok := p.data.SWOT.Symbols[symbol]
	if !ok {
		s = p.data.SWOT.Fallback
	}
	return model.SWOT{
		Strengths:     slices.Clone(s.Strengths),
		Weaknesses:    slices.Clone(s.Weaknesses),
		Opportunities: slices.Clone(s.Opportunities),
		Threats:       slices.Clone(s.Threats),
	}
}

func fill(tmpl, symbol string) string {
	return strings.ReplaceAll(tmpl, symbolPlaceholder, symbol)
}

func hours(h float64) time.Duration {
	return time.Duration(math.Round(h * float64(time.Hour)))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
