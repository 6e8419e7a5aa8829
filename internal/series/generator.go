package series

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"StockDash/internal/model"
)

// DefaultBasePrice seeds the walk for symbols missing from the price table.
const DefaultBasePrice = 150.0

var basePrices = map[string]float64{
	"AAPL":  238.45,
	"MSFT":  445.80,
	"GOOGL": 306.57,
	"TSLA":  285.60,
	"AMZN":  215.75,
	"NVDA":  925.50,
	"META":  585.20,
	"NFLX":  310.45,
}

// BasePrice returns the seed price for symbol. Lookup is exact; callers
// normalize case at the boundary.
func BasePrice(symbol string) float64 {
	if p, ok := basePrices[symbol]; ok {
		return p
	}
	return DefaultBasePrice
}

// Params tunes the random walk.
type Params struct {
	// Bias is subtracted from the uniform draw; below 0.5 drifts upward.
	Bias float64 `yaml:"bias"`
	// Volatility scales each step as a fraction of the base price.
	Volatility float64 `yaml:"volatility"`
	// FloorRatio is the fraction of the base price the walk never falls below.
	FloorRatio float64 `yaml:"floor_ratio"`
	MinVolume  int64   `yaml:"min_volume"`
	// VolumeSpan is the width of the volume range: [MinVolume, MinVolume+VolumeSpan).
	VolumeSpan int64 `yaml:"volume_span"`
}

// DefaultParams returns the demo tuning.
func DefaultParams() Params {
	return Params{
		Bias:       0.48,
		Volatility: 0.02,
		FloorRatio: 0.5,
		MinVolume:  10_000_000,
		VolumeSpan: 50_000_000,
	}
}

// Generator synthesizes chart series. It is safe for concurrent use.
type Generator struct {
	params Params
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand replaces the random source, e.g. with a fixed seed in tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithClock replaces the wall clock used for labels.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator seeded from the wall clock unless
// WithRand is given.
func NewGenerator(params Params, opts ...Option) *Generator {
	g := &Generator{params: params, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return g
}

// NewSeededRand returns a reproducible random source for seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Floor returns the lowest price the walk can emit for symbol.
func (g *Generator) Floor(symbol string) float64 {
	return BasePrice(symbol) * g.params.FloorRatio
}

// Generate returns tf.Points() samples for symbol, oldest first. Unknown
// timeframes behave as DefaultTimeframe and unknown symbols start at
// DefaultBasePrice.
func (g *Generator) Generate(symbol string, tf Timeframe) []model.ChartPoint {
	if !tf.Valid() {
		tf = DefaultTimeframe
	}
	points := tf.Points()
	base := BasePrice(symbol)
	floor := base * g.params.FloorRatio
	now := g.now()

	out := make([]model.ChartPoint, points)
	current := base

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < points; i++ {
		step := (g.rng.Float64() - g.params.Bias) * (base * g.params.Volatility)
		current = max(current+step, floor)

		out[i] = model.ChartPoint{
			Date:   Label(tf, i, points, now),
			Price:  roundPrice(current, floor),
			Volume: g.volume(),
		}
	}
	return out
}

func (g *Generator) volume() int64 {
	if g.params.VolumeSpan <= 0 {
		return g.params.MinVolume
	}
	return g.params.MinVolume + g.rng.Int64N(g.params.VolumeSpan)
}

// roundPrice rounds to cents, rounding up instead when plain rounding would
// dip under the floor.
func roundPrice(p, floor float64) float64 {
	r := decimal.NewFromFloat(p).Round(2)
	f := decimal.NewFromFloat(floor)
	if r.LessThan(f) {
		r = f.RoundCeil(2)
	}
	return r.InexactFloat64()
}
