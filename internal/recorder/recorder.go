package recorder

import "time"

// QuoteEvent records one resolved quote lookup.
type QuoteEvent struct {
	RequestID string
	Symbol    string
	Source    string // fetcher name: "rapidapi", "yahoo", "mock"
	Price     float64
	Detailed  bool
	At        time.Time
}

// ChartEvent records one synthesized chart.
type ChartEvent struct {
	RequestID  string
	Symbol     string
	Timeframe  string
	Points     int
	FirstPrice float64
	LastPrice  float64
	At         time.Time
}

// Recorder persists an audit trail of served data.
type Recorder interface {
	RecordQuote(ev *QuoteEvent) error
	RecordChart(ev *ChartEvent) error
	Close() error
}
