package calculator

import (
	"errors"
	"math"

	"StockDash/internal/model"
)

// TradingDaysPerYear is the lookback used for 52-week ranges on daily bars.
const TradingDaysPerYear = 252

// HighLow scans the most recent lookback bars and returns the highest high
// and the lowest low. A lookback <= 0 scans every bar.
func HighLow(bars []model.OHLCV, lookback int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	start := 0
	if lookback > 0 && len(bars) > lookback {
		start = len(bars) - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars[start:] {
		high = math.Max(high, b.High)
		low = math.Min(low, b.Low)
	}
	return high, low, nil
}
