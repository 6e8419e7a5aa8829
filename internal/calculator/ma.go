package calculator

import (
	"errors"

	"StockDash/internal/model"
)

// SMA computes the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), nil
}

// MovingAverage returns the SMA of bar closes over period bars.
func MovingAverage(bars []model.OHLCV, period int) (float64, error) {
	return SMA(Closes(bars), period)
}

// Closes extracts closing prices in bar order.
func Closes(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
