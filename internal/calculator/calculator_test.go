package calculator

import (
	"math"
	"testing"

	"StockDash/internal/model"
)

func bars(closes ...float64) []model.OHLCV {
	out := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		out[i] = model.OHLCV{Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return out
}

func TestSMA(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3, 4, 5}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4.5 {
		t.Errorf("expected 4.5, got %v", got)
	}
	if _, err := SMA([]float64{1}, 2); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := SMA([]float64{1}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestMovingAverage(t *testing.T) {
	got, err := MovingAverage(bars(10, 20, 30), 3)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-20) > 1e-9 {
		t.Errorf("expected 20, got %v", got)
	}
}

func TestHighLow(t *testing.T) {
	b := bars(50, 10, 20, 30)
	high, low, err := HighLow(b, 2)
	if err != nil {
		t.Fatal(err)
	}
	if high != 31 || low != 19 {
		t.Errorf("expected 31/19, got %v/%v", high, low)
	}
	high, low, _ = HighLow(b, 0)
	if high != 51 || low != 9 {
		t.Errorf("expected 51/9 over all bars, got %v/%v", high, low)
	}
	if _, _, err := HighLow(nil, 5); err == nil {
		t.Error("expected error for empty bars")
	}
}
