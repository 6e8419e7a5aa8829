package series

import (
	"testing"
	"time"
)

func TestParseTimeframe(t *testing.T) {
	cases := map[string]Timeframe{
		"1D":    Intraday,
		"1W":    Week,
		"1M":    Month,
		"6M":    HalfYear,
		"1Y":    Year,
		"3Y":    ThreeYear,
		"5Y":    FiveYear,
		"":      Month,
		"BOGUS": Month,
		"1d":    Month,
	}
	for in, want := range cases {
		if got := ParseTimeframe(in); got != want {
			t.Errorf("ParseTimeframe(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLabelTime_NonDecreasing(t *testing.T) {
	nows := []time.Time{
		fixedNow,
		time.Date(2024, time.February, 29, 0, 15, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 23, 59, 0, 0, time.Local),
	}
	for _, now := range nows {
		for _, tf := range Timeframes {
			n := tf.Points()
			prev := LabelTime(tf, 0, n, now)
			for i := 1; i < n; i++ {
				cur := LabelTime(tf, i, n, now)
				if cur.Before(prev) {
					t.Fatalf("%s from %s: index %d (%s) before index %d (%s)", tf, now, i, cur, i-1, prev)
				}
				prev = cur
			}
			if !prev.Before(now) {
				t.Errorf("%s: last sample %s not before now %s", tf, prev, now)
			}
		}
	}
}

func TestLabelTime_Offsets(t *testing.T) {
	cases := []struct {
		tf    Timeframe
		index int
		want  time.Time
	}{
		{Intraday, 23, fixedNow.Add(-time.Hour)},
		{Intraday, 0, fixedNow.Add(-24 * time.Hour)},
		{Week, 0, fixedNow.AddDate(0, 0, -7)},
		// floor(22 * 1.2) = 26 days
		{Month, 0, fixedNow.AddDate(0, 0, -26)},
		// floor(3 * 1.2) = 3 days
		{Month, 19, fixedNow.AddDate(0, 0, -3)},
		{HalfYear, 0, fixedNow.AddDate(0, 0, -26*7)},
		{Year, 51, fixedNow.AddDate(0, 0, -7)},
		{ThreeYear, 0, fixedNow.AddDate(0, -156, 0)},
		{FiveYear, 259, fixedNow.AddDate(0, -1, 0)},
	}
	for _, c := range cases {
		got := LabelTime(c.tf, c.index, c.tf.Points(), fixedNow)
		if !got.Equal(c.want) {
			t.Errorf("%s[%d]: got %s, want %s", c.tf, c.index, got, c.want)
		}
	}
}

func TestLabel_Formats(t *testing.T) {
	cases := []struct {
		tf   Timeframe
		want string
	}{
		{Intraday, "02:30 PM"},
		{Week, "Sun"},
		{Month, "Mar 30"},
		{HalfYear, "Mar 24"},
		{Year, "Mar 24"},
		{ThreeYear, "Mar 25"},
		{FiveYear, "Mar 25"},
	}
	for _, c := range cases {
		n := c.tf.Points()
		if got := Label(c.tf, n-1, n, fixedNow); got != c.want {
			t.Errorf("%s: got %q, want %q", c.tf, got, c.want)
		}
	}
}

func TestTimeframe_UnknownResolvesToMonth(t *testing.T) {
	bogus := Timeframe("BOGUS")
	if bogus.Valid() {
		t.Fatal("expected BOGUS to be invalid")
	}
	if bogus.Points() != 22 {
		t.Errorf("expected 22 points, got %d", bogus.Points())
	}
	if !LabelTime(bogus, 0, 22, fixedNow).Equal(LabelTime(Month, 0, 22, fixedNow)) {
		t.Error("expected BOGUS to share the month step")
	}
}
