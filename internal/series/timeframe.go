package series

import "time"

// Timeframe selects the number of chart samples and their calendar spacing.
type Timeframe string

const (
	Intraday  Timeframe = "1D"
	Week      Timeframe = "1W"
	Month     Timeframe = "1M"
	HalfYear  Timeframe = "6M"
	Year      Timeframe = "1Y"
	ThreeYear Timeframe = "3Y"
	FiveYear  Timeframe = "5Y"
)

// DefaultTimeframe is used for missing or unrecognized tokens.
const DefaultTimeframe = Month

type stepUnit int

const (
	unitHour stepUnit = iota
	unitDay
	unitMonth
)

// resolution describes one timeframe: how many samples, how far apart they
// sit on the calendar, and how each sample is labeled. The step is a ratio
// (num/den units per sample, floored) so "1.2 trading days" stays exact.
type resolution struct {
	points int
	unit   stepUnit
	num    int
	den    int
	layout string
}

const (
	clockLayout     = "03:04 PM"
	weekdayLayout   = "Mon"
	monthDayLayout  = "Jan 2"
	yearMonthLayout = "Jan 06"
)

var resolutions = map[Timeframe]resolution{
	Intraday:  {points: 24, unit: unitHour, num: 1, den: 1, layout: clockLayout},
	Week:      {points: 7, unit: unitDay, num: 1, den: 1, layout: weekdayLayout},
	Month:     {points: 22, unit: unitDay, num: 6, den: 5, layout: monthDayLayout},
	HalfYear:  {points: 26, unit: unitDay, num: 7, den: 1, layout: monthDayLayout},
	Year:      {points: 52, unit: unitDay, num: 7, den: 1, layout: monthDayLayout},
	ThreeYear: {points: 156, unit: unitMonth, num: 1, den: 1, layout: yearMonthLayout},
	FiveYear:  {points: 260, unit: unitMonth, num: 1, den: 1, layout: yearMonthLayout},
}

// Timeframes lists every supported token, shortest span first.
var Timeframes = []Timeframe{Intraday, Week, Month, HalfYear, Year, ThreeYear, FiveYear}

// ParseTimeframe returns the token for s, or DefaultTimeframe when s is empty
// or unknown. It never fails.
func ParseTimeframe(s string) Timeframe {
	tf := Timeframe(s)
	if _, ok := resolutions[tf]; ok {
		return tf
	}
	return DefaultTimeframe
}

// Valid reports whether tf is one of the supported tokens.
func (tf Timeframe) Valid() bool {
	_, ok := resolutions[tf]
	return ok
}

// Points returns the sample count for tf.
func (tf Timeframe) Points() int {
	return tf.resolution().points
}

func (tf Timeframe) resolution() resolution {
	if r, ok := resolutions[tf]; ok {
		return r
	}
	return resolutions[DefaultTimeframe]
}

// LabelTime returns the instant sample index of total sits at, counting
// (total-index) steps back from now.
func LabelTime(tf Timeframe, index, total int, now time.Time) time.Time {
	r := tf.resolution()
	back := (total - index) * r.num / r.den
	switch r.unit {
	case unitHour:
		return now.Add(-time.Duration(back) * time.Hour)
	case unitMonth:
		return now.AddDate(0, -back, 0)
	default:
		return now.AddDate(0, 0, -back)
	}
}

// Label formats the sample instant in the timeframe's display granularity.
func Label(tf Timeframe, index, total int, now time.Time) string {
	return LabelTime(tf, index, total, now).Format(tf.resolution().layout)
}
