package model

import "time"

// Bar represents a single daily OHLCV candlestick.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a chronological sequence of daily bars for one symbol.
// Dates are unique and ascending; gaps (holidays) are allowed.
type Series []Bar

// Last returns the most recent bar. Callers must check length first.
func (s Series) Last() Bar { return s[len(s)-1] }

// LastClose returns the most recent closing price, or 0 for an empty series.
func (s Series) LastClose() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}

// Change returns the day-over-day fractional change of the last close.
// Requires at least 2 bars, otherwise returns 0.
func (s Series) Change() float64 {
	if len(s) < 2 {
		return 0
	}
	prev := s[len(s)-2].Close
	if prev == 0 {
		return 0
	}
	return (s[len(s)-1].Close - prev) / prev
}

// IndexOfDate returns the index of the bar on the given calendar day,
// or -1 if that day is not present in the series.
func (s Series) IndexOfDate(d time.Time) int {
	y, m, day := d.Date()
	for i := range s {
		by, bm, bd := s[i].Date.Date()
		if by == y && bm == m && bd == day {
			return i
		}
	}
	return -1
}
