package orders

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Day normalizes a timestamp to the start of its calendar day in UTC.
// The calendar date is read in the timestamp's own location, so "2024-03-01" stays
// the first of March no matter which zone the loader produced it in.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar day by n whole days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns floor((to-from)/1day) on calendar days.
func DaysBetween(from, to time.Time) int {
	return int(math.Floor(Day(to).Sub(Day(from)).Hours() / 24))
}

// Window is a half-open range of calendar days [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow creates a window covering n days starting at start.
func NewWindow(start time.Time, days int) Window {
	if days < 0 {
		days = 0
	}
	s := Day(start)
	return Window{Start: s, End: s.AddDate(0, 0, days)}
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.Start) && d.Before(w.End)
}

// DayCount returns the number of calendar days in the window.
func (w Window) DayCount() int {
	if !w.End.After(w.Start) {
		return 0
	}
	return int(w.End.Sub(w.Start) / day)
}

// Days returns the start of every day within the window.
func (w Window) Days() []time.Time {
	var days []time.Time
	for current := w.Start; current.Before(w.End); current = current.AddDate(0, 0, 1) {
		days = append(days, current)
	}
	return days
}

// Index returns the day offset of t inside the window, or -1 when out of bounds.
func (w Window) Index(t time.Time) int {
	if !w.Contains(t) {
		return -1
	}
	return DaysBetween(w.Start, t)
}

// Label returns the ISO date used as a bucket label.
func Label(t time.Time) string {
	return t.Format("2006-01-02")
}

// Clip shortens the window so it never extends past the given last day (inclusive).
func (w Window) Clip(last time.Time) Window {
	limit := Day(last).AddDate(0, 0, 1)
	if w.End.After(limit) {
		w.End = limit
	}
	if w.End.Before(w.Start) {
		w.End = w.Start
	}
	return w
}
