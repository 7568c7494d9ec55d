// Package aggregate derives the behavioral MetricVector from tagged
// transactions and a daily balance series, per spec.md §4.2. Every function
// here is a pure computation: no I/O, no mutation of its inputs.
package aggregate

import "time"

// Window is an inclusive calendar-day span ending at a reference date.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns Wk = [T0-(k-1), T0], truncated to whole calendar days.
func NewWindow(refDate time.Time, days int) Window {
	refDate = truncateDay(refDate)
	return Window{
		Start: refDate.AddDate(0, 0, -(days - 1)),
		End:   refDate,
	}
}

// Contains reports whether d falls within the window, inclusive.
func (w Window) Contains(d time.Time) bool {
	d = truncateDay(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daySpan returns the number of whole calendar days in [start, end], inclusive.
func daySpan(start, end time.Time) int {
	start, end = truncateDay(start), truncateDay(end)
	return int(end.Sub(start).Hours()/24) + 1
}
