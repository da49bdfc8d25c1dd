package pipeline

import (
	"time"
)

// timeLayout is the ISO-8601 second-precision UTC format the list
// endpoints expect for fromTime/toTime.
const timeLayout = "2006-01-02T15:04:05Z"

// Window is the UTC date range scoping one remote list query. Each stage
// computes its own window; they are never shared.
type Window struct {
	From time.Time
	To   time.Time
}

// ComputeWindow builds a stage window around now. monthsBack and
// monthsForward are added as month offsets (a past offset is negative, as
// configured). From is floored to the start of its day; To is the end of
// its day, i.e. start of the next day minus one second.
func ComputeWindow(now time.Time, monthsBack, monthsForward int) Window {
	from := startOfDay(now.UTC().AddDate(0, monthsBack, 0))
	to := startOfDay(now.UTC().AddDate(0, monthsForward, 0)).AddDate(0, 0, 1).Add(-time.Second)
	return Window{From: from, To: to}
}

// FromTime renders the window start for a list query.
func (w Window) FromTime() string {
	return w.From.Format(timeLayout)
}

// ToTime renders the window end for a list query.
func (w Window) ToTime() string {
	return w.To.Format(timeLayout)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
