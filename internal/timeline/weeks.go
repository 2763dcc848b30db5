// Package timeline holds the week axis, the mapping from service items to
// grid rows, and the pointer-driven interaction state for editing spans.
// Nothing in here knows about terminals; the tui package drives it.
package timeline

import (
	"fmt"
	"time"

	"github.com/javiermolinar/weekline/internal/dateutil"
)

// Week is one 7-day column of the timeline, anchored to the contract start.
type Week struct {
	Index int // 1-based
	Start time.Time
	Label string // "W1", "W2", ...
	Month time.Month
	Year  int
}

// End returns the last day of the week.
func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// Contains reports whether t falls on one of the week's days.
func (w Week) Contains(t time.Time) bool {
	d := dateutil.DaysBetween(w.Start, t)
	return d >= 0 && d < 7
}

// WeekCount returns ceil(days/7)+1 for the range, never less than 1.
func WeekCount(start, end time.Time) int {
	return dateutil.WeekCount(start, end)
}

// BuildWeeks derives the ordered week buckets for a contract range.
// Week i starts i-1 weeks after start. If end is before start the result is
// a single week.
func BuildWeeks(start, end time.Time) []Week {
	start = dateutil.TruncateToDay(start)
	n := WeekCount(start, end)
	weeks := make([]Week, n)
	for i := range weeks {
		ws := start.AddDate(0, 0, 7*i)
		weeks[i] = Week{
			Index: i + 1,
			Start: ws,
			Label: fmt.Sprintf("W%d", i+1),
			Month: ws.Month(),
			Year:  ws.Year(),
		}
	}
	return weeks
}

// WeekOf returns the index of the week containing t, or 0 if none does.
func WeekOf(weeks []Week, t time.Time) int {
	for _, w := range weeks {
		if w.Contains(t) {
			return w.Index
		}
	}
	return 0
}

// MonthGroup is a contiguous run of weeks whose start dates share a month.
type MonthGroup struct {
	Label     string // "Jan 2024"
	Month     time.Month
	Year      int
	FirstWeek int
	Span      int
}

// GroupByMonth collapses weeks into month runs for the super-header.
func GroupByMonth(weeks []Week) []MonthGroup {
	var groups []MonthGroup
	for _, w := range weeks {
		if n := len(groups); n > 0 && groups[n-1].Month == w.Month && groups[n-1].Year == w.Year {
			groups[n-1].Span++
			continue
		}
		groups = append(groups, MonthGroup{
			Label:     w.Start.Format("Jan 2006"),
			Month:     w.Month,
			Year:      w.Year,
			FirstWeek: w.Index,
			Span:      1,
		})
	}
	return groups
}
