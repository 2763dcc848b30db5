package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/weekline/internal/plan"
)

// ScheduleEntry is one row's schedule resolved to calendar dates.
type ScheduleEntry struct {
	Section string
	Name    string
	Amount  string
	Span    plan.Span
	From    time.Time // first day of the start week, zero when unscheduled
	To      time.Time // last day of the end week
}

// Scheduled reports whether the entry has a span.
func (e ScheduleEntry) Scheduled() bool {
	return e.Span.IsScheduled()
}

// Weeks formats the span as "W2-W4", "W3" or "unscheduled".
func (e ScheduleEntry) Weeks() string {
	switch {
	case !e.Span.IsScheduled():
		return "unscheduled"
	case e.Span.Start == e.Span.End:
		return fmt.Sprintf("W%d", e.Span.Start)
	default:
		return fmt.Sprintf("W%d-W%d", e.Span.Start, e.Span.End)
	}
}

// Dates formats the calendar range, empty when unscheduled.
func (e ScheduleEntry) Dates() string {
	if !e.Span.IsScheduled() {
		return ""
	}
	return e.From.Format("Jan 02") + " - " + e.To.Format("Jan 02")
}

// Schedule resolves every row of every section against the week axis, in
// display order. Spans reaching past the axis keep their week numbers but get
// no dates.
func Schedule(weeks []Week, sections []Section) []ScheduleEntry {
	var out []ScheduleEntry
	for _, sec := range sections {
		for _, r := range sec.Rows {
			e := ScheduleEntry{
				Section: sec.Category.Label,
				Name:    r.Item.Name,
				Amount:  r.Item.Amount,
				Span:    r.Item.Span,
			}
			if r.HasTimeline && r.Item.Span.End <= len(weeks) {
				e.From = weeks[r.Item.Span.Start-1].Start
				e.To = weeks[r.Item.Span.End-1].End()
			}
			out = append(out, e)
		}
	}
	return out
}

// FormatSchedule renders entries as plain text grouped by section.
func FormatSchedule(title string, entries []ScheduleEntry) string {
	nameWidth := 0
	for _, e := range entries {
		if w := len([]rune(entryLabel(e))); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	section := ""
	for _, e := range entries {
		if e.Section != section {
			section = e.Section
			fmt.Fprintf(&b, "\n%s\n", section)
		}
		line := fmt.Sprintf("  %-*s  %-8s %s", nameWidth, entryLabel(e), e.Weeks(), e.Dates())
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func entryLabel(e ScheduleEntry) string {
	if e.Amount == "" {
		return e.Name
	}
	return e.Name + " (" + e.Amount + ")"
}
