package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekline/internal/timeline"
)

// AxisViewState holds what the month and week header rows need.
type AxisViewState struct {
	LabelWidth int
	WeekWidth  int
	FirstWeek  int // 1-based index of the leftmost visible week
	Visible    int // number of visible week columns
	Weeks      []timeline.Week
	Months     []timeline.MonthGroup
	TodayWeek  int // 0 when today is outside the contract
	Caption    string

	LabelStyle lipgloss.Style
	MonthStyle lipgloss.Style
	WeekStyle  lipgloss.Style
	TodayStyle lipgloss.Style
	GapStyle   lipgloss.Style
}

func (s AxisViewState) lastVisible() int {
	last := s.FirstWeek + s.Visible - 1
	if last > len(s.Weeks) {
		last = len(s.Weeks)
	}
	return last
}

// RenderMonthHeader renders the month super-header. Months cut by the left
// edge are labelled from the first visible week.
func RenderMonthHeader(s AxisViewState) string {
	var b strings.Builder
	b.WriteString(s.GapStyle.Render(strings.Repeat(" ", max(0, s.LabelWidth))))

	first, last := s.FirstWeek, s.lastVisible()
	for _, g := range s.Months {
		from := max(g.FirstWeek, first)
		to := min(g.FirstWeek+g.Span-1, last)
		if from > to {
			continue
		}
		width := (to - from + 1) * s.WeekWidth
		label := Ellipsize(g.Label, width-1)
		b.WriteString(s.MonthStyle.Render(Fit("▏"+label, width)))
	}
	return b.String()
}

// RenderWeekHeader renders the week number row with today's week highlighted.
func RenderWeekHeader(s AxisViewState) string {
	var b strings.Builder
	b.WriteString(s.LabelStyle.Render(Fit(" "+s.Caption, s.LabelWidth)))

	for w := s.FirstWeek; w <= s.lastVisible(); w++ {
		style := s.WeekStyle
		if w == s.TodayWeek {
			style = s.TodayStyle
		}
		b.WriteString(style.Render(Fit(" "+s.Weeks[w-1].Label, s.WeekWidth)))
	}
	return b.String()
}
