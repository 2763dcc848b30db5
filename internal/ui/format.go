package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekline/internal/plan"
	"github.com/javiermolinar/weekline/internal/timeline"
)

// Glyphs used by the text Gantt.
const (
	glyphBar   = "█"
	glyphEmpty = "·"
	glyphToday = "│"
)

// Gantt sizing limits.
const (
	minGanttLabel = 12
	maxGanttLabel = 32
	maxCellWidth  = 4
)

// GanttOpts configures text Gantt rendering.
type GanttOpts struct {
	Width      int       // total output width
	Today      time.Time // zero disables the today marker
	ShowAmount bool      // append the amount to row labels
	ShowSpan   bool      // append "W2-W4" after each track
}

// Gantt is an engagement resolved for text output.
type Gantt struct {
	Engagement *plan.Engagement
	Weeks      []timeline.Week
	Sections   []timeline.Section
}

// NewGantt maps items onto the engagement's week axis.
func NewGantt(e *plan.Engagement, items []*plan.Item) Gantt {
	catalog := plan.DefaultCatalog()
	return Gantt{
		Engagement: e,
		Weeks:      timeline.BuildWeeks(e.Start, e.End),
		Sections:   timeline.GroupRows(timeline.MapItems(items, catalog), catalog),
	}
}

// Schedule returns the plain-text schedule of the Gantt.
func (g Gantt) Schedule() string {
	return timeline.FormatSchedule(g.title(), timeline.Schedule(g.Weeks, g.Sections))
}

func (g Gantt) title() string {
	e := g.Engagement
	t := e.Name
	if e.Client != "" {
		t += " · " + e.Client
	}
	return t
}

// labelWidth fits the longest row label between the Gantt limits.
func (g Gantt) labelWidth(opts GanttOpts) int {
	w := minGanttLabel
	for _, sec := range g.Sections {
		for _, r := range sec.Rows {
			if n := ansi.StringWidth(rowLabel(r, opts.ShowAmount)) + 2; n > w {
				w = n
			}
		}
	}
	return min(w, maxGanttLabel)
}

// cellWidth spreads the weeks over the space right of the labels.
func (g Gantt) cellWidth(labelW int, opts GanttOpts) int {
	avail := opts.Width - labelW
	if opts.ShowSpan {
		avail -= 10
	}
	if len(g.Weeks) == 0 {
		return 1
	}
	return max(1, min(maxCellWidth, avail/len(g.Weeks)))
}

// Render writes the Gantt: a title, month and week headers, then one track
// per item grouped by category.
func (g Gantt) Render(w io.Writer, opts GanttOpts) {
	e := g.Engagement
	labelW := g.labelWidth(opts)
	cell := g.cellWidth(labelW, opts)
	today := 0
	if !opts.Today.IsZero() {
		today = timeline.WeekOf(g.Weeks, opts.Today)
	}

	fmt.Fprintf(w, "%s  %s\n\n", formatHeader(g.title()),
		formatMuted(fmt.Sprintf("%s → %s, %d weeks",
			e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), len(g.Weeks))))

	fmt.Fprintln(w, strings.Repeat(" ", labelW)+g.monthHeader(cell))
	fmt.Fprintln(w, strings.Repeat(" ", labelW)+g.weekHeader(cell, today))

	if len(g.Sections) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatMuted("No items yet. Add one with 'weekline add'."))
		return
	}

	for _, sec := range g.Sections {
		fmt.Fprintln(w, formatSection(sec.Category.Label))
		for _, r := range sec.Rows {
			label := pad(ansi.Truncate(rowLabel(r, opts.ShowAmount), labelW-2, "…"), labelW-2)
			line := "  " + label + g.track(r, cell, today)
			if opts.ShowSpan {
				line += " " + formatMuted(spanText(r.Item.Span))
			}
			fmt.Fprintln(w, line)
		}
	}
}

func (g Gantt) monthHeader(cell int) string {
	var b strings.Builder
	for _, m := range timeline.GroupByMonth(g.Weeks) {
		width := m.Span * cell
		label := m.Label
		if ansi.StringWidth(label) >= width {
			label = m.Month.String()[:3]
		}
		b.WriteString(pad(ansi.Truncate(label, width, ""), width))
	}
	return formatMuted(b.String())
}

func (g Gantt) weekHeader(cell, today int) string {
	var b strings.Builder
	for _, wk := range g.Weeks {
		var text string
		switch {
		case cell >= 3:
			text = pad(fmt.Sprintf("%d", wk.Index), cell)
		case wk.Index%5 == 0 || wk.Index == 1:
			text = pad(ansi.Truncate(fmt.Sprintf("%d", wk.Index), cell, ""), cell)
		default:
			text = strings.Repeat(" ", cell)
		}
		if wk.Index == today {
			text = formatToday(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// track renders one row's cells. The today marker only shows in empty cells.
func (g Gantt) track(r timeline.Row, cell, today int) string {
	bar := categoryColor(r.Color)
	var b strings.Builder
	for _, wk := range g.Weeks {
		switch {
		case r.Item.Span.Contains(wk.Index):
			b.WriteString(bar.Sprint(strings.Repeat(glyphBar, cell)))
		case wk.Index == today:
			b.WriteString(formatToday(glyphToday) + strings.Repeat(" ", cell-1))
		default:
			b.WriteString(formatMuted(glyphEmpty) + strings.Repeat(" ", cell-1))
		}
	}
	return b.String()
}

func rowLabel(r timeline.Row, showAmount bool) string {
	if showAmount && r.Item.Amount != "" {
		return r.Item.Name + " (" + r.Item.Amount + ")"
	}
	return r.Item.Name
}

func spanText(s plan.Span) string {
	return timeline.ScheduleEntry{Span: s}.Weeks()
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
