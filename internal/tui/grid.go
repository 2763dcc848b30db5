package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekline/internal/plan"
	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/view"
)

const (
	ghostGlyph = "░"
	emptyGlyph = "·"
	todayGlyph = "│"
)

// renderBody renders the visible body lines of the grid.
func (m Model) renderBody() []string {
	height := m.bodyHeight()
	lines := make([]string, 0, height)
	for i := m.rowOffset; i < len(m.lines) && len(lines) < height; i++ {
		l := m.lines[i]
		if l.header {
			lines = append(lines, m.renderSectionLine(m.sections[l.section]))
			continue
		}
		lines = append(lines, m.renderLabel(l.row)+m.renderTrack(l.row))
	}
	return lines
}

func (m Model) renderSectionLine(sec timeline.Section) string {
	text := " " + sec.Category.Label
	return m.styles.SectionStyleFor(sec.Category.Color).Render(view.Fit(text, m.width))
}

// renderLabel renders the label column: the item name, then its amount in a
// muted style when enabled.
func (m Model) renderLabel(row timeline.Row) string {
	lw := m.labelWidth()
	if lw <= 0 {
		return ""
	}

	amount := ""
	if m.config.UI.ShowAmount && row.Item.Amount != "" {
		amount = row.Item.Amount + " "
	}
	nameW := lw - 2 - lipgloss.Width(amount)
	if nameW < lw/2 {
		amount = ""
		nameW = lw - 3
	}

	nameStyle := m.styles.RowLabelStyle
	if !row.HasTimeline {
		nameStyle = m.styles.UnscheduledStyle
	}
	name := view.Fit("  "+view.Ellipsize(row.Item.Name, nameW-1), nameW+2)
	return nameStyle.Render(name) + m.styles.AmountStyle.Render(view.Fit(amount, lw-nameW-2))
}

// renderTrack renders a row's week cells for the visible range. The track is
// laid out for the whole axis and cut to the scrolled window.
func (m Model) renderTrack(row timeline.Row) string {
	n := len(m.weeks)
	ww := m.weekWidth
	vis := m.visibleWeeks()
	if n == 0 || vis == 0 {
		return ""
	}

	bar := row.Item.Span
	var ghost plan.Span
	if drag, ok := m.interaction.Drag(); ok && drag.ItemID == row.ID() {
		if preview, ok := m.interaction.Preview(); ok {
			bar = preview.Span
			ghost = drag.Origin
		}
	}
	if !bar.IsScheduled() {
		bar = plan.Unscheduled
	}

	shades := m.styleCache.Bar(row.Color)
	today := m.todayWeek()

	var b strings.Builder
	for w := 1; w <= n; w++ {
		switch {
		case bar.IsScheduled() && w == bar.Start:
			b.WriteString(m.renderBar(row.Item.Name, bar, shades))
			w = bar.End
		case ghost.Contains(w):
			b.WriteString(shades.Ghost.Render(strings.Repeat(ghostGlyph, ww)))
		case w == today:
			b.WriteString(m.styles.TodayCellStyle.Render(todayGlyph + strings.Repeat(" ", ww-1)))
		default:
			b.WriteString(m.styles.GridStyle.Render(emptyGlyph + strings.Repeat(" ", ww-1)))
		}
	}

	from := m.weekOffset * ww
	return ansi.Cut(b.String(), from, from+vis*ww)
}

// renderBar draws a bar across its span: a handle cell on each edge and the
// item name on the body.
func (m Model) renderBar(name string, span plan.Span, shades BarStyles) string {
	width := span.Weeks() * m.weekWidth
	inner := max(0, width-2)
	body := view.Fit(view.Ellipsize(" "+name, inner), inner)
	return shades.Handle.Render(" ") + shades.Body.Render(body) + shades.Handle.Render(" ")
}
