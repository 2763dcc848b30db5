package tui

import (
	"github.com/javiermolinar/weekline/internal/plan"
	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/view"
)

// Screen layout: title, month header and week header on top, footer below,
// grid body in between.
const (
	headerLines    = 3
	minLabelWidth  = 14
	maxLabelWidth  = 32
	minEditorWidth = 20
)

func (m Model) labelWidth() int {
	w := min(max(m.width/4, minLabelWidth), maxLabelWidth)
	// keep at least one week column on narrow terminals
	if w > m.width-m.weekWidth {
		w = max(0, m.width-m.weekWidth)
	}
	return w
}

// visibleWeeks is the number of week columns that fit on screen.
func (m Model) visibleWeeks() int {
	if m.weekWidth <= 0 {
		return 0
	}
	n := (m.width - m.labelWidth()) / m.weekWidth
	return min(max(n, 0), len(m.weeks))
}

func (m Model) bodyHeight() int {
	return max(0, m.height-headerLines-view.FooterHeight)
}

// weekLeft returns the screen column where week w starts. It may be off
// screen when the grid is scrolled.
func (m Model) weekLeft(w int) int {
	return m.labelWidth() + (w-1-m.weekOffset)*m.weekWidth
}

// weekAt returns the week under screen column x, or 0 outside the grid.
func (m Model) weekAt(x int) int {
	lw := m.labelWidth()
	if x < lw || m.weekWidth <= 0 {
		return 0
	}
	col := (x - lw) / m.weekWidth
	if col >= m.visibleWeeks() {
		return 0
	}
	return m.weekOffset + col + 1
}

// lineAt returns the body line under screen row y.
func (m Model) lineAt(y int) (int, bool) {
	if y < headerLines {
		return 0, false
	}
	idx := y - headerLines
	if idx >= m.bodyHeight() {
		return 0, false
	}
	idx += m.rowOffset
	if idx >= len(m.lines) {
		return 0, false
	}
	return idx, true
}

// lineY returns the screen row of a body line.
func (m Model) lineY(idx int) int {
	return headerLines + idx - m.rowOffset
}

// target is what a pointer position resolves to on the grid.
type target struct {
	line  int
	row   timeline.Row
	week  int // 0 over the label column
	onBar bool
	kind  timeline.DragKind
}

// hitTest resolves a screen cell to an item row. Section headers and the
// axis headers are not targets.
func (m Model) hitTest(x, y int) (target, bool) {
	idx, ok := m.lineAt(y)
	if !ok || m.lines[idx].header {
		return target{}, false
	}
	t := target{line: idx, row: m.lines[idx].row, week: m.weekAt(x)}
	span := t.row.Item.Span
	if t.week > 0 && t.row.HasTimeline && span.Contains(t.week) {
		t.onBar = true
		t.kind = m.dragKindAt(x, span)
	}
	return t, true
}

// dragKindAt maps a column inside a bar to the operation a press starts:
// the first and last cells are resize handles, the rest moves the bar.
func (m Model) dragKindAt(x int, span plan.Span) timeline.DragKind {
	first := m.weekLeft(span.Start)
	last := m.weekLeft(span.End) + m.weekWidth - 1
	switch x {
	case first:
		return timeline.DragResizeStart
	case last:
		return timeline.DragResizeEnd
	default:
		return timeline.DragMove
	}
}

// barRect returns the on-screen box of a row's bar, clipped to the grid and
// widened to fit the label editor. Rows without a span get a box at the
// start of the grid.
func (m Model) barRect(idx int, row timeline.Row) timeline.Rect {
	lw := m.labelWidth()
	left, width := lw, 0
	if row.HasTimeline {
		left = max(lw, m.weekLeft(row.Item.Span.Start))
		right := min(m.width, m.weekLeft(row.Item.Span.End)+m.weekWidth)
		width = right - left
	}
	width = max(width, minEditorWidth)
	if left+width > m.width {
		left = max(0, m.width-width)
		width = min(width, m.width)
	}
	return timeline.Rect{Top: m.lineY(idx), Left: left, Width: width}
}

func (m *Model) clampScroll() {
	m.weekOffset = min(m.weekOffset, max(0, len(m.weeks)-m.visibleWeeks()))
	m.weekOffset = max(0, m.weekOffset)
	m.rowOffset = min(m.rowOffset, max(0, len(m.lines)-m.bodyHeight()))
	m.rowOffset = max(0, m.rowOffset)
}

func (m *Model) scrollWeeks(delta int) {
	m.weekOffset += delta
	m.clampScroll()
}

func (m *Model) scrollRows(delta int) {
	m.rowOffset += delta
	m.clampScroll()
}

// scrollToToday brings today's week into view, leaving a little context on
// the left. Before the terminal size is known it only records the offset.
func (m *Model) scrollToToday() {
	w := m.todayWeek()
	if w == 0 {
		m.weekOffset = 0
		return
	}
	m.weekOffset = max(0, w-3)
	if m.width > 0 {
		m.clampScroll()
	}
}
