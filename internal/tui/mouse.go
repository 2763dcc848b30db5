package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/timeline"
)

// handleMouseMsg routes pointer events. Motion arrives only while a button
// is held, so a drag is tracked from press to release and nowhere else.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg, m.interaction.Phase())

	if m.loading || m.noPlan {
		return m, nil
	}
	if m.overlay.Active() {
		if msg.Action == tea.MouseActionPress {
			m.overlay.Toggle()
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.handleLeftPress(msg.X, msg.Y)
		case tea.MouseButtonRight:
			return m.handleRightPress(msg.X, msg.Y)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown,
			tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
			return m.handleWheel(msg)
		}
	case tea.MouseActionMotion:
		if drag, dragging := m.interaction.Drag(); dragging {
			week := m.weekAt(msg.X)
			// the drag starts once the pointer leaves the pressed week
			if !drag.Pending() && week == m.press.week {
				return m, nil
			}
			m.interaction.Hover(week)
		}
	case tea.MouseActionRelease:
		return m.handleRelease(msg.X, msg.Y)
	}
	return m, nil
}

// handleLeftPress starts a gesture: a drag on a bar, a double-click rename,
// or the press half of a cell click.
func (m Model) handleLeftPress(x, y int) (tea.Model, tea.Cmd) {
	m.interaction.ClearClickSuppression()
	m.press = pressState{}

	switch m.interaction.Phase() {
	case timeline.PhaseMenu:
		if entry, ok := m.menuEntryAt(x, y); ok {
			return m.invokeMenu(entry.action)
		}
		m.dismissMenu("click outside")
		return m, nil
	case timeline.PhaseEditing:
		if m.insideEditor(x, y) {
			return m, nil
		}
		return m, m.commitEdit()
	case timeline.PhaseDragging:
		// a press without the matching release; drop the stale drag
		m.interaction.Reset()
	}

	t, ok := m.hitTest(x, y)
	if !ok {
		m.lastPress = barPress{}
		return m, nil
	}
	m.press = pressState{active: true, line: t.line, week: t.week}

	if !t.onBar {
		m.lastPress = barPress{}
		return m, nil
	}

	now := m.now()
	id := t.row.ID()
	if m.lastPress.itemID == id && now.Sub(m.lastPress.at) <= m.config.DoubleClickWindow() {
		m.lastPress = barPress{}
		m.press = pressState{}
		return m, m.openEditor(t.line, t.row)
	}
	m.lastPress = barPress{itemID: id, at: now}

	if err := m.interaction.BeginDrag(t.row, t.kind); err != nil {
		LogError("begin drag", err)
		return m, nil
	}
	LogPhaseChange(timeline.PhaseIdle, timeline.PhaseDragging, t.kind.String())
	return m, nil
}

// handleRelease ends the gesture. A drag is released and persisted; a
// release on the cell that was pressed is a click.
func (m Model) handleRelease(x, y int) (tea.Model, tea.Cmd) {
	p := m.press
	m.press = pressState{}

	var cmds []tea.Cmd
	if _, dragging := m.interaction.Drag(); dragging {
		update, ok := m.interaction.Release()
		LogPhaseChange(timeline.PhaseDragging, timeline.PhaseIdle, "release")
		if ok {
			cmds = append(cmds, m.bridge.SaveSpan(update))
		}
	}

	if p.active && p.week > 0 {
		if t, ok := m.hitTest(x, y); ok && t.line == p.line && t.week == p.week {
			if update, ok := m.interaction.Click(t.row, t.week); ok {
				cmds = append(cmds, m.bridge.SaveSpan(update))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// handleRightPress opens the context menu on a bar.
func (m Model) handleRightPress(x, y int) (tea.Model, tea.Cmd) {
	switch m.interaction.Phase() {
	case timeline.PhaseEditing:
		if m.insideEditor(x, y) {
			return m, nil
		}
		return m, m.commitEdit()
	case timeline.PhaseDragging:
		return m, nil
	}

	t, ok := m.hitTest(x, y)
	if !ok || !t.onBar {
		if m.interaction.Phase() == timeline.PhaseMenu {
			m.dismissMenu("click outside")
		}
		return m, nil
	}
	m.openMenu(t.row, x, y)
	return m, nil
}

// handleWheel scrolls the grid. Shift turns vertical wheel motion into
// horizontal scrolling.
func (m Model) handleWheel(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.interaction.Phase() {
	case timeline.PhaseEditing, timeline.PhaseDragging:
		return m, nil
	case timeline.PhaseMenu:
		m.dismissMenu("scroll")
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			m.scrollWeeks(-1)
		} else {
			m.scrollRows(-1)
		}
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			m.scrollWeeks(1)
		} else {
			m.scrollRows(1)
		}
	case tea.MouseButtonWheelLeft:
		m.scrollWeeks(-1)
	case tea.MouseButtonWheelRight:
		m.scrollWeeks(1)
	}
	return m, nil
}

func (m Model) insideEditor(x, y int) bool {
	session, ok := m.interaction.Edit()
	if !ok {
		return false
	}
	r := session.Rect
	return y == r.Top && x >= r.Left && x < r.Left+r.Width
}
