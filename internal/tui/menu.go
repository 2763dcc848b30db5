package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekline/internal/timeline"
)

type menuAction int

const (
	menuEdit menuAction = iota
	menuRemove
)

type menuEntry struct {
	label  string
	key    string
	action menuAction
}

func menuEntries() []menuEntry {
	return []menuEntry{
		{label: "Edit label", key: "e", action: menuEdit},
		{label: "Remove span", key: "x", action: menuRemove},
	}
}

// menuInnerWidth is the width of one entry row, padding included.
func menuInnerWidth() int {
	w := 0
	for _, e := range menuEntries() {
		w = max(w, len(e.label)+len(e.key)+3)
	}
	return w + 2
}

// menuBox returns the menu's outer box anchored just below the pointer and
// kept on screen.
func (m Model) menuBox(at timeline.Point) (top, left, width, height int) {
	width = menuInnerWidth() + 2
	height = len(menuEntries()) + 2
	top = at.Y + 1
	left = at.X
	if top+height > m.height {
		top = max(0, at.Y-height)
	}
	if left+width > m.width {
		left = max(0, m.width-width)
	}
	return top, left, width, height
}

// menuEntryAt returns the entry under a screen cell of the open menu.
func (m Model) menuEntryAt(x, y int) (menuEntry, bool) {
	menu, ok := m.interaction.Menu()
	if !ok {
		return menuEntry{}, false
	}
	top, left, width, height := m.menuBox(menu.At)
	if x <= left || x >= left+width-1 || y <= top || y >= top+height-1 {
		return menuEntry{}, false
	}
	return menuEntries()[y-top-1], true
}

// openMenu opens the context menu for a scheduled row at the pointer.
func (m *Model) openMenu(row timeline.Row, x, y int) {
	from := m.interaction.Phase()
	if err := m.interaction.OpenMenu(row, timeline.Point{X: x, Y: y}); err != nil {
		LogError("open menu", err)
		return
	}
	m.menuIndex = 0
	LogPhaseChange(from, timeline.PhaseMenu, "right-click")
}

func (m *Model) dismissMenu(reason string) {
	m.interaction.DismissMenu()
	LogPhaseChange(timeline.PhaseMenu, timeline.PhaseIdle, reason)
}

// invokeMenu runs a menu action against the item the menu was opened for.
func (m Model) invokeMenu(action menuAction) (tea.Model, tea.Cmd) {
	menu, ok := m.interaction.Menu()
	if !ok {
		return m, nil
	}

	switch action {
	case menuEdit:
		idx, row, found := m.findLine(menu.ItemID)
		if !found {
			m.dismissMenu("item gone")
			return m, nil
		}
		return m, m.openEditor(idx, row)
	case menuRemove:
		update := m.interaction.Unschedule(menu.ItemID)
		LogPhaseChange(timeline.PhaseMenu, timeline.PhaseIdle, "remove span")
		return m, m.bridge.SaveSpan(update)
	}
	return m, nil
}

// renderMenu draws the open context menu.
func (m Model) renderMenu() (string, int, int, bool) {
	menu, ok := m.interaction.Menu()
	if !ok {
		return "", 0, 0, false
	}
	inner := menuInnerWidth()
	lines := make([]string, 0, len(menuEntries()))
	for i, e := range menuEntries() {
		gap := inner - 2 - len(e.label) - len(e.key)
		text := e.label + strings.Repeat(" ", max(1, gap)) + e.key
		style := m.styles.MenuItemStyle
		if i == m.menuIndex {
			style = m.styles.MenuItemActiveStyle
		}
		lines = append(lines, style.Width(inner).Render(text))
	}
	box := m.styles.MenuStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	top, left, _, _ := m.menuBox(menu.At)
	return box, top, left, true
}
