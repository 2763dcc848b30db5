package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/timeline"
)

// openEditor starts renaming the row on line idx. Any edit already open is
// replaced without being saved.
func (m *Model) openEditor(idx int, row timeline.Row) tea.Cmd {
	from := m.interaction.Phase()
	rect := m.barRect(idx, row)
	if err := m.interaction.OpenEdit(row, rect); err != nil {
		LogError("open editor", err)
		return nil
	}
	LogPhaseChange(from, timeline.PhaseEditing, "double-click")

	m.editor.SetValue(row.Item.Name)
	m.editor.Width = max(1, rect.Width-2)
	m.editor.CursorEnd()
	return tea.Batch(m.editor.Focus(), textinput.Blink)
}

// commitEdit closes the editor and persists the typed name.
func (m *Model) commitEdit() tea.Cmd {
	m.interaction.SetEditValue(m.editor.Value())
	update, ok := m.interaction.CommitEdit()
	m.editor.Blur()
	if !ok {
		return nil
	}
	LogPhaseChange(timeline.PhaseEditing, timeline.PhaseIdle, "commit")
	return m.bridge.SaveName(update)
}

// cancelEdit closes the editor without persisting.
func (m *Model) cancelEdit() {
	m.interaction.CancelEdit()
	m.editor.Blur()
	LogPhaseChange(timeline.PhaseEditing, timeline.PhaseIdle, "cancel")
}

// renderEditor draws the editor box over the bar being renamed.
func (m Model) renderEditor() (string, timeline.Rect, bool) {
	session, ok := m.interaction.Edit()
	if !ok {
		return "", timeline.Rect{}, false
	}
	box := m.styles.EditorStyle.
		Width(session.Rect.Width).
		MaxWidth(session.Rect.Width).
		Render(" " + m.editor.View())
	return box, session.Rect, true
}
