package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/commands"
)

// KeyMap is the keyboard layer. The pointer drives editing; keys scroll,
// reload and reach the menu actions.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PageLeft  key.Binding
	PageRight key.Binding
	Today     key.Binding
	Reload    key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Editor and menu
	Confirm key.Binding
	Cancel  key.Binding
	Edit    key.Binding
	Remove  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "earlier")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "later")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PageLeft:  key.NewBinding(key.WithKeys("H", "pgup"), key.WithHelp("H", "page left")),
		PageRight: key.NewBinding(key.WithKeys("L", "pgdown"), key.WithHelp("L", "page right")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy schedule")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit label")),
		Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove span")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Today, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.PageLeft, k.PageRight},
		{k.Today, k.Reload, k.Copy, k.Help, k.Quit},
		{k.Confirm, k.Cancel, k.Edit, k.Remove},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.overlay.Active() {
		return m.handleHelpKeys(msg)
	}

	switch m.interaction.Phase() {
	case timeline.PhaseEditing:
		return m.handleEditorKeys(msg)
	case timeline.PhaseMenu:
		return m.handleMenuKeys(msg)
	case timeline.PhaseDragging:
		if key.Matches(msg, m.keys.Cancel) {
			m.interaction.Reset()
			LogPhaseChange(timeline.PhaseDragging, timeline.PhaseIdle, "cancelled")
		}
		return m, nil
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys while nothing is in progress.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(1, m.visibleWeeks()-1)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.scrollWeeks(-1)
	case key.Matches(msg, m.keys.Right):
		m.scrollWeeks(1)
	case key.Matches(msg, m.keys.Up):
		m.scrollRows(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollRows(1)
	case key.Matches(msg, m.keys.PageLeft):
		m.scrollWeeks(-page)
	case key.Matches(msg, m.keys.PageRight):
		m.scrollWeeks(page)
	case key.Matches(msg, m.keys.Today):
		m.scrollToToday()
	case key.Matches(msg, m.keys.Reload):
		if m.noPlan {
			return m, nil
		}
		return m, m.reload()
	case key.Matches(msg, m.keys.Copy):
		return m.copySchedule()
	case key.Matches(msg, m.keys.Help):
		m.overlay.Toggle()
	}
	return m, nil
}

// handleHelpKeys closes the help overlay on ?, esc or q.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
		m.overlay.Toggle()
	}
	return m, nil
}

// handleEditorKeys feeds the inline label editor.
func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, m.commitEdit()
	case key.Matches(msg, m.keys.Cancel):
		m.cancelEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.interaction.SetEditValue(m.editor.Value())
	return m, cmd
}

// handleMenuKeys navigates the context menu.
func (m Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := menuEntries()
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.dismissMenu("key")
	case key.Matches(msg, m.keys.Up):
		m.menuIndex = (m.menuIndex + len(entries) - 1) % len(entries)
	case key.Matches(msg, m.keys.Down):
		m.menuIndex = (m.menuIndex + 1) % len(entries)
	case key.Matches(msg, m.keys.Confirm):
		return m.invokeMenu(entries[m.menuIndex].action)
	case key.Matches(msg, m.keys.Edit):
		return m.invokeMenu(menuEdit)
	case key.Matches(msg, m.keys.Remove):
		return m.invokeMenu(menuRemove)
	}
	return m, nil
}

// copySchedule puts a plain-text schedule of the engagement on the clipboard.
func (m Model) copySchedule() (tea.Model, tea.Cmd) {
	if m.engagement == nil {
		return m, nil
	}
	entries := timeline.Schedule(m.weeks, m.sections)
	text := timeline.FormatSchedule(m.engagement.Name, entries)
	return m, commands.CopyToClipboard(text, "Schedule copied")
}
