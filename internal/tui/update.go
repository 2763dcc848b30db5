package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case commands.PlanLoadedMsg:
		stale := msg.Seq != m.loadSeq ||
			(m.engagementID != "" && msg.Engagement != nil && msg.Engagement.ID != m.engagementID)
		LogLoad(msg, stale)
		if stale || msg.Engagement == nil {
			return m, nil
		}
		m.loading = false
		m.applyPlan(msg.Engagement, msg.Items)
		m.dropVanishedInteraction()
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		if errors.Is(msg.Err, commands.ErrNoEngagements) {
			m.noPlan = true
			return m, nil
		}
		LogError("command", msg.Err)
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, clearStatusAfter(5 * time.Second)

	case commands.SaveResultMsg:
		m.bridge.Done()
		LogSave(msg, m.bridge.InFlight())
		cmds := []tea.Cmd{m.reload()}
		if msg.Err != nil {
			m.err = msg.Err
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
			m.statusTime = time.Now().Add(5 * time.Second)
			cmds = append(cmds, clearStatusAfter(5*time.Second))
		}
		return m, tea.Batch(cmds...)

	case commands.StatusMsgCmd:
		m.err = nil
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, clearStatusAfter(3 * time.Second)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other editor messages
	if m.interaction.Phase() == timeline.PhaseEditing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// dropVanishedInteraction abandons a drag, edit or menu whose item is no
// longer part of the plan.
func (m *Model) dropVanishedInteraction() {
	var id string
	if d, ok := m.interaction.Drag(); ok {
		id = d.ItemID
	} else if e, ok := m.interaction.Edit(); ok {
		id = e.ItemID
	} else if mn, ok := m.interaction.Menu(); ok {
		id = mn.ItemID
	}
	if id == "" {
		return
	}
	if _, _, ok := m.findLine(id); !ok {
		from := m.interaction.Phase()
		m.interaction.Reset()
		m.editor.Blur()
		LogPhaseChange(from, timeline.PhaseIdle, "item removed")
	}
}
