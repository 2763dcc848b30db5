package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/view"
)

const savingIndicator = "● saving…"

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	state := view.ViewState{
		Width:        m.width,
		Height:       m.height,
		BaseContent:  m.renderBase(),
		Layers:       m.layers(),
		ShowModal:    m.overlay.Active(),
		Overlay:      m.overlay,
		ModalContent: m.renderHelp(),
	}
	return view.Render(state)
}

// renderBase renders everything below the floating layers.
func (m Model) renderBase() string {
	bg := m.styles.Palette().Bg
	var lines []string
	lines = append(lines, m.renderTitle())

	switch {
	case m.loading:
		lines = append(lines, "", m.styles.EmptyStateStyle.Render(m.spinner.View()+" Loading plan..."))
	case m.noPlan:
		lines = append(lines, "", m.styles.EmptyStateStyle.Render(
			"No engagements yet.\n\nCreate one with:\n  weekline engagement new \"Name\" --start 2024-01-01 --end 2024-03-25"))
	case len(m.lines) == 0:
		lines = append(lines, m.renderAxis()...)
		lines = append(lines, m.styles.EmptyStateStyle.Render(
			"No items in this engagement.\n\nAdd one with:\n  weekline add identity \"Logo Design\""))
	default:
		lines = append(lines, m.renderAxis()...)
		lines = append(lines, m.renderBody()...)
	}

	body := view.PadLinesWithBackground(strings.Join(lines, "\n"), m.width, m.height-view.FooterHeight, bg)
	footer := view.RenderFooter(view.FooterViewState{
		Width:      m.width,
		StatusLine: m.statusLine(),
		HelpLine:   m.help.ShortHelpView(m.keys.ShortHelp()),
		Bg:         bg,
	})
	return body + "\n" + footer
}

// renderTitle renders the engagement name, its client and dates, and the
// saving indicator on the right.
func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render(" weekline")
	if m.engagement != nil {
		e := m.engagement
		title = m.styles.TitleStyle.Render(" " + e.Name)
		sub := fmt.Sprintf("  %s – %s", e.Start.Format("Jan 02 2006"), e.End.Format("Jan 02 2006"))
		if e.Client != "" {
			sub = "  " + e.Client + sub
		}
		title += m.styles.SubtitleStyle.Render(sub)
	}
	if !m.bridge.Saving() {
		return title
	}

	indicator := m.styles.SavingStyle.Render(savingIndicator + " ")
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(indicator)
	if gap < 1 {
		return view.Fit(title, m.width-lipgloss.Width(indicator)) + indicator
	}
	return title + m.styles.SubtitleStyle.Render(strings.Repeat(" ", gap)) + indicator
}

// renderAxis renders the month and week header rows.
func (m Model) renderAxis() []string {
	axis := view.AxisViewState{
		LabelWidth: m.labelWidth(),
		WeekWidth:  m.weekWidth,
		FirstWeek:  m.weekOffset + 1,
		Visible:    m.visibleWeeks(),
		Weeks:      m.weeks,
		Months:     m.months,
		TodayWeek:  m.todayWeek(),
		Caption:    "Services",
		LabelStyle: m.styles.WeekHeaderStyle,
		MonthStyle: m.styleCache.MonthHeader,
		WeekStyle:  m.styles.WeekHeaderStyle,
		TodayStyle: m.styles.WeekHeaderTodayStyle,
		GapStyle:   m.styles.ViewportStyle,
	}
	return []string{view.RenderMonthHeader(axis), view.RenderWeekHeader(axis)}
}

// statusLine shows the transient status message, or a hint for the current
// interaction.
func (m Model) statusLine() string {
	if m.statusMsg != "" {
		if m.err != nil {
			return m.styles.ErrorStyle.Render(" " + m.statusMsg + " ")
		}
		return m.styles.StatusStyle.Render(" " + m.statusMsg)
	}

	hint := ""
	switch m.interaction.Phase() {
	case timeline.PhaseDragging:
		hint = m.dragHint()
	case timeline.PhaseEditing:
		hint = "enter save · esc cancel"
	case timeline.PhaseMenu:
		hint = "e edit label · x remove span · esc close"
	default:
		if m.engagement != nil && len(m.lines) > 0 {
			hint = "drag bars to move · drag edges to resize · click an empty row to schedule"
		}
	}
	if hint == "" {
		return ""
	}
	return m.styles.HelpStyle.Render(" " + hint)
}

func (m Model) dragHint() string {
	drag, _ := m.interaction.Drag()
	name := drag.ItemID
	if _, row, ok := m.findLine(drag.ItemID); ok {
		name = row.Item.Name
	}
	preview, ok := m.interaction.Preview()
	if !ok {
		return fmt.Sprintf("%s %s %s", drag.Kind, name, drag.Origin)
	}
	entry := timeline.ScheduleEntry{Span: preview.Span}
	return fmt.Sprintf("%s %s → %s", drag.Kind, name, entry.Weeks())
}

// layers returns the floating boxes drawn over the grid.
func (m Model) layers() []view.Layer {
	var layers []view.Layer
	if box, rect, ok := m.renderEditor(); ok {
		layers = append(layers, view.Layer{Content: box, Top: rect.Top, Left: rect.Left})
	}
	if box, top, left, ok := m.renderMenu(); ok {
		layers = append(layers, view.Layer{Content: box, Top: top, Left: left})
	}
	return layers
}

// renderHelp renders the key reference shown in the help overlay.
func (m Model) renderHelp() string {
	if !m.overlay.Active() {
		return ""
	}
	h := m.help
	h.ShowAll = true
	body := h.FullHelpView(m.keys.FullHelp())
	mouse := strings.Join([]string{
		"drag bar     move",
		"drag edge    resize",
		"click row    schedule one week",
		"double-click rename",
		"right-click  menu",
	}, "\n")
	return view.RenderModalFrame("Keys", body+"\n\n"+m.styles.ModalBodyStyle.Render(mouse), "? or esc to close", view.ModalStyles{
		ModalTitleStyle: m.styles.ModalTitleStyle,
		ModalBodyStyle:  m.styles.ModalBodyStyle,
		ModalMetaStyle:  m.styles.ModalMetaStyle,
	})
}
