// Package tui provides the terminal user interface for weekline.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekline/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title bar
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	SavingStyle   lipgloss.Style

	// Axis headers
	MonthHeaderStyle     lipgloss.Style
	WeekHeaderStyle      lipgloss.Style
	WeekHeaderTodayStyle lipgloss.Style

	// Label column
	SectionStyle     lipgloss.Style
	RowLabelStyle    lipgloss.Style
	AmountStyle      lipgloss.Style
	UnscheduledStyle lipgloss.Style

	// Empty grid cells
	GridStyle      lipgloss.Style
	TodayCellStyle lipgloss.Style

	// Label editor
	EditorStyle       lipgloss.Style
	EditorTextStyle   lipgloss.Style
	EditorCursorStyle lipgloss.Style

	// Context menu
	MenuStyle           lipgloss.Style
	MenuItemStyle       lipgloss.Style
	MenuItemActiveStyle lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// Help overlay
	ModalBgColor    lipgloss.Color
	ModalTitleStyle lipgloss.Style
	ModalBodyStyle  lipgloss.Style
	ModalMetaStyle  lipgloss.Style
	EmptyStateStyle lipgloss.Style
	ViewportStyle   lipgloss.Style
	SeparatorStyle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{palette: palette}

	bg := palette.Bg

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(bg)

	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(bg)

	s.SavingStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Background(bg).
		Italic(true)

	s.MonthHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Fg).
		Background(bg)

	s.WeekHeaderStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(bg)

	s.WeekHeaderTodayStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnToday).
		Background(palette.Today).
		Bold(true)

	s.SectionStyle = lipgloss.NewStyle().
		Bold(true).
		Background(palette.BgHighlight)

	s.RowLabelStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(bg)

	s.AmountStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(bg)

	s.UnscheduledStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(bg).
		Italic(true)

	s.GridStyle = lipgloss.NewStyle().
		Foreground(palette.Grid).
		Background(bg)

	s.TodayCellStyle = lipgloss.NewStyle().
		Foreground(palette.Today).
		Background(bg)

	s.EditorStyle = lipgloss.NewStyle().
		Background(palette.BgSelection).
		Foreground(palette.Fg)

	s.EditorTextStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgSelection)

	s.EditorCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(palette.Accent)

	modal := palette.Modal
	s.ModalBgColor = modal.Bg

	s.MenuStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		BorderBackground(modal.Bg).
		Background(modal.Bg)

	s.MenuItemStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg).
		Padding(0, 1)

	s.MenuItemActiveStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Background(bg).
		Bold(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnWarning).
		Background(palette.Warning).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(bg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.EmptyStateStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(bg).
		Padding(1, 2)

	// Viewport background - fill entire terminal with base background.
	s.ViewportStyle = lipgloss.NewStyle().
		Background(bg)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(palette.BgSelection).
		Background(bg)

	return s
}

// Palette returns the colors the styles were built from.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}

// SectionStyleFor returns the section header style tinted with a category color.
func (s *Styles) SectionStyleFor(hex string) lipgloss.Style {
	return s.SectionStyle.Foreground(lipgloss.Color(hex))
}
