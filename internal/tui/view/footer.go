package view

import "github.com/charmbracelet/lipgloss"

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 2

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	Width      int
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// RenderFooter renders the status and help lines.
func RenderFooter(state FooterViewState) string {
	if state.Width <= 0 {
		return ""
	}
	s := Fit(state.StatusLine, state.Width) + "\n" + Fit(state.HelpLine, state.Width)
	return PlaceBox(state.Width, FooterHeight, lipgloss.Bottom, s, state.Bg)
}
