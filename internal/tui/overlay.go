package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekline/internal/tui/view"
)

const (
	overlayMinWidth  = 24
	overlayMinHeight = 5
	overlayMaxWidth  = 64
	overlayMaxHeight = 20
	overlayPadding   = 2
)

// OverlayModel renders an opaque box centered over the screen.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{
		active:  false,
		bgColor: lipgloss.Color(""),
	}
}

// Toggle flips the overlay visibility.
func (o *OverlayModel) Toggle() {
	o.active = !o.active
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the overlay background color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws the overlay on top of base content.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	contentLines := splitContent(content)
	boxW, boxH := o.boxSize(width, height, contentLines)
	if boxW <= 0 || boxH <= 0 {
		return base
	}

	top := max(0, (height-boxH)/2)
	left := max(0, (width-boxW)/2)
	return view.PlaceAt(base, o.box(contentLines, boxW, boxH), top, left, width, height)
}

func (o OverlayModel) boxSize(width, height int, content []string) (int, int) {
	contentW := 0
	for _, line := range content {
		contentW = max(contentW, lipgloss.Width(line))
	}
	boxW := min(max(contentW+2*overlayPadding, overlayMinWidth), overlayMaxWidth)
	boxH := min(max(len(content)+2, overlayMinHeight), overlayMaxHeight)
	return min(boxW, width), min(boxH, height)
}

// box fills a boxW x boxH rectangle with the background and centers the
// content inside it. Content wider than the box is cut.
func (o OverlayModel) box(content []string, boxW, boxH int) string {
	bgSeq := view.ModalBackgroundSeq(o.bgColor)
	blank := bgSeq + strings.Repeat(" ", boxW) + ansi.ResetStyle
	lines := make([]string, boxH)
	for i := range lines {
		lines[i] = blank
	}

	contentW := 0
	for _, line := range content {
		contentW = max(contentW, lipgloss.Width(line))
	}
	contentW = min(contentW, boxW)
	contentH := min(len(content), boxH)
	top := (boxH - contentH) / 2
	left := (boxW - contentW) / 2

	for i := 0; i < contentH; i++ {
		line := view.Fit(content[i], contentW)
		line = view.ApplyModalBackgroundResets(line, o.bgColor)
		right := boxW - left - contentW
		lines[top+i] = bgSeq + strings.Repeat(" ", left) + line + bgSeq + strings.Repeat(" ", right) + ansi.ResetStyle
	}
	return strings.Join(lines, "\n")
}

func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
