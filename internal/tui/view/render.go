// Package view provides view composition helpers for the TUI.
package view

// OverlayRenderer renders modal overlays on top of base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// Layer is pre-rendered content placed at a fixed screen cell, such as the
// label editor over a bar or a context menu at the pointer.
type Layer struct {
	Content string
	Top     int
	Left    int
}

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	Layers           []Layer
	ModalContent     string
	ShowModal        bool
	Overlay          OverlayRenderer
	EmptyPlaceholder string
}

// Render composes the final view output. Layers are drawn in order, then the
// modal on top of everything.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	base := state.BaseContent
	for _, l := range state.Layers {
		base = PlaceAt(base, l.Content, l.Top, l.Left, state.Width, state.Height)
	}
	if state.ShowModal && state.Overlay != nil {
		return state.Overlay.Render(base, state.Width, state.Height, state.ModalContent)
	}

	return base
}
