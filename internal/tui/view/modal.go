package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames.
type ModalStyles struct {
	ModalTitleStyle lipgloss.Style
	ModalBodyStyle  lipgloss.Style
	ModalMetaStyle  lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.ModalTitleStyle.Render(title))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalBodyStyle.Render(body))
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalMetaStyle.Render(footer))
	}

	return b.String()
}
