package tui

import "github.com/charmbracelet/lipgloss"

// BarStyles are the styles used to paint one category's bars.
type BarStyles struct {
	Body   lipgloss.Style
	Handle lipgloss.Style
	Ghost  lipgloss.Style
}

// StyleCache stores width-specific and per-category styles to avoid per-cell
// mutations.
type StyleCache struct {
	WeekHeader      lipgloss.Style
	WeekHeaderToday lipgloss.Style
	MonthHeader     lipgloss.Style

	styles *Styles
	bars   map[string]BarStyles
}

// NewStyleCache precomputes the week-width dependent styles for the grid.
func NewStyleCache(styles *Styles, weekWidth int) *StyleCache {
	return &StyleCache{
		WeekHeader:      styles.WeekHeaderStyle.Width(weekWidth).MaxWidth(weekWidth),
		WeekHeaderToday: styles.WeekHeaderTodayStyle.Width(weekWidth).MaxWidth(weekWidth),
		MonthHeader:     styles.MonthHeaderStyle,
		styles:          styles,
		bars:            make(map[string]BarStyles),
	}
}

// Bar returns the bar styles for a category color.
func (c *StyleCache) Bar(hex string) BarStyles {
	if b, ok := c.bars[hex]; ok {
		return b
	}
	shade := c.styles.palette.Bar(hex)
	b := BarStyles{
		Body:   lipgloss.NewStyle().Background(shade.Bg).Foreground(shade.Text).Bold(true),
		Handle: lipgloss.NewStyle().Background(shade.Handle).Foreground(shade.Text),
		Ghost:  lipgloss.NewStyle().Background(shade.Preview).Foreground(shade.Text),
	}
	c.bars[hex] = b
	return b
}
