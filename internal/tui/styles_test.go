package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekline/internal/tui/theme"
)

func testTheme() *theme.Theme {
	return &theme.Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Grid:        "#444444",
		Today:       "#ffff00",
		Warning:     "#ff00ff",
	}
}

func TestStylesBackgroundCoverage(t *testing.T) {
	palette := testTheme()
	styles := NewStyles(palette)

	assertBg := func(t *testing.T, name string, style lipgloss.Style, want string) {
		t.Helper()
		bg, ok := style.GetBackground().(lipgloss.Color)
		if !ok {
			t.Fatalf("%s background type = %T, want lipgloss.Color", name, style.GetBackground())
		}
		if bg != lipgloss.Color(want) {
			t.Fatalf("%s background = %q, want %q", name, bg, want)
		}
	}

	assertBg(t, "GridStyle", styles.GridStyle, palette.Bg)
	assertBg(t, "TodayCellStyle", styles.TodayCellStyle, palette.Bg)
	assertBg(t, "RowLabelStyle", styles.RowLabelStyle, palette.Bg)
	assertBg(t, "AmountStyle", styles.AmountStyle, palette.Bg)
	assertBg(t, "SeparatorStyle", styles.SeparatorStyle, palette.Bg)
	assertBg(t, "HelpStyle", styles.HelpStyle, palette.Bg)
	assertBg(t, "ViewportStyle", styles.ViewportStyle, palette.Bg)
	assertBg(t, "SectionStyle", styles.SectionStyle, palette.BgHighlight)
	assertBg(t, "EditorStyle", styles.EditorStyle, palette.BgSelection)
	assertBg(t, "WeekHeaderTodayStyle", styles.WeekHeaderTodayStyle, palette.Today)
}

func TestSectionStyleForUsesCategoryColor(t *testing.T) {
	styles := NewStyles(testTheme())
	fg, ok := styles.SectionStyleFor("#e78284").GetForeground().(lipgloss.Color)
	if !ok || fg != lipgloss.Color("#e78284") {
		t.Fatalf("section foreground = %v, want #e78284", styles.SectionStyleFor("#e78284").GetForeground())
	}
}

func TestStyleCacheBarIsCached(t *testing.T) {
	styles := NewStyles(testTheme())
	cache := NewStyleCache(styles, 5)

	first := cache.Bar("#8caaee")
	if len(cache.bars) != 1 {
		t.Fatalf("expected one cached entry, got %d", len(cache.bars))
	}
	second := cache.Bar("#8caaee")
	if first.Body.Render("x") != second.Body.Render("x") {
		t.Fatal("cached bar styles differ")
	}
	cache.Bar("#a6d189")
	if len(cache.bars) != 2 {
		t.Fatalf("expected two cached entries, got %d", len(cache.bars))
	}
}
