package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/config"
	"github.com/javiermolinar/weekline/internal/plan"
	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/commands"
	"github.com/javiermolinar/weekline/internal/tui/theme"
)

// gridLine is one body line of the grid: a category header or an item row.
type gridLine struct {
	header  bool
	section int
	row     timeline.Row
}

// pressState is the pointer gesture started by the last left press.
type pressState struct {
	active bool
	line   int
	week   int
}

// barPress remembers the last press on a bar for double-click detection.
type barPress struct {
	itemID string
	at     time.Time
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo    plan.Repository
	config  *config.Config
	catalog plan.Catalog

	// Theme and styles
	theme      *theme.Theme
	styles     *Styles
	styleCache *StyleCache
	keys       KeyMap
	help       help.Model

	// Interaction state and writes
	interaction *timeline.Interaction
	bridge      *Bridge

	// Loaded plan
	engagementID string
	engagement   *plan.Engagement
	weeks        []timeline.Week
	months       []timeline.MonthGroup
	rows         []timeline.Row
	sections     []timeline.Section
	lines        []gridLine
	loading      bool
	noPlan       bool // store has no engagement yet
	loadSeq      int

	// Pointer gesture
	press     pressState
	lastPress barPress
	menuIndex int

	// Components
	editor  textinput.Model
	spinner spinner.Model
	overlay OverlayModel

	// Terminal dimensions and scrolling
	width      int
	height     int
	weekWidth  int
	weekOffset int // weeks scrolled off the left edge
	rowOffset  int // body lines scrolled off the top

	now func() time.Time

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithEngagement selects the engagement to open. Empty opens the most recent.
func WithEngagement(id string) ModelOption {
	return func(m *Model) {
		m.engagementID = id
	}
}

// WithClock overrides the time source used for the today marker and
// double-click detection.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithStatus shows a status message on startup.
func WithStatus(msg string) ModelOption {
	return func(m *Model) {
		m.statusMsg = msg
		m.statusTime = time.Now().Add(5 * time.Second)
	}
}

// New creates a new TUI model.
func New(repo plan.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}

	// Create styles from theme
	styles := NewStyles(t)

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 120
	editor.TextStyle = styles.EditorTextStyle
	editor.PlaceholderStyle = styles.EditorTextStyle
	editor.Cursor.Style = styles.EditorCursorStyle
	editor.Cursor.TextStyle = styles.EditorTextStyle

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.TitleStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.FullKey = styles.ModalBodyStyle.Bold(true)
	h.Styles.FullDesc = styles.ModalMetaStyle
	h.Styles.FullSeparator = styles.ModalMetaStyle

	overlay := NewOverlayModel()
	overlay.SetBackground(styles.ModalBgColor)

	weekWidth := cfg.UI.WeekWidth
	if weekWidth < config.MinWeekWidth {
		weekWidth = config.MinWeekWidth
	}

	m := &Model{
		repo:        repo,
		config:      cfg,
		catalog:     plan.DefaultCatalog(),
		theme:       t,
		styles:      styles,
		styleCache:  NewStyleCache(styles, weekWidth),
		keys:        DefaultKeyMap(),
		help:        h,
		interaction: timeline.NewInteraction(0),
		bridge:      NewBridge(repo, cfg.SaveTimeoutDuration()),
		loading:     true,
		loadSeq:     1,
		editor:      editor,
		spinner:     sp,
		overlay:     overlay,
		weekWidth:   weekWidth,
		now:         time.Now,
	}
	if cfg.Engagement.Default != "" {
		m.engagementID = cfg.Engagement.Default
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadPlan(m.repo, m.engagementID, m.loadSeq),
		m.spinner.Tick,
	)
}

// reload issues a refresh of the current engagement. Results of earlier
// loads still in flight are discarded when they arrive.
func (m *Model) reload() tea.Cmd {
	m.loadSeq++
	return commands.LoadPlan(m.repo, m.engagementID, m.loadSeq)
}

// applyPlan rebuilds every derived structure from a loaded engagement.
func (m *Model) applyPlan(e *plan.Engagement, items []*plan.Item) {
	first := m.engagement == nil || m.engagement.ID != e.ID
	m.engagement = e
	m.engagementID = e.ID
	m.weeks = timeline.BuildWeeks(e.Start, e.End)
	m.months = timeline.GroupByMonth(m.weeks)
	m.interaction.SetWeekCount(len(m.weeks))
	m.rows = timeline.MapItems(items, m.catalog)
	m.sections = timeline.GroupRows(m.rows, m.catalog)
	m.lines = buildLines(m.sections)
	m.noPlan = false
	if first {
		m.scrollToToday()
	}
	m.clampScroll()
}

func buildLines(sections []timeline.Section) []gridLine {
	var lines []gridLine
	for i, sec := range sections {
		lines = append(lines, gridLine{header: true, section: i})
		for _, r := range sec.Rows {
			lines = append(lines, gridLine{section: i, row: r})
		}
	}
	return lines
}

// findLine returns the body line showing an item.
func (m Model) findLine(itemID string) (int, timeline.Row, bool) {
	for i, l := range m.lines {
		if !l.header && l.row.ID() == itemID {
			return i, l.row, true
		}
	}
	return 0, timeline.Row{}, false
}

func (m Model) todayWeek() int {
	return timeline.WeekOf(m.weeks, m.now())
}

// Run starts the TUI.
func Run(repo plan.Repository, cfg *config.Config, opts ...ModelOption) error {
	return RunWithDebug(repo, cfg, false, opts...)
}

// RunWithDebug starts the TUI with optional debug logging. A nil repo is
// opened from the configured database path and closed on exit.
func RunWithDebug(repo plan.Repository, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		repo, err = initializeStorage(cfg, state)
		if err != nil {
			return err
		}
		if msg := state.Message(); msg != "" {
			opts = append([]ModelOption{WithStatus(msg)}, opts...)
		}
	}

	model := New(repo, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	if initialRepo == nil {
		_ = repo.Close()
	}
	return err
}
