package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/commands"
)

// DebugLogger logs TUI events as JSON lines.
type DebugLogger struct {
	mu      sync.Mutex
	closer  io.Closer
	logger  *slog.Logger
	enabled bool
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "weekline-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = newDebugLogger(f, f)
	debugLog.log("debug_start", slog.String("log_file", DebugLogPath))
	return nil
}

func newDebugLogger(w io.Writer, closer io.Closer) *DebugLogger {
	return &DebugLogger{
		closer:  closer,
		logger:  slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})),
		enabled: true,
	}
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("debug_end")
	if debugLog.closer != nil {
		_ = debugLog.closer.Close()
	}
	debugLog = nil
}

func (d *DebugLogger) log(event string, attrs ...slog.Attr) {
	if d == nil || !d.enabled || d.logger == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger.LogAttrs(context.Background(), slog.LevelDebug, event, attrs...)
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("key_press", slog.String("key", msg.String()))
}

// LogMouse logs a mouse event with the phase it arrived in.
func LogMouse(msg tea.MouseMsg, phase timeline.Phase) {
	if !debugEnabled() {
		return
	}
	debugLog.log("mouse",
		slog.String("event", msg.String()),
		slog.Int("x", msg.X),
		slog.Int("y", msg.Y),
		slog.String("phase", phase.String()),
	)
}

// LogPhaseChange logs an interaction phase transition.
func LogPhaseChange(from, to timeline.Phase, reason string) {
	if !debugEnabled() || from == to {
		return
	}
	debugLog.log("phase_change",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.String("reason", reason),
	)
}

// LogSave logs the outcome of a write.
func LogSave(res commands.SaveResultMsg, inFlight int) {
	if !debugEnabled() {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", res.Op.String()),
		slog.String("item_id", res.ItemID),
		slog.String("patch", res.Patch.String()),
		slog.Int("in_flight", inFlight),
	}
	if res.Err != nil {
		attrs = append(attrs, slog.String("error", res.Err.Error()))
	}
	debugLog.log("save", attrs...)
}

// LogLoad logs a completed plan load.
func LogLoad(msg commands.PlanLoadedMsg, stale bool) {
	if !debugEnabled() {
		return
	}
	engagementID := ""
	if msg.Engagement != nil {
		engagementID = msg.Engagement.ID
	}
	debugLog.log("plan_loaded",
		slog.Int("seq", msg.Seq),
		slog.String("engagement", engagementID),
		slog.Int("items", len(msg.Items)),
		slog.Bool("stale", stale),
	)
}

// LogError logs an error.
func LogError(where string, err error) {
	if !debugEnabled() || err == nil {
		return
	}
	debugLog.log("error",
		slog.String("context", where),
		slog.String("error", err.Error()),
	)
}
