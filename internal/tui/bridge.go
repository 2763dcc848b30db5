package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/plan"
	"github.com/javiermolinar/weekline/internal/timeline"
	"github.com/javiermolinar/weekline/internal/tui/commands"
)

// Bridge turns interaction updates into repository writes and tracks how
// many are outstanding. Writes are not serialized; when two land on the same
// item the last one to complete wins.
type Bridge struct {
	repo     plan.Repository
	timeout  time.Duration
	inFlight int
}

// NewBridge creates a bridge writing through repo. A zero timeout disables
// the per-write deadline.
func NewBridge(repo plan.Repository, timeout time.Duration) *Bridge {
	return &Bridge{repo: repo, timeout: timeout}
}

// SaveSpan persists a span change. Clearing a span goes through ClearSpan so
// the item itself is kept.
func (b *Bridge) SaveSpan(u timeline.SpanUpdate) tea.Cmd {
	b.inFlight++
	if u.Unschedules() {
		return commands.ClearSpan(b.repo, b.timeout, u.ItemID)
	}
	return commands.UpdateItem(b.repo, b.timeout, commands.OpUpdateSpan, u.ItemID, plan.SpanPatch(u.Span))
}

// SaveName persists a rename.
func (b *Bridge) SaveName(u timeline.NameUpdate) tea.Cmd {
	b.inFlight++
	return commands.UpdateItem(b.repo, b.timeout, commands.OpRename, u.ItemID, plan.NamePatch(u.Name))
}

// Done records a completed write.
func (b *Bridge) Done() {
	if b.inFlight > 0 {
		b.inFlight--
	}
}

// Saving reports whether any write is outstanding.
func (b *Bridge) Saving() bool {
	return b.inFlight > 0
}

// InFlight returns the number of outstanding writes.
func (b *Bridge) InFlight() int {
	return b.inFlight
}

