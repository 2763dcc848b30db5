// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekline/internal/plan"
)

// ErrNoEngagements is returned by LoadPlan when the store is empty.
var ErrNoEngagements = errors.New("no engagements")

// PlanLoadedMsg is sent when an engagement and its items are loaded.
// Seq identifies the load so results of superseded loads can be dropped.
type PlanLoadedMsg struct {
	Seq        int
	Engagement *plan.Engagement
	Items      []*plan.Item
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SaveOp names the write a SaveResultMsg reports on.
type SaveOp int

const (
	OpUpdateSpan SaveOp = iota
	OpClearSpan
	OpRename
)

func (o SaveOp) String() string {
	switch o {
	case OpUpdateSpan:
		return "update span"
	case OpClearSpan:
		return "remove span"
	case OpRename:
		return "rename"
	default:
		return fmt.Sprintf("SaveOp(%d)", int(o))
	}
}

// SaveResultMsg is sent when a write completes, successfully or not.
// Exactly one is produced per save command.
type SaveResultMsg struct {
	Op     SaveOp
	ItemID string
	Patch  plan.Patch
	Err    error
}

// LoadPlan loads an engagement and its items. An empty engagementID selects
// the most recent engagement.
func LoadPlan(repo plan.Repository, engagementID string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var (
			e   *plan.Engagement
			err error
		)
		if engagementID == "" {
			list, err := repo.ListEngagements(ctx)
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("listing engagements: %w", err)}
			}
			if len(list) == 0 {
				return ErrMsg{Err: ErrNoEngagements}
			}
			e = list[0]
		} else {
			e, err = repo.GetEngagement(ctx, engagementID)
			if err != nil {
				return ErrMsg{Err: err}
			}
		}

		items, err := repo.ListItems(ctx, e.ID)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading services: %w", err)}
		}

		return PlanLoadedMsg{Seq: seq, Engagement: e, Items: items}
	}
}

// UpdateItem persists a partial item update.
func UpdateItem(repo plan.Repository, timeout time.Duration, op SaveOp, itemID string, patch plan.Patch) tea.Cmd {
	return save(timeout, op, itemID, patch, func(ctx context.Context) error {
		return repo.UpdateItem(ctx, itemID, patch)
	})
}

// ClearSpan resets an item to unscheduled.
func ClearSpan(repo plan.Repository, timeout time.Duration, itemID string) tea.Cmd {
	return save(timeout, OpClearSpan, itemID, plan.SpanPatch(plan.Unscheduled), func(ctx context.Context) error {
		return repo.ClearSpan(ctx, itemID)
	})
}

// save runs a write and always reports back, even when the store panics,
// so the caller's in-flight count stays balanced.
func save(timeout time.Duration, op SaveOp, itemID string, patch plan.Patch, write func(context.Context) error) tea.Cmd {
	return func() (msg tea.Msg) {
		result := SaveResultMsg{Op: op, ItemID: itemID, Patch: patch}
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("%s: panic: %v", op, r)
				msg = result
			}
		}()

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := write(ctx); err != nil {
			result.Err = fmt.Errorf("%s: %w", op, err)
		}
		return result
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text, label string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: label}
	}
}
