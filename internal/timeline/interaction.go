package timeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/weekline/internal/plan"
)

// Interaction errors.
var (
	ErrBusy       = errors.New("another interaction is in progress")
	ErrNoTimeline = errors.New("item has no span")
)

// Phase is the interaction currently owning the pointer.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseEditing
	PhaseMenu
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseEditing:
		return "editing"
	case PhaseMenu:
		return "menu"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Point is a screen cell position.
type Point struct {
	X int
	Y int
}

// Rect is the on-screen box of a bar, used to place the label editor.
type Rect struct {
	Top   int
	Left  int
	Width int
}

// Drag is an in-progress pointer operation on a span.
type Drag struct {
	ItemID  string
	Kind    DragKind
	Origin  plan.Span
	Hovered int // last hovered week, 0 until the pointer enters a cell
}

// Pending reports whether a hover has been recorded since the press.
func (d Drag) Pending() bool {
	return d.Hovered > 0
}

// EditSession is an open inline label editor.
type EditSession struct {
	ItemID   string
	Original string
	Value    string
	Rect     Rect
}

// Menu is an open context menu bound to one item.
type Menu struct {
	ItemID string
	At     Point
}

// SpanUpdate is a span change ready to be persisted.
type SpanUpdate struct {
	ItemID string
	Span   plan.Span
}

// Unschedules reports whether the update removes the bar.
func (u SpanUpdate) Unschedules() bool {
	return u.Span == plan.Unscheduled
}

// NameUpdate is a rename ready to be persisted.
type NameUpdate struct {
	ItemID string
	Name   string
}

// Interaction owns all transient editing state: at most one of drag, edit
// session or context menu exists at any time, and Idle means none does.
type Interaction struct {
	phase     Phase
	drag      Drag
	edit      EditSession
	menu      Menu
	weekCount int

	// set when a drag is released, consumed by the next click
	suppressClick bool
}

// NewInteraction creates an idle interaction for an axis of weekCount weeks.
func NewInteraction(weekCount int) *Interaction {
	return &Interaction{weekCount: weekCount}
}

// SetWeekCount updates the axis length after the contract range changes.
func (in *Interaction) SetWeekCount(n int) {
	in.weekCount = n
}

// WeekCount returns the axis length.
func (in *Interaction) WeekCount() int {
	return in.weekCount
}

// Phase returns the current phase.
func (in *Interaction) Phase() Phase {
	return in.phase
}

// Idle reports whether nothing is in progress.
func (in *Interaction) Idle() bool {
	return in.phase == PhaseIdle
}

// Reset drops any in-progress interaction without producing updates.
func (in *Interaction) Reset() {
	in.phase = PhaseIdle
	in.drag = Drag{}
	in.edit = EditSession{}
	in.menu = Menu{}
	in.suppressClick = false
}

// BeginDrag starts a drag on a scheduled row. Only allowed from Idle.
func (in *Interaction) BeginDrag(row Row, kind DragKind) error {
	if in.phase != PhaseIdle {
		return ErrBusy
	}
	if !row.HasTimeline {
		return ErrNoTimeline
	}
	in.phase = PhaseDragging
	in.drag = Drag{ItemID: row.ID(), Kind: kind, Origin: row.Item.Span}
	in.suppressClick = false
	return nil
}

// Drag returns the active drag.
func (in *Interaction) Drag() (Drag, bool) {
	if in.phase != PhaseDragging {
		return Drag{}, false
	}
	return in.drag, true
}

// Hover records the week under the pointer during a drag. Only the last
// hover before release matters.
func (in *Interaction) Hover(week int) bool {
	if in.phase != PhaseDragging {
		return false
	}
	if week < 1 || (in.weekCount > 0 && week > in.weekCount) {
		return false
	}
	if in.drag.Hovered == week {
		return false
	}
	in.drag.Hovered = week
	return true
}

// Preview returns the span the drag would produce if released now.
func (in *Interaction) Preview() (SpanUpdate, bool) {
	if in.phase != PhaseDragging || !in.drag.Pending() {
		return SpanUpdate{}, false
	}
	span, ok := ApplyDrag(in.drag.Kind, in.drag.Origin, in.drag.Hovered, in.weekCount)
	if !ok {
		return SpanUpdate{}, false
	}
	return SpanUpdate{ItemID: in.drag.ItemID, Span: span}, true
}

// Release ends the drag. The returned update is valid only when ok is true;
// rejected targets and drags without a hover produce nothing. The drag state
// is cleared in every case and the following click is suppressed.
func (in *Interaction) Release() (SpanUpdate, bool) {
	if in.phase != PhaseDragging {
		return SpanUpdate{}, false
	}
	update, ok := in.Preview()
	in.phase = PhaseIdle
	in.drag = Drag{}
	in.suppressClick = true
	return update, ok
}

// Click handles a plain click on a row's cell at week w. An unscheduled row
// gets the span [w, w]. The first click after a drag release is swallowed.
func (in *Interaction) Click(row Row, w int) (SpanUpdate, bool) {
	if in.suppressClick {
		in.suppressClick = false
		return SpanUpdate{}, false
	}
	if in.phase != PhaseIdle {
		return SpanUpdate{}, false
	}
	span, ok := ScheduleAt(row, w)
	if !ok || (in.weekCount > 0 && w > in.weekCount) {
		return SpanUpdate{}, false
	}
	return SpanUpdate{ItemID: row.ID(), Span: span}, true
}

// ClearClickSuppression forgets a pending click suppression. Hosts call it
// when a new pointer gesture starts, so only the click belonging to the
// gesture that ended the drag is swallowed.
func (in *Interaction) ClearClickSuppression() {
	in.suppressClick = false
}

// Unschedule is the "remove span" action: it closes the menu and returns the
// update resetting the row to [0, 0].
func (in *Interaction) Unschedule(itemID string) SpanUpdate {
	if in.phase == PhaseMenu {
		in.closeMenu()
	}
	return SpanUpdate{ItemID: itemID, Span: plan.Unscheduled}
}

// OpenEdit starts renaming a row, replacing any edit session already open
// without committing it. A drag in progress blocks it.
func (in *Interaction) OpenEdit(row Row, rect Rect) error {
	if in.phase == PhaseDragging {
		return ErrBusy
	}
	in.menu = Menu{}
	in.phase = PhaseEditing
	in.edit = EditSession{
		ItemID:   row.ID(),
		Original: row.Item.Name,
		Value:    row.Item.Name,
		Rect:     rect,
	}
	return nil
}

// Edit returns the open edit session.
func (in *Interaction) Edit() (EditSession, bool) {
	if in.phase != PhaseEditing {
		return EditSession{}, false
	}
	return in.edit, true
}

// SetEditValue stores the text typed so far.
func (in *Interaction) SetEditValue(v string) {
	if in.phase == PhaseEditing {
		in.edit.Value = v
	}
}

// CommitEdit closes the editor and returns the rename to persist. A blank
// value falls back to the original name.
func (in *Interaction) CommitEdit() (NameUpdate, bool) {
	if in.phase != PhaseEditing {
		return NameUpdate{}, false
	}
	name := strings.TrimSpace(in.edit.Value)
	if name == "" {
		name = in.edit.Original
	}
	update := NameUpdate{ItemID: in.edit.ItemID, Name: name}
	in.phase = PhaseIdle
	in.edit = EditSession{}
	return update, true
}

// CancelEdit closes the editor without persisting.
func (in *Interaction) CancelEdit() {
	if in.phase != PhaseEditing {
		return
	}
	in.phase = PhaseIdle
	in.edit = EditSession{}
}

// OpenMenu opens the context menu for a scheduled row. Only allowed from Idle
// or while another menu is open.
func (in *Interaction) OpenMenu(row Row, at Point) error {
	if in.phase != PhaseIdle && in.phase != PhaseMenu {
		return ErrBusy
	}
	if !row.HasTimeline {
		return ErrNoTimeline
	}
	in.phase = PhaseMenu
	in.menu = Menu{ItemID: row.ID(), At: at}
	in.suppressClick = false
	return nil
}

// Menu returns the open context menu.
func (in *Interaction) Menu() (Menu, bool) {
	if in.phase != PhaseMenu {
		return Menu{}, false
	}
	return in.menu, true
}

// DismissMenu closes the context menu.
func (in *Interaction) DismissMenu() {
	if in.phase == PhaseMenu {
		in.closeMenu()
	}
}

func (in *Interaction) closeMenu() {
	in.phase = PhaseIdle
	in.menu = Menu{}
}
