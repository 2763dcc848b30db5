package timeline

import (
	"fmt"

	"github.com/javiermolinar/weekline/internal/plan"
)

// DragKind is which edge(s) of a span a pointer operation affects.
type DragKind int

const (
	DragMove DragKind = iota
	DragResizeStart
	DragResizeEnd
)

func (k DragKind) String() string {
	switch k {
	case DragMove:
		return "move"
	case DragResizeStart:
		return "resize-start"
	case DragResizeEnd:
		return "resize-end"
	default:
		return fmt.Sprintf("DragKind(%d)", int(k))
	}
}

// MoveSpan shifts a span so it starts at week w, keeping its duration.
func MoveSpan(s plan.Span, w int) plan.Span {
	d := s.End - s.Start
	return plan.Span{Start: w, End: w + d}
}

// ResizeStart moves the start edge to w. Rejected unless w < s.End.
func ResizeStart(s plan.Span, w int) (plan.Span, bool) {
	if w < 1 || w >= s.End {
		return s, false
	}
	return plan.Span{Start: w, End: s.End}, true
}

// ResizeEnd moves the end edge to w. Rejected unless w > s.Start.
func ResizeEnd(s plan.Span, w int) (plan.Span, bool) {
	if w <= s.Start {
		return s, false
	}
	return plan.Span{Start: s.Start, End: w}, true
}

// ApplyDrag computes the span a drag of the given kind produces when released
// over week w on an axis of weekCount weeks. A move that would run past the
// last week is rejected, as is any resize that would collapse or invert the
// span. weekCount <= 0 disables the upper bound.
func ApplyDrag(kind DragKind, s plan.Span, w, weekCount int) (plan.Span, bool) {
	if !s.IsScheduled() || w < 1 {
		return s, false
	}
	var (
		next plan.Span
		ok   bool
	)
	switch kind {
	case DragMove:
		next, ok = MoveSpan(s, w), true
	case DragResizeStart:
		next, ok = ResizeStart(s, w)
	case DragResizeEnd:
		next, ok = ResizeEnd(s, w)
	}
	if !ok {
		return s, false
	}
	if weekCount > 0 && next.End > weekCount {
		return s, false
	}
	if next == s {
		return s, false
	}
	return next, true
}

// ScheduleAt is the click-to-schedule policy: an unscheduled row clicked at
// week w gets the one-week span [w, w]. Scheduled rows are left alone.
func ScheduleAt(row Row, w int) (plan.Span, bool) {
	if row.HasTimeline || w < 1 {
		return row.Item.Span, false
	}
	return plan.Span{Start: w, End: w}, true
}
