package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/javiermolinar/weekline/internal/plan"
)

func TestApplyDrag(t *testing.T) {
	span := func(s, e int) plan.Span { return plan.Span{Start: s, End: e} }

	tests := []struct {
		name   string
		kind   DragKind
		origin plan.Span
		week   int
		want   plan.Span
		ok     bool
	}{
		{name: "move keeps duration", kind: DragMove, origin: span(2, 4), week: 5, want: span(5, 7), ok: true},
		{name: "move backwards", kind: DragMove, origin: span(6, 8), week: 1, want: span(1, 3), ok: true},
		{name: "move to last fitting week", kind: DragMove, origin: span(2, 4), week: 11, want: span(11, 13), ok: true},
		{name: "move past the axis", kind: DragMove, origin: span(2, 4), week: 12, want: span(2, 4), ok: false},
		{name: "move onto itself", kind: DragMove, origin: span(2, 4), week: 2, want: span(2, 4), ok: false},

		{name: "resize start earlier", kind: DragResizeStart, origin: span(3, 6), week: 1, want: span(1, 6), ok: true},
		{name: "resize start later", kind: DragResizeStart, origin: span(3, 6), week: 5, want: span(5, 6), ok: true},
		{name: "resize start onto end", kind: DragResizeStart, origin: span(3, 6), week: 6, want: span(3, 6), ok: false},
		{name: "resize start past end", kind: DragResizeStart, origin: span(3, 6), week: 8, want: span(3, 6), ok: false},

		{name: "resize end later", kind: DragResizeEnd, origin: span(3, 6), week: 9, want: span(3, 9), ok: true},
		{name: "resize end earlier", kind: DragResizeEnd, origin: span(3, 6), week: 4, want: span(3, 4), ok: true},
		{name: "resize end onto start", kind: DragResizeEnd, origin: span(3, 6), week: 3, want: span(3, 6), ok: false},
		{name: "resize end before start", kind: DragResizeEnd, origin: span(3, 6), week: 1, want: span(3, 6), ok: false},
		{name: "resize end past axis", kind: DragResizeEnd, origin: span(3, 6), week: 14, want: span(3, 6), ok: false},

		{name: "unscheduled origin", kind: DragMove, origin: plan.Unscheduled, week: 3, want: plan.Unscheduled, ok: false},
		{name: "week zero", kind: DragMove, origin: span(2, 4), week: 0, want: span(2, 4), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ApplyDrag(tt.kind, tt.origin, tt.week, 13)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.NoError(t, got.Within(13))
			}
		})
	}
}

func TestApplyDrag_UnboundedAxis(t *testing.T) {
	got, ok := ApplyDrag(DragMove, plan.Span{Start: 2, End: 4}, 40, 0)
	assert.True(t, ok)
	assert.Equal(t, plan.Span{Start: 40, End: 42}, got)
}

func TestMoveSpan_PreservesDuration(t *testing.T) {
	for _, s := range []plan.Span{{Start: 1, End: 1}, {Start: 2, End: 4}, {Start: 5, End: 12}} {
		for w := 1; w <= 10; w++ {
			got := MoveSpan(s, w)
			assert.Equal(t, w, got.Start)
			assert.Equal(t, s.Weeks(), got.Weeks())
		}
	}
}

func TestScheduleAt(t *testing.T) {
	catalog := plan.DefaultCatalog()

	unscheduled := MapItem(item("logo", plan.CategoryIdentity, "Logo Design", 0, 0), catalog)
	got, ok := ScheduleAt(unscheduled, 3)
	assert.True(t, ok)
	assert.Equal(t, plan.Span{Start: 3, End: 3}, got)

	scheduled := MapItem(item("lp", plan.CategoryWeb, "Landing Page", 2, 4), catalog)
	got, ok = ScheduleAt(scheduled, 3)
	assert.False(t, ok)
	assert.Equal(t, plan.Span{Start: 2, End: 4}, got)

	_, ok = ScheduleAt(unscheduled, 0)
	assert.False(t, ok)
}

func TestDragKindString(t *testing.T) {
	assert.Equal(t, "move", DragMove.String())
	assert.Equal(t, "resize-start", DragResizeStart.String())
	assert.Equal(t, "resize-end", DragResizeEnd.String())
	assert.Equal(t, "DragKind(9)", DragKind(9).String())
}
