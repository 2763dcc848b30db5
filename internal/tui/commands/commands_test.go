package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/weekline/internal/plan"
	"github.com/javiermolinar/weekline/internal/plan/plantest"
)

func seed(t *testing.T) (*plantest.Memory, *plan.Engagement, *plan.Item) {
	t.Helper()
	repo := plantest.NewMemory()
	ctx := context.Background()

	e, err := plan.NewEngagement("Brand launch", "Acme", "2024-01-01", "2024-03-25")
	if err != nil {
		t.Fatalf("NewEngagement: %v", err)
	}
	if err := repo.CreateEngagement(ctx, e); err != nil {
		t.Fatalf("CreateEngagement: %v", err)
	}
	it, err := plan.NewItem(e.ID, plan.CategoryWeb, "Landing Page", "")
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	it.Span = plan.Span{Start: 2, End: 4}
	if err := repo.CreateItem(ctx, it); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return repo, e, it
}

func TestLoadPlanReturnsPlanLoadedMsg(t *testing.T) {
	repo, e, it := seed(t)

	msg := LoadPlan(repo, e.ID, 7)()

	loaded, ok := msg.(PlanLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want PlanLoadedMsg", msg)
	}
	if loaded.Seq != 7 {
		t.Fatalf("seq = %d, want 7", loaded.Seq)
	}
	if loaded.Engagement.ID != e.ID {
		t.Fatalf("engagement = %q, want %q", loaded.Engagement.ID, e.ID)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].ID != it.ID {
		t.Fatalf("items = %+v, want [%s]", loaded.Items, it.ID)
	}
}

func TestLoadPlanDefaultsToMostRecent(t *testing.T) {
	repo, _, _ := seed(t)
	later, err := plan.NewEngagement("Later", "", "2025-01-06", "2025-02-03")
	if err != nil {
		t.Fatalf("NewEngagement: %v", err)
	}
	if err := repo.CreateEngagement(context.Background(), later); err != nil {
		t.Fatalf("CreateEngagement: %v", err)
	}

	loaded, ok := LoadPlan(repo, "", 1)().(PlanLoadedMsg)
	if !ok {
		t.Fatal("expected PlanLoadedMsg")
	}
	if loaded.Engagement.ID != later.ID {
		t.Fatalf("engagement = %q, want most recent %q", loaded.Engagement.Name, later.Name)
	}
}

func TestLoadPlanErrors(t *testing.T) {
	repo := plantest.NewMemory()

	errMsg, ok := LoadPlan(repo, "", 1)().(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, ErrNoEngagements) {
		t.Fatalf("empty store: got %#v, want ErrNoEngagements", errMsg)
	}

	errMsg, ok = LoadPlan(repo, "missing", 1)().(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, plan.ErrEngagementNotFound) {
		t.Fatalf("missing engagement: got %#v, want ErrEngagementNotFound", errMsg)
	}
}

func TestUpdateItemReportsResult(t *testing.T) {
	repo, _, it := seed(t)
	patch := plan.SpanPatch(plan.Span{Start: 5, End: 7})

	msg := UpdateItem(repo, time.Second, OpUpdateSpan, it.ID, patch)()

	res, ok := msg.(SaveResultMsg)
	if !ok {
		t.Fatalf("msg type = %T, want SaveResultMsg", msg)
	}
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.ItemID != it.ID || res.Op != OpUpdateSpan {
		t.Fatalf("result = %+v", res)
	}

	got, _ := repo.GetItem(context.Background(), it.ID)
	if got.Span != (plan.Span{Start: 5, End: 7}) {
		t.Fatalf("span = %v, want [5,7]", got.Span)
	}
}

func TestUpdateItemReportsFailure(t *testing.T) {
	repo, _, it := seed(t)
	repo.Err = errors.New("disk full")

	res := UpdateItem(repo, time.Second, OpRename, it.ID, plan.NamePatch("x"))().(SaveResultMsg)
	if res.Err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(res.Err, repo.Err) {
		t.Fatalf("err = %v, want wrapped %v", res.Err, repo.Err)
	}
}

type panicRepo struct {
	plan.Repository
}

func (panicRepo) ClearSpan(ctx context.Context, id string) error {
	panic("boom")
}

func TestClearSpanRecoversPanic(t *testing.T) {
	res, ok := ClearSpan(panicRepo{}, 0, "abc")().(SaveResultMsg)
	if !ok {
		t.Fatal("expected SaveResultMsg after panic")
	}
	if res.Err == nil || res.Op != OpClearSpan || res.ItemID != "abc" {
		t.Fatalf("result = %+v", res)
	}
}

func TestClearSpan(t *testing.T) {
	repo, _, it := seed(t)

	res := ClearSpan(repo, time.Second, it.ID)().(SaveResultMsg)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	got, _ := repo.GetItem(context.Background(), it.ID)
	if got.Span.IsScheduled() {
		t.Fatalf("span = %v, want unscheduled", got.Span)
	}
}

func TestSaveOpString(t *testing.T) {
	if OpRename.String() != "rename" {
		t.Fatalf("OpRename = %q", OpRename.String())
	}
	if SaveOp(9).String() != "SaveOp(9)" {
		t.Fatalf("unknown op = %q", SaveOp(9).String())
	}
}
