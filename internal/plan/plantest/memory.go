// Package plantest provides an in-memory plan.Repository for tests.
package plantest

import (
	"context"
	"sort"
	"sync"

	"github.com/javiermolinar/weekline/internal/plan"
)

// Memory is a goroutine-safe in-memory repository. It enforces the same
// span rules as the SQLite store.
type Memory struct {
	mu          sync.Mutex
	engagements map[string]*plan.Engagement
	items       map[string]*plan.Item
	order       []string // item ids in insertion order
	calls       []string

	// Err, when set, is returned by every write.
	Err error
}

// NewMemory creates an empty repository.
func NewMemory() *Memory {
	return &Memory{
		engagements: make(map[string]*plan.Engagement),
		items:       make(map[string]*plan.Item),
	}
}

// Calls returns the write operations performed, e.g. "UpdateItem <id> start=5 end=7".
func (m *Memory) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Memory) CreateEngagement(ctx context.Context, e *plan.Engagement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if e.End.Before(e.Start) {
		return plan.ErrInvalidRange
	}
	cp := *e
	m.engagements[e.ID] = &cp
	return nil
}

func (m *Memory) GetEngagement(ctx context.Context, id string) (*plan.Engagement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engagements[id]
	if !ok {
		return nil, plan.ErrEngagementNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *Memory) ListEngagements(ctx context.Context) ([]*plan.Engagement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*plan.Engagement, 0, len(m.engagements))
	for _, e := range m.engagements {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out, nil
}

func (m *Memory) CreateItem(ctx context.Context, item *plan.Item) error {
	return m.CreateItems(ctx, []*plan.Item{item})
}

func (m *Memory) CreateItems(ctx context.Context, items []*plan.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, it := range items {
		e, ok := m.engagements[it.EngagementID]
		if !ok {
			return plan.ErrEngagementNotFound
		}
		if err := it.Span.Within(e.WeekCount()); err != nil {
			return err
		}
	}
	for _, it := range items {
		cp := *it
		cp.Position = len(m.order) + 1
		it.Position = cp.Position
		m.items[it.ID] = &cp
		m.order = append(m.order, it.ID)
	}
	return nil
}

func (m *Memory) GetItem(ctx context.Context, id string) (*plan.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, plan.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *Memory) ListItems(ctx context.Context, engagementID string) ([]*plan.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*plan.Item
	for _, id := range m.order {
		it, ok := m.items[id]
		if !ok || it.EngagementID != engagementID {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (m *Memory) UpdateItem(ctx context.Context, id string, patch plan.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "UpdateItem "+id+" "+patch.String())
	if m.Err != nil {
		return m.Err
	}
	it, ok := m.items[id]
	if !ok {
		return plan.ErrItemNotFound
	}
	next, err := patch.Apply(*it)
	if err != nil {
		return err
	}
	if e, ok := m.engagements[it.EngagementID]; ok {
		if err := next.Span.Within(e.WeekCount()); err != nil {
			return err
		}
	}
	*it = next
	return nil
}

func (m *Memory) ClearSpan(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "ClearSpan "+id)
	if m.Err != nil {
		return m.Err
	}
	it, ok := m.items[id]
	if !ok {
		return plan.ErrItemNotFound
	}
	it.Span = plan.Unscheduled
	return nil
}

func (m *Memory) Close() error {
	return nil
}

var _ plan.Repository = (*Memory)(nil)
