// Package plan defines the domain types for weekline: engagements, the
// service items delivered during them, and the categories items belong to.
package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidSpan     = errors.New("span must be 0,0 or 1 <= start <= end")
	ErrInvalidRange    = errors.New("contract end must be on or after contract start")
	ErrUnknownCategory = errors.New("unknown category")
)

// Domain errors.
var (
	ErrItemNotFound       = errors.New("service item not found")
	ErrEngagementNotFound = errors.New("engagement not found")
)

// Span is the inclusive week range an item occupies on the timeline.
// Weeks are 1-based; the zero Span means the item is unscheduled.
type Span struct {
	Start int
	End   int
}

// Unscheduled is the span of an item with no bar.
var Unscheduled = Span{}

// IsScheduled reports whether both bounds are set.
func (s Span) IsScheduled() bool {
	return s.Start > 0 && s.End > 0
}

// Weeks returns the number of weeks covered, 0 when unscheduled.
func (s Span) Weeks() int {
	if !s.IsScheduled() {
		return 0
	}
	return s.End - s.Start + 1
}

// Contains reports whether week w lies inside the span.
func (s Span) Contains(w int) bool {
	return s.IsScheduled() && w >= s.Start && w <= s.End
}

// Validate checks the span is either unscheduled or well ordered.
func (s Span) Validate() error {
	if s == Unscheduled {
		return nil
	}
	if s.Start < 1 || s.End < s.Start {
		return fmt.Errorf("%w: got [%d,%d]", ErrInvalidSpan, s.Start, s.End)
	}
	return nil
}

// Within checks the span fits an axis of n weeks.
func (s Span) Within(n int) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsScheduled() && s.End > n {
		return fmt.Errorf("%w: week %d is past the last week %d", ErrInvalidSpan, s.End, n)
	}
	return nil
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}

// Item is a service line item delivered during an engagement.
type Item struct {
	ID           string
	EngagementID string
	Category     Category
	Name         string
	Amount       string // free-form amount/unit, e.g. "3 pages"
	Span         Span
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewItem creates an unscheduled item with a fresh identifier.
func NewItem(engagementID string, category Category, name, amount string) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	return &Item{
		ID:           uuid.New().String(),
		EngagementID: engagementID,
		Category:     category,
		Name:         name,
		Amount:       strings.TrimSpace(amount),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Patch is a partial item update. Nil fields are left untouched.
type Patch struct {
	WeekStart *int
	WeekEnd   *int
	Name      *string
}

// SpanPatch builds a patch that sets both span bounds.
func SpanPatch(s Span) Patch {
	start, end := s.Start, s.End
	return Patch{WeekStart: &start, WeekEnd: &end}
}

// NamePatch builds a patch that renames an item.
func NamePatch(name string) Patch {
	return Patch{Name: &name}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.WeekStart == nil && p.WeekEnd == nil && p.Name == nil
}

// Apply returns a copy of item with the patch applied and validated.
func (p Patch) Apply(item Item) (Item, error) {
	if p.WeekStart != nil {
		item.Span.Start = *p.WeekStart
	}
	if p.WeekEnd != nil {
		item.Span.End = *p.WeekEnd
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return item, ErrEmptyName
		}
		item.Name = name
	}
	if err := item.Span.Validate(); err != nil {
		return item, err
	}
	return item, nil
}

func (p Patch) String() string {
	var parts []string
	if p.WeekStart != nil {
		parts = append(parts, fmt.Sprintf("start=%d", *p.WeekStart))
	}
	if p.WeekEnd != nil {
		parts = append(parts, fmt.Sprintf("end=%d", *p.WeekEnd))
	}
	if p.Name != nil {
		parts = append(parts, fmt.Sprintf("name=%q", *p.Name))
	}
	return strings.Join(parts, " ")
}
