package plan

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/weekline/internal/dateutil"
)

// Engagement is a client contract. Its start and end dates define the
// timeline's week axis.
type Engagement struct {
	ID        string
	Name      string
	Client    string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
}

// NewEngagement validates and builds an engagement.
// start and end are YYYY-MM-DD; empty start means today and empty end
// means a single-week contract.
func NewEngagement(name, client, start, end string) (*Engagement, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	r, err := dateutil.NewDateRange(start, end)
	if errors.Is(err, dateutil.ErrEndDateBeforeStart) {
		return nil, ErrInvalidRange
	}
	if err != nil {
		return nil, err
	}
	return &Engagement{
		ID:        uuid.New().String(),
		Name:      name,
		Client:    strings.TrimSpace(client),
		Start:     r.Start,
		End:       r.End,
		CreatedAt: time.Now(),
	}, nil
}

// WeekCount returns the length of the engagement's week axis.
func (e Engagement) WeekCount() int {
	return dateutil.WeekCount(e.Start, e.End)
}
