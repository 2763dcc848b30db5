// Package importer loads engagement plans from YAML files.
//
// A plan file names the engagement and lists its services in row order:
//
//	engagement:
//	  name: Brand launch
//	  client: Acme
//	  start: 2024-01-01
//	  end: 2024-03-25
//	services:
//	  - category: web
//	    name: Landing Page
//	    amount: 3 pages
//	    weeks: [2, 4]
//	  - category: identity
//	    name: Logo Design
//
// A service without weeks is imported unscheduled.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/weekline/internal/plan"
)

// ErrMissingEngagement is returned when a file has no engagement block and
// no target engagement was given.
var ErrMissingEngagement = errors.New("plan file has no engagement")

// File is the on-disk plan format.
type File struct {
	Engagement *EngagementSpec `yaml:"engagement"`
	Services   []ServiceSpec   `yaml:"services"`
}

// EngagementSpec describes the contract.
type EngagementSpec struct {
	Name   string `yaml:"name"`
	Client string `yaml:"client"`
	Start  string `yaml:"start"` // YYYY-MM-DD
	End    string `yaml:"end"`   // YYYY-MM-DD
}

// ServiceSpec describes one service line item.
type ServiceSpec struct {
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
	Amount   string `yaml:"amount"`
	Weeks    []int  `yaml:"weeks"` // [start, end], [week] or empty
}

// Store is the subset of plan.Repository the importer writes through.
type Store interface {
	CreateEngagement(ctx context.Context, e *plan.Engagement) error
	GetEngagement(ctx context.Context, id string) (*plan.Engagement, error)
	CreateItems(ctx context.Context, items []*plan.Item) error
}

// Result summarizes an import.
type Result struct {
	Engagement *plan.Engagement
	Items      []*plan.Item
	Created    bool // engagement was created by this import
}

// Parse decodes a plan file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &f, nil
}

// ParseFile reads and decodes a plan file from disk.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plan file: %w", err)
	}
	defer func() { _ = fh.Close() }()
	return Parse(fh)
}

// NewEngagement validates the engagement block.
func (f *File) NewEngagement() (*plan.Engagement, error) {
	if f.Engagement == nil {
		return nil, ErrMissingEngagement
	}
	e, err := plan.NewEngagement(f.Engagement.Name, f.Engagement.Client, f.Engagement.Start, f.Engagement.End)
	if err != nil {
		return nil, fmt.Errorf("engagement: %w", err)
	}
	return e, nil
}

// Items validates the services against an engagement and builds the items.
// Categories are strict here even though the timeline tolerates unknown tags.
func (f *File) Items(e *plan.Engagement) ([]*plan.Item, error) {
	weeks := e.WeekCount()
	items := make([]*plan.Item, 0, len(f.Services))
	for i, svc := range f.Services {
		cat, err := plan.ParseCategory(svc.Category)
		if err != nil {
			return nil, fmt.Errorf("service %d: %w", i+1, err)
		}
		it, err := plan.NewItem(e.ID, cat, svc.Name, svc.Amount)
		if err != nil {
			return nil, fmt.Errorf("service %d: %w", i+1, err)
		}
		span, err := spanOf(svc.Weeks)
		if err != nil {
			return nil, fmt.Errorf("service %d (%s): %w", i+1, it.Name, err)
		}
		if err := span.Within(weeks); err != nil {
			return nil, fmt.Errorf("service %d (%s): %w", i+1, it.Name, err)
		}
		it.Span = span
		items = append(items, it)
	}
	return items, nil
}

func spanOf(weeks []int) (plan.Span, error) {
	switch len(weeks) {
	case 0:
		return plan.Unscheduled, nil
	case 1:
		return plan.Span{Start: weeks[0], End: weeks[0]}, nil
	case 2:
		return plan.Span{Start: weeks[0], End: weeks[1]}, nil
	default:
		return plan.Span{}, fmt.Errorf("%w: weeks takes one or two values, got %d", plan.ErrInvalidSpan, len(weeks))
	}
}

// Import stores a parsed plan. With an empty engagementID the file's
// engagement is created; otherwise the services are appended to the existing
// engagement and the file's engagement block is ignored.
func Import(ctx context.Context, store Store, f *File, engagementID string) (*Result, error) {
	res := &Result{}

	if engagementID != "" {
		e, err := store.GetEngagement(ctx, engagementID)
		if err != nil {
			return nil, err
		}
		res.Engagement = e
	} else {
		e, err := f.NewEngagement()
		if err != nil {
			return nil, err
		}
		res.Engagement = e
	}

	items, err := f.Items(res.Engagement)
	if err != nil {
		return nil, err
	}

	if engagementID == "" {
		if err := store.CreateEngagement(ctx, res.Engagement); err != nil {
			return nil, fmt.Errorf("creating engagement: %w", err)
		}
		res.Created = true
	}
	if err := store.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("creating services: %w", err)
	}
	res.Items = items
	return res, nil
}
