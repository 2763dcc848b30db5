package timeline

import (
	"sort"

	"github.com/javiermolinar/weekline/internal/plan"
)

// Row is a service item resolved for display. It is rebuilt from the domain
// items on every load and never persisted.
type Row struct {
	Item          plan.Item
	Category      plan.Category
	CategoryLabel string
	Color         string
	HasTimeline   bool
}

// ID returns the underlying item identifier.
func (r Row) ID() string {
	return r.Item.ID
}

// MapItem resolves an item's category and timeline flag. Unknown categories
// map to the catalog fallback.
func MapItem(item plan.Item, catalog plan.Catalog) Row {
	info := catalog.Lookup(item.Category)
	return Row{
		Item:          item,
		Category:      info.Key,
		CategoryLabel: info.Label,
		Color:         info.Color,
		HasTimeline:   item.Span.Start > 0 && item.Span.End > 0,
	}
}

// MapItems maps a slice of items, skipping nil entries.
func MapItems(items []*plan.Item, catalog plan.Catalog) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		rows = append(rows, MapItem(*it, catalog))
	}
	return rows
}

// Section is a category header followed by its rows.
type Section struct {
	Category plan.CategoryInfo
	Rows     []Row
}

// GroupRows orders rows into sections following the catalog order, with the
// fallback category last. Row order inside a section is preserved.
func GroupRows(rows []Row, catalog plan.Catalog) []Section {
	byKey := make(map[plan.Category]int)
	var sections []Section
	for _, r := range rows {
		idx, ok := byKey[r.Category]
		if !ok {
			idx = len(sections)
			byKey[r.Category] = idx
			sections = append(sections, Section{Category: catalog.Lookup(r.Category)})
		}
		sections[idx].Rows = append(sections[idx].Rows, r)
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return catalog.Order(sections[i].Category.Key) < catalog.Order(sections[j].Category.Key)
	})
	return sections
}

// FindRow returns the row for an item id.
func FindRow(rows []Row, id string) (Row, bool) {
	for _, r := range rows {
		if r.ID() == id {
			return r, true
		}
	}
	return Row{}, false
}
