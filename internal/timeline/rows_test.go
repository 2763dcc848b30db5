package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/weekline/internal/plan"
)

func item(id string, cat plan.Category, name string, start, end int) plan.Item {
	return plan.Item{ID: id, Category: cat, Name: name, Span: plan.Span{Start: start, End: end}}
}

func TestMapItem(t *testing.T) {
	catalog := plan.DefaultCatalog()

	t.Run("known category", func(t *testing.T) {
		row := MapItem(item("a", plan.CategoryWeb, "Landing Page", 2, 4), catalog)
		assert.Equal(t, plan.CategoryWeb, row.Category)
		assert.Equal(t, "Web", row.CategoryLabel)
		assert.Equal(t, "#81c8be", row.Color)
		assert.True(t, row.HasTimeline)
		assert.Equal(t, "a", row.ID())
	})

	t.Run("unknown category falls back", func(t *testing.T) {
		row := MapItem(item("b", "podcast", "Episode", 1, 1), catalog)
		assert.Equal(t, plan.CategoryOther, row.Category)
		assert.Equal(t, catalog.Fallback().Color, row.Color)
		assert.Equal(t, plan.Category("podcast"), row.Item.Category, "stored tag is kept")
	})

	t.Run("category lookup ignores case", func(t *testing.T) {
		row := MapItem(item("c", "IDENTITY", "Logo Design", 0, 0), catalog)
		assert.Equal(t, plan.CategoryIdentity, row.Category)
	})

	t.Run("timeline flag", func(t *testing.T) {
		tests := []struct {
			start, end int
			want       bool
		}{
			{0, 0, false},
			{3, 0, false},
			{0, 3, false},
			{1, 1, true},
			{2, 9, true},
		}
		for _, tt := range tests {
			row := MapItem(item("x", plan.CategorySetup, "n", tt.start, tt.end), catalog)
			assert.Equal(t, tt.want, row.HasTimeline, "span [%d,%d]", tt.start, tt.end)
		}
	})
}

func TestMapItems_SkipsNil(t *testing.T) {
	a := item("a", plan.CategoryWeb, "A", 1, 2)
	b := item("b", plan.CategorySocial, "B", 0, 0)
	rows := MapItems([]*plan.Item{&a, nil, &b}, plan.DefaultCatalog())
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID())
	assert.Equal(t, "b", rows[1].ID())
}

func TestGroupRows(t *testing.T) {
	catalog := plan.DefaultCatalog()
	items := []plan.Item{
		item("1", "mystery", "M", 0, 0),
		item("2", plan.CategoryWeb, "Landing Page", 2, 4),
		item("3", plan.CategoryIdentity, "Logo Design", 0, 0),
		item("4", plan.CategoryWeb, "Blog", 5, 6),
		item("5", plan.CategorySetup, "Kickoff", 1, 1),
	}
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, MapItem(it, catalog))
	}

	sections := GroupRows(rows, catalog)
	require.Len(t, sections, 4)

	assert.Equal(t, plan.CategorySetup, sections[0].Category.Key)
	assert.Equal(t, plan.CategoryIdentity, sections[1].Category.Key)
	assert.Equal(t, plan.CategoryWeb, sections[2].Category.Key)
	assert.Equal(t, plan.CategoryOther, sections[3].Category.Key)

	require.Len(t, sections[2].Rows, 2)
	assert.Equal(t, "2", sections[2].Rows[0].ID(), "row order inside a section is preserved")
	assert.Equal(t, "4", sections[2].Rows[1].ID())
}

func TestFindRow(t *testing.T) {
	rows := []Row{MapItem(item("a", plan.CategoryWeb, "A", 1, 1), plan.DefaultCatalog())}

	got, ok := FindRow(rows, "a")
	require.True(t, ok)
	assert.Equal(t, "A", got.Item.Name)

	_, ok = FindRow(rows, "missing")
	assert.False(t, ok)
}
