package plan

import (
	"fmt"
	"strings"
)

// Category tags the kind of service an item delivers.
type Category string

const (
	CategorySetup    Category = "setup"
	CategoryIdentity Category = "identity"
	CategoryWeb      Category = "web"
	CategorySocial   Category = "social"
	CategoryTraining Category = "training"

	// CategoryOther is the fallback for unrecognized tags.
	CategoryOther Category = "other"
)

// CategoryInfo holds the display data for a category.
type CategoryInfo struct {
	Key   Category
	Label string
	Color string // hex, e.g. "#8caaee"
}

// Catalog is the ordered, static list of known categories.
type Catalog struct {
	entries  []CategoryInfo
	fallback CategoryInfo
}

var defaultCatalog = Catalog{
	entries: []CategoryInfo{
		{Key: CategorySetup, Label: "Setup", Color: "#8caaee"},
		{Key: CategoryIdentity, Label: "Identity", Color: "#ca9ee6"},
		{Key: CategoryWeb, Label: "Web", Color: "#81c8be"},
		{Key: CategorySocial, Label: "Social", Color: "#ef9f76"},
		{Key: CategoryTraining, Label: "Training", Color: "#a6d189"},
	},
	fallback: CategoryInfo{Key: CategoryOther, Label: "Other", Color: "#949cbb"},
}

// DefaultCatalog returns the built-in category catalog.
func DefaultCatalog() Catalog {
	return defaultCatalog
}

// Lookup resolves a category, returning the fallback entry for unknown tags.
func (c Catalog) Lookup(key Category) CategoryInfo {
	info, ok := c.Find(key)
	if !ok {
		return c.fallback
	}
	return info
}

// Find resolves a known category.
func (c Catalog) Find(key Category) (CategoryInfo, bool) {
	k := Category(strings.ToLower(strings.TrimSpace(string(key))))
	for _, e := range c.entries {
		if e.Key == k {
			return e, true
		}
	}
	return CategoryInfo{}, false
}

// Entries returns the known categories in display order.
func (c Catalog) Entries() []CategoryInfo {
	out := make([]CategoryInfo, len(c.entries))
	copy(out, c.entries)
	return out
}

// Fallback returns the entry used for unknown tags.
func (c Catalog) Fallback() CategoryInfo {
	return c.fallback
}

// Order returns the display rank of a category; unknown tags sort last.
func (c Catalog) Order(key Category) int {
	k := Category(strings.ToLower(strings.TrimSpace(string(key))))
	for i, e := range c.entries {
		if e.Key == k {
			return i
		}
	}
	return len(c.entries)
}

// ParseCategory parses user input strictly. Used by the CLI; the timeline
// itself never rejects a stored tag.
func ParseCategory(s string) (Category, error) {
	info, ok := defaultCatalog.Find(Category(s))
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownCategory, s)
	}
	return info.Key, nil
}

// CategoryKeys returns the known category tags as strings.
func CategoryKeys() []string {
	keys := make([]string, 0, len(defaultCatalog.entries))
	for _, e := range defaultCatalog.entries {
		keys = append(keys, string(e.Key))
	}
	return keys
}
