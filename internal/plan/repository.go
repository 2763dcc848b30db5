package plan

import "context"

// Repository defines the storage interface for engagements and their items.
// It is the backend collaborator the timeline reads from and writes through.
type Repository interface {
	// CreateEngagement adds a new engagement.
	CreateEngagement(ctx context.Context, e *Engagement) error

	// GetEngagement retrieves an engagement by ID.
	// Returns ErrEngagementNotFound if it does not exist.
	GetEngagement(ctx context.Context, id string) (*Engagement, error)

	// ListEngagements returns all engagements, most recent start first.
	ListEngagements(ctx context.Context) ([]*Engagement, error)

	// CreateItem adds an item to its engagement, appending it to the row order.
	CreateItem(ctx context.Context, item *Item) error

	// CreateItems adds several items in one transaction.
	CreateItems(ctx context.Context, items []*Item) error

	// GetItem retrieves an item by ID.
	// Returns ErrItemNotFound if it does not exist.
	GetItem(ctx context.Context, id string) (*Item, error)

	// ListItems returns an engagement's items in row order.
	ListItems(ctx context.Context, engagementID string) ([]*Item, error)

	// UpdateItem applies a partial update to an item's span or name.
	// Returns ErrItemNotFound if the item does not exist and ErrInvalidSpan
	// if the resulting span does not fit the engagement's week axis.
	UpdateItem(ctx context.Context, id string, patch Patch) error

	// ClearSpan resets an item to unscheduled. The item itself is kept.
	ClearSpan(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
