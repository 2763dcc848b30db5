// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/weekline/internal/dateutil"
	"github.com/javiermolinar/weekline/internal/plan"
)

// SQLite implements plan.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ plan.Repository = (*SQLite)(nil)

const dsnParams = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Saves run concurrently; one connection serializes the transactions.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateEngagement adds a new engagement.
func (s *SQLite) CreateEngagement(ctx context.Context, e *plan.Engagement) error {
	if e.End.Before(e.Start) {
		return plan.ErrInvalidRange
	}

	query := `
		INSERT INTO engagements (id, name, client, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Client,
		e.Start.Format(dateutil.DateLayout),
		e.End.Format(dateutil.DateLayout),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting engagement: %w", err)
	}
	return nil
}

// GetEngagement retrieves an engagement by ID.
func (s *SQLite) GetEngagement(ctx context.Context, id string) (*plan.Engagement, error) {
	query := `
		SELECT id, name, client, start_date, end_date, created_at
		FROM engagements
		WHERE id = ?
	`
	e, err := scanEngagement(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("engagement %s: %w", id, plan.ErrEngagementNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying engagement: %w", err)
	}
	return e, nil
}

// ListEngagements returns all engagements, most recent start first.
func (s *SQLite) ListEngagements(ctx context.Context) ([]*plan.Engagement, error) {
	query := `
		SELECT id, name, client, start_date, end_date, created_at
		FROM engagements
		ORDER BY start_date DESC, created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying engagements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*plan.Engagement
	for rows.Next() {
		e, err := scanEngagement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning engagement: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating engagements: %w", err)
	}
	return out, nil
}

// CreateItem adds an item to its engagement, appending it to the row order
// when no position is set.
func (s *SQLite) CreateItem(ctx context.Context, item *plan.Item) error {
	return s.CreateItems(ctx, []*plan.Item{item})
}

// CreateItems adds several items in a single transaction. Items without a
// position are appended after the engagement's current last row.
func (s *SQLite) CreateItems(ctx context.Context, items []*plan.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO services (
			id, engagement_id, category, name, amount, position,
			week_start, week_end, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	weeks := make(map[string]int)
	next := make(map[string]int)
	for _, it := range items {
		n, ok := weeks[it.EngagementID]
		if !ok {
			e, err := getEngagementTx(ctx, tx, it.EngagementID)
			if err != nil {
				return err
			}
			n = e.WeekCount()
			weeks[it.EngagementID] = n

			var maxPos sql.NullInt64
			err = tx.QueryRowContext(ctx,
				`SELECT MAX(position) FROM services WHERE engagement_id = ?`, it.EngagementID,
			).Scan(&maxPos)
			if err != nil {
				return fmt.Errorf("reading row order: %w", err)
			}
			next[it.EngagementID] = int(maxPos.Int64) + 1
		}
		if err := it.Span.Within(n); err != nil {
			return fmt.Errorf("item %q: %w", it.Name, err)
		}
		if it.Position == 0 {
			it.Position = next[it.EngagementID]
		}
		if it.Position >= next[it.EngagementID] {
			next[it.EngagementID] = it.Position + 1
		}

		_, err := stmt.ExecContext(ctx,
			it.ID,
			it.EngagementID,
			string(it.Category),
			it.Name,
			it.Amount,
			it.Position,
			it.Span.Start,
			it.Span.End,
			it.CreatedAt.Format(time.RFC3339),
			it.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting item %q: %w", it.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLite) GetItem(ctx context.Context, id string) (*plan.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, selectItem+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, plan.ErrItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}
	return item, nil
}

// ListItems returns an engagement's items in row order.
func (s *SQLite) ListItems(ctx context.Context, engagementID string) ([]*plan.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		selectItem+` WHERE engagement_id = ? ORDER BY position, created_at`, engagementID)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*plan.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// UpdateItem applies a partial update to an item's span or name.
// The span must fit the engagement's week axis.
func (s *SQLite) UpdateItem(ctx context.Context, id string, patch plan.Patch) error {
	if patch.IsEmpty() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := scanItem(tx.QueryRowContext(ctx, selectItem+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("item %s: %w", id, plan.ErrItemNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying item: %w", err)
	}

	updated, err := patch.Apply(*current)
	if err != nil {
		return err
	}

	e, err := getEngagementTx(ctx, tx, current.EngagementID)
	if err != nil {
		return err
	}
	if err := updated.Span.Within(e.WeekCount()); err != nil {
		return err
	}

	query := `
		UPDATE services
		SET name = ?, week_start = ?, week_end = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query,
		updated.Name,
		updated.Span.Start,
		updated.Span.End,
		time.Now().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ClearSpan resets an item to unscheduled. Clearing an unscheduled item is a
// no-op.
func (s *SQLite) ClearSpan(ctx context.Context, id string) error {
	query := `UPDATE services SET week_start = 0, week_end = 0, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("clearing span: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %s: %w", id, plan.ErrItemNotFound)
	}
	return nil
}

const selectItem = `
	SELECT id, engagement_id, category, name, amount, position,
	       week_start, week_end, created_at, updated_at
	FROM services`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*plan.Item, error) {
	var (
		it        plan.Item
		category  string
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&it.ID,
		&it.EngagementID,
		&category,
		&it.Name,
		&it.Amount,
		&it.Position,
		&it.Span.Start,
		&it.Span.End,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Category = plan.Category(category)

	if it.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if it.UpdatedAt, err = parseDate(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}
	return &it, nil
}

func scanEngagement(row scanner) (*plan.Engagement, error) {
	var (
		e         plan.Engagement
		start     string
		end       string
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Client, &start, &end, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if e.Start, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	if e.End, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	if e.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &e, nil
}

func getEngagementTx(ctx context.Context, tx *sql.Tx, id string) (*plan.Engagement, error) {
	query := `
		SELECT id, name, client, start_date, end_date, created_at
		FROM engagements
		WHERE id = ?
	`
	e, err := scanEngagement(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("engagement %s: %w", id, plan.ErrEngagementNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying engagement: %w", err)
	}
	return e, nil
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateutil.DateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; treat as local midnight
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' && s[11:19] == "00:00:00" {
		if t, err := time.ParseInLocation(dateutil.DateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
