package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS engagements (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			client      TEXT NOT NULL DEFAULT '',
			start_date  DATE NOT NULL,
			end_date    DATE NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK (end_date >= start_date)
		);

		CREATE TABLE IF NOT EXISTS services (
			id            TEXT PRIMARY KEY,
			engagement_id TEXT NOT NULL REFERENCES engagements(id) ON DELETE CASCADE,
			category      TEXT NOT NULL,
			name          TEXT NOT NULL,
			amount        TEXT NOT NULL DEFAULT '',
			position      INTEGER NOT NULL DEFAULT 0,
			week_start    INTEGER NOT NULL DEFAULT 0,
			week_end      INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK ((week_start = 0 AND week_end = 0) OR (week_start >= 1 AND week_end >= week_start))
		);

		CREATE INDEX IF NOT EXISTS idx_services_engagement ON services(engagement_id, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
