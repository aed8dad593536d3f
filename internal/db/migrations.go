package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS records (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			date       DATE NOT NULL,
			file       TEXT NOT NULL DEFAULT '',
			habit      TEXT NOT NULL CHECK(habit <> ''),
			value      TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);
		CREATE INDEX IF NOT EXISTS idx_records_habit ON records(habit);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}

	return nil
}
