// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/habit"
	"github.com/javiermolinar/habitcal/internal/logging"
)

const dateLayout = "2006-01-02"

// SQLite implements habit.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	log *zap.Logger
}

// Option configures a SQLite repository.
type Option func(*SQLite)

// WithLogger sets the logger used for query tracing.
func WithLogger(log *zap.Logger) Option {
	return func(s *SQLite) {
		s.log = logging.OrNop(log)
	}
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s.log.Debug("habit log opened", zap.String("path", path))
	return s, nil
}

const insertRecord = `
	INSERT INTO records (date, file, habit, value, created_at)
	VALUES (?, ?, ?, ?, ?)
`

// LogRecord adds a record to the habit log.
func (s *SQLite) LogRecord(ctx context.Context, r *habit.Record) error {
	result, err := s.db.ExecContext(ctx, insertRecord,
		r.Date.Format(dateLayout),
		r.File,
		r.Habit,
		r.Value,
		createdAt(r).Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	r.ID = id

	s.log.Debug("record logged",
		zap.Int64("id", id), zap.String("date", r.Date.Format(dateLayout)), zap.String("habit", r.Habit))
	return nil
}

// LogRecords adds multiple records in a single transaction.
func (s *SQLite) LogRecords(ctx context.Context, records []*habit.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	ids := make([]int64, len(records))
	for i, r := range records {
		result, err := stmt.ExecContext(ctx,
			r.Date.Format(dateLayout),
			r.File,
			r.Habit,
			r.Value,
			createdAt(r).Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting record %q: %w", r.Habit, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		ids[i] = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	// IDs are only handed out once the batch is durable.
	for i, r := range records {
		r.ID = ids[i]
	}
	s.log.Debug("records logged", zap.Int("count", len(records)))
	return nil
}

// ListRecordsByMonth returns the records dated within the given month.
func (s *SQLite) ListRecordsByMonth(ctx context.Context, year int, month time.Month) ([]*habit.Record, error) {
	query := `
		SELECT id, date, file, habit, value, created_at
		FROM records
		WHERE date >= ? AND date < ?
		ORDER BY date, id
	`

	start := dateutil.FirstOfMonth(year, month)
	end := start.AddDate(0, 1, 0)

	rows, err := s.db.QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*habit.Record
	for rows.Next() {
		var (
			r         habit.Record
			date      string
			createdAt string
		)
		if err := rows.Scan(&r.ID, &date, &r.File, &r.Habit, &r.Value, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		r.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parsing record date: %w", err)
		}
		r.CreatedAt, err = parseDate(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}

		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	s.log.Debug("records listed",
		zap.Int("year", year), zap.Stringer("month", month), zap.Int("count", len(records)))
	return records, nil
}

// DeleteRecord removes a record from the habit log.
func (s *SQLite) DeleteRecord(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("record %d: %w", id, habit.ErrRecordNotFound)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func createdAt(r *habit.Record) time.Time {
	if r.CreatedAt.IsZero() {
		return time.Now()
	}
	return r.CreatedAt
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; the value is a
	// calendar day, so keep it at local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' && s[11:19] == "00:00:00" {
		if t, err := time.ParseInLocation(dateLayout, s[:10], time.Local); err == nil {
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

var _ habit.Repository = (*SQLite)(nil)
