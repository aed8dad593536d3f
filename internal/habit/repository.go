package habit

import (
	"context"
	"time"
)

// Repository defines the storage interface for the habit log.
type Repository interface {
	// LogRecord adds a record and sets its ID.
	LogRecord(ctx context.Context, r *Record) error

	// LogRecords adds several records atomically.
	LogRecords(ctx context.Context, records []*Record) error

	// ListRecordsByMonth returns the records of one month ordered by date,
	// then insertion order.
	ListRecordsByMonth(ctx context.Context, year int, month time.Month) ([]*Record, error)

	// DeleteRecord removes a record. Returns ErrRecordNotFound if no record
	// has the ID.
	DeleteRecord(ctx context.Context, id int64) error

	// Close releases any resources held by the repository.
	Close() error
}
