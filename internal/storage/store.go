// Package storage persists analysis records keyed by content hash.
//
// Three engines satisfy RecordStore: a SQL repository (sqlite, postgres or
// mysql), a flat JSON document file, and an in-memory map. All of them
// guarantee atomic insert-if-absent: two concurrent inserts of the same value
// never both succeed.
package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_record_store.go -package=mocks stringanalyzer/internal/storage RecordStore

import (
	"context"
	"errors"

	"stringanalyzer/internal/analysis"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a record with the same ID already exists.
	ErrConflict = errors.New("record already exists")
)

// Predicate selects records during a scan.
type Predicate func(*analysis.Record) bool

// RecordStore defines the persistence contract for analysis records.
// Implementations must be safe for concurrent use.
type RecordStore interface {
	// Insert persists rec, failing with ErrConflict if rec.ID is already stored.
	Insert(ctx context.Context, rec *analysis.Record) (*analysis.Record, error)
	// GetByID returns the record or ErrNotFound.
	GetByID(ctx context.Context, id string) (*analysis.Record, error)
	// DeleteByID removes the record or returns ErrNotFound. Deleting twice
	// reports ErrNotFound the second time.
	DeleteByID(ctx context.Context, id string) error
	// Scan returns every record accepted by pred (all records if pred is nil),
	// in insertion order.
	Scan(ctx context.Context, pred Predicate) ([]*analysis.Record, error)
	// Ping verifies the backing engine is reachable.
	Ping(ctx context.Context) error
	// Close releases the backing engine.
	Close() error
}

func accept(pred Predicate, rec *analysis.Record) bool {
	return pred == nil || pred(rec)
}
