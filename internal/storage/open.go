package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Options selects and locates the backing engine.
type Options struct {
	Driver   string
	Path     string // sqlite database path
	FilePath string // JSON document path
	DSN      string // postgres / mysql data source name
}

// Open constructs the RecordStore named by opts.Driver and prepares its schema.
func Open(ctx context.Context, opts Options) (RecordStore, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile:
		return NewFileStore(opts.FilePath)
	case "", DriverSQLite:
		db, err := New(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := Migrate(db, SQLite); err != nil {
			_ = db.Close()
			return nil, err
		}
		return NewAnalysisRepo(db, SQLite), nil
	}

	dialect, ok := DialectByName(opts.Driver)
	if !ok {
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("store driver %q requires a DSN", opts.Driver)
	}

	db, err := OpenDB(ctx, dialect, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.DebugContext(ctx, "record store opened", "driver", dialect.Name)
	return NewAnalysisRepo(db, dialect), nil
}
