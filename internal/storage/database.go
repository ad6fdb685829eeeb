package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// New opens a SQLite database at the given path.
// WAL journaling and a busy timeout let concurrent requests share the file.
func New(path string) (*sql.DB, error) {
	return OpenDB(context.Background(), SQLite, path+"?_busy_timeout=5000&_journal_mode=WAL")
}

// OpenDB opens a database/sql pool for the dialect and verifies the connection.
func OpenDB(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}

	return db, nil
}

// Migrate creates the analyses table for the dialect.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB, d Dialect) error {
	for _, stmt := range d.Schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", d.Name, err)
		}
	}
	return nil
}
