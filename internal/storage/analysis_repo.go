package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stringanalyzer/internal/analysis"
)

// timeLayout is fixed width so that created_at sorts lexically in every engine.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectColumns = `SELECT id, value, length, is_palindrome, unique_characters, word_count,
	sha256_hash, character_frequency_map, created_at FROM analyses`

// AnalysisRepo is the SQL-backed RecordStore.
// The primary key on id enforces insert-if-absent inside the engine.
type AnalysisRepo struct {
	db      *sql.DB
	dialect Dialect
}

// NewAnalysisRepo creates a new AnalysisRepo.
func NewAnalysisRepo(db *sql.DB, dialect Dialect) *AnalysisRepo {
	return &AnalysisRepo{db: db, dialect: dialect}
}

// Insert stores rec. A duplicate key reported by the engine becomes ErrConflict.
func (r *AnalysisRepo) Insert(ctx context.Context, rec *analysis.Record) (*analysis.Record, error) {
	freq, err := json.Marshal(rec.Properties.CharacterFrequencyMap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode character frequency map: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.dialect.rebind(
		`INSERT INTO analyses (id, value, length, is_palindrome, unique_characters, word_count,
			sha256_hash, character_frequency_map, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rec.ID, rec.Value,
		rec.Properties.Length, rec.Properties.IsPalindrome, rec.Properties.UniqueCharacters,
		rec.Properties.WordCount, rec.Properties.SHA256Hash, string(freq),
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to insert analysis: %w", err)
	}

	return rec, nil
}

// GetByID gets a record by its content hash.
// Returns nil and ErrNotFound if not found.
func (r *AnalysisRepo) GetByID(ctx context.Context, id string) (*analysis.Record, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.rebind(selectColumns+" WHERE id = ?"), id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}
	return rec, nil
}

// DeleteByID removes a record by its content hash.
func (r *AnalysisRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind("DELETE FROM analyses WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Scan returns the records accepted by pred, oldest first.
func (r *AnalysisRepo) Scan(ctx context.Context, pred Predicate) ([]*analysis.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+" ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	out := make([]*analysis.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if accept(pred, rec) {
			out = append(out, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Ping verifies the database connection.
func (r *AnalysisRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the underlying pool.
func (r *AnalysisRepo) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*analysis.Record, error) {
	var rec analysis.Record
	var freq, createdAt string

	err := row.Scan(
		&rec.ID, &rec.Value,
		&rec.Properties.Length, &rec.Properties.IsPalindrome, &rec.Properties.UniqueCharacters,
		&rec.Properties.WordCount, &rec.Properties.SHA256Hash, &freq, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(freq), &rec.Properties.CharacterFrequencyMap); err != nil {
		return nil, fmt.Errorf("failed to decode character frequency map: %w", err)
	}

	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		// Rows written by other tools may use plain RFC3339
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
	}

	return &rec, nil
}
