package storage

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Dialect captures the per-engine differences of the SQL repository.
type Dialect struct {
	Name   string
	Driver string
	Schema []string
	// Numbered reports whether placeholders are $1, $2, ... instead of ?.
	Numbered bool
	// IsUniqueViolation recognises the engine's duplicate-key error.
	IsUniqueViolation func(error) bool
}

// SQLite is the default embedded engine.
var SQLite = Dialect{
	Name:   "sqlite",
	Driver: "sqlite3",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			value TEXT NOT NULL UNIQUE,
			length INTEGER NOT NULL,
			is_palindrome BOOLEAN NOT NULL,
			unique_characters INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			sha256_hash TEXT NOT NULL,
			character_frequency_map TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at);`,
	},
	IsUniqueViolation: func(err error) bool {
		var sqliteErr sqlite3.Error
		if !errors.As(err, &sqliteErr) {
			return false
		}
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	},
}

// Postgres uses lib/pq.
var Postgres = Dialect{
	Name:   "postgres",
	Driver: "postgres",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			value TEXT NOT NULL UNIQUE,
			length INTEGER NOT NULL,
			is_palindrome BOOLEAN NOT NULL,
			unique_characters INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			sha256_hash TEXT NOT NULL,
			character_frequency_map TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at);`,
	},
	Numbered: true,
	IsUniqueViolation: func(err error) bool {
		var pqErr *pq.Error
		return errors.As(err, &pqErr) && pqErr.Code == "23505"
	},
}

// MySQL uses go-sql-driver/mysql. Value uniqueness follows from the primary
// key, since the ID is the hash of the value and TEXT columns cannot carry a
// plain UNIQUE index.
var MySQL = Dialect{
	Name:   "mysql",
	Driver: "mysql",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id CHAR(64) PRIMARY KEY,
			value LONGTEXT NOT NULL,
			length INT NOT NULL,
			is_palindrome BOOLEAN NOT NULL,
			unique_characters INT NOT NULL,
			word_count INT NOT NULL,
			sha256_hash CHAR(64) NOT NULL,
			character_frequency_map LONGTEXT NOT NULL,
			created_at VARCHAR(40) NOT NULL,
			INDEX idx_analyses_created_at (created_at)
		) CHARACTER SET utf8mb4;`,
	},
	IsUniqueViolation: func(err error) bool {
		var myErr *mysql.MySQLError
		return errors.As(err, &myErr) && myErr.Number == 1062
	},
}

// DialectByName returns the dialect registered under name.
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case SQLite.Name, "sqlite3":
		return SQLite, true
	case Postgres.Name, "postgresql":
		return Postgres, true
	case MySQL.Name:
		return MySQL, true
	}
	return Dialect{}, false
}

// rebind rewrites ? placeholders for dialects with numbered placeholders.
func (d Dialect) rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
