// Package filter defines the structured record filter shared by the typed
// query-parameter API and the natural-language API.
package filter

import (
	"strings"

	"stringanalyzer/internal/analysis"
)

// Filter is a partially populated set of constraints. Nil fields impose no
// constraint; populated fields are combined with logical AND.
type Filter struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no field is populated. An empty filter matches every record.
func (f Filter) IsEmpty() bool {
	return f.IsPalindrome == nil &&
		f.MinLength == nil &&
		f.MaxLength == nil &&
		f.WordCount == nil &&
		f.ContainsCharacter == nil
}

// Matches reports whether rec satisfies every populated field of f.
func (f Filter) Matches(rec *analysis.Record) bool {
	if rec == nil {
		return false
	}
	props := rec.Properties
	if f.IsPalindrome != nil && props.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && props.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && props.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && props.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil &&
		!strings.Contains(strings.ToLower(rec.Value), strings.ToLower(*f.ContainsCharacter)) {
		return false
	}
	return true
}

// Predicate returns f.Matches as a standalone function, suitable for store scans.
func (f Filter) Predicate() func(*analysis.Record) bool {
	return f.Matches
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Char returns a pointer to s.
func Char(s string) *string { return &s }
