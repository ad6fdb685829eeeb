// Package analysis computes the descriptive properties of a string value.
//
// Character counting policy: unique_characters and character_frequency_map are
// computed over the lowercased value with all whitespace removed, so "Aa a"
// has one unique character with a frequency of 3. Length, palindrome status and
// the content hash use the trimmed value as given.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// HashID returns the hex-encoded SHA-256 digest of value. It is the record ID.
func HashID(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Analyze computes the properties of value. The caller is expected to pass a
// trimmed, non-empty string.
func Analyze(value string) Properties {
	freq := frequencies(value)
	return Properties{
		Length:                utf8.RuneCountInString(value),
		IsPalindrome:          IsPalindrome(value),
		UniqueCharacters:      len(freq),
		WordCount:             len(strings.Fields(value)),
		SHA256Hash:            HashID(value),
		CharacterFrequencyMap: freq,
	}
}

// NewRecord analyses value and wraps the result in a Record stamped with createdAt.
func NewRecord(value string, createdAt time.Time) *Record {
	props := Analyze(value)
	return &Record{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
		CreatedAt:  createdAt.UTC(),
	}
}

// IsPalindrome reports whether s reads the same backwards, ignoring case.
// Whitespace and punctuation are significant.
func IsPalindrome(s string) bool {
	runes := []rune(strings.ToLower(s))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// Reverse returns s with its characters in reverse order.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func frequencies(s string) map[string]int {
	freq := make(map[string]int)
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		freq[string(r)]++
	}
	return freq
}
