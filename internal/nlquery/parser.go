// Package nlquery translates free-text English queries into filter.Filter values.
//
// It is a fixed, ordered table of pattern rules evaluated against the lowercased
// query, not a grammar. Later rules may override fields set by earlier ones.
package nlquery

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"stringanalyzer/internal/filter"
)

var (
	// ErrEmptyQuery is returned for an empty or whitespace-only query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrNoFilters is returned when no rule recognised anything in the query.
	ErrNoFilters = errors.New("unable to parse query")
)

// ConflictError reports mutually exclusive cues found in the same query.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting filters: %s", strings.Join(e.Fields, ", "))
}

// Result is a successful parse.
type Result struct {
	Original string        `json:"original"`
	Filter   filter.Filter `json:"parsed_filters"`
	Cues     []string      `json:"cues,omitempty"`
}

// state is threaded through the rule table during one parse.
type state struct {
	filter    filter.Filter
	cues      []string
	conflicts []string
}

func (s *state) cue(phrase string) {
	s.cues = append(s.cues, phrase)
}

func (s *state) conflict(field string) {
	s.conflicts = append(s.conflicts, field)
}

// rule inspects the lowercased query and mutates the parse state.
type rule struct {
	name  string
	apply func(q string, s *state)
}

// rules run in order; exact length deliberately follows longer/shorter.
var rules = []rule{
	{name: "palindrome", apply: palindromeRule},
	{name: "word_count", apply: wordCountRule},
	{name: "longer_than", apply: longerThanRule},
	{name: "shorter_than", apply: shorterThanRule},
	{name: "exact_length", apply: exactLengthRule},
	{name: "contains_character", apply: containsRule},
	{name: "length_bounds", apply: lengthBoundsRule},
}

// Parse translates query into a Result. It returns ErrEmptyQuery,
// a *ConflictError, or ErrNoFilters on failure, in that order of precedence.
func Parse(query string) (*Result, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}

	var s state
	for _, r := range rules {
		r.apply(q, &s)
	}

	if len(s.conflicts) > 0 {
		return nil, &ConflictError{Fields: s.conflicts}
	}
	if s.filter.IsEmpty() {
		return nil, ErrNoFilters
	}

	return &Result{
		Original: query,
		Filter:   s.filter,
		Cues:     s.cues,
	}, nil
}

var (
	palindromeRe  = regexp.MustCompile(`(\bnot\s+(?:an?\s+)?|\bnon[-\s]?)?palindrom(?:es?|ic)\b`)
	wordCountRe   = regexp.MustCompile(`\b(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s+words?\b`)
	longerThanRe  = regexp.MustCompile(`longer than (\d+)`)
	shorterThanRe = regexp.MustCompile(`shorter than (\d+)`)
	exactLengthRe = regexp.MustCompile(`exactly (\d+) characters?`)
	containsRe    = regexp.MustCompile(`\bcontain(?:s|ing)?\s+(?:the\s+)?(?:letter\s+|character\s+)?['"]?([a-z0-9])(?:['"]|\b)`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// palindromeRule treats each palindrome mention as a separate cue. A negated
// mention ("not palindrome") does not also count as a positive one, so a
// conflict needs two distinct cues pointing in opposite directions.
func palindromeRule(q string, s *state) {
	matches := palindromeRe.FindAllStringSubmatch(q, -1)
	if len(matches) == 0 {
		return
	}

	var positive, negative int
	for _, m := range matches {
		if m[1] != "" {
			negative++
		} else {
			positive++
		}
		s.cue(m[0])
	}

	if positive > 0 && negative > 0 {
		s.conflict("is_palindrome")
		return
	}
	s.filter.IsPalindrome = filter.Bool(negative == 0)
}

func wordCountRule(q string, s *state) {
	if strings.Contains(q, "single word") {
		s.filter.WordCount = filter.Int(1)
		s.cue("single word")
		return
	}
	m := wordCountRe.FindStringSubmatch(q)
	if m == nil {
		return
	}
	n, ok := numberWords[m[1]]
	if !ok {
		var err error
		if n, err = strconv.Atoi(m[1]); err != nil {
			return
		}
	}
	s.filter.WordCount = filter.Int(n)
	s.cue(m[0])
}

// longerThanRule reports a length conflict when no length can exceed n.
func longerThanRule(q string, s *state) {
	n, phrase, ok := number(longerThanRe, q)
	if !ok {
		return
	}
	s.cue(phrase)
	if n == math.MaxInt {
		s.conflict("length")
		return
	}
	s.filter.MinLength = filter.Int(n + 1)
}

func shorterThanRule(q string, s *state) {
	if n, phrase, ok := number(shorterThanRe, q); ok {
		s.filter.MaxLength = filter.Int(n - 1)
		s.cue(phrase)
	}
}

func exactLengthRule(q string, s *state) {
	if n, phrase, ok := number(exactLengthRe, q); ok {
		s.filter.MinLength = filter.Int(n)
		s.filter.MaxLength = filter.Int(n)
		s.cue(phrase)
	}
}

// containsRule falls back to the "first vowel" cue, which always means 'a'.
func containsRule(q string, s *state) {
	if m := containsRe.FindStringSubmatch(q); m != nil {
		s.filter.ContainsCharacter = filter.Char(m[1])
		s.cue(m[0])
		return
	}
	if strings.Contains(q, "first vowel") {
		s.filter.ContainsCharacter = filter.Char("a")
		s.cue("first vowel")
	}
}

// lengthBoundsRule flags bounds no string can satisfy, so the caller gets an
// explicit conflict rather than a filter that silently matches nothing.
func lengthBoundsRule(_ string, s *state) {
	minLen, maxLen := s.filter.MinLength, s.filter.MaxLength
	if maxLen == nil {
		return
	}
	if *maxLen < 0 || (minLen != nil && *minLen > *maxLen) {
		s.conflict("length")
	}
}

func number(re *regexp.Regexp, q string) (int, string, bool) {
	m := re.FindStringSubmatch(q)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, m[0], true
}
