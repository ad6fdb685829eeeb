package filter

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stringanalyzer/internal/analysis"
)

func record(value string) *analysis.Record {
	return analysis.NewRecord(value, time.Unix(0, 0))
}

func TestFilter_Matches(t *testing.T) {
	racecar := record("racecar")
	hi := record("hi")
	cat := record("cat")
	ab := record("a b")

	tests := []struct {
		name   string
		filter Filter
		rec    *analysis.Record
		want   bool
	}{
		{name: "empty filter matches all", filter: Filter{}, rec: hi, want: true},
		{name: "palindrome true", filter: Filter{IsPalindrome: Bool(true)}, rec: racecar, want: true},
		{name: "palindrome false rejects palindrome", filter: Filter{IsPalindrome: Bool(false)}, rec: racecar, want: false},
		{name: "min length inclusive", filter: Filter{MinLength: Int(3)}, rec: cat, want: true},
		{name: "min length excludes shorter", filter: Filter{MinLength: Int(3)}, rec: hi, want: false},
		{name: "max length inclusive", filter: Filter{MaxLength: Int(2)}, rec: hi, want: true},
		{name: "max length excludes longer", filter: Filter{MaxLength: Int(2)}, rec: cat, want: false},
		{name: "word count exact", filter: Filter{WordCount: Int(2)}, rec: ab, want: true},
		{name: "word count mismatch", filter: Filter{WordCount: Int(1)}, rec: ab, want: false},
		{name: "contains character case-insensitive", filter: Filter{ContainsCharacter: Char("R")}, rec: racecar, want: true},
		{name: "contains character missing", filter: Filter{ContainsCharacter: Char("z")}, rec: racecar, want: false},
		{
			name:   "all fields must hold",
			filter: Filter{MinLength: Int(3), WordCount: Int(1)},
			rec:    ab,
			want:   false,
		},
		{name: "nil record", filter: Filter{}, rec: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.rec))
		})
	}
}

func TestFilter_Composition(t *testing.T) {
	f := Filter{MinLength: Int(3), WordCount: Int(1)}
	pred := f.Predicate()

	var got []string
	for _, rec := range []*analysis.Record{record("cat"), record("a b")} {
		if pred(rec) {
			got = append(got, rec.Value)
		}
	}
	assert.Equal(t, []string{"cat"}, got)
}

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, Filter{IsPalindrome: Bool(false)}.IsEmpty())
	assert.False(t, Filter{ContainsCharacter: Char("a")}.IsEmpty())
}

func TestFilter_JSONOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(Filter{IsPalindrome: Bool(false), MinLength: Int(6)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_palindrome":false,"min_length":6}`, string(data))
}

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      Filter
		wantParam string
	}{
		{name: "no params", query: "", want: Filter{}},
		{
			name:  "all params",
			query: "is_palindrome=true&min_length=3&max_length=10&word_count=1&contains_character=A",
			want: Filter{
				IsPalindrome:      Bool(true),
				MinLength:         Int(3),
				MaxLength:         Int(10),
				WordCount:         Int(1),
				ContainsCharacter: Char("a"),
			},
		},
		{name: "palindrome false", query: "is_palindrome=false", want: Filter{IsPalindrome: Bool(false)}},
		{name: "palindrome invalid", query: "is_palindrome=yes", wantParam: ParamIsPalindrome},
		{name: "palindrome empty", query: "is_palindrome=", wantParam: ParamIsPalindrome},
		{name: "min length not a number", query: "min_length=abc", wantParam: ParamMinLength},
		{name: "min length trailing junk", query: "min_length=5abc", wantParam: ParamMinLength},
		{name: "max length negative", query: "max_length=-1", wantParam: ParamMaxLength},
		{name: "word count empty", query: "word_count=", wantParam: ParamWordCount},
		{name: "min exceeds max", query: "min_length=5&max_length=2", wantParam: ParamMinLength},
		{name: "contains multiple characters", query: "contains_character=ab", wantParam: ParamContainsCharacter},
		{name: "contains empty", query: "contains_character=", wantParam: ParamContainsCharacter},
		{name: "zero values are valid", query: "min_length=0&word_count=0", want: Filter{MinLength: Int(0), WordCount: Int(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := FromQuery(q)
			if tt.wantParam != "" {
				var perr *ParamError
				require.True(t, errors.As(err, &perr), "expected *ParamError, got %v", err)
				assert.Equal(t, tt.wantParam, perr.Param)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
