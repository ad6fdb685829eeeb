package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Query parameter names accepted by FromQuery.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// ParamError describes a malformed query parameter.
type ParamError struct {
	Param   string
	Message string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %q: %s", e.Param, e.Message)
}

// FromQuery builds a Filter from URL query parameters. Absent parameters are
// left unset; present parameters must be well formed or a *ParamError is returned.
func FromQuery(q url.Values) (Filter, error) {
	var f Filter

	if raw, ok := lookup(q, ParamIsPalindrome); ok {
		switch raw {
		case "true":
			f.IsPalindrome = Bool(true)
		case "false":
			f.IsPalindrome = Bool(false)
		default:
			return Filter{}, &ParamError{Param: ParamIsPalindrome, Message: "must be true or false"}
		}
	}

	var err error
	if f.MinLength, err = nonNegativeInt(q, ParamMinLength); err != nil {
		return Filter{}, err
	}
	if f.MaxLength, err = nonNegativeInt(q, ParamMaxLength); err != nil {
		return Filter{}, err
	}
	if f.WordCount, err = nonNegativeInt(q, ParamWordCount); err != nil {
		return Filter{}, err
	}

	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return Filter{}, &ParamError{Param: ParamMinLength, Message: "must not exceed max_length"}
	}

	if raw, ok := lookup(q, ParamContainsCharacter); ok {
		if utf8.RuneCountInString(raw) != 1 {
			return Filter{}, &ParamError{Param: ParamContainsCharacter, Message: "must be a single character"}
		}
		f.ContainsCharacter = Char(strings.ToLower(raw))
	}

	return f, nil
}

func lookup(q url.Values, key string) (string, bool) {
	values, ok := q[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func nonNegativeInt(q url.Values, key string) (*int, error) {
	raw, ok := lookup(q, key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, &ParamError{Param: key, Message: "must be a non-negative integer"}
	}
	return Int(n), nil
}
