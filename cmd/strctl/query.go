package main

import "net/url"

// parseQuery accepts a query string with or without a leading '?'.
// Malformed pairs are dropped, matching url.ParseQuery's partial result.
func parseQuery(raw string) url.Values {
	if len(raw) > 0 && raw[0] == '?' {
		raw = raw[1:]
	}
	values, _ := url.ParseQuery(raw)
	return values
}
