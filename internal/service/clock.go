package service

import "time"

// Clock supplies creation timestamps so tests can pin them.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock, returning the current UTC time.
type SystemClock struct{}

// Now returns time.Now in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
