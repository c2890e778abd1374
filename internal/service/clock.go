package service

import (
	"fmt"
	"strings"
	"time"

	"ballotbox/internal/errors"
)

// Accepted input layouts. Zone-less layouts are read in the clock's location.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Clock yields "now" in the canonical reference timezone used for election windows.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a clock for the named IANA zone, e.g. "Asia/Colombo".
func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// FixedClock returns a clock frozen at t. Intended for tests and tooling.
func FixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Now returns the current instant in the reference timezone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Location returns the reference timezone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Parse reads an RFC 3339 timestamp, or a zone-less date/time in the reference timezone.
func (c *Clock) Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised timestamp %q", errors.ErrInvalidInput, value)
}
