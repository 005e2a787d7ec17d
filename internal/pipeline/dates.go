package pipeline

import (
	"errors"
	"fmt"
	"time"

	"stockcast/internal/calendar"
)

// DateLayout is the accepted input date format
const DateLayout = "2006-01-02"

// DefaultStart is the first day of the default window
var DefaultStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// ErrBadDate is returned for dates not in DateLayout
var ErrBadDate = errors.New("invalid date")

// ParseDates parses a start/end pair. An empty start means DefaultStart,
// an empty end means the local date of now.
func ParseDates(start, end string, now time.Time) (time.Time, time.Time, error) {
	s := DefaultStart
	e := calendar.Day(now)

	if start != "" {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", ErrBadDate, start)
		}
		s = t
	}
	if end != "" {
		t, err := time.Parse(DateLayout, end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", ErrBadDate, end)
		}
		e = t
	}
	return s, e, nil
}
