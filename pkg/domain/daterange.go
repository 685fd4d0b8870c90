package domain

import (
	"fmt"
	"time"
)

// ValidationError reports malformed local input, such as an unparseable date.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DateRange is a calendar date span, inclusive on both ends.
// Used both for an existing booking and for a proposed one.
type DateRange struct {
	From time.Time
	To   time.Time
}

// dateLayout is the form the booking inputs use. The API itself returns
// full RFC 3339 timestamps; ParseDate accepts both.
const dateLayout = "2006-01-02"

// ParseDate parses a calendar date from either "2006-01-02" or an
// RFC 3339 timestamp, truncating to midnight UTC. Malformed input
// returns a *ValidationError rather than a zero time.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: fmt.Sprintf("cannot parse %q as a date", s)}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseDateRange parses a from/to pair into a DateRange.
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := ParseDate(from)
	if err != nil {
		return DateRange{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{From: f, To: t}, nil
}

// Overlaps reports whether two ranges share at least one day.
// Endpoints count: a checkout on another booking's check-in day is a
// conflict. Same-day turnover is not allowed, so this stays inclusive.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.From.After(other.To) && !r.To.Before(other.From)
}

// Nights returns the number of nights between From and To.
func (r DateRange) Nights() int {
	n := int(r.To.Sub(r.From).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// IsBooked reports whether the proposed range conflicts with any
// existing booking. False when the list is empty. Pure; the caller is
// responsible for refreshing the booking list first.
func IsBooked(existing []DateRange, proposed DateRange) bool {
	for _, r := range existing {
		if r.Overlaps(proposed) {
			return true
		}
	}
	return false
}

// BookedRanges projects a venue's expanded bookings into date ranges
// for availability checks.
func BookedRanges(bookings []Booking) []DateRange {
	ranges := make([]DateRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, DateRange{From: b.DateFrom, To: b.DateTo})
	}
	return ranges
}
