// Package interval models the time values the reservation engine reasons
// about: minute-granular times of day, half-open spans within a day, calendar
// dates, and the term calendar that anchors recurring weekday allocations.
package interval

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time within a day expressed as minutes since midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay parses a "15:04" formatted clock time.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("interval: invalid time of day %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("interval: invalid time of day %q", value)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// Valid reports whether the value falls within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// String renders the time as "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Span is a half-open time interval [Start, End) within a single day.
type Span struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Valid reports whether the span is well-formed: both bounds inside the day
// and a strictly positive duration.
func (s Span) Valid() bool {
	return s.Start.Valid() && s.End > s.Start && s.End <= minutesPerDay
}

// Overlaps reports whether two spans intersect. Spans are half-open, so
// touching boundaries do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// String renders the span as "15:04-16:30".
func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Date is a calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "2006-01-02" formatted calendar date.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("interval: invalid date %q", value)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates an instant to the calendar date in its location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Weekday returns the day of week the date falls on.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool {
	return d.time().Before(other.time())
}

// After reports whether d follows other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// String renders the date as "2006-01-02".
func (d Date) String() string {
	return d.time().Format("2006-01-02")
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DateSpan is an inclusive range of calendar dates.
type DateSpan struct {
	First Date
	Last  Date
}

// Valid reports whether the range is well-formed.
func (ds DateSpan) Valid() bool {
	return !ds.First.IsZero() && !ds.Last.IsZero() && !ds.Last.Before(ds.First)
}

// Contains reports whether the date falls inside the range, bounds included.
func (ds DateSpan) Contains(d Date) bool {
	return !d.Before(ds.First) && !d.After(ds.Last)
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func (ds DateSpan) Overlaps(other DateSpan) bool {
	return !ds.Last.Before(other.First) && !other.Last.Before(ds.First)
}
