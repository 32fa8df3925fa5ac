package interval

import (
	"fmt"
	"strings"
)

// TermCalendar maps opaque term tags (e.g. "Spring 2025") to the inclusive
// date range the term covers. Recurring reservations carry only the tag; the
// calendar is what lets the engine decide whether a concrete booking date
// falls inside a term.
type TermCalendar struct {
	spans map[string]DateSpan
}

// NewTermCalendar builds a calendar from explicit term definitions.
func NewTermCalendar(terms map[string]DateSpan) TermCalendar {
	spans := make(map[string]DateSpan, len(terms))
	for tag, span := range terms {
		if strings.TrimSpace(tag) == "" || !span.Valid() {
			continue
		}
		spans[tag] = span
	}
	return TermCalendar{spans: spans}
}

// ParseTermCalendar parses a calendar from its configuration encoding:
// semicolon-separated "Tag=2006-01-02..2006-01-02" entries.
func ParseTermCalendar(encoded string) (TermCalendar, error) {
	terms := make(map[string]DateSpan)
	for _, entry := range strings.Split(encoded, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tag, dates, ok := strings.Cut(entry, "=")
		if !ok {
			return TermCalendar{}, fmt.Errorf("interval: invalid term entry %q", entry)
		}
		first, last, ok := strings.Cut(dates, "..")
		if !ok {
			return TermCalendar{}, fmt.Errorf("interval: invalid term range %q", dates)
		}
		firstDate, err := ParseDate(strings.TrimSpace(first))
		if err != nil {
			return TermCalendar{}, err
		}
		lastDate, err := ParseDate(strings.TrimSpace(last))
		if err != nil {
			return TermCalendar{}, err
		}
		span := DateSpan{First: firstDate, Last: lastDate}
		if !span.Valid() {
			return TermCalendar{}, fmt.Errorf("interval: term %q ends before it starts", strings.TrimSpace(tag))
		}
		terms[strings.TrimSpace(tag)] = span
	}
	return NewTermCalendar(terms), nil
}

// Span returns the date range registered for a term tag.
func (c TermCalendar) Span(tag string) (DateSpan, bool) {
	span, ok := c.spans[tag]
	return span, ok
}

// ContainsDate reports whether a date can fall inside the named term. An
// unregistered tag answers true: with no calendar knowledge the engine must
// assume the date is in-term, which can only over-report conflicts, never
// admit a double grant.
func (c TermCalendar) ContainsDate(tag string, d Date) bool {
	span, ok := c.spans[tag]
	if !ok {
		return true
	}
	return span.Contains(d)
}

// TermsOverlap reports whether two terms can share a calendar day. Identical
// tags always overlap. Distinct tags overlap only when both are registered
// and their date ranges intersect; distinct unregistered tags are assumed to
// name distinct terms.
func (c TermCalendar) TermsOverlap(a, b string) bool {
	if a == b {
		return true
	}
	spanA, okA := c.spans[a]
	spanB, okB := c.spans[b]
	if !okA || !okB {
		return false
	}
	return spanA.Overlaps(spanB)
}
