package interval

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 9*60 + 30},
		{name: "last minute", input: "23:59", want: 23*60 + 59},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not a clock time", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimeOfDay(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseTimeOfDay(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	t.Parallel()

	if got := TimeOfDay(9*60 + 5).String(); got != "09:05" {
		t.Fatalf("String() = %q, want %q", got, "09:05")
	}
}

func TestSpanOverlaps(t *testing.T) {
	t.Parallel()

	span := func(start, end string) Span {
		t.Helper()
		s, err := ParseTimeOfDay(start)
		if err != nil {
			t.Fatalf("bad start %q: %v", start, err)
		}
		e, err := ParseTimeOfDay(end)
		if err != nil {
			t.Fatalf("bad end %q: %v", end, err)
		}
		return Span{Start: s, End: e}
	}

	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{name: "identical", a: span("09:00", "10:00"), b: span("09:00", "10:00"), want: true},
		{name: "partial overlap", a: span("09:00", "10:00"), b: span("09:30", "10:30"), want: true},
		{name: "containment", a: span("09:00", "12:00"), b: span("10:00", "11:00"), want: true},
		{name: "touching boundaries", a: span("09:00", "10:00"), b: span("10:00", "11:00"), want: false},
		{name: "disjoint", a: span("09:00", "10:00"), b: span("11:00", "12:00"), want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("%v.Overlaps(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// Overlap is symmetric.
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Fatalf("%v.Overlaps(%v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestSpanValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		span Span
		want bool
	}{
		{name: "well formed", span: Span{Start: 540, End: 600}, want: true},
		{name: "full day", span: Span{Start: 0, End: minutesPerDay}, want: true},
		{name: "zero duration", span: Span{Start: 540, End: 540}, want: false},
		{name: "inverted", span: Span{Start: 600, End: 540}, want: false},
		{name: "past midnight", span: Span{Start: 23 * 60, End: minutesPerDay + 30}, want: false},
		{name: "negative start", span: Span{Start: -10, End: 60}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.span.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDateParsingAndWeekday(t *testing.T) {
	t.Parallel()

	date, err := ParseDate("2025-01-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Weekday() != time.Monday {
		t.Fatalf("Weekday() = %v, want Monday", date.Weekday())
	}
	if got := date.String(); got != "2025-01-06" {
		t.Fatalf("String() = %q, want %q", got, "2025-01-06")
	}

	if _, err := ParseDate("2025-13-01"); err == nil {
		t.Fatal("expected error for invalid month")
	}
	if _, err := ParseDate("January 6"); err == nil {
		t.Fatal("expected error for non ISO input")
	}
}

func TestDateSpanContainsAndOverlaps(t *testing.T) {
	t.Parallel()

	mustDate := func(value string) Date {
		t.Helper()
		d, err := ParseDate(value)
		if err != nil {
			t.Fatalf("bad date %q: %v", value, err)
		}
		return d
	}

	spring := DateSpan{First: mustDate("2025-01-06"), Last: mustDate("2025-05-23")}
	fall := DateSpan{First: mustDate("2025-08-25"), Last: mustDate("2025-12-12")}
	summer := DateSpan{First: mustDate("2025-05-23"), Last: mustDate("2025-08-01")}

	if !spring.Contains(mustDate("2025-01-06")) {
		t.Fatal("first day should be inside the range")
	}
	if !spring.Contains(mustDate("2025-05-23")) {
		t.Fatal("last day should be inside the range")
	}
	if spring.Contains(mustDate("2025-05-24")) {
		t.Fatal("day after the range should be outside")
	}

	if spring.Overlaps(fall) {
		t.Fatal("disjoint terms should not overlap")
	}
	// Inclusive bounds: sharing a single day counts.
	if !spring.Overlaps(summer) {
		t.Fatal("ranges sharing a boundary day should overlap")
	}
}
