package interval

import "testing"

func mustParseDate(t *testing.T, value string) Date {
	t.Helper()
	d, err := ParseDate(value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return d
}

func TestParseTermCalendar(t *testing.T) {
	t.Parallel()

	t.Run("parses multiple entries", func(t *testing.T) {
		t.Parallel()

		calendar, err := ParseTermCalendar("Spring 2025=2025-01-06..2025-05-23; Fall 2025=2025-08-25..2025-12-12")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		span, ok := calendar.Span("Spring 2025")
		if !ok {
			t.Fatal("Spring 2025 should be registered")
		}
		if span.First != mustParseDate(t, "2025-01-06") || span.Last != mustParseDate(t, "2025-05-23") {
			t.Fatalf("unexpected span %v", span)
		}
		if _, ok := calendar.Span("Fall 2025"); !ok {
			t.Fatal("Fall 2025 should be registered")
		}
	})

	t.Run("ignores empty entries", func(t *testing.T) {
		t.Parallel()

		calendar, err := ParseTermCalendar(";;Spring 2025=2025-01-06..2025-05-23;")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := calendar.Span("Spring 2025"); !ok {
			t.Fatal("Spring 2025 should be registered")
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		for _, encoded := range []string{
			"Spring 2025",
			"Spring 2025=2025-01-06",
			"Spring 2025=first..last",
			"Spring 2025=2025-05-23..2025-01-06",
		} {
			if _, err := ParseTermCalendar(encoded); err == nil {
				t.Fatalf("expected error for %q", encoded)
			}
		}
	})
}

func TestTermCalendarContainsDate(t *testing.T) {
	t.Parallel()

	calendar := NewTermCalendar(map[string]DateSpan{
		"Spring 2025": {First: mustParseDate(t, "2025-01-06"), Last: mustParseDate(t, "2025-05-23")},
	})

	if !calendar.ContainsDate("Spring 2025", mustParseDate(t, "2025-03-10")) {
		t.Fatal("in-term date should be contained")
	}
	if calendar.ContainsDate("Spring 2025", mustParseDate(t, "2025-06-02")) {
		t.Fatal("out-of-term date should not be contained")
	}
	// Unregistered tags assume containment so conflicts are never missed.
	if !calendar.ContainsDate("Winter 2099", mustParseDate(t, "2025-03-10")) {
		t.Fatal("unknown term should assume the date is in-term")
	}
}

func TestTermCalendarTermsOverlap(t *testing.T) {
	t.Parallel()

	calendar := NewTermCalendar(map[string]DateSpan{
		"Spring 2025": {First: mustParseDate(t, "2025-01-06"), Last: mustParseDate(t, "2025-05-23")},
		"Fall 2025":   {First: mustParseDate(t, "2025-08-25"), Last: mustParseDate(t, "2025-12-12")},
		"Summer 2025": {First: mustParseDate(t, "2025-05-19"), Last: mustParseDate(t, "2025-08-01")},
	})

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "same tag", a: "Spring 2025", b: "Spring 2025", want: true},
		{name: "same unregistered tag", a: "Winter 2099", b: "Winter 2099", want: true},
		{name: "disjoint registered terms", a: "Spring 2025", b: "Fall 2025", want: false},
		{name: "intersecting registered terms", a: "Spring 2025", b: "Summer 2025", want: true},
		{name: "distinct unregistered terms", a: "Winter 2098", b: "Winter 2099", want: false},
		{name: "registered against unregistered", a: "Spring 2025", b: "Winter 2099", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := calendar.TermsOverlap(tc.a, tc.b); got != tc.want {
				t.Fatalf("TermsOverlap(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
