package org

import "testing"

func TestParseTimestampActive(t *testing.T) {
	ts := ParseTimestamp("<2023-05-10 Wed 14:30 +1w>")
	if ts == nil {
		t.Fatal("parse failed")
	}
	if ts.Kind != ActiveTimestamp {
		t.Fatalf("kind = %q", ts.Kind)
	}
	if ts.Start.Year != 2023 || ts.Start.Month != 5 || ts.Start.Day != 10 {
		t.Fatalf("date = %+v", ts.Start)
	}
	if !ts.Start.HasTime || ts.Start.Hour != 14 || ts.Start.Minute != 30 {
		t.Fatalf("time = %+v", ts.Start)
	}
	if ts.Repeater != "+1w" {
		t.Fatalf("repeater = %q", ts.Repeater)
	}
}

func TestParseTimestampInactive(t *testing.T) {
	ts := ParseTimestamp("[2023-05-10 Wed]")
	if ts == nil || ts.Kind != InactiveTimestamp {
		t.Fatalf("ts = %+v", ts)
	}
	if ts.Start.HasTime {
		t.Fatal("date-only timestamp should not carry a time")
	}
}

func TestParseTimestampRange(t *testing.T) {
	ts := ParseTimestamp("<2023-05-10 Wed>--<2023-05-12 Fri>")
	if ts == nil || ts.Kind != ActiveRangeTimestamp {
		t.Fatalf("ts = %+v", ts)
	}
	if ts.End.Day != 12 {
		t.Fatalf("end = %+v", ts.End)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "tomorrow", "<2023-5-1>", "2023-05-10"} {
		if ts := ParseTimestamp(s); ts != nil {
			t.Fatalf("ParseTimestamp(%q) = %+v, want nil", s, ts)
		}
	}
}

func TestTimestampFormatRoundTrip(t *testing.T) {
	for _, s := range []string{
		"<2023-05-10 Wed>",
		"[2023-05-10 Wed]",
		"<2023-05-10 Wed 14:30>",
		"<2023-05-10 Wed 14:30 +1w>",
	} {
		ts := ParseTimestamp(s)
		if ts == nil {
			t.Fatalf("parse %q failed", s)
		}
		if got := ts.Format(); got != s {
			t.Fatalf("Format() = %q, want %q", got, s)
		}
	}
}

func TestDatetimeHelpers(t *testing.T) {
	d := NewDate(2023, 5, 10)
	if d.Dayname != "Wed" {
		t.Fatalf("dayname = %q", d.Dayname)
	}
	if d.DateString() != "2023-05-10" {
		t.Fatalf("date string = %q", d.DateString())
	}

	parsed, err := ParseDate("2023-05-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if parsed.Day != 10 || parsed.HasTime {
		t.Fatalf("parsed = %+v", parsed)
	}

	if _, err := ParseDate("not a date"); err == nil {
		t.Fatal("invalid date should fail")
	}
}
