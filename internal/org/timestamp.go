package org

import (
	"fmt"
	"regexp"
	"strings"
)

// TimestampKind discriminates the org timestamp forms.
type TimestampKind string

const (
	ActiveTimestamp        TimestampKind = "active"
	InactiveTimestamp      TimestampKind = "inactive"
	ActiveRangeTimestamp   TimestampKind = "active_range"
	InactiveRangeTimestamp TimestampKind = "inactive_range"
	DiaryTimestamp         TimestampKind = "diary"
)

// Timestamp is an org-mode timestamp: <2023-05-10 Wed>, [2023-05-10 Wed],
// an active/inactive range, or a diary sexp. Repeater and Delay carry the
// raw cookie text (e.g. "+1w", "-2d") when present.
type Timestamp struct {
	Kind     TimestampKind `json:"kind"`
	Start    Datetime      `json:"start,omitempty"`
	End      Datetime      `json:"end,omitempty"`
	Repeater string        `json:"repeater,omitempty"`
	Delay    string        `json:"delay,omitempty"`
	Diary    string        `json:"diary,omitempty"`
}

// ActiveDate builds an active date-only timestamp.
func ActiveDate(year, month, day int) *Timestamp {
	return &Timestamp{Kind: ActiveTimestamp, Start: NewDate(year, month, day)}
}

// InactiveDate builds an inactive date-only timestamp.
func InactiveDate(year, month, day int) *Timestamp {
	return &Timestamp{Kind: InactiveTimestamp, Start: NewDate(year, month, day)}
}

// IsActive reports whether the timestamp is one of the active forms.
func (t *Timestamp) IsActive() bool {
	return t.Kind == ActiveTimestamp || t.Kind == ActiveRangeTimestamp
}

// IsRange reports whether the timestamp spans two dates.
func (t *Timestamp) IsRange() bool {
	return t.Kind == ActiveRangeTimestamp || t.Kind == InactiveRangeTimestamp
}

// StartDate returns the start datetime, or nil for diary timestamps.
func (t *Timestamp) StartDate() *Datetime {
	if t.Kind == DiaryTimestamp {
		return nil
	}
	return &t.Start
}

// IsToday reports whether the timestamp starts on the current date.
func (t *Timestamp) IsToday() bool {
	d := t.StartDate()
	return d != nil && d.IsToday()
}

// IsOverdue reports whether the timestamp starts before the current date.
func (t *Timestamp) IsOverdue() bool {
	d := t.StartDate()
	return d != nil && d.IsOverdue()
}

// DateString returns the YYYY-MM-DD form of the start date, or "" for
// diary timestamps.
func (t *Timestamp) DateString() string {
	d := t.StartDate()
	if d == nil {
		return ""
	}
	return d.DateString()
}

// Format renders the timestamp in org syntax.
func (t *Timestamp) Format() string {
	switch t.Kind {
	case DiaryTimestamp:
		return fmt.Sprintf("<%%%%(%s)>", t.Diary)
	case ActiveTimestamp:
		return "<" + t.inner(t.Start) + ">"
	case InactiveTimestamp:
		return "[" + t.inner(t.Start) + "]"
	case ActiveRangeTimestamp:
		return "<" + t.inner(t.Start) + ">--<" + t.inner(t.End) + ">"
	case InactiveRangeTimestamp:
		return "[" + t.inner(t.Start) + "]--[" + t.inner(t.End) + "]"
	}
	return ""
}

func (t *Timestamp) inner(d Datetime) string {
	s := d.Format()
	if t.Repeater != "" {
		s += " " + t.Repeater
	}
	if t.Delay != "" {
		s += " " + t.Delay
	}
	return s
}

// fingerprint contributes the timestamp to an etag hash.
func (t *Timestamp) fingerprint() string {
	if t == nil {
		return ""
	}
	if t.Kind == DiaryTimestamp {
		return "diary:" + t.Diary
	}
	return strings.Join([]string{
		string(t.Kind), t.Start.fingerprint(), t.End.fingerprint(), t.Repeater, t.Delay,
	}, "|")
}

var timestampRe = regexp.MustCompile(
	`^([<\[])(\d{4})-(\d{2})-(\d{2})(?:\s+([A-Za-z]{2,3}))?(?:\s+(\d{1,2}):(\d{2}))?((?:\s+[.+]?\+\d+[hdwmy])?)((?:\s+-\d+[hdwmy])?)[>\]]`)

// ParseTimestamp parses a single org timestamp (optionally a range joined
// with "--") from the beginning of s. It returns nil when s does not start
// with a timestamp.
func ParseTimestamp(s string) *Timestamp {
	s = strings.TrimSpace(s)
	first, rest := parseSingle(s)
	if first == nil {
		return nil
	}
	if strings.HasPrefix(rest, "--") {
		second, _ := parseSingle(rest[2:])
		if second != nil && second.Kind == first.Kind {
			kind := ActiveRangeTimestamp
			if first.Kind == InactiveTimestamp {
				kind = InactiveRangeTimestamp
			}
			return &Timestamp{
				Kind:     kind,
				Start:    first.Start,
				End:      second.Start,
				Repeater: first.Repeater,
				Delay:    first.Delay,
			}
		}
	}
	return first
}

func parseSingle(s string) (*Timestamp, string) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return nil, s
	}
	kind := ActiveTimestamp
	if m[1] == "[" {
		kind = InactiveTimestamp
	}
	var year, month, day int
	fmt.Sscanf(m[2], "%d", &year)
	fmt.Sscanf(m[3], "%d", &month)
	fmt.Sscanf(m[4], "%d", &day)

	start := NewDate(year, month, day)
	if m[6] != "" {
		var hour, minute int
		fmt.Sscanf(m[6], "%d", &hour)
		fmt.Sscanf(m[7], "%d", &minute)
		start = NewDatetime(year, month, day, hour, minute)
	}

	return &Timestamp{
		Kind:     kind,
		Start:    start,
		Repeater: strings.TrimSpace(m[8]),
		Delay:    strings.TrimSpace(m[9]),
	}, s[len(m[0]):]
}
