// Package org defines the org-mode document model: documents, headlines,
// titles, timestamps, and TODO keyword configuration.
package org

import (
	"fmt"
	"time"
)

// Datetime is a calendar date with an optional wall-clock time, as written
// inside org timestamps (e.g. "2023-05-10 Wed" or "2023-05-10 Wed 14:30").
type Datetime struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     int    `json:"day"`
	Dayname string `json:"dayname"`
	Hour    int    `json:"hour,omitempty"`
	Minute  int    `json:"minute,omitempty"`
	HasTime bool   `json:"has_time"`
}

// NewDate creates a date-only Datetime. The dayname is derived from the date.
func NewDate(year, month, day int) Datetime {
	return Datetime{
		Year:    year,
		Month:   month,
		Day:     day,
		Dayname: dayname(year, month, day),
	}
}

// NewDatetime creates a Datetime with time components.
func NewDatetime(year, month, day, hour, minute int) Datetime {
	d := NewDate(year, month, day)
	d.Hour = hour
	d.Minute = minute
	d.HasTime = true
	return d
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (Datetime, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Datetime{}, fmt.Errorf("org: parse date %q: %w", s, err)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

// ParseDatetime parses an ISO datetime string (YYYY-MM-DDThh:mm:ss).
func ParseDatetime(s string) (Datetime, error) {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return Datetime{}, fmt.Errorf("org: parse datetime %q: %w", s, err)
	}
	return NewDatetime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute()), nil
}

func dayname(year, month, day int) string {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Weekday().String()[:3]
}

// Time converts to a time.Time (midnight when no time components are set).
func (d Datetime) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, 0, 0, time.Local)
}

// FormatDate renders the date portion in org style: "2023-05-10 Wed".
func (d Datetime) FormatDate() string {
	return fmt.Sprintf("%04d-%02d-%02d %s", d.Year, d.Month, d.Day, d.Dayname)
}

// Format renders the full org form, including time when present:
// "2023-05-10 Wed 14:30".
func (d Datetime) Format() string {
	if d.HasTime {
		return fmt.Sprintf("%s %02d:%02d", d.FormatDate(), d.Hour, d.Minute)
	}
	return d.FormatDate()
}

// DateString returns the plain YYYY-MM-DD form.
func (d Datetime) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsToday reports whether the date is the current local date.
func (d Datetime) IsToday() bool {
	now := time.Now()
	return d.Year == now.Year() && d.Month == int(now.Month()) && d.Day == now.Day()
}

// IsThisWeek reports whether the date falls within the next 7 days,
// today included.
func (d Datetime) IsThisWeek() bool {
	today := time.Now()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	diff := d.Time().Sub(start)
	return diff >= 0 && diff < 7*24*time.Hour
}

// IsOverdue reports whether the date is before the current local date.
func (d Datetime) IsOverdue() bool {
	today := time.Now()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	return d.Time().Before(start)
}

// fingerprint contributes the datetime to an etag hash. The dayname is
// derived from the date components and therefore not included.
func (d Datetime) fingerprint() string {
	if d.HasTime {
		return fmt.Sprintf("%04d%02d%02d%02d%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
	}
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}
