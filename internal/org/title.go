package org

import (
	"io"
	"sort"
	"strconv"
	"strings"
)

// Title is the parsed title line of a headline: the display text with
// TODO keyword, priority cookie, and tags stripped out into their own
// fields, plus the property drawer entries attached to the headline.
type Title struct {
	Raw         string            `json:"raw"`
	Level       int               `json:"level"`
	Priority    rune              `json:"priority,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	TodoKeyword string            `json:"todo_keyword,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
	Planning    *Planning         `json:"planning,omitempty"`
}

// NewTitle creates a Title from its core components.
func NewTitle(raw string, level int, priority rune, tags []string, todoKeyword string) Title {
	return Title{
		Raw:         raw,
		Level:       level,
		Priority:    priority,
		Tags:        tags,
		TodoKeyword: todoKeyword,
		Properties:  make(map[string]string),
	}
}

// SimpleTitle creates a Title with only raw text and level.
func SimpleTitle(raw string, level int) Title {
	return NewTitle(raw, level, 0, nil, "")
}

// Property returns the drawer property for key, or "".
func (t *Title) Property(key string) string {
	return t.Properties[key]
}

// SetProperty sets a drawer property, allocating the map on first use.
func (t *Title) SetProperty(key, value string) {
	if t.Properties == nil {
		t.Properties = make(map[string]string)
	}
	t.Properties[key] = value
}

// Fingerprint writes a stable representation of all change-relevant title
// fields to w, for etag computation. Properties are emitted in sorted key
// order so map iteration order cannot perturb the hash.
func (t *Title) Fingerprint(w io.Writer) {
	io.WriteString(w, t.Raw)
	io.WriteString(w, "\x00")
	if t.Priority != 0 {
		io.WriteString(w, string(t.Priority))
	}
	io.WriteString(w, "\x00")
	io.WriteString(w, strings.Join(t.Tags, ":"))
	io.WriteString(w, "\x00")
	io.WriteString(w, t.TodoKeyword)
	io.WriteString(w, "\x00")
	io.WriteString(w, strconv.Itoa(t.Level))
	io.WriteString(w, "\x00")

	keys := make([]string, 0, len(t.Properties))
	for k := range t.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		io.WriteString(w, k)
		io.WriteString(w, "=")
		io.WriteString(w, t.Properties[k])
		io.WriteString(w, "\x00")
	}

	io.WriteString(w, t.Planning.fingerprint())
}
