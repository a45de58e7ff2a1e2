// Package parser turns raw org-mode text into the document model:
// document-level keyword lines, a flat headline scan, and the hierarchy
// builder that nests headlines by level.
package parser

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dr-yst/org-x/internal/apperr"
	"github.com/dr-yst/org-x/internal/checksum"
	"github.com/dr-yst/org-x/internal/org"
)

type config struct {
	activeKeywords   []string
	closedKeywords   []string
	customProperties []string
}

// Option configures a parse.
type Option func(*config)

// WithTodoKeywords overrides TODO keyword resolution. When supplied it
// takes precedence over in-file #+TODO declarations.
func WithTodoKeywords(active, closed []string) Option {
	return func(c *config) {
		c.activeKeywords = active
		c.closedKeywords = closed
	}
}

// WithCustomProperties names drawer properties that are promoted onto the
// title, making them part of the title's change fingerprint.
func WithCustomProperties(keys []string) Option {
	return func(c *config) { c.customProperties = keys }
}

// DocumentID derives the stable document id for a file path. Re-parsing
// the same file always yields the same id, so repository upserts replace
// in place instead of accumulating duplicates.
func DocumentID(filePath string) string {
	abs, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		abs = filepath.Clean(filePath)
	}
	return checksum.Sum([]byte(abs))
}

// Parse parses org content into a Document. filePath may be empty for
// content not backed by a file; such documents get a generated id.
// Parsing is permissive: malformed constructs degrade to plain text
// rather than failing the parse.
func Parse(content, filePath string, opts ...Option) (*org.Document, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	meta := scanKeywordLines(content)

	// The effective keyword sets must be fixed before headline extraction,
	// since they decide whether a title's leading token is a TODO keyword.
	active, closed := resolveTodoKeywords(&cfg, meta.todoLines)
	keywords := make(map[string]struct{}, len(active)+len(closed))
	for _, kw := range active {
		keywords[kw] = struct{}{}
	}
	for _, kw := range closed {
		keywords[kw] = struct{}{}
	}

	flat := extractHeadlines(content, keywords, cfg.customProperties)
	roots := BuildForest(flat)

	doc := &org.Document{
		Title:      meta.title,
		Content:    content,
		FilePath:   filePath,
		Category:   meta.category,
		Filetags:   meta.filetags,
		Properties: meta.properties,
		Etag:       checksum.Sum([]byte(content)),
		TodoConfig: org.TodoConfigFromKeywords(active, closed),
		ParsedAt:   time.Now(),
		Headlines:  roots,
	}
	if filePath != "" {
		doc.ID = DocumentID(filePath)
	} else {
		doc.ID = uuid.NewString()
	}

	doc.Reindex()
	ComputeEtags(doc.Headlines)

	return doc, nil
}

// ParseFile reads and parses an org file from disk.
func ParseFile(path string, opts ...Option) (*org.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperr.FileError{Path: path, Err: err}
	}
	return Parse(string(data), path, opts...)
}

type documentMeta struct {
	title      string
	category   string
	filetags   []string
	todoLines  []string
	properties map[string]string
}

// scanKeywordLines collects #+KEY: value declarations in one pass,
// independent of headline structure.
func scanKeywordLines(content string) documentMeta {
	meta := documentMeta{
		title:      org.DefaultTitle,
		properties: make(map[string]string),
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#+") {
			continue
		}
		key, value, ok := strings.Cut(line[2:], ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch strings.ToUpper(key) {
		case "TITLE":
			if value != "" {
				meta.title = value
			}
		case "CATEGORY":
			meta.category = value
		case "FILETAGS":
			meta.filetags = parseFiletags(value)
		case "TODO", "SEQ_TODO":
			meta.todoLines = append(meta.todoLines, value)
		default:
			meta.properties[key] = value
		}
	}
	return meta
}

// parseFiletags parses a ":tag1:tag2:" value. Values missing either the
// leading or trailing colon yield no tags.
func parseFiletags(value string) []string {
	if len(value) < 2 || !strings.HasPrefix(value, ":") || !strings.HasSuffix(value, ":") {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(strings.Trim(value, ":"), ":") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// resolveTodoKeywords applies the precedence: explicit override, then the
// first in-file declaration, then the {TODO}/{DONE} defaults.
func resolveTodoKeywords(cfg *config, todoLines []string) (active, closed []string) {
	if len(cfg.activeKeywords) > 0 || len(cfg.closedKeywords) > 0 {
		return cfg.activeKeywords, cfg.closedKeywords
	}
	for _, line := range todoLines {
		if a, c, ok := parseTodoDeclaration(line); ok {
			return a, c
		}
	}
	return []string{"TODO"}, []string{"DONE"}
}

// parseTodoDeclaration parses a #+TODO value: whitespace-separated
// keywords split on the first "|" into active and closed segments, with
// parenthesized shortcut suffixes ("TODO(t)") stripped. A declaration
// without "|" contributes all of its keywords as active.
func parseTodoDeclaration(value string) (active, closed []string, ok bool) {
	activePart, closedPart, _ := strings.Cut(value, "|")
	active = splitKeywords(activePart)
	closed = splitKeywords(closedPart)
	if len(active) == 0 && len(closed) == 0 {
		return nil, nil, false
	}
	return active, closed, true
}

func splitKeywords(segment string) []string {
	var out []string
	for _, word := range strings.Fields(segment) {
		kw, _, _ := strings.Cut(word, "(")
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
