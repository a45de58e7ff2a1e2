package org

import (
	"fmt"
	"strings"
	"time"
)

// Document is a fully parsed org file: document-level metadata plus the
// nested headline forest.
type Document struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	FilePath   string            `json:"file_path"`
	Category   string            `json:"category"`
	Filetags   []string          `json:"filetags,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Etag       string            `json:"etag"`
	TodoConfig *TodoConfig       `json:"todo_config,omitempty"`
	ParsedAt   time.Time         `json:"parsed_at"`
	Headlines  []*Headline       `json:"headlines,omitempty"`

	// outline maps headline id to its index path from the root list,
	// rebuilt by Reindex once per parse. Navigation helpers use it so a
	// lookup costs O(depth) instead of a full-tree scan.
	outline map[string][]int
}

// Reindex assigns position-based headline ids ("<docID>#0.2.1"), writes
// the document id into every headline, and rebuilds the outline index.
// It must be called after any structural change to Headlines.
func (d *Document) Reindex() {
	d.outline = make(map[string][]int)
	var visit func(h *Headline, path []int)
	visit = func(h *Headline, path []int) {
		h.ID = headlineID(d.ID, path)
		h.DocumentID = d.ID
		d.outline[h.ID] = append([]int(nil), path...)
		for i, c := range h.Children {
			visit(c, append(path, i))
		}
	}
	for i, h := range d.Headlines {
		visit(h, []int{i})
	}
}

func headlineID(docID string, path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return docID + "#" + strings.Join(parts, ".")
}

// Headline returns the headline with the given id, or nil. When the
// outline index is present (after Reindex) the lookup is O(depth);
// otherwise the tree is scanned.
func (d *Document) Headline(id string) *Headline {
	if d.outline != nil {
		path, ok := d.outline[id]
		if !ok {
			return nil
		}
		return d.at(path)
	}
	var found *Headline
	d.Walk(func(h *Headline) {
		if found == nil && h.ID == id {
			found = h
		}
	})
	return found
}

// Parent returns the parent of the headline with the given id, or nil for
// roots and unknown ids.
func (d *Document) Parent(id string) *Headline {
	path, ok := d.outline[id]
	if !ok || len(path) < 2 {
		return nil
	}
	return d.at(path[:len(path)-1])
}

// PrevSibling returns the preceding sibling of the headline with the
// given id, or nil.
func (d *Document) PrevSibling(id string) *Headline {
	path, ok := d.outline[id]
	if !ok || path[len(path)-1] == 0 {
		return nil
	}
	sib := append(append([]int(nil), path[:len(path)-1]...), path[len(path)-1]-1)
	return d.at(sib)
}

// NextSibling returns the following sibling of the headline with the
// given id, or nil.
func (d *Document) NextSibling(id string) *Headline {
	path, ok := d.outline[id]
	if !ok {
		return nil
	}
	sib := append(append([]int(nil), path[:len(path)-1]...), path[len(path)-1]+1)
	return d.at(sib)
}

// at resolves an index path to a headline, or nil when out of range.
func (d *Document) at(path []int) *Headline {
	if len(path) == 0 || path[0] >= len(d.Headlines) {
		return nil
	}
	h := d.Headlines[path[0]]
	for _, i := range path[1:] {
		if i >= len(h.Children) {
			return nil
		}
		h = h.Children[i]
	}
	return h
}

// Walk visits every headline in the document in document order.
func (d *Document) Walk(fn func(*Headline)) {
	for _, h := range d.Headlines {
		h.Walk(fn)
	}
}

// Tasks returns every task headline across the document.
func (d *Document) Tasks() []*Headline {
	var out []*Headline
	d.Walk(func(h *Headline) {
		if h.IsTask() {
			out = append(out, h)
		}
	})
	return out
}

// DefaultTitle is used when a document declares no #+TITLE.
const DefaultTitle = "Untitled Document"

// DisplayTitle returns the declared title, falling back to the filename
// and then to "Untitled" for documents with neither.
func (d *Document) DisplayTitle() string {
	if d.Title != "" && d.Title != DefaultTitle {
		return d.Title
	}
	if d.FilePath != "" {
		return baseName(d.FilePath)
	}
	return "Untitled"
}

func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	if i := strings.LastIndex(p, "."); i > 0 {
		p = p[:i]
	}
	return p
}
