// Package repository holds parsed documents in memory, keyed by their
// stable ids. Repository itself carries no synchronization; Store wraps
// it with a mutex for concurrent callers.
package repository

import (
	"sort"
	"strings"

	"github.com/dr-yst/org-x/internal/apperr"
	"github.com/dr-yst/org-x/internal/org"
)

// Repository is an unsynchronized in-memory document collection.
type Repository struct {
	docs map[string]*org.Document
}

// New creates an empty repository.
func New() *Repository {
	return &Repository{docs: make(map[string]*org.Document)}
}

// Upsert inserts or replaces a document by id. Re-registering a document
// parsed from the same path replaces the previous state in full.
func (r *Repository) Upsert(doc *org.Document) {
	r.docs[doc.ID] = doc
}

// Get returns the document with the given id.
func (r *Repository) Get(id string) (*org.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return doc, nil
}

// GetByPath returns the document parsed from the given file path.
func (r *Repository) GetByPath(path string) (*org.Document, error) {
	for _, doc := range r.docs {
		if doc.FilePath == path {
			return doc, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// List returns all documents ordered by file path, pathless ones last by id.
func (r *Repository) List() []*org.Document {
	out := make([]*org.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FilePath != out[j].FilePath {
			if out[i].FilePath == "" {
				return false
			}
			if out[j].FilePath == "" {
				return true
			}
			return out[i].FilePath < out[j].FilePath
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of stored documents.
func (r *Repository) Len() int { return len(r.docs) }

// Remove deletes the document with the given id. Removing an absent id
// is a no-op.
func (r *Repository) Remove(id string) {
	delete(r.docs, id)
}

// Etag returns the stored etag for a document id, or "" when absent.
func (r *Repository) Etag(id string) string {
	if doc, ok := r.docs[id]; ok {
		return doc.Etag
	}
	return ""
}

// DocumentForHeadline resolves a headline id of the form "<docID>#<path>"
// to its owning document.
func (r *Repository) DocumentForHeadline(headlineID string) (*org.Document, error) {
	docID, _, ok := strings.Cut(headlineID, "#")
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r.Get(docID)
}

// Headline resolves a headline id across all stored documents.
func (r *Repository) Headline(headlineID string) (*org.Headline, error) {
	doc, err := r.DocumentForHeadline(headlineID)
	if err != nil {
		return nil, err
	}
	h := doc.Headline(headlineID)
	if h == nil {
		return nil, apperr.ErrNotFound
	}
	return h, nil
}

// TitleByID returns the display title for a document id.
func (r *Repository) TitleByID(id string) (string, error) {
	doc, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return doc.DisplayTitle(), nil
}

// PathByID returns the file path for a document id. Pathless documents
// yield "".
func (r *Repository) PathByID(id string) (string, error) {
	doc, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return doc.FilePath, nil
}

// PruneUncovered removes every file-backed document whose path is not in
// keep and returns the removed ids. Documents without a file path are
// never pruned.
func (r *Repository) PruneUncovered(keep map[string]struct{}) []string {
	var removed []string
	for id, doc := range r.docs {
		if doc.FilePath == "" {
			continue
		}
		if _, ok := keep[doc.FilePath]; !ok {
			delete(r.docs, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed
}
