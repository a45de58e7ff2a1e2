// Package metadata aggregates tags and categories across all registered
// documents. The service is constructed and injected explicitly; there is
// no process-wide instance.
package metadata

import (
	"sort"
	"sync"

	"github.com/dr-yst/org-x/internal/org"
)

// Count pairs a tag or category name with the number of headlines
// carrying it.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type headlineRef struct {
	documentID string
	headlineID string
}

// per-document aggregation, replaced wholesale on re-registration so
// repeated parses of the same file never inflate counts.
type docEntry struct {
	tags       map[string][]headlineRef
	categories map[string][]headlineRef
}

// Service tracks which headlines carry which tags and categories.
type Service struct {
	mu   sync.RWMutex
	docs map[string]*docEntry
}

// NewService creates an empty metadata service.
func NewService() *Service {
	return &Service{docs: make(map[string]*docEntry)}
}

// Register indexes a document's tags and categories, replacing any prior
// registration for the same document id. Document filetags count once per
// headline they apply to.
func (s *Service) Register(doc *org.Document) {
	entry := &docEntry{
		tags:       make(map[string][]headlineRef),
		categories: make(map[string][]headlineRef),
	}

	doc.Walk(func(h *org.Headline) {
		ref := headlineRef{documentID: doc.ID, headlineID: h.ID}

		seen := make(map[string]struct{})
		for _, t := range h.Title.Tags {
			seen[t] = struct{}{}
		}
		for _, t := range doc.Filetags {
			seen[t] = struct{}{}
		}
		for t := range seen {
			entry.tags[t] = append(entry.tags[t], ref)
		}

		if cat := h.Category(doc); cat != "" {
			entry.categories[cat] = append(entry.categories[cat], ref)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = entry
}

// Remove drops all metadata contributed by a document. Removing an
// unregistered id is a no-op.
func (s *Service) Remove(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, documentID)
}

// Tags returns all known tags with headline counts, most frequent first,
// ties broken by name.
func (s *Service) Tags() []Count {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts(func(e *docEntry) map[string][]headlineRef { return e.tags })
}

// Categories returns all known categories with headline counts, most
// frequent first, ties broken by name.
func (s *Service) Categories() []Count {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts(func(e *docEntry) map[string][]headlineRef { return e.categories })
}

func (s *Service) counts(pick func(*docEntry) map[string][]headlineRef) []Count {
	totals := make(map[string]int)
	for _, entry := range s.docs {
		for name, refs := range pick(entry) {
			totals[name] += len(refs)
		}
	}
	out := make([]Count, 0, len(totals))
	for name, n := range totals {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HeadlinesWithTag returns the ids of all headlines carrying the tag,
// grouped by document id.
func (s *Service) HeadlinesWithTag(tag string) map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(e *docEntry) []headlineRef { return e.tags[tag] })
}

// HeadlinesWithCategory returns the ids of all headlines in the category,
// grouped by document id.
func (s *Service) HeadlinesWithCategory(category string) map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(e *docEntry) []headlineRef { return e.categories[category] })
}

func (s *Service) collect(pick func(*docEntry) []headlineRef) map[string][]string {
	out := make(map[string][]string)
	for _, entry := range s.docs {
		for _, ref := range pick(entry) {
			out[ref.documentID] = append(out[ref.documentID], ref.headlineID)
		}
	}
	for _, ids := range out {
		sort.Strings(ids)
	}
	return out
}
