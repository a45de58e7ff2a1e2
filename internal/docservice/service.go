// Package docservice coordinates the document store, metadata
// aggregation, the search index, and change broadcasting.
package docservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/dr-yst/org-x/internal/metadata"
	"github.com/dr-yst/org-x/internal/monitor"
	"github.com/dr-yst/org-x/internal/org"
	"github.com/dr-yst/org-x/internal/repository"
	"github.com/dr-yst/org-x/internal/search"
	"github.com/dr-yst/org-x/internal/sse"
)

// DocumentSummary is a lightweight item in a document list response.
type DocumentSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path,omitempty"`
	Etag      string    `json:"etag"`
	Category  string    `json:"category,omitempty"`
	Filetags  []string  `json:"filetags,omitempty"`
	Headlines int       `json:"headlines"`
	ParsedAt  time.Time `json:"parsed_at"`
}

// Service coordinates reads from the store and keeps the derived views
// (metadata, search index, SSE clients) in step with document changes.
// index and broker may be nil when the corresponding surface is disabled.
type Service struct {
	store  *repository.Store
	meta   *metadata.Service
	index  *search.DB
	broker *sse.Broker
	logger *slog.Logger
}

// NewService creates a document service.
func NewService(store *repository.Store, meta *metadata.Service, index *search.DB, broker *sse.Broker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, meta: meta, index: index, broker: broker, logger: logger}
}

// Documents returns summaries of all stored documents.
func (s *Service) Documents(_ context.Context) []DocumentSummary {
	docs := s.store.List()
	out := make([]DocumentSummary, len(docs))
	for i, doc := range docs {
		n := 0
		doc.Walk(func(*org.Headline) { n++ })
		out[i] = DocumentSummary{
			ID:        doc.ID,
			Title:     doc.DisplayTitle(),
			Path:      doc.FilePath,
			Etag:      doc.Etag,
			Category:  doc.Category,
			Filetags:  doc.Filetags,
			Headlines: n,
			ParsedAt:  doc.ParsedAt,
		}
	}
	return out
}

// Document returns one document in full.
func (s *Service) Document(_ context.Context, id string) (*org.Document, error) {
	return s.store.Get(id)
}

// Headline resolves a headline id to its node.
func (s *Service) Headline(_ context.Context, id string) (*org.Headline, error) {
	return s.store.Headline(id)
}

// Search delegates full-text search to the index. With no index
// configured it returns no results.
func (s *Service) Search(_ context.Context, query string, limit int) ([]search.SearchResult, error) {
	if s.index == nil {
		return nil, nil
	}
	return s.index.Search(query, limit)
}

// Tags returns aggregated tag counts.
func (s *Service) Tags(_ context.Context) []metadata.Count {
	return s.meta.Tags()
}

// Categories returns aggregated category counts.
func (s *Service) Categories(_ context.Context) []metadata.Count {
	return s.meta.Categories()
}

// HeadlinesWithTag returns headline ids carrying a tag, by document.
func (s *Service) HeadlinesWithTag(_ context.Context, tag string) map[string][]string {
	return s.meta.HeadlinesWithTag(tag)
}

// HeadlinesWithCategory returns headline ids in a category, by document.
func (s *Service) HeadlinesWithCategory(_ context.Context, category string) map[string][]string {
	return s.meta.HeadlinesWithCategory(category)
}

// RegisterDocument pushes a stored document into the derived views and
// notifies SSE clients.
func (s *Service) RegisterDocument(doc *org.Document) {
	s.meta.Register(doc)
	if s.index != nil {
		if err := s.index.IndexDocument(doc); err != nil {
			s.logger.Warn("docservice: index failed", slog.String("id", doc.ID), slog.String("error", err.Error()))
		}
	}
	if s.broker != nil {
		s.broker.PublishDocumentEvent("updated", doc.ID, doc.FilePath)
	}
}

// RemoveDocument drops a document from the derived views and notifies
// SSE clients.
func (s *Service) RemoveDocument(id, path string) {
	s.meta.Remove(id)
	if s.index != nil {
		if err := s.index.RemoveDocument(id); err != nil {
			s.logger.Warn("docservice: deindex failed", slog.String("id", id), slog.String("error", err.Error()))
		}
	}
	if s.broker != nil {
		s.broker.PublishDocumentEvent("removed", id, path)
	}
}

// Run consumes monitor changes until ctx is cancelled or the channel
// closes, keeping the derived views in step with the store.
func (s *Service) Run(ctx context.Context, changes <-chan monitor.Change) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			switch c.Kind {
			case monitor.ChangeUpdated:
				doc, err := s.store.Get(c.DocumentID)
				if err != nil {
					continue
				}
				s.RegisterDocument(doc)
			case monitor.ChangeRemoved:
				s.RemoveDocument(c.DocumentID, c.Path)
			}
		}
	}
}
