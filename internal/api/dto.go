package api

import (
	"github.com/dr-yst/org-x/internal/docservice"
	"github.com/dr-yst/org-x/internal/metadata"
	"github.com/dr-yst/org-x/internal/org"
	"github.com/dr-yst/org-x/internal/search"
)

// DocumentSummary is a list item (aliased from the domain layer).
type DocumentSummary = docservice.DocumentSummary

// DocumentListResponse wraps document listings.
type DocumentListResponse struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int               `json:"total"`
}

// DocumentResponse is the full document payload.
type DocumentResponse struct {
	Document *org.Document `json:"document"`
}

// HeadlineListResponse wraps a document's root headlines.
type HeadlineListResponse struct {
	Headlines []*org.Headline `json:"headlines"`
	Total     int             `json:"total"`
}

// HeadlineResponse is a single headline with its navigation context.
type HeadlineResponse struct {
	Headline    *org.Headline `json:"headline"`
	DocumentID  string        `json:"document_id"`
	ParentID    string        `json:"parent_id,omitempty"`
	PrevSibling string        `json:"prev_sibling,omitempty"`
	NextSibling string        `json:"next_sibling,omitempty"`
}

// SearchResponse wraps full-text search hits.
type SearchResponse struct {
	Results []search.SearchResult `json:"results"`
}

// CountResponse wraps tag or category counts.
type CountResponse struct {
	Items []metadata.Count `json:"items"`
}

// HeadlineRefsResponse maps document ids to matching headline ids.
type HeadlineRefsResponse struct {
	Documents map[string][]string `json:"documents"`
}
