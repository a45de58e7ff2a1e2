package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dr-yst/org-x/internal/apperr"
	"github.com/dr-yst/org-x/internal/docservice"
	"github.com/dr-yst/org-x/internal/search"
)

// Handler holds API route handlers.
type Handler struct {
	svc *docservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service) *Handler {
	return &Handler{svc: svc}
}

// urlID extracts and decodes the {id} route parameter. Headline ids
// contain "#", which clients send percent-encoded.
func urlID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListDocuments handles GET /api/documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.svc.Documents(r.Context())
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs, Total: len(docs)})
}

// GetDocument handles GET /api/documents/{id}.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	doc, err := h.svc.Document(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get document failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	// Honor conditional requests against the document etag.
	if r.Header.Get("If-None-Match") == doc.Etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", doc.Etag)
	writeJSON(w, http.StatusOK, DocumentResponse{Document: doc})
}

// DocumentHeadlines handles GET /api/documents/{id}/headlines.
func (h *Handler) DocumentHeadlines(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	doc, err := h.svc.Document(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get document headlines failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, HeadlineListResponse{Headlines: doc.Headlines, Total: len(doc.Headlines)})
}

// GetHeadline handles GET /api/headlines/{id}.
func (h *Handler) GetHeadline(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	hl, err := h.svc.Headline(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get headline failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	resp := HeadlineResponse{Headline: hl, DocumentID: hl.DocumentID}
	if doc, err := h.svc.Document(r.Context(), hl.DocumentID); err == nil {
		if p := doc.Parent(id); p != nil {
			resp.ParentID = p.ID
		}
		if s := doc.PrevSibling(id); s != nil {
			resp.PrevSibling = s.ID
		}
		if s := doc.NextSibling(id); s != nil {
			resp.NextSibling = s.ID
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("q", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []search.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// ListTags handles GET /api/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CountResponse{Items: h.svc.Tags(r.Context())})
}

// TagHeadlines handles GET /api/tags/{tag}/headlines.
func (h *Handler) TagHeadlines(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	writeJSON(w, http.StatusOK, HeadlineRefsResponse{Documents: h.svc.HeadlinesWithTag(r.Context(), tag)})
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CountResponse{Items: h.svc.Categories(r.Context())})
}

// CategoryHeadlines handles GET /api/categories/{category}/headlines.
func (h *Handler) CategoryHeadlines(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	writeJSON(w, http.StatusOK, HeadlineRefsResponse{Documents: h.svc.HeadlinesWithCategory(r.Context(), category)})
}
