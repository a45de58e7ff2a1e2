package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dr-yst/org-x/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/{id}", h.GetDocument)
	r.Get("/documents/{id}/headlines", h.DocumentHeadlines)
	r.Get("/headlines/{id}", h.GetHeadline)

	r.Get("/search", h.Search)

	r.Get("/tags", h.ListTags)
	r.Get("/tags/{tag}/headlines", h.TagHeadlines)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{category}/headlines", h.CategoryHeadlines)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
