package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dr-yst/org-x/internal/docservice"
	"github.com/dr-yst/org-x/internal/metadata"
	"github.com/dr-yst/org-x/internal/org"
	"github.com/dr-yst/org-x/internal/parser"
	"github.com/dr-yst/org-x/internal/repository"
)

// testEnv builds a router over a store seeded with parsed documents.
// authToken == "" means auth disabled.
func testEnv(t *testing.T, authToken string, contents map[string]string) (http.Handler, map[string]*org.Document) {
	t.Helper()

	store := repository.NewStore()
	meta := metadata.NewService()
	svc := docservice.NewService(store, meta, nil, nil, nil)

	docs := make(map[string]*org.Document)
	for path, content := range contents {
		doc, err := parser.Parse(content, path)
		if err != nil {
			t.Fatalf("Parse %s: %v", path, err)
		}
		store.Upsert(doc)
		svc.RegisterDocument(doc)
		docs[path] = doc
	}

	return NewRouter(svc, authToken != "", authToken, nil), docs
}

func get(t *testing.T, router http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListDocuments(t *testing.T) {
	router, _ := testEnv(t, "", map[string]string{
		"/tmp/a.org": "#+TITLE: Alpha\n* One\n",
		"/tmp/b.org": "* Two\n",
	})

	w := get(t, router, "/documents", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp DocumentListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || len(resp.Documents) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Documents[0].Title != "Alpha" {
		t.Fatalf("first title = %q", resp.Documents[0].Title)
	}
}

func TestGetDocumentWithEtag(t *testing.T) {
	router, docs := testEnv(t, "", map[string]string{"/tmp/a.org": "* One\n"})
	doc := docs["/tmp/a.org"]

	w := get(t, router, "/documents/"+doc.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("ETag") != doc.Etag {
		t.Fatalf("etag = %q", w.Header().Get("ETag"))
	}

	// Conditional re-fetch.
	req := httptest.NewRequest(http.MethodGet, "/documents/"+doc.ID, nil)
	req.Header.Set("If-None-Match", doc.Etag)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("conditional status = %d", w.Code)
	}

	if w := get(t, router, "/documents/unknown", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing doc status = %d", w.Code)
	}
}

func TestGetHeadlineNavigation(t *testing.T) {
	router, docs := testEnv(t, "", map[string]string{"/tmp/n.org": "* A\n** B\n** C\n"})
	doc := docs["/tmp/n.org"]
	b := doc.Headlines[0].Children[0]

	w := get(t, router, "/headlines/"+url.PathEscape(b.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp HeadlineResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Headline.Title.Raw != "B" {
		t.Fatalf("headline = %+v", resp.Headline)
	}
	if resp.ParentID != doc.Headlines[0].ID {
		t.Fatalf("parent = %q", resp.ParentID)
	}
	if resp.NextSibling != doc.Headlines[0].Children[1].ID {
		t.Fatalf("next = %q", resp.NextSibling)
	}
	if resp.PrevSibling != "" {
		t.Fatalf("prev = %q", resp.PrevSibling)
	}
}

func TestTagsAndCategories(t *testing.T) {
	router, _ := testEnv(t, "", map[string]string{
		"/tmp/t.org": "#+CATEGORY: inbox\n* A :work:\n* B :work:\n",
	})

	w := get(t, router, "/tags", "")
	var tags CountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tags); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tags.Items) != 1 || tags.Items[0].Name != "work" || tags.Items[0].Count != 2 {
		t.Fatalf("tags = %+v", tags.Items)
	}

	w = get(t, router, "/tags/work/headlines", "")
	var refs HeadlineRefsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &refs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(refs.Documents) != 1 {
		t.Fatalf("refs = %+v", refs.Documents)
	}

	w = get(t, router, "/categories", "")
	var cats CountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats.Items) != 1 || cats.Items[0].Name != "inbox" {
		t.Fatalf("categories = %+v", cats.Items)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	router, _ := testEnv(t, "", nil)
	if w := get(t, router, "/search", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	// No index configured: empty result set, not an error.
	if w := get(t, router, "/search?q=x", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuth(t *testing.T) {
	router, _ := testEnv(t, "sekrit", map[string]string{"/tmp/a.org": "* A\n"})

	if w := get(t, router, "/documents", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", w.Code)
	}
	if w := get(t, router, "/documents", "wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token status = %d", w.Code)
	}
	if w := get(t, router, "/documents", "sekrit"); w.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d", w.Code)
	}
}
