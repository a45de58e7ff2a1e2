package search

import (
	"testing"

	"github.com/dr-yst/org-x/internal/parser"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIndexAndSearch(t *testing.T) {
	db := openTestDB(t)

	doc, err := parser.Parse("* TODO Fix the login flow\nThe session cookie expires too early.\n* Unrelated\n", "/tmp/s.org")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := db.IndexDocument(doc); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}

	results, err := db.Search("session cookie", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].DocumentID != doc.ID {
		t.Fatalf("document id = %q", results[0].DocumentID)
	}
	if results[0].HeadlineID != doc.Headlines[0].ID {
		t.Fatalf("headline id = %q", results[0].HeadlineID)
	}
}

func TestReindexReplacesHeadlines(t *testing.T) {
	db := openTestDB(t)

	v1, _ := parser.Parse("* Alpha\n* Beta\n", "/tmp/r.org")
	if err := db.IndexDocument(v1); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}

	v2, _ := parser.Parse("* Gamma\n", "/tmp/r.org")
	if err := db.IndexDocument(v2); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}

	if results, _ := db.Search("Alpha", 10); len(results) != 0 {
		t.Fatalf("stale headline still indexed: %+v", results)
	}
	if results, _ := db.Search("Gamma", 10); len(results) != 1 {
		t.Fatalf("new headline missing: %+v", results)
	}
}

func TestRemoveDocument(t *testing.T) {
	db := openTestDB(t)

	doc, _ := parser.Parse("* Findable\n", "/tmp/rm.org")
	if err := db.IndexDocument(doc); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if err := db.RemoveDocument(doc.ID); err != nil {
		t.Fatalf("RemoveDocument: %v", err)
	}
	if results, _ := db.Search("Findable", 10); len(results) != 0 {
		t.Fatalf("results after remove = %+v", results)
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Search("anything", 0); err != nil {
		t.Fatalf("Search with zero limit: %v", err)
	}
}
