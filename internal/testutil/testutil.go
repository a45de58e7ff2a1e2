// Package testutil provides shared test helpers for setting up document
// trees and search databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dr-yst/org-x/internal/search"
)

// TestSearchDB creates a temporary search database that is automatically
// cleaned up.
func TestSearchDB(t *testing.T) *search.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "orgx-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := search.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestTree creates a temporary directory populated with org files.
// files maps relative paths to contents.
func TestTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// WriteFile writes (or overwrites) one file under root and returns its
// absolute path.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
