// Package search provides a SQLite-backed full-text index over headlines,
// with optional FTS5 (build tag sqlite_fts5) and a LIKE fallback.
package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dr-yst/org-x/internal/org"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS headlines (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	keyword     TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL DEFAULT '',
	level       INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_headlines_document ON headlines(document_id);
`

// SearchResult is one matching headline.
type SearchResult struct {
	HeadlineID string `json:"headline_id"`
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Snippet    string `json:"snippet"`
}

// DB wraps a sql.DB with headline index operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the index database and applies the schema.
// Use ":memory:" for a purely in-process index.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("search: open db: %w", err)
	}
	if dsn == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("search: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("search: apply schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("search: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// IndexDocument replaces all indexed headlines of a document with the
// document's current outline, inside one transaction.
func (db *DB) IndexDocument(doc *org.Document) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := deleteDocument(tx, doc.ID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO headlines (id, document_id, title, keyword, tags, content, level)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("search: prepare insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	doc.Walk(func(h *org.Headline) {
		if insertErr != nil {
			return
		}
		tags := strings.Join(h.Title.Tags, " ")
		if _, err := stmt.Exec(h.ID, doc.ID, h.Title.Raw, h.Title.TodoKeyword, tags, h.Content, h.Title.Level); err != nil {
			insertErr = fmt.Errorf("search: insert headline: %w", err)
			return
		}
		if err := ftsUpsert(tx, h.ID, doc.ID, h.Title.Raw, h.Content, tags); err != nil {
			insertErr = err
		}
	})
	if insertErr != nil {
		return insertErr
	}

	return tx.Commit()
}

// RemoveDocument drops every indexed headline of a document.
func (db *DB) RemoveDocument(documentID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteDocument(tx, documentID); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteDocument(tx *sql.Tx, documentID string) error {
	ftsDeleteDocument(tx, documentID)
	if _, err := tx.Exec(`DELETE FROM headlines WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("search: delete headlines: %w", err)
	}
	return nil
}
