//go:build sqlite_fts5

package search

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS headlines_fts USING fts5(
			id UNINDEXED,
			document_id UNINDEXED,
			title,
			content,
			tags,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, id, documentID, title, content, tags string) error {
	_, _ = tx.Exec(`DELETE FROM headlines_fts WHERE id = ?`, id)
	_, err := tx.Exec(`INSERT INTO headlines_fts (id, document_id, title, content, tags) VALUES (?, ?, ?, ?, ?)`,
		id, documentID, title, content, tags)
	if err != nil {
		return fmt.Errorf("search: upsert fts: %w", err)
	}
	return nil
}

func ftsDeleteDocument(tx *sql.Tx, documentID string) {
	_, _ = tx.Exec(`DELETE FROM headlines_fts WHERE document_id = ?`, documentID)
}

// Search performs an FTS5 full-text search over headlines, ranked.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id,
		       document_id,
		       title,
		       snippet(headlines_fts, 3, '<b>', '</b>', '...', 64)
		FROM headlines_fts
		WHERE headlines_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.HeadlineID, &r.DocumentID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
