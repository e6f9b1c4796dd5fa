// Package storage provides an ephemeral SQLite index over publications.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matsen/cvpubs/internal/publication"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPubFields contains the standard field list for SELECT queries.
const selectPubFields = `title, authors_json, journal, date, doi`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: SQLite doesn't support concurrent writes, and each
	// connection to :memory: would otherwise see its own database.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS pubs (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			journal TEXT,
			date TEXT NOT NULL,
			doi TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_pubs_date ON pubs(date);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS pubs_fts USING fts5(
			title,
			authors_text,
			journal
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the database and loads pubs into it. Rows keep the order of
// pubs, which breaks date ties in search results.
func (d *DB) Rebuild(pubs []publication.Publication) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pubs"); err != nil {
		return 0, fmt.Errorf("clearing pubs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM pubs_fts"); err != nil {
		return 0, fmt.Errorf("clearing pubs_fts table: %w", err)
	}

	pubsStmt, err := tx.Prepare(`
		INSERT INTO pubs (id, title, authors_json, journal, date, doi)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer pubsStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO pubs_fts (rowid, title, authors_text, journal)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing FTS insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, p := range pubs {
		id := i + 1
		authorsJSON, err := json.Marshal(p.Authors)
		if err != nil {
			return 0, fmt.Errorf("encoding authors: %w", err)
		}
		if _, err := pubsStmt.Exec(id, p.Title, string(authorsJSON),
			nullableStringValue(p.Journal), p.Date, nullableStringValue(p.DOI)); err != nil {
			return 0, fmt.Errorf("inserting %q: %w", p.Title, err)
		}
		if _, err := ftsStmt.Exec(id, p.Title, formatAuthorsText(p.Authors), p.Journal); err != nil {
			return 0, fmt.Errorf("indexing %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(pubs), nil
}

// formatAuthorsText joins author names for full-text indexing, dropping the
// owner emphasis markers.
func formatAuthorsText(authors []string) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = strings.Trim(a, "*")
	}
	return strings.Join(names, " ")
}

// Search performs a full-text search across title, authors and journal.
func (d *DB) Search(query string, limit int) ([]publication.Publication, error) {
	return d.match(prepareFTSQuery(query), limit)
}

// SearchField performs a search on a specific field.
func (d *DB) SearchField(field, value string, limit int) ([]publication.Publication, error) {
	var column string

	switch field {
	case "author":
		column = "authors_text"
	case "title":
		column = "title"
	case "journal":
		column = "journal"
	default:
		return nil, fmt.Errorf("unknown search field: %s", field)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return []publication.Publication{}, nil
	}
	// Column filters apply to a single phrase.
	phrase := "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	return d.match(column+":"+phrase, limit)
}

func (d *DB) match(ftsQuery string, limit int) ([]publication.Publication, error) {
	if ftsQuery == "" {
		return []publication.Publication{}, nil
	}
	rows, err := d.db.Query(`
		SELECT `+selectPubFields+`
		FROM pubs
		WHERE id IN (SELECT rowid FROM pubs_fts WHERE pubs_fts MATCH ?)
		ORDER BY date DESC, id
		LIMIT ?`, ftsQuery, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// sqlLimit maps a limit of 0 or less to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func scanPublications(rows *sql.Rows) ([]publication.Publication, error) {
	pubs := []publication.Publication{}
	for rows.Next() {
		var p publication.Publication
		var authorsJSON string
		var journal, doi sql.NullString
		if err := rows.Scan(&p.Title, &authorsJSON, &journal, &p.Date, &doi); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors: %w", err)
		}
		p.Journal = journal.String
		p.DOI = doi.String
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,'") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
