// Package sqlitestore persists glossaries in SQLite database files.
// Each save rewrites the whole glossary inside one transaction.
package sqlitestore

import (
	"context"
	"database/sql"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/pkg/errors"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	position INTEGER PRIMARY KEY,
	keyword TEXT NOT NULL UNIQUE,
	case_sensitive INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS definitions (
	keyword TEXT NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS refs (
	keyword TEXT NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_definitions_keyword ON definitions(keyword);
CREATE INDEX IF NOT EXISTS idx_refs_keyword ON refs(keyword);
`

var metaKeys = []string{"title", "author", "description", "revision_date"}

var tableNames = []string{"meta", "entries", "definitions", "refs"}

// Store implements ports.Codec with SQLite files.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a SQLite glossary codec.
func NewStore() *Store {
	return &Store{}
}

// SupportedExtensions returns file extensions this codec handles.
func (s *Store) SupportedExtensions() []string {
	return []string{".db", ".sqlite", ".sqlite3"}
}

// Load reads the glossary stored in the database at path.
func (s *Store) Load(ctx context.Context, path string) (*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// sql.Open would silently create a missing database.
	info, err := os.Stat(path)
	if err != nil {
		return nil, &entities.LoadError{Path: path, Err: errors.Wrap(err, "stat database")}
	}
	if info.IsDir() {
		return nil, &entities.LoadError{Path: path, Err: errors.New("path is a directory")}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &entities.LoadError{Path: path, Err: errors.Wrap(err, "open database")}
	}
	defer db.Close()

	if err := checkSchema(ctx, db); err != nil {
		return nil, &entities.LoadError{Path: path, Err: err}
	}
	doc, err := readDocument(ctx, db)
	if err != nil {
		return nil, &entities.LoadError{Path: path, Err: err}
	}
	return doc, nil
}

// Save replaces the glossary stored in the database at path.
func (s *Store) Save(ctx context.Context, path string, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := open(ctx, path)
	if err != nil {
		return &entities.WriteError{Path: path, Err: err}
	}
	defer db.Close()

	if err := writeDocument(ctx, db, doc); err != nil {
		return &entities.WriteError{Path: path, Err: err}
	}
	return nil
}

// checkSchema verifies that every glossary table exists without creating any.
func checkSchema(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return errors.Wrap(err, "query schema")
	}
	defer rows.Close()

	tables := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Wrap(err, "scan schema")
		}
		tables[name] = true
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "iterate schema")
	}

	for _, table := range tableNames {
		if !tables[table] {
			return errors.Errorf("not a glossary database: missing table %q", table)
		}
	}
	return nil
}

// open opens the database at path for writing, creating the schema.
func open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initialize schema")
	}
	return db, nil
}

func readDocument(ctx context.Context, db *sql.DB) (*entities.Document, error) {
	meta, err := readMeta(ctx, db)
	if err != nil {
		return nil, err
	}

	doc := &entities.Document{
		Metadata: entities.Metadata{
			Title:        meta["title"],
			Author:       meta["author"],
			Description:  meta["description"],
			RevisionDate: meta["revision_date"],
		},
	}

	rows, err := db.QueryContext(ctx, `SELECT keyword, case_sensitive FROM entries ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "query entries")
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var kv entities.KeywordEntry
		if err := rows.Scan(&kv.Keyword, &kv.Entry.CaseSensitive); err != nil {
			return nil, errors.Wrap(err, "scan entry")
		}
		kv.Entry.Normalize()
		index[kv.Keyword] = len(doc.Contents)
		doc.Contents = append(doc.Contents, kv)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate entries")
	}

	if err := readList(ctx, db, "definitions", func(keyword, text string) error {
		i, ok := index[keyword]
		if !ok {
			return errors.Errorf("definition for unknown keyword %q", keyword)
		}
		doc.Contents[i].Entry.Definitions = append(doc.Contents[i].Entry.Definitions, text)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readList(ctx, db, "refs", func(keyword, text string) error {
		i, ok := index[keyword]
		if !ok {
			return errors.Errorf("reference for unknown keyword %q", keyword)
		}
		doc.Contents[i].Entry.References = append(doc.Contents[i].Entry.References, text)
		return nil
	}); err != nil {
		return nil, err
	}

	return doc, nil
}

func readMeta(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, errors.Wrap(err, "query meta")
	}
	defer rows.Close()

	meta := make(map[string]string, len(metaKeys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, errors.Wrap(err, "scan meta")
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate meta")
	}

	for _, k := range metaKeys {
		if _, ok := meta[k]; !ok {
			return nil, errors.Errorf("missing metadata %q", k)
		}
	}
	return meta, nil
}

// readList streams a definitions/refs table in per-keyword order.
// table is one of the two constant table names above.
func readList(ctx context.Context, db *sql.DB, table string, fn func(keyword, text string) error) error {
	rows, err := db.QueryContext(ctx, `SELECT keyword, text FROM `+table+` ORDER BY keyword, position`)
	if err != nil {
		return errors.Wrapf(err, "query %s", table)
	}
	defer rows.Close()

	for rows.Next() {
		var keyword, text string
		if err := rows.Scan(&keyword, &text); err != nil {
			return errors.Wrapf(err, "scan %s", table)
		}
		if err := fn(keyword, text); err != nil {
			return err
		}
	}
	return errors.Wrapf(rows.Err(), "iterate %s", table)
}

func writeDocument(ctx context.Context, db *sql.DB, doc *entities.Document) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer tx.Rollback()

	for _, table := range tableNames {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}

	values := []string{doc.Title, doc.Author, doc.Description, doc.RevisionDate}
	for i, k := range metaKeys {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, values[i]); err != nil {
			return errors.Wrap(err, "insert meta")
		}
	}

	entryStmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (position, keyword, case_sensitive) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare entries")
	}
	defer entryStmt.Close()

	defStmt, err := tx.PrepareContext(ctx, `INSERT INTO definitions (keyword, position, text) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare definitions")
	}
	defer defStmt.Close()

	refStmt, err := tx.PrepareContext(ctx, `INSERT INTO refs (keyword, position, text) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare refs")
	}
	defer refStmt.Close()

	for pos, kv := range doc.Contents {
		if _, err := entryStmt.ExecContext(ctx, pos, kv.Keyword, kv.Entry.CaseSensitive); err != nil {
			return errors.Wrapf(err, "insert keyword %q", kv.Keyword)
		}
		for i, d := range kv.Entry.Definitions {
			if _, err := defStmt.ExecContext(ctx, kv.Keyword, i, d); err != nil {
				return errors.Wrapf(err, "insert definition of %q", kv.Keyword)
			}
		}
		for i, r := range kv.Entry.References {
			if _, err := refStmt.ExecContext(ctx, kv.Keyword, i, r); err != nil {
				return errors.Wrapf(err, "insert reference of %q", kv.Keyword)
			}
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}
