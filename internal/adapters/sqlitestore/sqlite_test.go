package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

func sampleDocument() *entities.Document {
	return &entities.Document{
		Metadata: entities.Metadata{
			Title: "Animals", Author: "someone", Description: "d", RevisionDate: "2024-01-01",
		},
		Contents: []entities.KeywordEntry{
			{Keyword: "zebra", Entry: entities.Entry{CaseSensitive: true, Definitions: []string{"striped", "horse-like"}, References: []string{}}},
			{Keyword: "ant", Entry: entities.Entry{Definitions: []string{}, References: []string{"insect", "insect"}}},
			{Keyword: "empty", Entry: entities.Entry{Definitions: []string{}, References: []string{}}},
		},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	dir, _ := os.MkdirTemp("", "sqlitestore-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "glossary.db")
	store := NewStore()
	ctx := context.Background()

	want := sampleDocument()
	if err := store.Save(ctx, path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Metadata != want.Metadata {
		t.Errorf("metadata mismatch: got %+v", got.Metadata)
	}
	if len(got.Contents) != 3 {
		t.Fatalf("expected 3 keywords, got %d", len(got.Contents))
	}
	for i, kv := range want.Contents {
		g := got.Contents[i]
		if g.Keyword != kv.Keyword {
			t.Errorf("position %d: got %q, want %q", i, g.Keyword, kv.Keyword)
		}
		if g.Entry.CaseSensitive != kv.Entry.CaseSensitive {
			t.Errorf("%s: case flag mismatch", kv.Keyword)
		}
		if len(g.Entry.Definitions) != len(kv.Entry.Definitions) || len(g.Entry.References) != len(kv.Entry.References) {
			t.Errorf("%s: list lengths differ: %+v", kv.Keyword, g.Entry)
		}
	}
	if got.Contents[0].Entry.Definitions[1] != "horse-like" {
		t.Error("definition order not preserved")
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	dir, _ := os.MkdirTemp("", "sqlitestore-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "glossary.db")
	store := NewStore()
	ctx := context.Background()

	store.Save(ctx, path, sampleDocument())

	smaller := sampleDocument()
	smaller.Contents = smaller.Contents[:1]
	if err := store.Save(ctx, path, smaller); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, _ := store.Load(ctx, path)
	if len(got.Contents) != 1 {
		t.Errorf("expected 1 keyword after overwrite, got %d", len(got.Contents))
	}
}

func TestStore_LoadMissing(t *testing.T) {
	dir, _ := os.MkdirTemp("", "sqlitestore-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "none.db")
	_, err := NewStore().Load(context.Background(), path)

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("load must not create the database")
	}
}

func TestStore_LoadWithoutMetadata(t *testing.T) {
	dir, _ := os.MkdirTemp("", "sqlitestore-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "blank.db")
	db, err := open(context.Background(), path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	db.Close()

	_, err = NewStore().Load(context.Background(), path)
	if !errors.Is(err, entities.ErrLoadFailure) {
		t.Errorf("expected load failure, got %v", err)
	}
}

func TestStore_LoadForeignDatabase(t *testing.T) {
	dir, _ := os.MkdirTemp("", "sqlitestore-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "other.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE notes (body TEXT)`); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = NewStore().Load(context.Background(), path)
	if !errors.Is(err, entities.ErrLoadFailure) {
		t.Errorf("expected load failure, got %v", err)
	}

	var tables int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table'`).Scan(&tables); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if tables != 1 {
		t.Errorf("load changed the schema: %d tables", tables)
	}
}
