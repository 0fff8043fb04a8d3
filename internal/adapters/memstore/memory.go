// Package memstore provides an in-memory glossary codec.
// It keeps documents keyed by path, which is useful for embedding the
// glossary without a file system and for exercising the core in tests.
package memstore

import (
	"context"
	"os"
	"sync"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

// Store implements ports.Codec over a map of path -> document.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]*entities.Document
	writeErr error
	saves    int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs: make(map[string]*entities.Document),
	}
}

// Put seeds the store with a document at path.
func (s *Store) Put(path string, doc *entities.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[path] = copyDocument(doc)
}

// Get returns a copy of the document stored at path.
func (s *Store) Get(path string) (*entities.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[path]
	if !ok {
		return nil, false
	}
	return copyDocument(doc), true
}

// FailWrites makes every following Save return err. Pass nil to recover.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeErr = err
}

// Saves returns the number of successful saves.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Load returns the document stored at path.
func (s *Store) Load(ctx context.Context, path string) (*entities.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[path]
	if !ok {
		return nil, &entities.LoadError{Path: path, Err: os.ErrNotExist}
	}
	return copyDocument(doc), nil
}

// Save replaces the document stored at path.
func (s *Store) Save(ctx context.Context, path string, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return &entities.WriteError{Path: path, Err: s.writeErr}
	}
	s.docs[path] = copyDocument(doc)
	s.saves++
	return nil
}

// SupportedExtensions returns no extensions: the store is selected explicitly.
func (s *Store) SupportedExtensions() []string {
	return nil
}

func copyDocument(doc *entities.Document) *entities.Document {
	out := &entities.Document{
		Metadata: doc.Metadata,
		Contents: make([]entities.KeywordEntry, len(doc.Contents)),
	}
	for i, kv := range doc.Contents {
		out.Contents[i] = entities.KeywordEntry{Keyword: kv.Keyword, Entry: kv.Entry.Clone()}
	}
	return out
}
