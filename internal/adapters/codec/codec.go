// Package codec picks a glossary storage format from a file extension.
package codec

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/0xcro3dile/glossary-go/internal/adapters/jsonfile"
	"github.com/0xcro3dile/glossary-go/internal/adapters/sqlitestore"
	"github.com/0xcro3dile/glossary-go/internal/adapters/yamlfile"
	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
	"github.com/0xcro3dile/glossary-go/internal/domain/ports"
)

// MultiCodec combines multiple codecs.
type MultiCodec struct {
	codecs   map[string]ports.Codec
	fallback ports.Codec
}

// NewMultiCodec creates a codec for JSON, YAML and SQLite glossaries.
// Unknown extensions are treated as JSON.
func NewMultiCodec() *MultiCodec {
	json := jsonfile.NewCodec()
	m := &MultiCodec{
		codecs:   make(map[string]ports.Codec),
		fallback: json,
	}
	m.Register(json)
	m.Register(yamlfile.NewCodec())
	m.Register(sqlitestore.NewStore())
	return m
}

// Register adds c for every extension it supports, replacing earlier codecs.
func (m *MultiCodec) Register(c ports.Codec) {
	for _, ext := range c.SupportedExtensions() {
		m.codecs[strings.ToLower(ext)] = c
	}
}

// For returns the codec handling path.
func (m *MultiCodec) For(path string) ports.Codec {
	if c, ok := m.codecs[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return m.fallback
}

// Load dispatches to the appropriate codec based on extension.
func (m *MultiCodec) Load(ctx context.Context, path string) (*entities.Document, error) {
	return m.For(path).Load(ctx, path)
}

// Save dispatches to the appropriate codec based on extension.
func (m *MultiCodec) Save(ctx context.Context, path string, doc *entities.Document) error {
	return m.For(path).Save(ctx, path, doc)
}

// SupportedExtensions returns all supported extensions, sorted.
func (m *MultiCodec) SupportedExtensions() []string {
	exts := make([]string, 0, len(m.codecs))
	for ext := range m.codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
