// Package usecases contains the glossary store: the in-memory model of one
// glossary file and the operations allowed on it.
// Persistence is delegated to a ports.Codec injected at Open.
package usecases

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
	"github.com/0xcro3dile/glossary-go/internal/domain/ports"
)

const dateLayout = "2006-01-02"

// Glossary is the aggregate root: metadata, the keyword contents and the
// edited flag of one backing file.
type Glossary struct {
	mu       sync.RWMutex
	path     string
	writer   ports.GlossaryWriter
	meta     entities.Metadata
	contents *contents
	edited   bool
	log      logrus.FieldLogger
}

// Open loads the glossary stored at path through codec.
// When the codec reports that path does not exist, an empty glossary is
// built from WithDefaults; nothing is written until Save.
func Open(ctx context.Context, path string, codec ports.Codec, opts ...Option) (*Glossary, error) {
	cfg := newOpenConfig(opts)

	g := &Glossary{
		path:     path,
		writer:   codec,
		contents: newContents(),
		log:      cfg.logger.WithField("glossary", filepath.Base(path)),
	}

	doc, err := codec.Load(ctx, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		g.meta = cfg.defaults
		if g.meta.RevisionDate == "" {
			g.meta.RevisionDate = cfg.now().Format(dateLayout)
		}
		g.log.WithField("path", path).Info("created new glossary")

	case err != nil:
		if !errors.Is(err, entities.ErrLoadFailure) {
			err = &entities.LoadError{Path: path, Err: err}
		}
		return nil, err

	default:
		if err := g.fill(doc); err != nil {
			return nil, &entities.LoadError{Path: path, Err: err}
		}
	}

	g.log.WithFields(logrus.Fields{
		"path":     path,
		"keywords": g.contents.len(),
	}).Info("initialized glossary")
	return g, nil
}

// fill copies a loaded document into the store.
func (g *Glossary) fill(doc *entities.Document) error {
	g.meta = doc.Metadata
	for _, kv := range doc.Contents {
		if _, dup := g.contents.get(kv.Keyword); dup {
			return errors.Errorf("duplicate keyword %q", kv.Keyword)
		}
		e := kv.Entry.Clone()
		e.Normalize()
		g.contents.insert(kv.Keyword, &e)
	}
	return nil
}

// Path returns the backing file of the glossary.
func (g *Glossary) Path() string { return g.path }

// Metadata returns a copy of the descriptive fields.
func (g *Glossary) Metadata() entities.Metadata {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.meta
}

func (g *Glossary) Title() string        { return g.Metadata().Title }
func (g *Glossary) Author() string       { return g.Metadata().Author }
func (g *Glossary) Description() string  { return g.Metadata().Description }
func (g *Glossary) RevisionDate() string { return g.Metadata().RevisionDate }

// Edited reports whether the glossary changed since it was loaded or saved.
func (g *Glossary) Edited() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edited
}

// Len returns the number of keywords.
func (g *Glossary) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.contents.len()
}

// Keywords returns the keywords in insertion order.
func (g *Glossary) Keywords() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.contents.keys())
}

// Lookup returns the entry stored under exactly keyword.
// The returned entry is live: its lists may be edited in place.
func (g *Glossary) Lookup(keyword string) (*entities.Entry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.contents.get(keyword)
	if !ok {
		return nil, entities.NewNotFound("keyword %q", keyword)
	}
	return e, nil
}

// DefinitionOf returns the definitions of keyword. A keyword without
// definitions yields an empty slice, not an error.
func (g *Glossary) DefinitionOf(keyword string) ([]string, error) {
	e, err := g.Lookup(keyword)
	if err != nil {
		return nil, err
	}
	return e.Definitions, nil
}

// ReferencesOf returns the references of keyword.
func (g *Glossary) ReferencesOf(keyword string) ([]string, error) {
	e, err := g.Lookup(keyword)
	if err != nil {
		return nil, err
	}
	return e.References, nil
}

// Add inserts keyword or extends it.
//
// For a new keyword an entry is created with the CaseSensitive flag and the
// given Definition and Reference; passing neither is ErrInvalidArgument unless
// AllowEmpty is given. For an existing keyword the given Definition and
// Reference are appended and the case flag is left alone; passing neither
// is a no-op.
func (g *Glossary) Add(keyword string, opts ...EntryOption) error {
	req := newEntryRequest(opts)
	if err := req.checkText(keyword); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	log := g.log.WithField("keyword", keyword)

	if e, ok := g.contents.get(keyword); ok {
		if !req.hasContent() {
			return nil
		}
		if req.definition != nil {
			e.Definitions = append(e.Definitions, *req.definition)
			log.WithField("definition", *req.definition).Info("added definition")
		}
		if req.reference != nil {
			e.References = append(e.References, *req.reference)
			log.WithField("reference", *req.reference).Info("added reference")
		}
		g.edited = true
		return nil
	}

	if !req.hasContent() && !req.allowEmpty {
		return entities.NewInvalidArgument("new keyword %q needs a definition or a reference", keyword)
	}

	e := &entities.Entry{
		CaseSensitive: req.caseSensitive != nil && *req.caseSensitive,
		Definitions:   []string{},
		References:    []string{},
	}
	if req.definition != nil {
		e.Definitions = append(e.Definitions, *req.definition)
	}
	if req.reference != nil {
		e.References = append(e.References, *req.reference)
	}
	g.contents.insert(keyword, e)
	g.edited = true

	log.WithFields(logrus.Fields{
		"case_sensitive": e.CaseSensitive,
		"definitions":    len(e.Definitions),
		"references":     len(e.References),
	}).Info("added keyword")
	return nil
}

// Remove is the only way to delete glossary content.
//
// Without Definition or Reference the whole keyword is removed. Otherwise
// the first exact occurrence of each given text is removed from its list.
// Every target is checked before anything changes, so a failed call leaves
// the glossary untouched. CaseSensitive and AllowEmpty are rejected with
// ErrInvalidArgument instead of being read as a whole-keyword removal.
func (g *Glossary) Remove(keyword string, opts ...EntryOption) error {
	req := newEntryRequest(opts)
	if req.addOnly() {
		return entities.NewInvalidArgument("remove of keyword %q accepts only a definition and a reference", keyword)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	log := g.log.WithField("keyword", keyword)

	e, ok := g.contents.get(keyword)
	if !ok {
		log.Warn("attempted to remove missing keyword")
		return entities.NewNotFound("keyword %q", keyword)
	}

	if !req.hasContent() {
		g.contents.drop(keyword)
		g.edited = true
		log.Info("removed keyword")
		return nil
	}

	defIdx, refIdx := -1, -1
	if req.definition != nil {
		if defIdx = slices.Index(e.Definitions, *req.definition); defIdx < 0 {
			return entities.NewNotFound("definition %q of keyword %q", *req.definition, keyword)
		}
	}
	if req.reference != nil {
		if refIdx = slices.Index(e.References, *req.reference); refIdx < 0 {
			return entities.NewNotFound("reference %q of keyword %q", *req.reference, keyword)
		}
	}

	if defIdx >= 0 {
		e.Definitions = slices.Delete(e.Definitions, defIdx, defIdx+1)
		log.WithField("definition", *req.definition).Info("removed definition")
	}
	if refIdx >= 0 {
		e.References = slices.Delete(e.References, refIdx, refIdx+1)
		log.WithField("reference", *req.reference).Info("removed reference")
	}
	g.edited = true
	return nil
}

// Save writes the whole glossary to its path, overwriting the file.
// On failure the edited flag is kept so the call can be retried.
func (g *Glossary) Save(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.writer.Save(ctx, g.path, g.document()); err != nil {
		if !errors.Is(err, entities.ErrWriteFailure) {
			err = &entities.WriteError{Path: g.path, Err: err}
		}
		g.log.WithField("err", err).Error("failed to save glossary")
		return err
	}

	g.edited = false
	g.log.WithField("keywords", g.contents.len()).Info("saved glossary")
	return nil
}

// Snapshot returns a detached copy of the glossary as a Document.
func (g *Glossary) Snapshot() *entities.Document {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.document()
}

// document copies the current state. Callers hold the lock.
func (g *Glossary) document() *entities.Document {
	doc := &entities.Document{
		Metadata: g.meta,
		Contents: make([]entities.KeywordEntry, 0, g.contents.len()),
	}
	for _, kw := range g.contents.keys() {
		e, _ := g.contents.get(kw)
		doc.Contents = append(doc.Contents, entities.KeywordEntry{Keyword: kw, Entry: e.Clone()})
	}
	return doc
}
