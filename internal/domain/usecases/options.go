package usecases

import (
	"io"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

// Option configures Open.
type Option func(*openConfig)

type openConfig struct {
	logger   logrus.FieldLogger
	defaults entities.Metadata
	now      func() time.Time
}

// WithLogger sets the logger used for open/mutation/save records.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *openConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDefaults sets the metadata of a glossary created because its file
// does not exist yet. An empty RevisionDate is replaced by today's date.
func WithDefaults(meta entities.Metadata) Option {
	return func(c *openConfig) {
		c.defaults = meta
	}
}

// WithClock overrides the time source used for new glossaries.
func WithClock(now func() time.Time) Option {
	return func(c *openConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func newOpenConfig(opts []Option) openConfig {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	cfg := openConfig{
		logger: discard,
		now:    time.Now,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// EntryOption supplies the optional arguments of Add and Remove.
// An option that is not passed is absent; Definition("") is present and empty.
type EntryOption func(*entryRequest)

type entryRequest struct {
	definition    *string
	reference     *string
	caseSensitive *bool
	allowEmpty    bool
}

// Definition names a definition to add or remove.
func Definition(text string) EntryOption {
	return func(r *entryRequest) {
		r.definition = &text
	}
}

// Reference names a reference to add or remove.
func Reference(text string) EntryOption {
	return func(r *entryRequest) {
		r.reference = &text
	}
}

// CaseSensitive sets the search flag of a newly created entry.
// It is ignored for existing keywords. Remove rejects it.
func CaseSensitive(on bool) EntryOption {
	return func(r *entryRequest) {
		r.caseSensitive = &on
	}
}

// AllowEmpty lets Add create a new keyword with no definition and no reference.
// Remove rejects it.
func AllowEmpty() EntryOption {
	return func(r *entryRequest) {
		r.allowEmpty = true
	}
}

func newEntryRequest(opts []EntryOption) entryRequest {
	var r entryRequest
	for _, o := range opts {
		o(&r)
	}
	return r
}

func (r entryRequest) hasContent() bool {
	return r.definition != nil || r.reference != nil
}

// addOnly reports whether an option that only Add understands was passed.
func (r entryRequest) addOnly() bool {
	return r.caseSensitive != nil || r.allowEmpty
}

// checkText rejects a keyword or text that is not valid UTF-8.
func (r entryRequest) checkText(keyword string) error {
	if !utf8.ValidString(keyword) {
		return entities.NewInvalidArgument("keyword %q is not valid UTF-8", keyword)
	}
	if r.definition != nil && !utf8.ValidString(*r.definition) {
		return entities.NewInvalidArgument("definition %q of keyword %q is not valid UTF-8", *r.definition, keyword)
	}
	if r.reference != nil && !utf8.ValidString(*r.reference) {
		return entities.NewInvalidArgument("reference %q of keyword %q is not valid UTF-8", *r.reference, keyword)
	}
	return nil
}
