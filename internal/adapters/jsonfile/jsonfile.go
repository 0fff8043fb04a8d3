// Package jsonfile reads and writes glossaries as JSON documents.
//
// The reader walks the document with gjson so that keywords keep the order
// they have in the file; the writer emits keywords in glossary order and
// indents the result with tidwall/pretty.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/0xcro3dile/glossary-go/internal/adapters/atomicfile"
	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

// Top-level keys of a glossary document, in write order.
const (
	keyTitle        = "title"
	keyAuthor       = "author"
	keyDescription  = "description"
	keyRevisionDate = "revision_date"
	keyContents     = "contents"
)

var topLevelKeys = []string{keyTitle, keyAuthor, keyDescription, keyRevisionDate, keyContents}

var prettyOptions = &pretty.Options{Width: 80, Indent: "    "}

// Codec implements ports.Codec for .json files.
type Codec struct{}

// NewCodec creates a JSON glossary codec.
func NewCodec() *Codec {
	return &Codec{}
}

// SupportedExtensions returns file extensions this codec handles.
func (c *Codec) SupportedExtensions() []string {
	return []string{".json"}
}

// Load reads and decodes the glossary at path.
func (c *Codec) Load(ctx context.Context, path string) (*entities.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.LoadError{Path: path, Err: errors.Wrap(err, "read glossary file")}
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, &entities.LoadError{Path: path, Err: err}
	}
	return doc, nil
}

// Save encodes doc and replaces the file at path.
func (c *Codec) Save(ctx context.Context, path string, doc *entities.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return &entities.WriteError{Path: path, Err: err}
	}

	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return &entities.WriteError{Path: path, Err: err}
	}
	return nil
}

// Decode parses a glossary document. The top level must hold exactly the
// title, author, description, revision_date and contents keys.
func Decode(data []byte) (*entities.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("not valid json")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("top level is not an object")
	}
	if err := checkTopLevel(root); err != nil {
		return nil, err
	}

	doc := &entities.Document{}
	meta := map[string]*string{
		keyTitle:        &doc.Title,
		keyAuthor:       &doc.Author,
		keyDescription:  &doc.Description,
		keyRevisionDate: &doc.RevisionDate,
	}
	for key, dst := range meta {
		v := root.Get(key)
		if v.Type != gjson.String {
			return nil, errors.Errorf("%s is not a string", key)
		}
		*dst = v.String()
	}

	contents := root.Get(keyContents)
	if !contents.IsObject() {
		return nil, errors.New("contents is not an object")
	}

	var decodeErr error
	contents.ForEach(func(key, value gjson.Result) bool {
		entry, err := decodeEntry(value)
		if err != nil {
			decodeErr = errors.Wrapf(err, "keyword %q", key.String())
			return false
		}
		doc.Contents = append(doc.Contents, entities.KeywordEntry{Keyword: key.String(), Entry: entry})
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return doc, nil
}

func checkTopLevel(root gjson.Result) error {
	seen := make(map[string]bool, len(topLevelKeys))
	var unexpected, repeated string
	root.ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		for _, want := range topLevelKeys {
			if k == want {
				if seen[k] {
					repeated = k
					return false
				}
				seen[k] = true
				return true
			}
		}
		unexpected = k
		return false
	})

	if unexpected != "" {
		return errors.Errorf("unexpected top-level key %q", unexpected)
	}
	if repeated != "" {
		return errors.Errorf("repeated top-level key %q", repeated)
	}
	for _, want := range topLevelKeys {
		if !seen[want] {
			return errors.Errorf("missing top-level key %q", want)
		}
	}
	return nil
}

func decodeEntry(value gjson.Result) (entities.Entry, error) {
	entry := entities.Entry{}
	if !value.IsObject() {
		return entry, errors.New("entry is not an object")
	}

	if cs := value.Get("case_sensitive"); cs.Exists() {
		switch cs.Type {
		case gjson.True, gjson.False:
			entry.CaseSensitive = cs.Bool()
		default:
			return entry, errors.New("case_sensitive is not a boolean")
		}
	}

	var err error
	if entry.Definitions, err = decodeStrings(value.Get("definitions"), "definitions"); err != nil {
		return entry, err
	}
	if entry.References, err = decodeStrings(value.Get("references"), "references"); err != nil {
		return entry, err
	}
	return entry, nil
}

func decodeStrings(v gjson.Result, field string) ([]string, error) {
	out := []string{}
	if !v.Exists() || v.Type == gjson.Null {
		return out, nil
	}
	if !v.IsArray() {
		return nil, errors.Errorf("%s is not a list", field)
	}
	for i, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, errors.Errorf("%s[%d] is not a string", field, i)
		}
		out = append(out, item.String())
	}
	return out, nil
}

type entryRecord struct {
	CaseSensitive bool     `json:"case_sensitive"`
	Definitions   []string `json:"definitions"`
	References    []string `json:"references"`
}

// Encode renders doc as an indented JSON document, keywords in order.
// Text that is not valid UTF-8 is an error: JSON cannot carry it unchanged.
func Encode(doc *entities.Document) ([]byte, error) {
	if err := checkUTF8(doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	fields := []struct {
		key   string
		value string
	}{
		{keyTitle, doc.Title},
		{keyAuthor, doc.Author},
		{keyDescription, doc.Description},
		{keyRevisionDate, doc.RevisionDate},
	}
	for _, f := range fields {
		if err := writeMember(&buf, f.key, f.value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}

	if err := writeKey(&buf, keyContents); err != nil {
		return nil, err
	}
	buf.WriteByte('{')
	for i, kv := range doc.Contents {
		if i > 0 {
			buf.WriteByte(',')
		}
		e := kv.Entry.Clone()
		e.Normalize()
		record := entryRecord{
			CaseSensitive: e.CaseSensitive,
			Definitions:   e.Definitions,
			References:    e.References,
		}
		if err := writeMember(&buf, kv.Keyword, record); err != nil {
			return nil, errors.Wrapf(err, "keyword %q", kv.Keyword)
		}
	}
	buf.WriteString("}}")

	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

func checkUTF8(doc *entities.Document) error {
	for _, s := range []string{doc.Title, doc.Author, doc.Description, doc.RevisionDate} {
		if !utf8.ValidString(s) {
			return errors.Errorf("metadata %q is not valid UTF-8", s)
		}
	}
	for _, kv := range doc.Contents {
		if !utf8.ValidString(kv.Keyword) {
			return errors.Errorf("keyword %q is not valid UTF-8", kv.Keyword)
		}
		for _, list := range [][]string{kv.Entry.Definitions, kv.Entry.References} {
			for _, s := range list {
				if !utf8.ValidString(s) {
					return errors.Errorf("text %q of keyword %q is not valid UTF-8", s, kv.Keyword)
				}
			}
		}
	}
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value interface{}) error {
	if err := writeKey(buf, key); err != nil {
		return err
	}
	return writeValue(buf, value)
}

func writeKey(buf *bytes.Buffer, key string) error {
	if err := writeValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return nil
}

func writeValue(buf *bytes.Buffer, value interface{}) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return errors.Wrap(err, "encode json")
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
