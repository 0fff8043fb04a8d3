// Package yamlfile reads and writes glossaries as YAML documents.
// It works on yaml.Node trees so keyword order survives a round trip.
package yamlfile

import (
	"bytes"
	"context"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/glossary-go/internal/adapters/atomicfile"
	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

const (
	strTag  = "!!str"
	boolTag = "!!bool"
	nullTag = "!!null"
)

// Codec implements ports.Codec for .yaml and .yml files.
type Codec struct{}

// NewCodec creates a YAML glossary codec.
func NewCodec() *Codec {
	return &Codec{}
}

// SupportedExtensions returns file extensions this codec handles.
func (c *Codec) SupportedExtensions() []string {
	return []string{".yaml", ".yml"}
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

// Decode parses a YAML glossary document.
func Decode(data []byte) (*entities.Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, errors.New("empty document")
	}

	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top level is not a mapping")
	}

	doc := &entities.Document{}
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]

		var err error
		switch key {
		case "title":
			doc.Title, err = scalarText(value, key)
		case "author":
			doc.Author, err = scalarText(value, key)
		case "description":
			doc.Description, err = scalarText(value, key)
		case "revision_date":
			doc.RevisionDate, err = scalarText(value, key)
		case "contents":
			doc.Contents, err = decodeContents(value)
		default:
			return nil, errors.Errorf("unexpected top-level key %q", key)
		}
		if err != nil {
			return nil, err
		}
		seen[key] = true
	}

	for _, want := range []string{"title", "author", "description", "revision_date", "contents"} {
		if !seen[want] {
			return nil, errors.Errorf("missing top-level key %q", want)
		}
	}
	return doc, nil
}

func scalarText(n *yaml.Node, field string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", errors.Errorf("%s is not a scalar", field)
	}
	if n.Tag == nullTag {
		return "", nil
	}
	return n.Value, nil
}

func decodeContents(n *yaml.Node) ([]entities.KeywordEntry, error) {
	if n.Tag == nullTag {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.New("contents is not a mapping")
	}

	out := make([]entities.KeywordEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyword := n.Content[i].Value
		entry, err := decodeEntry(n.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "keyword %q", keyword)
		}
		out = append(out, entities.KeywordEntry{Keyword: keyword, Entry: entry})
	}
	return out, nil
}

func decodeEntry(n *yaml.Node) (entities.Entry, error) {
	entry := entities.Entry{Definitions: []string{}, References: []string{}}
	if n.Tag == nullTag {
		return entry, nil
	}
	if n.Kind != yaml.MappingNode {
		return entry, errors.New("entry is not a mapping")
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]

		var err error
		switch key {
		case "case_sensitive":
			if value.Kind != yaml.ScalarNode || value.Tag != boolTag {
				return entry, errors.New("case_sensitive is not a boolean")
			}
			err = value.Decode(&entry.CaseSensitive)
		case "definitions":
			entry.Definitions, err = decodeStrings(value, key)
		case "references":
			entry.References, err = decodeStrings(value, key)
		}
		if err != nil {
			return entry, err
		}
	}
	return entry, nil
}

func decodeStrings(n *yaml.Node, field string) ([]string, error) {
	out := []string{}
	if n.Tag == nullTag {
		return out, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errors.Errorf("%s is not a list", field)
	}
	for i, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("%s[%d] is not a scalar", field, i)
		}
		if item.Tag == nullTag {
			return nil, errors.Errorf("%s[%d] is null", field, i)
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// Encode renders doc as YAML, keywords in order.
func Encode(doc *entities.Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(root, "title", str(doc.Title))
	appendPair(root, "author", str(doc.Author))
	appendPair(root, "description", str(doc.Description))
	appendPair(root, "revision_date", str(doc.RevisionDate))

	contents := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range doc.Contents {
		entry := &yaml.Node{Kind: yaml.MappingNode}
		appendPair(entry, "case_sensitive", &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   boolTag,
			Value: strconv.FormatBool(kv.Entry.CaseSensitive),
		})
		appendPair(entry, "definitions", seq(kv.Entry.Definitions))
		appendPair(entry, "references", seq(kv.Entry.References))
		appendPair(contents, kv.Keyword, entry)
	}
	appendPair(root, "contents", contents)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode yaml")
	}
	return buf.Bytes(), nil
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, str(key), value)
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: s}
}

func seq(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	if len(items) == 0 {
		n.Style = yaml.FlowStyle
	}
	for _, s := range items {
		n.Content = append(n.Content, str(s))
	}
	return n
}
