package yamlfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

const sample = `title: Animals
author: someone
description: test
revision_date: 2024-05-01
contents:
  zebra:
    case_sensitive: true
    definitions: [striped]
    references: [horse]
  apple:
    definitions:
      - fruit
      - "123"
  Mango:
`

func TestDecode_KeepsOrderAndDefaults(t *testing.T) {
	doc, err := Decode([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", doc.RevisionDate, "dates stay text")
	require.Len(t, doc.Contents, 3)
	assert.Equal(t, []string{"zebra", "apple", "Mango"}, []string{
		doc.Contents[0].Keyword, doc.Contents[1].Keyword, doc.Contents[2].Keyword,
	})
	assert.True(t, doc.Contents[0].Entry.CaseSensitive)
	assert.Equal(t, []string{"fruit", "123"}, doc.Contents[1].Entry.Definitions)
	assert.Equal(t, []string{}, doc.Contents[2].Entry.References)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"empty", ``, "empty document"},
		{"sequence", `- a`, "not a mapping"},
		{"foreign key", `key1: value1`, "unexpected top-level key"},
		{"missing key", "title: t\nauthor: a\ndescription: d\ncontents: {}\n", `missing top-level key "revision_date"`},
		{"bad flag", "title: t\nauthor: a\ndescription: d\nrevision_date: r\ncontents:\n  k:\n    case_sensitive: maybe\n", "case_sensitive is not a boolean"},
		{"null item", "title: t\nauthor: a\ndescription: d\nrevision_date: r\ncontents:\n  k:\n    definitions: [~, null]\n", "definitions[0] is null"},
		{"bad list", "title: t\nauthor: a\ndescription: d\nrevision_date: r\ncontents:\n  k:\n    references: x\n", "references is not a list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec()
	doc, err := Decode([]byte(sample))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "g.yaml")
	require.NoError(t, codec.Save(context.Background(), path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `revision_date: "2024-05-01"`), "date-like text is quoted")

	again, err := codec.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestCodec_LoadMissing(t *testing.T) {
	_, err := NewCodec().Load(context.Background(), filepath.Join(t.TempDir(), "none.yml"))

	assert.ErrorIs(t, err, entities.ErrLoadFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
