package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

func keywordsOf(matches []entities.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Keyword
	}
	return out
}

func searchFixture(t *testing.T) *Glossary {
	t.Helper()
	g, _ := openSeeded(t, nil)
	require.NoError(t, g.Add("Go", Definition("a language"), CaseSensitive(true)))
	require.NoError(t, g.Add("golang", Definition("alias of Go")))
	require.NoError(t, g.Add("Gopher", Definition("mascot")))
	require.NoError(t, g.Add("STRASSE", Definition("street")))
	return g
}

func TestSearch_CaseInsensitiveEntry(t *testing.T) {
	g := searchFixture(t)

	assert.Equal(t, []string{"golang"}, keywordsOf(g.Search("GOLANG")))
	assert.Equal(t, []string{"Gopher"}, keywordsOf(g.Search("gopher")))
}

func TestSearch_CaseSensitiveEntry(t *testing.T) {
	g := searchFixture(t)

	assert.Equal(t, []string{"Go", "golang", "Gopher"}, keywordsOf(g.Search("Go")),
		"insertion order, Go matches literally")
	assert.Equal(t, []string{"golang", "Gopher"}, keywordsOf(g.Search("go")),
		"case-sensitive Go must not match lowercase query")
}

func TestSearch_UnicodeFolding(t *testing.T) {
	g := searchFixture(t)

	assert.Equal(t, []string{"STRASSE"}, keywordsOf(g.Search("strasse")))
}

func TestSearch_NoMatchIsEmpty(t *testing.T) {
	g := searchFixture(t)

	matches := g.Search("python")
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestSearch_DoesNotMarkEdited(t *testing.T) {
	g, _ := openSeeded(t, catDocument())

	g.Search("cat")
	assert.False(t, g.Edited())
}

func TestSearch_ReturnsLiveEntries(t *testing.T) {
	g := searchFixture(t)

	matches := g.Search("gopher")
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"mascot"}, matches[0].Entry.Definitions)
}

func TestSearchWith_Exact(t *testing.T) {
	g := searchFixture(t)

	matches, err := g.SearchWith("GOLANG", entities.SearchOptions{Mode: entities.SearchExact})
	require.NoError(t, err)
	assert.Equal(t, []string{"golang"}, keywordsOf(matches))

	matches, err = g.SearchWith("go", entities.SearchOptions{Mode: entities.SearchExact})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchWith_Approx(t *testing.T) {
	g, _ := openSeeded(t, nil)
	for _, kw := range []string{"keyword1", "keyword", "keywords", "keyswords", "keywords1"} {
		require.NoError(t, g.Add(kw, Definition("definition1")))
	}

	matches, err := g.SearchWith("keyword", entities.SearchOptions{Mode: entities.SearchApprox})
	require.NoError(t, err)

	assert.Equal(t, []string{"keyword", "keyword1", "keywords", "keywords1", "keyswords"}, keywordsOf(matches))
	assert.Equal(t, 0, matches[0].Distance)
	assert.Equal(t, 1, matches[1].Distance)
	assert.Equal(t, 2, matches[4].Distance)
}

func TestSearchWith_ApproxDefaultLimit(t *testing.T) {
	g, _ := openSeeded(t, nil)
	for _, kw := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		require.NoError(t, g.Add(kw, Definition("letter")))
	}

	matches, err := g.SearchWith("a", entities.SearchOptions{Mode: entities.SearchApprox})
	require.NoError(t, err)
	assert.Len(t, matches, defaultApproxResults)
	assert.Equal(t, "a", matches[0].Keyword)
}

func TestSearchWith_MaxResults(t *testing.T) {
	g := searchFixture(t)

	matches, err := g.SearchWith("go", entities.SearchOptions{MaxResults: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"golang"}, keywordsOf(matches))

	_, err = g.SearchWith("go", entities.SearchOptions{MaxResults: -1})
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestCommonPrefixLen(t *testing.T) {
	assert.Equal(t, 3, commonPrefixLen("keyword", "keyswords"))
	assert.Equal(t, 0, commonPrefixLen("", "abc"))
	assert.Equal(t, 2, commonPrefixLen("äöx", "äöy"))
}
