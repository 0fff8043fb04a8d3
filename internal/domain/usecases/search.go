package usecases

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

// defaultApproxResults caps approximate search when MaxResults is zero.
const defaultApproxResults = 5

// Search returns every keyword containing query, in insertion order.
// Case-sensitive entries are matched literally, the others case-folded.
// No match yields an empty slice.
func (g *Glossary) Search(query string) []entities.Match {
	matches, err := g.SearchWith(query, entities.SearchOptions{})
	if err != nil {
		return []entities.Match{}
	}
	return matches
}

// SearchWith runs a search in the given mode. It only fails on invalid options.
func (g *Glossary) SearchWith(query string, opts entities.SearchOptions) ([]entities.Match, error) {
	if opts.MaxResults < 0 {
		return nil, entities.NewInvalidArgument("max results must not be negative, got %d", opts.MaxResults)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	fold := cases.Fold()
	foldedQuery := fold.String(query)

	var matches []entities.Match
	switch opts.Mode {
	case entities.SearchSubstring, entities.SearchExact:
		matches = g.scan(opts.Mode, query, foldedQuery, fold)
	case entities.SearchApprox:
		matches = g.rank(query, foldedQuery, fold)
		if opts.MaxResults == 0 {
			opts.MaxResults = defaultApproxResults
		}
	default:
		return nil, entities.NewInvalidArgument("unknown search mode %d", opts.Mode)
	}

	if opts.MaxResults > 0 && len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches, nil
}

func (g *Glossary) scan(mode entities.SearchMode, query, foldedQuery string, fold cases.Caser) []entities.Match {
	matches := []entities.Match{}
	for _, kw := range g.contents.keys() {
		e, _ := g.contents.get(kw)

		key, q := kw, query
		if !e.CaseSensitive {
			key, q = fold.String(kw), foldedQuery
		}

		var hit bool
		if mode == entities.SearchExact {
			hit = key == q
		} else {
			hit = strings.Contains(key, q)
		}
		if hit {
			matches = append(matches, entities.Match{Keyword: kw, Entry: e})
		}
	}
	return matches
}

// rank orders every keyword by edit distance to query, then by the length of
// the shared prefix, then by insertion order.
func (g *Glossary) rank(query, foldedQuery string, fold cases.Caser) []entities.Match {
	type scored struct {
		match  entities.Match
		prefix int
	}

	results := make([]scored, 0, g.contents.len())
	for _, kw := range g.contents.keys() {
		e, _ := g.contents.get(kw)

		key, q := kw, query
		if !e.CaseSensitive {
			key, q = fold.String(kw), foldedQuery
		}

		results = append(results, scored{
			match: entities.Match{
				Keyword:  kw,
				Entry:    e,
				Distance: edlib.DamerauLevenshteinDistance(q, key),
			},
			prefix: commonPrefixLen(q, key),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].match.Distance != results[j].match.Distance {
			return results[i].match.Distance < results[j].match.Distance
		}
		return results[i].prefix > results[j].prefix
	})

	matches := make([]entities.Match, len(results))
	for i, r := range results {
		matches[i] = r.match
	}
	return matches
}

func commonPrefixLen(a, b string) int {
	ar, br := []rune(a), []rune(b)
	n := 0
	for n < len(ar) && n < len(br) && ar[n] == br[n] {
		n++
	}
	return n
}
