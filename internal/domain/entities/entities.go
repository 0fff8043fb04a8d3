// Package entities contains the core glossary types.
// These are plain domain objects with no knowledge of files, codecs or logging.
package entities

// Entry is the content stored under one keyword.
// Definitions and References are ordinary slices: callers holding an Entry
// may edit them in place. Dropping the keyword itself goes through the store.
type Entry struct {
	CaseSensitive bool
	Definitions   []string
	References    []string
}

// Normalize fills absent lists so that an Entry never carries nil slices.
func (e *Entry) Normalize() {
	if e.Definitions == nil {
		e.Definitions = []string{}
	}
	if e.References == nil {
		e.References = []string{}
	}
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	return Entry{
		CaseSensitive: e.CaseSensitive,
		Definitions:   append([]string{}, e.Definitions...),
		References:    append([]string{}, e.References...),
	}
}

// Metadata holds the top-level descriptive fields of a glossary file.
type Metadata struct {
	Title        string
	Author       string
	Description  string
	RevisionDate string
}

// KeywordEntry pairs a keyword with its entry, keeping file order.
type KeywordEntry struct {
	Keyword string
	Entry   Entry
}

// Document is the shape exchanged with codecs: metadata plus the contents
// in the order they appear in (or should be written to) the file.
type Document struct {
	Metadata
	Contents []KeywordEntry
}

// Match is one search hit.
type Match struct {
	Keyword  string
	Entry    *Entry
	Distance int // edit distance, only set by approximate search
}

// SearchMode selects how keywords are compared with a query.
type SearchMode int

const (
	SearchSubstring SearchMode = iota
	SearchExact
	SearchApprox
)

func (m SearchMode) String() string {
	switch m {
	case SearchSubstring:
		return "substring"
	case SearchExact:
		return "exact"
	case SearchApprox:
		return "approx"
	default:
		return "unknown"
	}
}

// ParseSearchMode maps a mode name back to a SearchMode.
func ParseSearchMode(name string) (SearchMode, error) {
	switch name {
	case "", "substring", "substr":
		return SearchSubstring, nil
	case "exact":
		return SearchExact, nil
	case "approx", "fuzzy":
		return SearchApprox, nil
	default:
		return SearchSubstring, NewInvalidArgument("unknown search mode %q", name)
	}
}

// SearchOptions configures SearchWith.
type SearchOptions struct {
	Mode       SearchMode
	MaxResults int // 0: unlimited, or 5 for approx
}
