package usecases

import (
	"slices"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

// contents is the keyword -> entry mapping, kept in insertion order.
// It has no exported surface; dropping a keyword is only
// reachable through Glossary.Remove.
type contents struct {
	entries map[string]*entities.Entry
	order   []string
}

func newContents() *contents {
	return &contents{
		entries: make(map[string]*entities.Entry),
		order:   []string{},
	}
}

func (c *contents) get(keyword string) (*entities.Entry, bool) {
	e, ok := c.entries[keyword]
	return e, ok
}

// insert adds a new keyword at the end. Callers check for presence first.
func (c *contents) insert(keyword string, e *entities.Entry) {
	if _, ok := c.entries[keyword]; !ok {
		c.order = append(c.order, keyword)
	}
	c.entries[keyword] = e
}

func (c *contents) drop(keyword string) {
	if _, ok := c.entries[keyword]; !ok {
		return
	}
	delete(c.entries, keyword)
	if i := slices.Index(c.order, keyword); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

func (c *contents) keys() []string {
	return c.order
}

func (c *contents) len() int {
	return len(c.order)
}
