package catalog

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"strings"

	"github.com/juglab/portfolio/internal/dataset"
)

// Collection is a named, ordered group of entries. Entries are built when
// the collection is built and never change afterwards.
type Collection struct {
	name    string
	entries []*dataset.Entry
	index   map[string]int
}

func newCollection(name string, entries []*dataset.Entry) *Collection {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Name()] = i
	}
	return &Collection{name: name, entries: entries, index: index}
}

func (c *Collection) Name() string { return c.name }
func (c *Collection) Len() int     { return len(c.entries) }

// Entries returns the entries in insertion order.
func (c *Collection) Entries() []*dataset.Entry {
	return slices.Clone(c.entries)
}

// All iterates the entries in insertion order.
func (c *Collection) All() iter.Seq[*dataset.Entry] {
	return func(yield func(*dataset.Entry) bool) {
		for _, e := range c.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// List returns the entry names in iteration order.
func (c *Collection) List() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name()
	}
	return names
}

func (c *Collection) Get(name string) (*dataset.Entry, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i], true
}

// AsDict maps each entry name to its {URL, Citation} summary.
func (c *Collection) AsDict() map[string]dataset.Summary {
	m := make(map[string]dataset.Summary, len(c.entries))
	for _, e := range c.entries {
		m[e.Name()] = e.Summary()
	}
	return m
}

// MarshalJSON encodes the AsDict projection with keys in insertion order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, e.Name(), e.Summary()); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Collection) String() string {
	return c.name + ": " + strings.Join(c.List(), ", ")
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}
