package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/juglab/portfolio/internal/dataset"
	"github.com/juglab/portfolio/internal/datasets"
	"github.com/juglab/portfolio/internal/registry"
)

// ErrNotFound reports an unknown collection or entry.
var ErrNotFound = registry.ErrNotFound

// ErrUnsealed is returned when a catalog is built from a table that can
// still change.
var ErrUnsealed = errors.New("registration table is not sealed")

// Portfolio is the root of the catalog. It owns its collections, which
// own their entries.
type Portfolio struct {
	order       []string
	collections map[string]*Collection
}

// New constructs every entry registered in t. Each call builds fresh
// entries; nothing is shared between portfolios.
func New(t *registry.Table) (*Portfolio, error) {
	if !t.Sealed() {
		return nil, ErrUnsealed
	}

	p := &Portfolio{collections: make(map[string]*Collection)}
	for _, name := range t.Collections() {
		var entries []*dataset.Entry
		for _, entryName := range t.Entries(name) {
			ctor, err := t.Constructor(name, entryName)
			if err != nil {
				return nil, err
			}
			e, err := ctor()
			if err != nil {
				return nil, fmt.Errorf("building %s/%s: %w", name, entryName, err)
			}
			if e.Name() != entryName {
				return nil, fmt.Errorf("building %s/%s: constructor returned entry %q", name, entryName, e.Name())
			}
			entries = append(entries, e)
		}
		p.order = append(p.order, name)
		p.collections[name] = newCollection(name, entries)
	}
	return p, nil
}

// Default builds a portfolio of the built-in collections.
func Default() (*Portfolio, error) {
	t, err := datasets.Table()
	if err != nil {
		return nil, err
	}
	return New(t)
}

// Denoising, DenoiSeg and Segmentation return the built-in collections, or
// nil when the portfolio was built from a table without them.
func (p *Portfolio) Denoising() *Collection    { return p.collections[datasets.Denoising] }
func (p *Portfolio) DenoiSeg() *Collection     { return p.collections[datasets.DenoiSeg] }
func (p *Portfolio) Segmentation() *Collection { return p.collections[datasets.Segmentation] }

// Collection returns the named collection.
func (p *Portfolio) Collection(name string) (*Collection, error) {
	c, ok := p.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", name, ErrNotFound)
	}
	return c, nil
}

// Collections returns the collections in table order.
func (p *Portfolio) Collections() []*Collection {
	out := make([]*Collection, len(p.order))
	for i, name := range p.order {
		out[i] = p.collections[name]
	}
	return out
}

// List returns the collection names in table order.
func (p *Portfolio) List() []string {
	return append([]string(nil), p.order...)
}

// AsDict maps collection names to collections.
func (p *Portfolio) AsDict() map[string]*Collection {
	m := make(map[string]*Collection, len(p.collections))
	for name, c := range p.collections {
		m[name] = c
	}
	return m
}

// Lookup returns one entry by collection and entry name.
func (p *Portfolio) Lookup(collection, entry string) (*dataset.Entry, error) {
	c, err := p.Collection(collection)
	if err != nil {
		return nil, err
	}
	e, ok := c.Get(entry)
	if !ok {
		return nil, fmt.Errorf("entry %q in collection %q: %w", entry, collection, ErrNotFound)
	}
	return e, nil
}

// MarshalJSON encodes every collection's projection, in table order.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, name, p.collections[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Portfolio) String() string {
	var b strings.Builder
	b.WriteString("Portfolio:")
	for _, name := range p.order {
		b.WriteString("\n  ")
		b.WriteString(p.collections[name].String())
	}
	return b.String()
}
