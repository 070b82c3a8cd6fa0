package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/juglab/portfolio/internal/dataset"
)

var (
	// ErrDuplicate reports a second registration under the same name.
	ErrDuplicate = errors.New("already registered")

	// ErrNotFound reports a lookup of an unregistered collection or entry.
	ErrNotFound = errors.New("not registered")

	// ErrSealed reports a write to a sealed table.
	ErrSealed = fmt.Errorf("registration table is sealed: %w", dataset.ErrImmutable)
)

// Constructor builds a fresh entry. It is called once per catalog that
// is built from the table.
type Constructor func() (*dataset.Entry, error)

type section struct {
	order []string
	ctors map[string]Constructor
}

// Table is an ordered, sealable registration table. It is safe for
// concurrent use.
type Table struct {
	mu       sync.RWMutex
	sealed   bool
	order    []string
	sections map[string]*section
}

// New returns an empty, unsealed table.
func New() *Table {
	return &Table{sections: make(map[string]*section)}
}

// Register adds ctor as entry of collection. Collections and entries keep
// the order of their first registration.
func (t *Table) Register(collection, entry string, ctor Constructor) error {
	if collection == "" || entry == "" {
		return fmt.Errorf("registering %q/%q: empty name", collection, entry)
	}
	if ctor == nil {
		return fmt.Errorf("registering %s/%s: nil constructor", collection, entry)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sealed {
		return fmt.Errorf("registering %s/%s: %w", collection, entry, ErrSealed)
	}
	s, ok := t.sections[collection]
	if !ok {
		s = &section{ctors: make(map[string]Constructor)}
		t.sections[collection] = s
		t.order = append(t.order, collection)
	}
	if _, dup := s.ctors[entry]; dup {
		return fmt.Errorf("%s/%s: %w", collection, entry, ErrDuplicate)
	}
	s.ctors[entry] = ctor
	s.order = append(s.order, entry)
	return nil
}

// Seal freezes the table. Sealing twice is a no-op.
func (t *Table) Seal() {
	t.mu.Lock()
	t.sealed = true
	t.mu.Unlock()
}

func (t *Table) Sealed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sealed
}

// Collections returns the collection names in registration order.
func (t *Table) Collections() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.order...)
}

// Entries returns the entry names of collection in registration order, or
// nil for an unknown collection.
func (t *Table) Entries(collection string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sections[collection]
	if !ok {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Has reports whether collection/entry is registered.
func (t *Table) Has(collection, entry string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sections[collection]
	if !ok {
		return false
	}
	_, ok = s.ctors[entry]
	return ok
}

// Constructor returns the constructor registered for collection/entry.
func (t *Table) Constructor(collection, entry string) (Constructor, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, ErrNotFound)
	}
	ctor, ok := s.ctors[entry]
	if !ok {
		return nil, fmt.Errorf("entry %q in collection %q: %w", entry, collection, ErrNotFound)
	}
	return ctor, nil
}

// Len returns the total number of registered entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, s := range t.sections {
		n += len(s.order)
	}
	return n
}
