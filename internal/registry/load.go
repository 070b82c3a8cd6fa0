package registry

import (
	"fmt"

	"github.com/juglab/portfolio/internal/dataset"
	"github.com/juglab/portfolio/internal/manifest"
)

// Spec registers a constructor that builds entries from spec. The spec is
// validated once here so a bad entry fails at registration rather than
// at first use.
func (t *Table) Spec(collection string, spec dataset.Spec) error {
	if _, err := dataset.New(spec); err != nil {
		return fmt.Errorf("registering %s: %w", collection, err)
	}
	spec.Files = spec.Files.Clone()
	return t.Register(collection, spec.Name, func() (*dataset.Entry, error) {
		return dataset.New(spec)
	})
}

// LoadFile registers every entry of the YAML registry document at path.
// The document is validated in full before the first registration, so a
// rejected file leaves the table unchanged.
func LoadFile(t *Table, path string) error {
	doc, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}
	return LoadDocument(t, doc)
}

// LoadDocument is LoadFile for an already parsed document.
func LoadDocument(t *Table, doc *manifest.Document) error {
	if t.Sealed() {
		return fmt.Errorf("loading registry: %w", ErrSealed)
	}

	seen := make(map[string]bool, doc.EntryCount())
	for _, c := range doc.Collections {
		for _, spec := range c.Entries {
			if _, err := dataset.New(spec); err != nil {
				return fmt.Errorf("collection %s: %w", c.Name, err)
			}
			key := c.Name + "/" + spec.Name
			if seen[key] || t.Has(c.Name, spec.Name) {
				return fmt.Errorf("%s: %w", key, ErrDuplicate)
			}
			seen[key] = true
		}
	}

	for _, c := range doc.Collections {
		for _, spec := range c.Entries {
			if err := t.Spec(c.Name, spec); err != nil {
				return err
			}
		}
	}
	return nil
}
