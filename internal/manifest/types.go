package manifest

import "github.com/juglab/portfolio/internal/dataset"

// Document is a parsed registry file.
type Document struct {
	FormatVersion string       `yaml:"format_version" json:"format_version"`
	Collections   []Collection `yaml:"collections" json:"collections"`
}

// Collection groups entry specs under a collection name.
type Collection struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Entries     []dataset.Spec `yaml:"entries" json:"entries"`
}

// EntryCount returns the number of entries across all collections.
func (d *Document) EntryCount() int {
	n := 0
	for _, c := range d.Collections {
		n += len(c.Entries)
	}
	return n
}
