package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const tmpSuffix = ".tmp"

// ExportJSON writes the portfolio as indented JSON to path, replacing any
// existing file.
func (p *Portfolio) ExportJSON(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding portfolio: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// Registry renders one "<file name> <md5> <url>" line per distinct
// archive, in catalog order.
func (p *Portfolio) Registry() []byte {
	var buf bytes.Buffer
	seen := make(map[string]bool)
	for _, c := range p.Collections() {
		for e := range c.All() {
			line := fmt.Sprintf("%s %s %s\n", e.FileName(), e.MD5(), e.URL())
			if seen[line] {
				continue
			}
			seen[line] = true
			buf.WriteString(line)
		}
	}
	return buf.Bytes()
}

// ExportRegistry writes Registry to path, replacing any existing file.
func (p *Portfolio) ExportRegistry(path string) error {
	return writeAtomic(path, p.Registry())
}

// writeAtomic writes to a sibling temp file and renames it onto path.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return nil
}
