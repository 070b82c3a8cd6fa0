package dataset

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/juglab/portfolio/internal/fetch"
)

// ErrImmutable is the root of every error reporting a write to data that is
// frozen after construction.
var ErrImmutable = errors.New("immutable after construction")

// ErrInvalidEntry reports a Spec that cannot become an Entry.
var ErrInvalidEntry = errors.New("invalid dataset entry")

// Files maps a group label (e.g. "train", "test") to the relative file
// names expected inside the extracted directory.
type Files map[string][]string

// Clone returns a deep copy.
func (f Files) Clone() Files {
	if f == nil {
		return Files{}
	}
	out := make(Files, len(f))
	for group, names := range f {
		out[group] = slices.Clone(names)
	}
	return out
}

// Groups returns the group labels in sorted order.
func (f Files) Groups() []string {
	groups := make([]string, 0, len(f))
	for g := range f {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Spec is the plain, mutable input to New.
type Spec struct {
	Name        string  `yaml:"name" json:"name"`
	URL         string  `yaml:"url" json:"url"`
	FileName    string  `yaml:"file_name" json:"file_name"`
	MD5         string  `yaml:"md5" json:"md5"`
	Description string  `yaml:"description" json:"description"`
	License     string  `yaml:"license" json:"license"`
	Citation    string  `yaml:"citation" json:"citation"`
	Size        float64 `yaml:"size,omitempty" json:"size,omitempty"` // MB
	Files       Files   `yaml:"files" json:"files"`
}

// Entry describes one dataset. Its fields are only readable; every
// accessor that would expose internal state returns a copy.
type Entry struct {
	name        string
	url         string
	fileName    string
	md5         string
	description string
	license     string
	citation    string
	size        float64
	files       Files
}

// Summary is the public projection of an entry used in exported catalogs.
type Summary struct {
	URL      string `json:"URL"`
	Citation string `json:"Citation"`
}

// New validates spec and freezes it into an Entry.
func New(spec Spec) (*Entry, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidEntry)
	}
	if spec.URL == "" {
		return nil, fmt.Errorf("%w: %s: missing url", ErrInvalidEntry, spec.Name)
	}
	if spec.FileName == "" {
		return nil, fmt.Errorf("%w: %s: missing file name", ErrInvalidEntry, spec.Name)
	}
	if spec.FileName != filepath.Base(spec.FileName) || spec.FileName == "." || spec.FileName == ".." {
		return nil, fmt.Errorf("%w: %s: file name %q must not contain a directory", ErrInvalidEntry, spec.Name, spec.FileName)
	}
	sum := strings.ToLower(spec.MD5)
	if b, err := hex.DecodeString(sum); err != nil || len(b) != 16 {
		return nil, fmt.Errorf("%w: %s: md5 %q is not a 32-character hex digest", ErrInvalidEntry, spec.Name, spec.MD5)
	}

	return &Entry{
		name:        spec.Name,
		url:         spec.URL,
		fileName:    spec.FileName,
		md5:         sum,
		description: spec.Description,
		license:     spec.License,
		citation:    spec.Citation,
		size:        spec.Size,
		files:       spec.Files.Clone(),
	}, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(spec Spec) *Entry {
	e, err := New(spec)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Entry) Name() string        { return e.name }
func (e *Entry) URL() string         { return e.url }
func (e *Entry) FileName() string    { return e.fileName }
func (e *Entry) MD5() string         { return e.md5 }
func (e *Entry) Description() string { return e.description }
func (e *Entry) License() string     { return e.license }
func (e *Entry) Citation() string    { return e.citation }

// Size returns the approximate archive size in megabytes, 0 when unknown.
func (e *Entry) Size() float64 { return e.size }

// Files returns a copy of the declared file manifest.
func (e *Entry) Files() Files { return e.files.Clone() }

// Spec returns a mutable copy of the entry's fields.
func (e *Entry) Spec() Spec {
	return Spec{
		Name:        e.name,
		URL:         e.url,
		FileName:    e.fileName,
		MD5:         e.md5,
		Description: e.description,
		License:     e.license,
		Citation:    e.citation,
		Size:        e.size,
		Files:       e.files.Clone(),
	}
}

// archiveSuffixes are stripped by Stem, longest first.
var archiveSuffixes = []string{".tar.gz", ".tgz", ".zip"}

// Stem is the file name without its archive extension. The archive is
// extracted into a directory of this name.
func (e *Entry) Stem() string {
	lower := strings.ToLower(e.fileName)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
			return e.fileName[:len(e.fileName)-len(suffix)]
		}
	}
	if ext := filepath.Ext(e.fileName); ext != "" && ext != e.fileName {
		return strings.TrimSuffix(e.fileName, ext)
	}
	return e.fileName
}

// Summary returns the {URL, Citation} projection.
func (e *Entry) Summary() Summary {
	return Summary{URL: e.url, Citation: e.citation}
}

// Fetch downloads, verifies and extracts the dataset into targetDir with a
// default fetcher and returns the declared file manifest.
func (e *Entry) Fetch(ctx context.Context, targetDir string, req fetch.Request) (Files, error) {
	return e.FetchWith(ctx, fetch.New(), targetDir, req)
}

// FetchWith is Fetch with an explicit fetcher. The manifest is returned as
// declared; it is not compared with what the archive contained.
func (e *Entry) FetchWith(ctx context.Context, f *fetch.Fetcher, targetDir string, req fetch.Request) (Files, error) {
	if _, err := f.Fetch(ctx, e, targetDir, req); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", e.name, err)
	}
	return e.Files(), nil
}

// String renders the entry for humans.
func (e *Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.name)
	fmt.Fprintf(&b, "  URL:         %s\n", e.url)
	fmt.Fprintf(&b, "  File:        %s\n", e.fileName)
	fmt.Fprintf(&b, "  MD5:         %s\n", e.md5)
	if e.size > 0 {
		fmt.Fprintf(&b, "  Size:        %.1f MB\n", e.size)
	}
	fmt.Fprintf(&b, "  License:     %s\n", e.license)
	fmt.Fprintf(&b, "  Citation:    %s\n", e.citation)
	fmt.Fprintf(&b, "  Description: %s\n", strings.ReplaceAll(strings.TrimSpace(e.description), "\n", "\n               "))
	if len(e.files) > 0 {
		fmt.Fprintf(&b, "  Files:\n")
		for _, group := range e.files.Groups() {
			fmt.Fprintf(&b, "    %s: %s\n", group, strings.Join(e.files[group], ", "))
		}
	}
	return b.String()
}
