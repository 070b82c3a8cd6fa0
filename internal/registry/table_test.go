package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/juglab/portfolio/internal/dataset"
)

func testSpec(name string) dataset.Spec {
	return dataset.Spec{
		Name:     name,
		URL:      "https://example.org/" + name + ".zip",
		FileName: name + ".zip",
		MD5:      "0123456789abcdef0123456789abcdef",
		License:  "CC0",
	}
}

func ctorFor(name string) Constructor {
	return func() (*dataset.Entry, error) { return dataset.New(testSpec(name)) }
}

func TestTable_RegisterOrder(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Register("B", "b2", ctorFor("b2")))
	require.NoError(t, tbl.Register("A", "a1", ctorFor("a1")))
	require.NoError(t, tbl.Register("B", "b1", ctorFor("b1")))

	require.Equal(t, []string{"B", "A"}, tbl.Collections())
	require.Equal(t, []string{"b2", "b1"}, tbl.Entries("B"))
	require.Equal(t, []string{"a1"}, tbl.Entries("A"))
	require.Nil(t, tbl.Entries("missing"))
	require.Equal(t, 3, tbl.Len())
}

func TestTable_Duplicate(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Register("A", "x", ctorFor("x")))

	err := tbl.Register("A", "x", ctorFor("x"))
	require.ErrorIs(t, err, ErrDuplicate)

	// Same entry name in another collection is fine.
	require.NoError(t, tbl.Register("B", "x", ctorFor("x")))
}

func TestTable_InvalidRegistration(t *testing.T) {
	tbl := New()
	require.Error(t, tbl.Register("", "x", ctorFor("x")))
	require.Error(t, tbl.Register("A", "", ctorFor("x")))
	require.Error(t, tbl.Register("A", "x", nil))
	require.Empty(t, tbl.Collections())
}

func TestTable_Sealed(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Register("A", "x", ctorFor("x")))
	require.False(t, tbl.Sealed())

	tbl.Seal()
	tbl.Seal()
	require.True(t, tbl.Sealed())

	err := tbl.Register("A", "y", ctorFor("y"))
	require.ErrorIs(t, err, ErrSealed)
	require.ErrorIs(t, err, dataset.ErrImmutable)
	require.Equal(t, []string{"x"}, tbl.Entries("A"))

	// Reads keep working.
	ctor, err := tbl.Constructor("A", "x")
	require.NoError(t, err)
	e, err := ctor()
	require.NoError(t, err)
	require.Equal(t, "x", e.Name())
}

func TestTable_ReturnedSlicesAreCopies(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Register("A", "x", ctorFor("x")))

	cols := tbl.Collections()
	cols[0] = "mutated"
	entries := tbl.Entries("A")
	entries[0] = "mutated"

	require.Equal(t, []string{"A"}, tbl.Collections())
	require.Equal(t, []string{"x"}, tbl.Entries("A"))
}

func TestTable_ConstructorNotFound(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Register("A", "x", ctorFor("x")))

	_, err := tbl.Constructor("B", "x")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = tbl.Constructor("A", "y")
	require.ErrorIs(t, err, ErrNotFound)
	require.True(t, tbl.Has("A", "x"))
	require.False(t, tbl.Has("A", "y"))
}

func TestTable_OrderProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		type pair struct{ col, entry string }
		n := rapid.IntRange(0, 40).Draw(rt, "n")

		tbl := New()
		var wantCols []string
		wantEntries := map[string][]string{}
		seen := map[pair]bool{}

		for i := range n {
			p := pair{
				col:   rapid.StringMatching(`[A-D]`).Draw(rt, fmt.Sprintf("col%d", i)),
				entry: rapid.StringMatching(`[a-f]`).Draw(rt, fmt.Sprintf("entry%d", i)),
			}
			err := tbl.Register(p.col, p.entry, ctorFor(p.entry))
			if seen[p] {
				if !errors.Is(err, ErrDuplicate) {
					rt.Fatalf("second Register(%v) = %v, want ErrDuplicate", p, err)
				}
				continue
			}
			if err != nil {
				rt.Fatalf("Register(%v): %v", p, err)
			}
			seen[p] = true
			if !slices.Contains(wantCols, p.col) {
				wantCols = append(wantCols, p.col)
			}
			wantEntries[p.col] = append(wantEntries[p.col], p.entry)
		}

		if !slices.Equal(tbl.Collections(), wantCols) {
			rt.Fatalf("Collections() = %v, want %v", tbl.Collections(), wantCols)
		}
		for _, c := range wantCols {
			if !slices.Equal(tbl.Entries(c), wantEntries[c]) {
				rt.Fatalf("Entries(%s) = %v, want %v", c, tbl.Entries(c), wantEntries[c])
			}
		}
		if tbl.Len() != len(seen) {
			rt.Fatalf("Len() = %d, want %d", tbl.Len(), len(seen))
		}
	})
}

func TestLoadFile(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Register("Lab", "Builtin", ctorFor("Builtin")))
	require.NoError(t, LoadFile(tbl, filepath.Join("testdata", "extra.yaml")))

	require.Equal(t, []string{"Lab"}, tbl.Collections())
	require.Equal(t, []string{"Builtin", "Lab_Tubulin", "Lab_Actin"}, tbl.Entries("Lab"))

	ctor, err := tbl.Constructor("Lab", "Lab_Tubulin")
	require.NoError(t, err)
	first, err := ctor()
	require.NoError(t, err)
	second, err := ctor()
	require.NoError(t, err)

	require.NotSame(t, first, second)
	require.Equal(t, "0123456789abcdef0123456789abcdef", first.MD5())
	require.Equal(t, []string{"tubulin_train.tif"}, first.Files()["train"])
	require.Equal(t, "tubulin", first.Stem())
}

func TestLoadFile_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Table)
		file  string
	}{
		{
			name: "entry fails validation",
			file: "invalid.yaml",
		},
		{
			name:  "clashes with existing entry",
			setup: func(tbl *Table) { require.NoError(t, tbl.Register("Lab", "Lab_Actin", ctorFor("Lab_Actin"))) },
			file:  "extra.yaml",
		},
		{
			name: "missing file",
			file: "nonexistent.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := New()
			if tt.setup != nil {
				tt.setup(tbl)
			}
			before := tbl.Len()

			err := LoadFile(tbl, filepath.Join("testdata", tt.file))
			require.Error(t, err)
			require.Equal(t, before, tbl.Len(), "rejected file must not register anything")
		})
	}
}

func TestLoadFile_Sealed(t *testing.T) {
	tbl := New()
	tbl.Seal()
	err := LoadFile(tbl, filepath.Join("testdata", "extra.yaml"))
	require.ErrorIs(t, err, ErrSealed)
}

func TestSpec_Invalid(t *testing.T) {
	tbl := New()
	spec := testSpec("bad")
	spec.MD5 = "xyz"
	err := tbl.Spec("A", spec)
	require.ErrorIs(t, err, dataset.ErrInvalidEntry)
	require.Zero(t, tbl.Len())
}
