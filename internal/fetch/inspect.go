package fetch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Status is what Inspect found on disk for one target.
type Status struct {
	ArchivePath string
	ExtractDir  string

	Present   bool // archive exists
	Partial   bool // an interrupted download left a .part file
	Extracted bool // extraction directory exists

	// Checked is set when the archive was hashed; Actual then holds its
	// digest and Verified whether it matched.
	Checked  bool
	Verified bool
	Actual   string
}

// Inspect reports the state of target inside dir without touching the
// network. With verifyHash the archive, if present, is hashed.
func Inspect(target Target, dir string, verifyHash bool) (*Status, error) {
	st := &Status{
		ArchivePath: filepath.Join(dir, target.FileName()),
		ExtractDir:  filepath.Join(dir, target.Stem()),
	}

	var err error
	if st.Present, err = exists(st.ArchivePath); err != nil {
		return nil, err
	}
	if st.Partial, err = exists(st.ArchivePath + partSuffix); err != nil {
		return nil, err
	}
	if info, err := os.Stat(st.ExtractDir); err == nil && info.IsDir() {
		st.Extracted = true
	}

	if st.Present && verifyHash {
		sum, err := MD5File(st.ArchivePath)
		if err != nil {
			return nil, err
		}
		st.Checked = true
		st.Actual = sum
		st.Verified = sum == lower(target.MD5())
	}
	return st, nil
}

// RemoveArchive deletes the archive of target in dir and any partial
// download next to it, so the next fetch downloads again. Extracted files
// are kept.
func RemoveArchive(target Target, dir string) error {
	archive := filepath.Join(dir, target.FileName())
	for _, path := range []string{archive, archive + partSuffix} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}

// RemovePartial deletes only the leftover .part file of target in dir.
func RemovePartial(target Target, dir string) error {
	path := filepath.Join(dir, target.FileName()) + partSuffix
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("inspecting %s: %w", path, err)
}
