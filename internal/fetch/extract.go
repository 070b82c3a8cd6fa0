package fetch

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Format is a recognized archive format.
type Format int

const (
	FormatNone Format = iota
	FormatZip
	FormatTarGz
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTarGz:
		return "tar.gz"
	default:
		return "none"
	}
}

var (
	zipMagic      = []byte("PK\x03\x04")
	zipEmptyMagic = []byte("PK\x05\x06")
	gzipMagic     = []byte{0x1f, 0x8b}
	ustarMagic    = []byte("ustar")
)

// Offset of the magic field in a tar header block.
const ustarMagicOffset = 257

// DetectFormat sniffs the leading bytes of path. Gzip files count as
// tar.gz only when the decompressed stream starts with a ustar header.
// Files that match no known signature report FormatNone.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatNone, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	head := make([]byte, 4)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatNone, fmt.Errorf("reading archive header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, zipMagic), bytes.HasPrefix(head, zipEmptyMagic):
		return FormatZip, nil
	case bytes.HasPrefix(head, gzipMagic):
		return sniffTar(f)
	default:
		return FormatNone, nil
	}
}

// sniffTar decompresses the first tar block of f. A plain gzip file, such
// as a single compressed array, reports FormatNone.
func sniffTar(f *os.File) (Format, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return FormatNone, fmt.Errorf("rewinding archive: %w", err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		return FormatNone, nil
	}
	defer gz.Close()

	block := make([]byte, ustarMagicOffset+len(ustarMagic))
	if _, err := io.ReadFull(gz, block); err != nil {
		return FormatNone, nil
	}
	if !bytes.Equal(block[ustarMagicOffset:], ustarMagic) {
		return FormatNone, nil
	}
	return FormatTarGz, nil
}

// Extract unpacks archivePath into destDir, overwriting existing files.
// It returns FormatNone without error when archivePath is not a readable
// archive.
func Extract(archivePath, destDir string) (Format, error) {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return FormatNone, err
	}

	var ok bool
	switch format {
	case FormatZip:
		ok, err = extractZip(archivePath, destDir)
	case FormatTarGz:
		ok, err = extractTarGz(archivePath, destDir)
	default:
		return FormatNone, nil
	}
	if err != nil {
		return FormatNone, err
	}
	if !ok {
		return FormatNone, nil
	}
	return format, nil
}

// extractZip reports false when the file carries the zip signature but has
// no valid central directory.
func extractZip(archivePath, destDir string) (bool, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return false, nil
		}
		if errors.Is(err, zip.ErrInsecurePath) {
			return false, fmt.Errorf("%w: %v", ErrUnsafePath, err)
		}
		return false, fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return false, fmt.Errorf("creating extraction directory: %w", err)
	}

	for _, zf := range r.File {
		dest, err := safeJoin(destDir, zf.Name)
		if err != nil {
			return false, err
		}

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return false, fmt.Errorf("creating directory %s: %w", dest, err)
			}
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return false, fmt.Errorf("opening zip entry %s: %w", zf.Name, err)
		}
		err = writeFile(dest, rc, zf.Mode().Perm())
		rc.Close()
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// extractTarGz reports false when the gzip header is invalid.
func extractTarGz(archivePath, destDir string) (bool, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return false, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		if errors.Is(err, gzip.ErrHeader) {
			return false, nil
		}
		return false, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return false, fmt.Errorf("creating extraction directory: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			return false, fmt.Errorf("%w: %q", ErrUnsafePath, hdr.Name)
		}
		if err != nil {
			return false, fmt.Errorf("reading tar entry: %w", err)
		}

		dest, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return false, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0755); err != nil {
				return false, fmt.Errorf("creating directory %s: %w", dest, err)
			}
		case tar.TypeReg:
			if err := writeFile(dest, tr, fs.FileMode(hdr.Mode).Perm()); err != nil {
				return false, err
			}
		}
		// Links and device nodes are skipped.
	}
	return true, nil
}

// safeJoin resolves an archive member name below root.
func safeJoin(root, name string) (string, error) {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(root, rel), nil
}

func writeFile(dest string, r io.Reader, perm fs.FileMode) error {
	if perm == 0 {
		perm = 0644
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", dest, err)
	}
	return out.Close()
}
