package fetch

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// MD5File returns the lowercase hex MD5 digest of the file at path.
func MD5File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("computing checksum of %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// verify compares the archive digest with expected.
func verify(archivePath, expected string) error {
	actual, err := MD5File(archivePath)
	if err != nil {
		return err
	}
	expected = lower(expected)
	if actual != expected {
		return &IntegrityError{Path: archivePath, Expected: expected, Actual: actual}
	}
	return nil
}

func lower(sum string) string { return strings.ToLower(sum) }
