//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juglab/portfolio/internal/catalog"
	"github.com/juglab/portfolio/internal/dataset"
	"github.com/juglab/portfolio/internal/fetch"
)

// largeEnv enables the multi-hundred-megabyte archives.
const largeEnv = "PORTFOLIO_LARGE_DATASETS"

func portfolio(t *testing.T) *catalog.Portfolio {
	t.Helper()
	p, err := catalog.Default()
	if err != nil {
		t.Fatalf("building portfolio: %v", err)
	}
	return p
}

func requireLarge(t *testing.T) {
	t.Helper()
	if os.Getenv(largeEnv) == "" {
		t.Skipf("set %s=1 to download large datasets", largeEnv)
	}
}

// fetchVerified downloads e with checksum verification into a temp
// directory and checks the archive and extraction directory exist.
func fetchVerified(t *testing.T, e *dataset.Entry) {
	t.Helper()
	dir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	files, err := e.Fetch(ctx, dir, fetch.DefaultRequest())
	if err != nil {
		t.Fatalf("Fetch(%s): %v", e.Name(), err)
	}
	assertFileExists(t, filepath.Join(dir, e.FileName()))
	assertDirExists(t, filepath.Join(dir, e.Stem()))
	if len(files) == 0 {
		t.Errorf("%s returned an empty manifest", e.Name())
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("expected file, got directory: %s", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected directory %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("expected directory, got file: %s", path)
	}
}
