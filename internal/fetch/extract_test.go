package fetch

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tmp := t.TempDir()
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"zip", createTestZip(t, map[string]string{"a": "a"}), FormatZip},
		{"empty zip", createTestZip(t, nil), FormatZip},
		{"tar.gz", createTestTarGz(t, map[string]string{"a": "a"}), FormatTarGz},
		{"plain gzip", gzipBytes(t, "not a tar stream"), FormatNone},
		{"plain text", []byte("just text"), FormatNone},
		{"empty file", nil, FormatNone},
		{"short file", []byte("P"), FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmp, strings.ReplaceAll(tt.name, " ", "_"))
			if err := os.WriteFile(path, tt.data, 0644); err != nil {
				t.Fatal(err)
			}
			got, err := DetectFormat(path)
			if err != nil {
				t.Fatalf("DetectFormat error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_TarGz(t *testing.T) {
	tmp := t.TempDir()
	archivePath := filepath.Join(tmp, "data.tar.gz")
	os.WriteFile(archivePath, createTestTarGz(t, map[string]string{
		"nested/train_data.npz": "train",
		"test_data.npz":         "test",
	}), 0644)

	dest := filepath.Join(tmp, "data")
	format, err := Extract(archivePath, dest)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if format != FormatTarGz {
		t.Errorf("format = %v, want tar.gz", format)
	}

	data, err := os.ReadFile(filepath.Join(dest, "nested", "train_data.npz"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(data) != "train" {
		t.Errorf("content = %q", data)
	}
}

func TestExtract_ZipDirectoriesAndModes(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("folder/"); err != nil {
		t.Fatal(err)
	}
	hdr := &zip.FileHeader{Name: "folder/run.sh", Method: zip.Deflate}
	hdr.SetMode(0755)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("#!/bin/sh\n"))
	zw.Close()

	tmp := t.TempDir()
	archivePath := filepath.Join(tmp, "x.zip")
	os.WriteFile(archivePath, buf.Bytes(), 0644)

	dest := filepath.Join(tmp, "x")
	if _, err := Extract(archivePath, dest); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dest, "folder"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected extracted directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "folder", "run.sh")); err != nil {
		t.Errorf("expected extracted file: %v", err)
	}
}

func TestExtract_RejectsPathTraversal(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{"zip", func(t *testing.T) []byte { return createTestZip(t, map[string]string{"../evil.txt": "x"}) }},
		{"tar.gz", func(t *testing.T) []byte { return createTestTarGz(t, map[string]string{"../evil.txt": "x"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			archivePath := filepath.Join(tmp, "evil")
			os.WriteFile(archivePath, tt.data(t), 0644)

			_, err := Extract(archivePath, filepath.Join(tmp, "out"))
			if !errors.Is(err, ErrUnsafePath) {
				t.Fatalf("expected ErrUnsafePath, got %v", err)
			}
			if _, err := os.Stat(filepath.Join(tmp, "evil.txt")); !os.IsNotExist(err) {
				t.Error("file escaped the extraction directory")
			}
		})
	}
}

func TestExtract_BrokenZipIsSkipped(t *testing.T) {
	tmp := t.TempDir()
	archivePath := filepath.Join(tmp, "broken.zip")
	// Zip signature without a central directory.
	os.WriteFile(archivePath, append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0}, 64)...), 0644)

	format, err := Extract(archivePath, filepath.Join(tmp, "broken"))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if format != FormatNone {
		t.Errorf("format = %v, want none", format)
	}
}

func TestExtract_PlainGzipIsSkipped(t *testing.T) {
	tmp := t.TempDir()
	archivePath := filepath.Join(tmp, "data.npy.gz")
	os.WriteFile(archivePath, gzipBytes(t, strings.Repeat("array data ", 100)), 0644)

	dest := filepath.Join(tmp, "data.npy")
	format, err := Extract(archivePath, dest)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if format != FormatNone {
		t.Errorf("format = %v, want none", format)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("extraction dir should not be created, stat err = %v", err)
	}
}

func gzipBytes(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFormatString(t *testing.T) {
	if FormatZip.String() != "zip" || FormatTarGz.String() != "tar.gz" || FormatNone.String() != "none" {
		t.Error("unexpected Format names")
	}
}
