package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Fetch downloads, verifies and extracts target into targetDir.
//
// The archive lands at targetDir/<file name> and is extracted into
// targetDir/<stem>. An archive already present is never downloaded again.
// A checksum mismatch returns an *IntegrityError and keeps the archive on
// disk. Files that are not a recognized archive are left unextracted
// without error.
func (f *Fetcher) Fetch(ctx context.Context, target Target, targetDir string, req Request) (*Result, error) {
	log := f.logger.With("dataset", target.Name())

	if err := resolveDir(targetDir, req.CreateParents); err != nil {
		return nil, err
	}

	res := &Result{
		ArchivePath: filepath.Join(targetDir, target.FileName()),
		ExtractDir:  filepath.Join(targetDir, target.Stem()),
	}

	_, err := os.Stat(res.ArchivePath)
	switch {
	case err == nil:
		log.Debug("archive already present, skipping download", "path", res.ArchivePath)
	case errors.Is(err, fs.ErrNotExist):
		log.Info("downloading dataset", "url", f.sourceURL(target), "path", res.ArchivePath)
		if err := f.download(ctx, target, res.ArchivePath); err != nil {
			return nil, err
		}
		res.Downloaded = true
		log.Info("download finished", "path", res.ArchivePath)
	default:
		return nil, fmt.Errorf("inspecting archive %s: %w", res.ArchivePath, err)
	}

	if req.VerifyHash {
		log.Debug("checking MD5", "path", res.ArchivePath)
		if err := verify(res.ArchivePath, target.MD5()); err != nil {
			return nil, err
		}
		res.Verified = true
		log.Debug("MD5 is correct", "md5", target.MD5())
	}

	format, err := Extract(res.ArchivePath, res.ExtractDir)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", res.ArchivePath, err)
	}
	res.Format = format
	res.Extracted = format != FormatNone
	if res.Extracted {
		log.Info("extracted archive", "format", format.String(), "dir", res.ExtractDir)
	} else {
		log.Debug("not an archive, nothing to extract", "path", res.ArchivePath)
	}

	return res, nil
}

// resolveDir makes sure dir exists as a directory.
func resolveDir(dir string, createParents bool) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return &PathConflictError{Path: dir}
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("inspecting target directory %s: %w", dir, err)
	}

	if createParents {
		err = os.MkdirAll(dir, 0755)
	} else {
		err = os.Mkdir(dir, 0755)
	}
	if err != nil {
		return fmt.Errorf("creating target directory %s: %w", dir, err)
	}
	return nil
}
