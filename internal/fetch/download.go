package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// partSuffix marks an in-flight download. The file is renamed onto the
// archive path only after the whole body arrived.
const partSuffix = ".part"

// sourceURL returns the URL the archive is downloaded from.
func (f *Fetcher) sourceURL(target Target) string {
	if f.mirror != "" {
		return strings.TrimRight(f.mirror, "/") + "/" + target.FileName()
	}
	return target.URL()
}

// download streams the archive to destPath.
func (f *Fetcher) download(ctx context.Context, target Target, destPath string) error {
	url := f.sourceURL(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{URL: url, Err: fmt.Errorf("creating download request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	partPath := destPath + partSuffix
	out, err := os.Create(partPath)
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}

	if err := f.copyBody(out, resp.Body, resp.ContentLength, url); err != nil {
		out.Close()
		os.Remove(partPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(partPath)
		return fmt.Errorf("closing download file: %w", err)
	}

	if err := os.Rename(partPath, destPath); err != nil {
		os.Remove(partPath)
		return fmt.Errorf("finalizing download: %w", err)
	}
	return nil
}

// copyBody copies body into out, reporting progress after every chunk.
// Read failures are transport errors, write failures are local ones.
func (f *Fetcher) copyBody(out io.Writer, body io.Reader, total int64, url string) error {
	if total <= 0 {
		total = -1
	}
	var downloaded int64
	f.report(downloaded, total)

	buf := make([]byte, 32*1024)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			f.report(downloaded, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return &TransportError{URL: url, Err: fmt.Errorf("reading download stream: %w", readErr)}
		}
	}

	if total > 0 && downloaded != total {
		return &TransportError{URL: url, Err: fmt.Errorf("short body: got %d of %d bytes", downloaded, total)}
	}
	return nil
}

func (f *Fetcher) report(transferred, total int64) {
	if f.progress != nil {
		f.progress(transferred, total)
	}
}
