package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrPathConflict reports a target path that exists but is not a directory.
	ErrPathConflict = errors.New("path conflict")
	// ErrIntegrity reports an archive whose checksum does not match.
	ErrIntegrity = errors.New("checksum mismatch")
	// ErrTransport reports a failed or incomplete network transfer.
	ErrTransport = errors.New("transfer failed")
	// ErrUnsafePath reports an archive member that would land outside the
	// extraction directory.
	ErrUnsafePath = errors.New("archive entry escapes extraction directory")
)

// PathConflictError is returned when the target directory path is taken by
// something that is not a directory.
type PathConflictError struct {
	Path string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("path %s exists and is not a directory", e.Path)
}

func (e *PathConflictError) Is(target error) bool { return target == ErrPathConflict }

// IntegrityError carries both checksums of a failed verification. The
// archive stays on disk at Path.
type IntegrityError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

// TransportError wraps a network failure or a non-200 response.
type TransportError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("downloading %s: server returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
