package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrInvalidDocument is returned by Parse when schema validation fails.
var ErrInvalidDocument = errors.New("invalid registry document")

// InvalidDocumentError lists the schema issues of a rejected document.
type InvalidDocumentError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidDocumentError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(msgs, "; "))
}

func (e *InvalidDocumentError) Is(target error) bool { return target == ErrInvalidDocument }

// ParseFile reads, validates and decodes the registry document at path.
func ParseFile(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data, path)
}

// ParseBytes validates and decodes an in-memory registry document.
func ParseBytes(data []byte) (*Document, error) {
	return parse(data, "<memory>")
}

func parse(data []byte, path string) (*Document, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidDocumentError{Path: path, Issues: result.Issues}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}

	if err := CheckFormatVersion(doc.FormatVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &doc, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
