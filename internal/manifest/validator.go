package manifest

import (
	"bytes"
	"cmp"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "registry.schema.json"

//go:embed schema/registry.schema.json
var schemaBytes []byte

var (
	loadSchema = sync.OnceValues(compileSchema)
	printer    = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking one document.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string // e.g. /collections/0/entries/1/md5
	Entry   string // "Collection/Entry" or "Collection" when the path names one
	Keyword string
	Message string
}

func (i ValidationIssue) String() string {
	where := i.Path
	if i.Entry != "" {
		where = i.Entry
		if field := i.field(); field != "" {
			where += "." + field
		}
	}
	if where == "" {
		return i.Message
	}
	return where + ": " + i.Message
}

// field is the entry attribute the issue points at, if any.
func (i ValidationIssue) field() string {
	parts := strings.Split(strings.TrimPrefix(i.Path, "/"), "/")
	if len(parts) > 4 && parts[0] == "collections" && parts[2] == "entries" {
		return strings.Join(parts[4:], ".")
	}
	return ""
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schema, nil
}

// Validate checks raw YAML against the registry schema. Schema violations
// are reported in the result; the error is for unreadable input.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	tree := jsonTree(raw)

	// The validator wants json.Number for numbers, so go through JSON once.
	jsonData, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	issues := leafIssues(ve, nil)
	if len(issues) == 0 {
		issues = []ValidationIssue{{Message: ve.Error()}}
	}
	for i := range issues {
		issues[i].Entry = entryAt(tree, issues[i].Path)
	}
	return &ValidationResult{Issues: uniqueIssues(issues)}, nil
}

// ValidateFile reads path and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// leafIssues flattens the error tree. Only leaves carry a concrete
// keyword; $ref and allOf leaves just point elsewhere.
func leafIssues(ve *jsonschema.ValidationError, issues []ValidationIssue) []ValidationIssue {
	for _, cause := range ve.Causes {
		issues = leafIssues(cause, issues)
	}
	if len(ve.Causes) > 0 || ve.ErrorKind == nil {
		return issues
	}

	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 || kw[len(kw)-1] == "$ref" || kw[len(kw)-1] == "allOf" {
		return issues
	}
	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	return append(issues, ValidationIssue{
		Path:    path,
		Keyword: kw[len(kw)-1],
		Message: ve.ErrorKind.LocalizedString(printer),
	})
}

// uniqueIssues drops repeats and orders issues by document position.
func uniqueIssues(issues []ValidationIssue) []ValidationIssue {
	slices.SortFunc(issues, func(a, b ValidationIssue) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Keyword, b.Keyword),
			cmp.Compare(a.Message, b.Message),
		)
	})
	return slices.Compact(issues)
}

// entryAt names the collection, and entry if any, that path lies in.
func entryAt(tree any, path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "collections" {
		return ""
	}
	coll := indexMap(tree, "collections", parts[1])
	name, _ := coll["name"].(string)
	if name == "" {
		return ""
	}
	if len(parts) < 4 || parts[2] != "entries" {
		return name
	}
	if entry, _ := indexMap(coll, "entries", parts[3])["name"].(string); entry != "" {
		return name + "/" + entry
	}
	return name
}

// indexMap returns node[key][idx] when it is a mapping.
func indexMap(node any, key, idx string) map[string]any {
	m, _ := node.(map[string]any)
	list, _ := m[key].([]any)
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(list) {
		return nil
	}
	item, _ := list[i].(map[string]any)
	return item
}

// jsonTree rewrites decoded YAML into JSON-compatible values. Mapping keys
// that are not strings, such as a numeric files group, are stringified.
func jsonTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = jsonTree(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = jsonTree(v)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = jsonTree(v)
		}
		return out
	default:
		return val
	}
}
