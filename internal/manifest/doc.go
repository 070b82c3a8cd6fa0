// Package manifest parses and validates registry documents: YAML files that
// declare additional dataset collections. Documents are checked against an
// embedded JSON Schema and a supported format-version range before any
// entry is built from them.
package manifest
