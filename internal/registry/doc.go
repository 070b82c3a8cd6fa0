// Package registry holds the registration table: an ordered mapping from
// collection name to entry name to the constructor that builds the entry.
// A table is filled once, from built-in content and optional YAML registry
// files, and then sealed.
package registry
