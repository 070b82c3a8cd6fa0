// Package fetch implements the dataset fetch protocol: resolve the target
// directory, download the archive unless it is already present, verify its
// MD5 checksum, and extract it next to the archive. Every step is safe to
// repeat, so re-running a fetch on a populated directory costs one checksum
// pass and one extraction.
package fetch
