// Package cli defines the Cobra command tree for the portfolio CLI. Each file
// in this package registers one top-level command (list, fetch, export, etc.)
// with the root command. Commands delegate to the catalog, fetch and config
// packages and only handle flags and output formatting.
package cli
