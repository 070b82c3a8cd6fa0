// Package catalog builds the read-only catalog of dataset collections from
// a sealed registration table, and exports it as JSON or as a checksum
// registry.
package catalog
