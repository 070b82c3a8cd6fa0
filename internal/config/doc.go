// Package config manages user-level settings stored at
// ~/.portfolio/config.yaml: the default data directory, an optional
// download mirror, checksum verification, logging and extra registry
// files. Every key can be overridden with a PORTFOLIO_ environment
// variable.
package config
