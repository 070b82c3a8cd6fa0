// Package dataset defines Entry, the immutable description of one published
// dataset: where its archive lives, how to verify it, how to cite it, and
// which files it is expected to contain once extracted.
package dataset
