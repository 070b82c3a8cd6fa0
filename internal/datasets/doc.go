// Package datasets is the built-in catalog content: the Denoising, DenoiSeg
// and Segmentation collections and their entries. It holds no logic beyond
// registering constructors into a registry.Table.
package datasets
