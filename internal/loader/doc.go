// Package loader provides implementations of the DocumentLoader interface
// for the file formats the watcher ingests. Each format loader knows how
// to extract page text from a specific file extension.
//
// Format loaders are registered with the Registry at startup.
package loader
