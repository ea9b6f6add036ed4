// Package types holds the shared types of the dots pipeline.
package types

import "io/fs"

// PlannedWrite is the output unit of the pure transformation stage: a
// destination path paired with the final content to put there. The set
// of writes for one run is unordered; nothing may depend on sequence.
type PlannedWrite struct {
	// Path is the absolute (or root-relative) destination
	Path string

	// Contents is the final string to write
	Contents string
}

// FS abstracts the filesystem operations dots performs, so the applier
// and gatherer can be exercised against an in-memory implementation.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}
