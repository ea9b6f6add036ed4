// Package filesystem provides filesystem implementations for dots.
//
// This package contains implementations of the types.FS interface.
// The in-memory test implementation lives in pkg/testutil.
package filesystem
