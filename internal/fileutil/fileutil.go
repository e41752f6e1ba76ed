// Package fileutil holds file permission modes shared by writers.
package fileutil

import "os"

// OwnerReadWrite is the mode for emitted documents, which may describe
// internal infrastructure (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// DirMode is the mode for output directories created on demand.
const DirMode os.FileMode = 0o755

// Extension returns the file extension for a serialization kind name.
func Extension(kind string) string {
	if kind == "json" {
		return ".json"
	}
	return ".yaml"
}
