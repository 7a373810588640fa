// Package filesystem provides the operating system backed file access used by the tools.
package filesystem

import "os"

// OSFileSystem implements file access using the operating system primitives.
type OSFileSystem struct{}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
