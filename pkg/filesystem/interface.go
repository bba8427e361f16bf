package filesystem

import (
	"io/fs"
	"os"
)

// FileSystem defines the filesystem operations used by the tracker and the replay engine.
// This interface allows mocking of file I/O operations in tests.
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
type FileSystem interface {
	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// WriteFileAtomic replaces the content of a file so readers never observe a partial write.
	WriteFileAtomic(name string, data []byte, perm os.FileMode) error

	// ReadFile reads a file.
	ReadFile(name string) ([]byte, error)

	// ReadDir lists a directory sorted by file name.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Stat returns file info.
	Stat(name string) (os.FileInfo, error)
}
