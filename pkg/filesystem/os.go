package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements FileSystem on the host filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (o *OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *OSFileSystem) WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	return writeFileAtomicImpl(name, data, perm)
}

func (o *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
