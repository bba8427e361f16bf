//go:build !windows

package filesystem

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomicImpl writes through a temp file in the target directory and renames
// it into place, so concurrent writers of the same file end with one complete version.
// Temp files are dot-prefixed until the rename.
func writeFileAtomicImpl(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
