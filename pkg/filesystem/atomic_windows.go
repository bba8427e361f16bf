//go:build windows

package filesystem

import "os"

// writeFileAtomicImpl falls back to a truncating write on Windows,
// where renameio does not provide atomic replacement.
func writeFileAtomicImpl(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
