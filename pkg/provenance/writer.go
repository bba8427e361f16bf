package provenance

import (
	"path/filepath"
	"strings"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/filesystem"
	"github.com/cloudposse/depwhy/pkg/perf"
)

const (
	// TrackingDirName is the directory, next to the artifact file, holding its records.
	TrackingDirName = ".tracking"

	trackingDirPerm  = 0o755
	trackingFilePerm = 0o644
	lineSeparator    = "\n"
)

// Writer persists provenance records.
type Writer struct {
	fs filesystem.FileSystem
}

// WriterOption is a functional option for configuring Writer.
type WriterOption func(*Writer)

// WithFileSystem sets a custom filesystem implementation.
// This is primarily useful for testing.
func WithFileSystem(fs filesystem.FileSystem) WriterOption {
	return func(w *Writer) {
		w.fs = fs
	}
}

// NewWriter creates a Writer backed by the host filesystem unless overridden.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{fs: filesystem.NewOSFileSystem()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// TrackingDir returns the tracking directory for an artifact file.
func TrackingDir(artifactFile string) string {
	return filepath.Join(filepath.Dir(artifactFile), TrackingDirName)
}

// TrackingFileName returns the record file name for a request root.
func TrackingFileName(root artifact.Coordinate) string {
	return sanitizeFileName(root.String())
}

// sanitizeFileName replaces colons, which are not portable in file names, with underscores.
// Identities without colons are returned unchanged.
func sanitizeFileName(id string) string {
	return strings.ReplaceAll(id, ":", "_")
}

// Persist replaces the record of root for artifactFile with lines and returns its path.
func (w *Writer) Persist(artifactFile string, root artifact.Coordinate, lines []string) (string, error) {
	defer perf.Track("provenance.Writer.Persist")()

	dir := TrackingDir(artifactFile)
	if err := w.fs.MkdirAll(dir, trackingDirPerm); err != nil {
		return "", errUtils.Build(errUtils.ErrTrackingDirCreate).
			WithCause(err).
			WithContext("path", dir).
			Err()
	}

	path := filepath.Join(dir, TrackingFileName(root))
	if err := w.fs.WriteFileAtomic(path, encodeLines(lines), trackingFilePerm); err != nil {
		return "", errUtils.Build(errUtils.ErrTrackingWrite).
			WithCause(err).
			WithContext("path", path).
			WithContext("root", root.String()).
			Err()
	}
	return path, nil
}

// encodeLines terminates every line, including the last, with a newline.
func encodeLines(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(lineSeparator)
	}
	return []byte(b.String())
}
