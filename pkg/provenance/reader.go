package provenance

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/filesystem"
	"github.com/cloudposse/depwhy/pkg/perf"
)

const trackingGlob = "**/" + TrackingDirName + "/*"

// Record is one persisted provenance record.
type Record struct {
	// Name is the record's file name.
	Name string
	// Path is the record's file path.
	Path string
	// Lines are the record's lines, leaf first.
	Lines []string
}

// Root returns the request root of the record: the last line without
// indentation and context label.
func (r Record) Root() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return stripLine(r.Lines[len(r.Lines)-1])
}

// Chain returns the record's coordinates, leaf first, without indentation and context labels.
func (r Record) Chain() []string {
	return lo.Map(r.Lines, func(line string, _ int) string {
		return stripLine(line)
	})
}

// Context returns the context label of the record's first line.
func (r Record) Context() string {
	if len(r.Lines) == 0 {
		return ""
	}
	line := r.Lines[0]
	open := strings.LastIndex(line, " (")
	if open < 0 || !strings.HasSuffix(line, ")") {
		return ""
	}
	return line[open+2 : len(line)-1]
}

func stripLine(line string) string {
	line = strings.TrimLeft(line, " ")
	if open := strings.LastIndex(line, " ("); open >= 0 && strings.HasSuffix(line, ")") {
		return line[:open]
	}
	return line
}

// ReadRecords returns the records stored next to artifactFile, sorted by name.
// An artifact without a tracking directory has no records.
func ReadRecords(fsys filesystem.FileSystem, artifactFile string) ([]Record, error) {
	return ReadArtifactDir(fsys, filepath.Dir(artifactFile))
}

// ReadArtifactDir returns the records stored in artifactDir's tracking directory, sorted by name.
func ReadArtifactDir(fsys filesystem.FileSystem, artifactDir string) ([]Record, error) {
	defer perf.Track("provenance.ReadArtifactDir")()

	dir := filepath.Join(artifactDir, TrackingDirName)
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, readError(err, dir)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isTempName(entry.Name()) {
			continue
		}

		file := filepath.Join(dir, entry.Name())
		data, err := fsys.ReadFile(file)
		if err != nil {
			return nil, readError(err, file)
		}
		records = append(records, Record{
			Name:  entry.Name(),
			Path:  file,
			Lines: splitLines(string(data)),
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Entry locates one record inside the cache.
type Entry struct {
	// ArtifactDir is the directory holding the tracked artifact.
	ArtifactDir string
	// Name is the record's file name.
	Name string
	// Path is the record's file path.
	Path string
}

// ScanCache finds every record below basedir, sorted by path.
func ScanCache(basedir string) ([]Entry, error) {
	defer perf.Track("provenance.ScanCache")()

	matches, err := doublestar.Glob(os.DirFS(basedir), trackingGlob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrScanCache).
			WithCause(err).
			WithContext("basedir", basedir).
			Err()
	}

	entries := make([]Entry, 0, len(matches))
	for _, match := range matches {
		name := path.Base(match)
		if isTempName(name) {
			continue
		}
		trackingDir := path.Dir(match)
		entries = append(entries, Entry{
			ArtifactDir: filepath.Join(basedir, filepath.FromSlash(path.Dir(trackingDir))),
			Name:        name,
			Path:        filepath.Join(basedir, filepath.FromSlash(match)),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// isTempName reports in-flight atomic writes, which are dot-prefixed until renamed.
func isTempName(name string) bool {
	return strings.HasPrefix(name, ".")
}

func splitLines(content string) []string {
	content = strings.TrimRight(content, "\r\n")
	if content == "" {
		return nil
	}
	return lo.Map(strings.Split(content, "\n"), func(line string, _ int) string {
		return strings.TrimRight(line, "\r")
	})
}

func readError(err error, path string) error {
	return errUtils.Build(errUtils.ErrReadTrackingRecords).
		WithCause(err).
		WithContext("path", path).
		Err()
}
