package artifact

import (
	"path/filepath"
	"strings"
)

// DefaultExtension is used when a coordinate has no extension.
const DefaultExtension = "jar"

// Layout maps coordinates to paths inside a repository base directory, using the
// group/name/version directory scheme: com.x:lib:2.0 -> com/x/lib/2.0/lib-2.0.jar.
type Layout struct {
	Basedir string
}

// Dir returns the directory holding every file of the coordinate's version.
func (l Layout) Dir(c Coordinate) string {
	groupPath := filepath.FromSlash(strings.ReplaceAll(c.Group, ".", "/"))
	return filepath.Join(l.Basedir, groupPath, c.Name, c.Version)
}

// Coordinate is the inverse of Dir: it returns the group, name and version of a version
// directory below Basedir. It reports false for directories outside Basedir or too shallow
// to hold a version.
func (l Layout) Coordinate(dir string) (Coordinate, bool) {
	rel, err := filepath.Rel(l.Basedir, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return Coordinate{}, false
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 3 {
		return Coordinate{}, false
	}
	n := len(parts)
	return Coordinate{
		Group:   strings.Join(parts[:n-2], "."),
		Name:    parts[n-2],
		Version: parts[n-1],
	}, true
}

// Path returns the file path of the coordinate.
func (l Layout) Path(c Coordinate) string {
	return filepath.Join(l.Dir(c), FileName(c))
}

// FileName returns name-version[-classifier].extension.
func FileName(c Coordinate) string {
	ext := c.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	name := c.Name + "-" + c.Version
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + ext
}
