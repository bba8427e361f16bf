// Package artifact defines artifact coordinates and the dependency elements
// that make up a collection path.
package artifact

import (
	"strings"

	errUtils "github.com/cloudposse/depwhy/errors"
)

const separator = ":"

// Coordinate identifies an artifact as group:name:version[:extension][:classifier].
type Coordinate struct {
	Group      string
	Name       string
	Version    string
	Extension  string
	Classifier string
}

// String renders the coordinate in its colon-delimited form.
// An empty extension is kept as an empty slot when a classifier follows it.
func (c Coordinate) String() string {
	parts := []string{c.Group, c.Name, c.Version}
	switch {
	case c.Classifier != "":
		parts = append(parts, c.Extension, c.Classifier)
	case c.Extension != "":
		parts = append(parts, c.Extension)
	}
	return strings.Join(parts, separator)
}

// SameNode reports whether both coordinates name the same graph node.
// Extension and classifier are ignored: descriptor reads during collection
// rewrite the extension of the node being collected.
func (c Coordinate) SameNode(other Coordinate) bool {
	return c.Group == other.Group &&
		c.Name == other.Name &&
		c.Version == other.Version
}

// WithExtension returns a copy of c with a different extension.
func (c Coordinate) WithExtension(ext string) Coordinate {
	c.Extension = ext
	return c
}

// IsZero reports whether no part of the coordinate is set.
func (c Coordinate) IsZero() bool {
	return c == Coordinate{}
}

// ParseCoordinate parses group:name:version[:extension[:classifier]].
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), separator)
	if len(parts) < 3 || len(parts) > 5 {
		return Coordinate{}, invalidCoordinate(s, "expected 3 to 5 colon-separated parts")
	}

	c := Coordinate{Group: parts[0], Name: parts[1], Version: parts[2]}
	if len(parts) > 3 {
		c.Extension = parts[3]
	}
	if len(parts) > 4 {
		c.Classifier = parts[4]
	}

	if c.Group == "" || c.Name == "" || c.Version == "" {
		return Coordinate{}, invalidCoordinate(s, "group, name and version are required")
	}
	return c, nil
}

// MustParseCoordinate is like ParseCoordinate but panics on invalid input.
// Intended for literals in tests and fixtures.
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

func invalidCoordinate(s, hint string) error {
	return errUtils.Build(errUtils.ErrInvalidCoordinate).
		WithContext("coordinate", s).
		WithHint(hint).
		WithExitCode(errUtils.ExitCodeUsage).
		Err()
}
