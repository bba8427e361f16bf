package artifact

// Dependency is one element of a collection path: an artifact pulled in under a scope.
type Dependency struct {
	Artifact Coordinate
	Scope    string
	Optional bool
}

// String renders the dependency as its artifact coordinate.
func (d Dependency) String() string {
	return d.Artifact.String()
}
