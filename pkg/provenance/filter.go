package provenance

import (
	"path/filepath"
	"strings"

	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/resolution"
)

// IsLocalRepositoryArtifact reports whether file lives in the local repository of repo.
// Artifacts built from sources in the current build resolve to files outside the cache
// and are rejected.
func IsLocalRepositoryArtifact(repo resolution.LocalRepository, file string) bool {
	if repo.Basedir == "" || file == "" {
		return false
	}
	return strings.HasPrefix(filepath.Clean(file), filepath.Clean(repo.Basedir))
}

// IsInScope reports whether a resolved artifact belongs to the node of a collection step.
// ArtifactResolved also fires for descriptor reads of parents and imports during collection;
// only group, name and version are compared because the step's own descriptor read
// carries a rewritten extension.
func IsInScope(resolved, node artifact.Coordinate) bool {
	return resolved.SameNode(node)
}
