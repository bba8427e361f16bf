package provenance

import (
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/trace"
)

func dep(coord, scope string) artifact.Dependency {
	return artifact.Dependency{Artifact: artifact.MustParseCoordinate(coord), Scope: scope}
}

// collectStep builds the step for node reached through path, root first.
func collectStep(context, node string, path ...string) trace.CollectStep {
	step := trace.CollectStep{Context: context, Node: dep(node, context)}
	for _, p := range path {
		step.Path = append(step.Path, dep(p, context))
	}
	return step
}
