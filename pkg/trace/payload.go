package trace

import "github.com/cloudposse/depwhy/pkg/artifact"

// Payload is the data carried by a trace node.
// The set of variants is closed; switch over them with a type switch.
type Payload interface {
	payload()
}

// CollectRequest marks a whole dependency collection started for Root.
type CollectRequest struct {
	Root    artifact.Dependency
	Context string
}

// CollectStep marks the collection of one graph node.
type CollectStep struct {
	// Context is the request context label rendered on provenance lines.
	Context string
	// Path holds the ancestors of Node in root-to-parent order.
	Path []artifact.Dependency
	// Node is the dependency being collected.
	Node artifact.Dependency
}

// DescriptorRequest marks reading the descriptor of an artifact.
type DescriptorRequest struct {
	Artifact artifact.Coordinate
}

// ArtifactRequest marks resolving an artifact file outside of collection bookkeeping,
// e.g. a download or a plugin resolution.
type ArtifactRequest struct {
	Artifact artifact.Coordinate
}

func (CollectRequest) payload() {}
func (CollectStep) payload() {}
func (DescriptorRequest) payload() {}
func (ArtifactRequest) payload() {}
