package provenance

import "github.com/cloudposse/depwhy/pkg/trace"

// FindCollectStep walks t from the innermost node up to the root and returns
// the nearest collection step.
func FindCollectStep(t *trace.Trace) (trace.CollectStep, bool) {
	for n := t; n != nil; n = n.Parent() {
		switch p := n.Payload().(type) {
		case trace.CollectStep:
			return p, true
		case trace.CollectRequest, trace.DescriptorRequest, trace.ArtifactRequest, nil:
			continue
		}
	}
	return trace.CollectStep{}, false
}
