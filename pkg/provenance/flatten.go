package provenance

import (
	"strings"

	"github.com/cloudposse/depwhy/pkg/trace"
)

const indentUnit = "  "

// Flatten renders a collection step as provenance lines: the step's node first, then each
// ancestor from the direct parent back to the request root, indented one level deeper
// per step away from the node.
func Flatten(step trace.CollectStep) []string {
	lines := make([]string, 0, len(step.Path)+1)
	lines = append(lines, formatLine(0, step.Node.String(), step.Context))

	for depth := 1; depth <= len(step.Path); depth++ {
		ancestor := step.Path[len(step.Path)-depth]
		lines = append(lines, formatLine(depth, ancestor.String(), step.Context))
	}
	return lines
}

func formatLine(depth int, text, context string) string {
	return strings.Repeat(indentUnit, depth) + text + " (" + context + ")"
}
