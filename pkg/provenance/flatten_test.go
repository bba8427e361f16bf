package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		node     string
		path     []string
		expected []string
	}{
		{
			name:    "two ancestors below root",
			context: "compile",
			node:    "g:c:1",
			path:    []string{"g:root:1", "g:a:1", "g:b:1"},
			expected: []string{
				"g:c:1 (compile)",
				"  g:b:1 (compile)",
				"    g:a:1 (compile)",
				"      g:root:1 (compile)",
			},
		},
		{
			name:    "direct dependency of root",
			context: "test",
			node:    "g:lib:2",
			path:    []string{"g:app:1"},
			expected: []string{
				"g:lib:2 (test)",
				"  g:app:1 (test)",
			},
		},
		{
			name:     "empty path",
			context:  "compile",
			node:     "g:lib:2",
			expected: []string{"g:lib:2 (compile)"},
		},
		{
			name:    "extension and classifier are rendered",
			context: "runtime",
			node:    "g:lib:2:jar:linux",
			path:    []string{"g:app:1:war"},
			expected: []string{
				"g:lib:2:jar:linux (runtime)",
				"  g:app:1:war (runtime)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Flatten(collectStep(tt.context, tt.node, tt.path...)))
		})
	}
}

func TestFlatten_DoesNotModifyPath(t *testing.T) {
	step := collectStep("compile", "g:c:1", "g:root:1", "g:a:1")
	before := append(step.Path[:0:0], step.Path...)

	Flatten(step)

	assert.Equal(t, before, step.Path)
}
