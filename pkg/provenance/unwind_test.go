package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/trace"
)

func TestFindCollectStep(t *testing.T) {
	outer := collectStep("project", "com.x:mid:1.0", "com.x:app:1.0")
	inner := collectStep("project", "com.x:lib:2.0", "com.x:app:1.0", "com.x:mid:1.0")
	descriptor := trace.DescriptorRequest{Artifact: artifact.MustParseCoordinate("com.x:lib:2.0:pom")}

	t.Run("nearest step wins", func(t *testing.T) {
		chain := trace.New(trace.CollectRequest{Context: "project"}).
			Child(outer).
			Child(inner).
			Child(descriptor)

		step, ok := FindCollectStep(chain)
		require.True(t, ok)
		assert.Equal(t, inner, step)
	})

	t.Run("step at innermost node", func(t *testing.T) {
		step, ok := FindCollectStep(trace.New(outer))
		require.True(t, ok)
		assert.Equal(t, outer, step)
	})

	t.Run("nil payloads are skipped", func(t *testing.T) {
		step, ok := FindCollectStep(trace.New(outer).Child(nil).Child(nil))
		require.True(t, ok)
		assert.Equal(t, outer, step)
	})

	t.Run("no step in chain", func(t *testing.T) {
		chain := trace.New(trace.CollectRequest{Context: "project"}).
			Child(trace.ArtifactRequest{Artifact: artifact.MustParseCoordinate("org.plugins:compiler:3.1")}).
			Child(descriptor)

		_, ok := FindCollectStep(chain)
		assert.False(t, ok)
	})

	t.Run("empty chain", func(t *testing.T) {
		_, ok := FindCollectStep(nil)
		assert.False(t, ok)
	})
}
