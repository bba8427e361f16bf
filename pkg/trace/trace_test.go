package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudposse/depwhy/pkg/artifact"
)

func TestTrace_Chain(t *testing.T) {
	root := New(CollectRequest{Context: "project"})
	step := root.Child(CollectStep{Context: "project"})
	leaf := step.Child(DescriptorRequest{Artifact: artifact.MustParseCoordinate("g:a:1:pom")})

	assert.Same(t, step, leaf.Parent())
	assert.Same(t, root, step.Parent())
	assert.Nil(t, root.Parent())

	assert.IsType(t, DescriptorRequest{}, leaf.Payload())
	assert.IsType(t, CollectStep{}, step.Payload())
	assert.Equal(t, 3, leaf.Depth())
	assert.Equal(t, 1, root.Depth())
}

func TestTrace_NilIsEmptyChain(t *testing.T) {
	var empty *Trace

	assert.Nil(t, empty.Parent())
	assert.Nil(t, empty.Payload())
	assert.Equal(t, 0, empty.Depth())

	child := empty.Child(ArtifactRequest{})
	assert.Nil(t, child.Parent())
	assert.Equal(t, 1, child.Depth())
}

func TestTrace_NilPayload(t *testing.T) {
	n := New(nil).Child(nil)

	assert.Nil(t, n.Payload())
	assert.Equal(t, 2, n.Depth())
}
