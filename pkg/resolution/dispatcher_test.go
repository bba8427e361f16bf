package resolution

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/artifact"
)

func resolvedEvent() *Event {
	return &Event{
		Type:     ArtifactResolved,
		Session:  NewSession("/cache"),
		Artifact: artifact.MustParseCoordinate("com.x:lib:2.0"),
		File:     "/cache/com/x/lib/2.0/lib-2.0.jar",
	}
}

func TestDispatcher_DeliversInSubscriptionOrder(t *testing.T) {
	d := NewDispatcher()
	var order []string

	d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error {
		order = append(order, "first")
		return nil
	}))
	d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error {
		order = append(order, "second")
		return nil
	}))

	require.NoError(t, d.Dispatch(resolvedEvent()))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatcher_OnlyMatchingType(t *testing.T) {
	d := NewDispatcher()
	called := false
	d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error {
		called = true
		return nil
	}))

	event := resolvedEvent()
	event.Type = ArtifactDownloaded
	require.NoError(t, d.Dispatch(event))
	assert.False(t, called)
}

func TestDispatcher_StopsAtFirstError(t *testing.T) {
	d := NewDispatcher()
	cause := errors.New("disk full")
	secondCalled := false

	d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error { return cause }))
	d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error {
		secondCalled = true
		return nil
	}))

	err := d.Dispatch(resolvedEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrListenerFailed)
	assert.ErrorIs(t, err, cause)
	assert.False(t, secondCalled)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	unsubscribe := d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, d.Listeners(ArtifactResolved))

	require.NoError(t, d.Dispatch(resolvedEvent()))
	unsubscribe()
	unsubscribe()
	require.NoError(t, d.Dispatch(resolvedEvent()))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.Listeners(ArtifactResolved))
}

func TestDispatcher_UnsubscribeKeepsOthers(t *testing.T) {
	d := NewDispatcher()
	var kept int
	remove := d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error { return nil }))
	d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error {
		kept++
		return nil
	}))

	remove()
	require.NoError(t, d.Dispatch(resolvedEvent()))
	assert.Equal(t, 1, kept)
}

func TestDispatcher_NilEvent(t *testing.T) {
	assert.ErrorIs(t, NewDispatcher().Dispatch(nil), errUtils.ErrNilEvent)
}

func TestDispatcher_ConcurrentDispatch(t *testing.T) {
	d := NewDispatcher()
	var count atomic.Int64
	d.Subscribe(ArtifactResolved, ListenerFunc(func(*Event) error {
		count.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Dispatch(resolvedEvent()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(32), count.Load())
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "artifact-resolved", ArtifactResolved.String())
	assert.Equal(t, "artifact-resolving", ArtifactResolving.String())
	assert.Equal(t, "artifact-downloaded", ArtifactDownloaded.String())
	assert.Equal(t, "metadata-resolved", MetadataResolved.String())
	assert.Equal(t, "unknown", EventType(42).String())
}

func TestNewSession_CleansBasedir(t *testing.T) {
	s := NewSession("/cache/./repo/")
	assert.Equal(t, "/cache/repo", s.LocalRepository.Basedir)
}
