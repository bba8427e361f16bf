package provenance

import (
	errUtils "github.com/cloudposse/depwhy/errors"
	log "github.com/cloudposse/depwhy/pkg/logger"
	"github.com/cloudposse/depwhy/pkg/perf"
	"github.com/cloudposse/depwhy/pkg/resolution"
)

// Tracker records the provenance of artifacts resolved into the local repository.
// It keeps no state between events and is safe for concurrent use.
type Tracker struct {
	repo   resolution.LocalRepository
	writer *Writer
	logger *log.Logger
}

// Option is a functional option for configuring Tracker.
type Option func(*Tracker)

// WithWriter sets the writer used to persist records.
func WithWriter(w *Writer) Option {
	return func(t *Tracker) {
		t.writer = w
	}
}

// WithLogger sets the logger; the default logger is used otherwise.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// NewTracker creates a tracker for the given local repository. Events carrying their own
// session are checked against that session's repository instead.
func NewTracker(repo resolution.LocalRepository, opts ...Option) *Tracker {
	t := &Tracker{repo: repo}
	for _, opt := range opts {
		opt(t)
	}
	if t.writer == nil {
		t.writer = NewWriter()
	}
	if t.logger == nil {
		t.logger = log.Default()
	}
	return t
}

// Register subscribes the tracker to ArtifactResolved events of d.
// The returned function removes the subscription.
func (t *Tracker) Register(d *resolution.Dispatcher) func() {
	return d.Subscribe(resolution.ArtifactResolved, t)
}

// Handle implements resolution.Listener.
func (t *Tracker) Handle(event *resolution.Event) error {
	return t.ArtifactResolved(event)
}

// ArtifactResolved records the collection path that caused event's artifact to be resolved.
// Events without actionable provenance are ignored; only I/O failures are returned.
func (t *Tracker) ArtifactResolved(event *resolution.Event) error {
	defer perf.Track("provenance.Tracker.ArtifactResolved")()

	if event == nil {
		return errUtils.ErrNilEvent
	}

	if !IsLocalRepositoryArtifact(t.localRepository(event), event.File) {
		t.skip(event, "not in local repository", "file", event.File)
		return nil
	}

	step, ok := FindCollectStep(event.Trace)
	if !ok {
		t.skip(event, "no collect step in trace")
		return nil
	}

	if !IsInScope(event.Artifact, step.Node.Artifact) {
		t.skip(event, "resolved artifact is not the collected node", "node", step.Node.String())
		return nil
	}

	if len(step.Path) == 0 {
		t.skip(event, "collect step has no request root")
		return nil
	}

	root := step.Path[0].Artifact
	path, err := t.writer.Persist(event.File, root, Flatten(step))
	if err != nil {
		return err
	}

	t.logger.Debug("Recorded provenance", "artifact", event.Artifact.String(), "root", root.String(), "file", path)
	return nil
}

func (t *Tracker) localRepository(event *resolution.Event) resolution.LocalRepository {
	if event.Session != nil {
		return event.Session.LocalRepository
	}
	return t.repo
}

func (t *Tracker) skip(event *resolution.Event, reason string, keyvals ...interface{}) {
	kv := append([]interface{}{"artifact", event.Artifact.String(), "reason", reason}, keyvals...)
	t.logger.Trace("Skipping provenance", kv...)
}
