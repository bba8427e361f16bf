package replay

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/filesystem"
	log "github.com/cloudposse/depwhy/pkg/logger"
	"github.com/cloudposse/depwhy/pkg/perf"
	"github.com/cloudposse/depwhy/pkg/resolution"
	"github.com/cloudposse/depwhy/pkg/trace"
)

const (
	// DefaultParallelism is the number of roots collected at once.
	DefaultParallelism = 4

	descriptorExtension = "pom"
	cacheDirPerm        = 0o755
	cacheFilePerm       = 0o644
)

// Stats counts the work done by a run.
type Stats struct {
	// RunID correlates the run's log lines.
	RunID  string
	Roots  int64
	Steps  int64
	Events int64
}

type counters struct {
	roots  atomic.Int64
	steps  atomic.Int64
	events atomic.Int64
}

func (c *counters) snapshot(runID string) Stats {
	return Stats{RunID: runID, Roots: c.roots.Load(), Steps: c.steps.Load(), Events: c.events.Load()}
}

// Engine fires resolution events for scenarios.
type Engine struct {
	session     *resolution.Session
	dispatcher  *resolution.Dispatcher
	fs          filesystem.FileSystem
	layout      artifact.Layout
	workdir     string
	parallelism int
	logger      *log.Logger
}

// Option is a functional option for configuring Engine.
type Option func(*Engine)

// WithFileSystem sets the filesystem used to materialize cached artifacts.
func WithFileSystem(fs filesystem.FileSystem) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithParallelism bounds the number of roots collected at once. Values below 1 are ignored.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithWorkdir sets the source tree where external artifacts are built.
func WithWorkdir(dir string) Option {
	return func(e *Engine) {
		e.workdir = dir
	}
}

// WithLogger sets the logger; the default logger is used otherwise.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine firing events for session through dispatcher.
func NewEngine(session *resolution.Session, dispatcher *resolution.Dispatcher, opts ...Option) *Engine {
	e := &Engine{
		session:     session,
		dispatcher:  dispatcher,
		fs:          filesystem.NewOSFileSystem(),
		layout:      artifact.Layout{Basedir: session.LocalRepository.Basedir},
		workdir:     ".",
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Run collects every root of s. Roots are collected concurrently; the first error
// cancels the remaining work and is returned.
func (e *Engine) Run(ctx context.Context, s *Scenario) (Stats, error) {
	defer perf.Track("replay.Engine.Run")()

	var c counters
	runID := uuid.NewString()
	p, err := s.compile()
	if err != nil {
		return c.snapshot(runID), err
	}

	e.logger.Debug("Starting replay", "run", runID, "roots", len(p.roots), "parallelism", e.parallelism)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for _, root := range p.roots {
		root := root
		g.Go(func() error {
			return e.collect(ctx, runID, p, root, &c)
		})
	}
	err = g.Wait()
	return c.snapshot(runID), err
}

func (e *Engine) collect(ctx context.Context, runID string, p *plan, root *planNode, c *counters) error {
	e.logger.Debug("Collecting dependencies", "run", runID, "root", root.dep.String())
	c.roots.Add(1)

	request := trace.New(trace.CollectRequest{Root: root.dep, Context: root.label})
	if err := e.walk(ctx, p, request, []artifact.Dependency{root.dep}, root.children, c); err != nil {
		return err
	}
	return e.resolveArtifacts(ctx, p, root, c)
}

// walk fires the descriptor events of children, each under its own collection step.
// path holds the ancestors of children, root first.
func (e *Engine) walk(ctx context.Context, p *plan, request *trace.Trace, path []artifact.Dependency, children []*planNode, c *counters) error {
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.steps.Add(1)

		step := request.Child(trace.CollectStep{Context: child.label, Path: path, Node: child.dep})

		descriptor := child.dep.Artifact.WithExtension(descriptorExtension)
		if err := e.resolve(p, step.Child(trace.DescriptorRequest{Artifact: descriptor}), descriptor, c); err != nil {
			return err
		}

		// Inherited descriptors resolve inside the same step but belong to another node.
		if child.parent != nil {
			parent := child.parent.WithExtension(descriptorExtension)
			if err := e.resolve(p, step.Child(trace.DescriptorRequest{Artifact: parent}), parent, c); err != nil {
				return err
			}
		}

		// Clip forces append to copy, so sibling steps never share a backing array.
		if err := e.walk(ctx, p, request, append(slices.Clip(path), child.dep), child.children, c); err != nil {
			return err
		}
	}
	return nil
}

// resolveArtifacts fires the main artifact events of a root's tree once per coordinate,
// outside of any collection step.
func (e *Engine) resolveArtifacts(ctx context.Context, p *plan, root *planNode, c *counters) error {
	seen := map[artifact.Coordinate]bool{}
	var visit func(nodes []*planNode) error
	visit = func(nodes []*planNode) error {
		for _, n := range nodes {
			if err := ctx.Err(); err != nil {
				return err
			}
			coord := n.dep.Artifact
			if !seen[coord] {
				seen[coord] = true
				if err := e.resolve(p, trace.New(trace.ArtifactRequest{Artifact: coord}), coord, c); err != nil {
					return err
				}
			}
			if err := visit(n.children); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root.children)
}

// resolve fires ArtifactResolving and ArtifactResolved for coord.
func (e *Engine) resolve(p *plan, t *trace.Trace, coord artifact.Coordinate, c *counters) error {
	resolving := &resolution.Event{Type: resolution.ArtifactResolving, Session: e.session, Artifact: coord, Trace: t}
	c.events.Add(1)
	if err := e.dispatcher.Dispatch(resolving); err != nil {
		return err
	}

	file, err := e.locate(p, coord)
	if err != nil {
		return err
	}

	resolved := &resolution.Event{Type: resolution.ArtifactResolved, Session: e.session, Artifact: coord, File: file, Trace: t}
	c.events.Add(1)
	return e.dispatcher.Dispatch(resolved)
}

// locate returns the backing file of coord: a build output in the workdir for external
// artifacts, otherwise a file in the cache, created on first use.
func (e *Engine) locate(p *plan, coord artifact.Coordinate) (string, error) {
	if p.isExternal(coord) {
		return filepath.Join(e.workdir, coord.Name, "target", artifact.FileName(coord)), nil
	}

	path := e.layout.Path(coord)
	if _, err := e.fs.Stat(path); err == nil {
		return path, nil
	}

	if err := e.fs.MkdirAll(filepath.Dir(path), cacheDirPerm); err != nil {
		return "", materializeError(err, path)
	}
	content := fmt.Sprintf("# %s\n", coord.String())
	if err := e.fs.WriteFileAtomic(path, []byte(content), cacheFilePerm); err != nil {
		return "", materializeError(err, path)
	}
	return path, nil
}

func (p *plan) isExternal(coord artifact.Coordinate) bool {
	for ext := range p.external {
		if ext.SameNode(coord) {
			return true
		}
	}
	return false
}

func materializeError(err error, path string) error {
	return errUtils.Build(errUtils.ErrMaterializeArtifact).
		WithCause(err).
		WithContext("path", path).
		Err()
}
