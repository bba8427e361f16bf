package replay

import (
	"github.com/goccy/go-yaml"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/filesystem"
)

// DefaultContext labels collection steps that declare no scope anywhere up their path.
const DefaultContext = "compile"

// Scenario is a declared dependency tree per request root.
type Scenario struct {
	// Context is the default label of collection steps.
	Context string `yaml:"context"`
	// Roots are the projects whose dependencies are collected.
	Roots []Node `yaml:"roots"`
	// External lists artifacts built from sources in the current build; they resolve
	// outside the cache.
	External []string `yaml:"external"`
}

// Node is one declared dependency.
type Node struct {
	Artifact string `yaml:"artifact"`
	Scope    string `yaml:"scope"`
	Optional bool   `yaml:"optional"`
	// Parent is the coordinate of the descriptor this node's descriptor inherits from.
	Parent       string `yaml:"parent"`
	Dependencies []Node `yaml:"dependencies"`
}

// plan is a validated scenario.
type plan struct {
	roots    []*planNode
	external map[artifact.Coordinate]bool
}

type planNode struct {
	dep      artifact.Dependency
	label    string
	parent   *artifact.Coordinate
	children []*planNode
}

// ParseScenario decodes and validates a scenario document. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.UnmarshalWithOptions(data, &s, yaml.DisallowUnknownField()); err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidScenario).
			WithCause(err).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	if _, err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(fs filesystem.FileSystem, path string) (*Scenario, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadScenario).
			WithCause(err).
			WithContext("path", path).
			Err()
	}
	return ParseScenario(data)
}

func (s *Scenario) compile() (*plan, error) {
	if len(s.Roots) == 0 {
		return nil, invalidScenario("scenario declares no roots", "roots")
	}

	p := &plan{external: map[artifact.Coordinate]bool{}}
	for _, ext := range s.External {
		c, err := artifact.ParseCoordinate(ext)
		if err != nil {
			return nil, invalidScenario(err.Error(), ext)
		}
		p.external[c] = true
	}

	label := s.Context
	if label == "" {
		label = DefaultContext
	}
	for i := range s.Roots {
		root, err := compileNode(&s.Roots[i], label)
		if err != nil {
			return nil, err
		}
		p.roots = append(p.roots, root)
	}
	return p, nil
}

func compileNode(n *Node, inherited string) (*planNode, error) {
	c, err := artifact.ParseCoordinate(n.Artifact)
	if err != nil {
		return nil, invalidScenario(err.Error(), n.Artifact)
	}

	label := inherited
	if n.Scope != "" {
		label = n.Scope
	}

	pn := &planNode{
		dep:   artifact.Dependency{Artifact: c, Scope: label, Optional: n.Optional},
		label: label,
	}

	if n.Parent != "" {
		parent, err := artifact.ParseCoordinate(n.Parent)
		if err != nil {
			return nil, invalidScenario(err.Error(), n.Parent)
		}
		pn.parent = &parent
	}

	for i := range n.Dependencies {
		child, err := compileNode(&n.Dependencies[i], label)
		if err != nil {
			return nil, err
		}
		pn.children = append(pn.children, child)
	}
	return pn, nil
}

func invalidScenario(reason, at string) error {
	return errUtils.Build(errUtils.ErrInvalidScenario).
		WithHint(reason).
		WithContext("at", at).
		WithExitCode(errUtils.ExitCodeUsage).
		Err()
}
