// Package resolution defines the boundary between the resolution engine and its observers:
// sessions, resolution events, listeners and the dispatcher that delivers events.
package resolution

import (
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/trace"
)

// EventType identifies the kind of resolution notification.
type EventType int

const (
	// ArtifactResolving fires before an artifact is looked up.
	ArtifactResolving EventType = iota
	// ArtifactResolved fires once an artifact has a backing file.
	ArtifactResolved
	// ArtifactDownloaded fires after a remote transfer into the cache.
	ArtifactDownloaded
	// MetadataResolved fires after repository metadata was read.
	MetadataResolved
)

func (t EventType) String() string {
	switch t {
	case ArtifactResolving:
		return "artifact-resolving"
	case ArtifactResolved:
		return "artifact-resolved"
	case ArtifactDownloaded:
		return "artifact-downloaded"
	case MetadataResolved:
		return "metadata-resolved"
	default:
		return "unknown"
	}
}

// Event is an immutable resolution notification.
type Event struct {
	Type     EventType
	Session  *Session
	Artifact artifact.Coordinate
	// File is the artifact's backing file; empty when nothing was resolved.
	File  string
	Trace *trace.Trace
}
