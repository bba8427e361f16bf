package errors

import "github.com/cockroachdb/errors"

// Provenance tracking.
var (
	ErrTrackingDirCreate   = errors.New("failed to create tracking directory")
	ErrTrackingWrite       = errors.New("failed to write tracking file")
	ErrReadTrackingRecords = errors.New("failed to read tracking records")
	ErrArtifactNotTracked  = errors.New("no provenance recorded for artifact")
	ErrScanCache           = errors.New("failed to scan cache for tracking records")
)

// Resolution events.
var (
	ErrListenerFailed = errors.New("resolution listener failed")
	ErrNilEvent       = errors.New("resolution event is nil")
)

// Artifacts.
var (
	ErrInvalidCoordinate  = errors.New("invalid artifact coordinate")
	ErrInvalidRootPattern = errors.New("invalid request root pattern")
)

// Replay.
var (
	ErrInvalidScenario     = errors.New("invalid replay scenario")
	ErrReadScenario        = errors.New("failed to read replay scenario")
	ErrMaterializeArtifact = errors.New("failed to materialize artifact in cache")
)

// Configuration and logging.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrLoadConfig      = errors.New("failed to load configuration")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrOpenLogFile     = errors.New("failed to open log file")
)
