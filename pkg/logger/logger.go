package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	errUtils "github.com/cloudposse/depwhy/errors"
)

// TraceLevel is one step more verbose than debug.
// Rejected resolution events are logged here.
const TraceLevel = log.DebugLevel - 1

// OffLevel silences all output.
const OffLevel = log.FatalLevel + 1

// Names accepted by ParseLogLevel.
const (
	LevelNameTrace   = "Trace"
	LevelNameDebug   = "Debug"
	LevelNameInfo    = "Info"
	LevelNameWarning = "Warning"
	LevelNameOff     = "Off"
)

const logFilePerm = 0o644

// Logger wraps a charmbracelet logger and adds the trace level.
type Logger struct {
	*log.Logger
}

// NewLogger wraps an existing charmbracelet logger.
func NewLogger(l *log.Logger) *Logger {
	styles := log.DefaultStyles()
	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRCE").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("61"))
	l.SetStyles(styles)

	return &Logger{Logger: l}
}

// Trace logs a message at trace level.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Log(TraceLevel, msg, keyvals...)
}

// Tracef logs a formatted message at trace level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Log(TraceLevel, fmt.Sprintf(format, args...))
}

// GetLevelString returns the configured level in lowercase form.
func (l *Logger) GetLevelString() string {
	switch level := l.GetLevel(); level {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return level.String()
	}
}

// ParseLogLevel converts a configured level name into a log level.
// An empty name means Info. Names are case-sensitive.
func ParseLogLevel(name string) (log.Level, error) {
	switch name {
	case "", LevelNameInfo:
		return log.InfoLevel, nil
	case LevelNameTrace:
		return TraceLevel, nil
	case LevelNameDebug:
		return log.DebugLevel, nil
	case LevelNameWarning:
		return log.WarnLevel, nil
	case LevelNameOff:
		return OffLevel, nil
	default:
		return log.InfoLevel, errUtils.Build(errUtils.ErrInvalidLogLevel).
			WithContext("level", name).
			WithHintf("supported levels are %s, %s, %s, %s, %s",
				LevelNameTrace, LevelNameDebug, LevelNameInfo, LevelNameWarning, LevelNameOff).
			Err()
	}
}

// NewConfigured builds a logger from a level name and a destination.
// The destination is "/dev/stderr" (default), "/dev/stdout" or a file path opened for append.
// The returned closer releases the file, if one was opened.
func NewConfigured(levelName, file string) (*Logger, io.Closer, error) {
	level, err := ParseLogLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer
	closer := io.Closer(nopCloser{})
	switch file {
	case "", "/dev/stderr":
		out = os.Stderr
	case "/dev/stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, logFilePerm)
		if err != nil {
			return nil, nil, errUtils.Build(errUtils.ErrOpenLogFile).
				WithCause(err).
				WithContext("file", file).
				Err()
		}
		out = f
		closer = f
	}

	l := NewLogger(log.NewWithOptions(out, log.Options{ReportTimestamp: false}))
	l.SetLevel(level)
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
