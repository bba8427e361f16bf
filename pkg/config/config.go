package config

import "time"

const (
	// CliConfigFileName is the config file name without extension.
	CliConfigFileName = "depwhy"
	// EnvPrefix prefixes environment overrides: logs.level is read from DEPWHY_LOGS_LEVEL.
	EnvPrefix = "DEPWHY"

	// DefaultCacheDir is the local repository used when none is configured.
	DefaultCacheDir = "~/.m2/repository"
	// DefaultLogsFile sends logs to stderr.
	DefaultLogsFile = "/dev/stderr"
	// DefaultLogsLevel is the log level used when none is configured.
	DefaultLogsLevel = "Info"
	// DefaultReplayParallelism is the number of roots the replay engine collects at once.
	DefaultReplayParallelism = 4
)

// Config is the resolved depwhy configuration.
type Config struct {
	// CacheDir is the local repository base directory, with ~ expanded.
	CacheDir string `mapstructure:"cache_dir"`
	Logs     Logs   `mapstructure:"logs"`
	Replay   Replay `mapstructure:"replay"`

	// ConfigFile is the config file that was read, empty when only defaults, env and flags apply.
	ConfigFile string `mapstructure:"-"`
}

// Logs configures the default logger.
type Logs struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Replay configures the scripted collection engine.
type Replay struct {
	Parallelism int `mapstructure:"parallelism"`
	// Timeout bounds a whole replay run. Zero means no limit.
	Timeout time.Duration `mapstructure:"timeout"`
}
