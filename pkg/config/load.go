package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/depwhy/errors"
	log "github.com/cloudposse/depwhy/pkg/logger"
	"github.com/cloudposse/depwhy/pkg/perf"
)

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"cache-dir":  "cache_dir",
	"logs-level": "logs.level",
	"logs-file":  "logs.file",
}

// LoadOptions selects the sources Load reads besides defaults and the environment.
type LoadOptions struct {
	// ConfigFile replaces the search of the home and working directories. It must exist.
	ConfigFile string
	// Flags override every other source. Only flags that were set on the command line apply.
	Flags *pflag.FlagSet
}

// Load reads the configuration from the following sources (from lower to higher priority):
// defaults
// home dir (~/.depwhy/depwhy.yaml)
// XDG config dir ($XDG_CONFIG_HOME/depwhy/depwhy.yaml)
// current directory (./depwhy.yaml)
// or, instead of all three, the file given by LoadOptions.ConfigFile
// ENV vars (DEPWHY_CACHE_DIR, DEPWHY_LOGS_LEVEL, ...)
// Command-line flags.
func Load(opts LoadOptions) (*Config, error) {
	defer perf.Track("config.Load")()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaultConfiguration(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, loadError(err, opts.ConfigFile)
		}
	} else {
		if err := readHomeConfig(v); err != nil {
			return nil, err
		}
		if err := mergeConfig(v, filepath.Join(xdg.ConfigHome, CliConfigFileName)); err != nil {
			return nil, err
		}
		if err := readWorkDirConfig(v); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()))
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidConfig).
			WithCause(err).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if cfg.ConfigFile == "" {
		log.Debug("'depwhy.yaml' config was not found", "paths", "home dir, XDG config dir, current dir")
	} else {
		log.Debug("Loaded config", "file", cfg.ConfigFile)
	}

	if cfg.CacheDir, err = homedir.Expand(cfg.CacheDir); err != nil {
		return nil, invalidConfig("cache_dir", err.Error())
	}
	if cfg.CacheDir != "" {
		cfg.CacheDir = filepath.Clean(cfg.CacheDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return invalidConfig("cache_dir", "the local repository directory must be set")
	}
	if _, err := log.ParseLogLevel(c.Logs.Level); err != nil {
		return invalidConfig("logs.level", "valid levels are Trace, Debug, Info, Warning and Off")
	}
	if c.Replay.Parallelism < 1 {
		return invalidConfig("replay.parallelism", "parallelism must be at least 1")
	}
	if c.Replay.Timeout < 0 {
		return invalidConfig("replay.timeout", "timeout must not be negative")
	}
	return nil
}

// setDefaultConfiguration sets default configuration for the viper instance.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("cache_dir", DefaultCacheDir)
	v.SetDefault("logs.file", DefaultLogsFile)
	v.SetDefault("logs.level", DefaultLogsLevel)
	v.SetDefault("replay.parallelism", DefaultReplayParallelism)
	v.SetDefault("replay.timeout", "0s")
}

// readHomeConfig loads config from the user's HOME dir.
func readHomeConfig(v *viper.Viper) error {
	home, err := homedir.Dir()
	if err != nil {
		return loadError(err, "~")
	}
	return mergeConfig(v, filepath.Join(home, "."+CliConfigFileName))
}

// readWorkDirConfig loads config from the current working directory.
func readWorkDirConfig(v *viper.Viper) error {
	wd, err := os.Getwd()
	if err != nil {
		return loadError(err, ".")
	}
	return mergeConfig(v, wd)
}

// mergeConfig merges depwhy.yaml from dir; a missing file is not an error.
func mergeConfig(v *viper.Viper, dir string) error {
	path := filepath.Join(dir, CliConfigFileName+".yaml")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return loadError(err, path)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return loadError(err, "--"+name)
		}
	}
	return nil
}

func loadError(err error, source string) error {
	return errUtils.Build(errUtils.ErrLoadConfig).
		WithCause(err).
		WithContext("source", source).
		Err()
}

func invalidConfig(key, hint string) error {
	return errUtils.Build(errUtils.ErrInvalidConfig).
		WithHint(hint).
		WithContext("key", key).
		WithExitCode(errUtils.ExitCodeUsage).
		Err()
}
