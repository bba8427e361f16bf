package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cloudposse/depwhy/pkg/config"
	log "github.com/cloudposse/depwhy/pkg/logger"
	"github.com/cloudposse/depwhy/pkg/perf"
)

var (
	// cliConfig is loaded before any subcommand runs.
	cliConfig *config.Config
	logCloser io.Closer
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "depwhy",
	Short: "Explain why artifacts were resolved into the local repository",
	Long: `depwhy records, for every artifact resolved into the local repository, the dependency
path that pulled it in, and shows those records on demand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Do not silence usage or errors when help is invoked.
		if cmd.Name() != "help" && !cmd.Flags().Changed("help") {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
		}

		// Printing the version needs no configuration.
		if cmd == versionCmd {
			return nil
		}
		return initConfig(cmd)
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

// Cleanup prints the profile when enabled and closes the log file.
// It is safe to call more than once.
func Cleanup() {
	if perf.Enabled() {
		printProfile(RootCmd.ErrOrStderr())
		perf.Disable()
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to a depwhy.yaml config file. Replaces the search of ~/.depwhy and the current directory")
	RootCmd.PersistentFlags().String("cache-dir", "", "Local repository base directory (default ~/.m2/repository)")
	RootCmd.PersistentFlags().String("logs-level", "", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Off. If the log level is set to Off, depwhy will not log any messages")
	RootCmd.PersistentFlags().String("logs-file", "", "The file to write depwhy logs to. Logs can be written to any file or any standard file descriptor, including '/dev/stdout', '/dev/stderr' and '/dev/null'")
	RootCmd.PersistentFlags().Bool("profile", false, "Print call latencies to stderr on exit")
}

// initConfig loads the configuration and sets up the default logger.
func initConfig(cmd *cobra.Command) error {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	c, err := config.Load(config.LoadOptions{ConfigFile: configFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}

	logger, closer, err := log.NewConfigured(c.Logs.Level, c.Logs.File)
	if err != nil {
		return err
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	log.SetDefault(logger)
	logCloser = closer

	if profile, _ := cmd.Flags().GetBool("profile"); profile {
		perf.Enable()
	}

	cliConfig = c
	log.Debug("Using local repository", "cache_dir", c.CacheDir)
	return nil
}
