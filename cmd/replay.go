package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudposse/depwhy/pkg/filesystem"
	log "github.com/cloudposse/depwhy/pkg/logger"
	"github.com/cloudposse/depwhy/pkg/provenance"
	"github.com/cloudposse/depwhy/pkg/replay"
	"github.com/cloudposse/depwhy/pkg/resolution"
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Replay a declared dependency tree through the tracker",
	Long: `Fire the resolution events of a declared dependency tree with the provenance tracker
registered, writing records into the local repository as a build would.`,
	Example: "depwhy replay scenario.yaml\n" +
		"depwhy replay scenario.yaml --cache-dir /tmp/repository --parallelism 8",
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Int("parallelism", 0, "Number of roots collected at once (default from replay.parallelism)")
	replayCmd.Flags().String("workdir", ".", "Source tree where external artifacts are built")
	RootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	fsys := filesystem.NewOSFileSystem()
	scenario, err := replay.LoadScenario(fsys, args[0])
	if err != nil {
		return err
	}

	parallelism := cliConfig.Replay.Parallelism
	if cmd.Flags().Changed("parallelism") {
		parallelism, _ = cmd.Flags().GetInt("parallelism")
	}
	workdir, _ := cmd.Flags().GetString("workdir")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cliConfig.Replay.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliConfig.Replay.Timeout)
		defer cancel()
	}

	session := resolution.NewSession(cliConfig.CacheDir)
	dispatcher := resolution.NewDispatcher()
	unregister := provenance.NewTracker(session.LocalRepository).Register(dispatcher)
	defer unregister()

	engine := replay.NewEngine(session, dispatcher,
		replay.WithFileSystem(fsys),
		replay.WithParallelism(parallelism),
		replay.WithWorkdir(workdir),
	)
	stats, err := engine.Run(ctx, scenario)
	if err != nil {
		return err
	}

	log.Info("Replay finished", "run", stats.RunID, "roots", stats.Roots, "steps", stats.Steps, "events", stats.Events)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Replayed %d roots, %d collection steps, %d events into %s\n",
		stats.Roots, stats.Steps, stats.Events, cliConfig.CacheDir)
	return err
}
