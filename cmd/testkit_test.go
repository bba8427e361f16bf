package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	log "github.com/cloudposse/depwhy/pkg/logger"
	"github.com/cloudposse/depwhy/pkg/perf"
)

// TestKit wraps testing.TB and restores the global RootCmd state when the test completes.
//
//	func TestMyCommand(t *testing.T) {
//	    tk := NewTestKit(t)
//	    out, err := tk.Execute("list", "--cache-dir", dir)
//	}
type TestKit struct {
	testing.TB
}

type flagSnapshot struct {
	value   string
	changed bool
}

// NewTestKit snapshots RootCmd flags, the loaded config and the default logger, and
// isolates HOME, XDG_CONFIG_HOME, the working directory and DEPWHY_ overrides.
func NewTestKit(tb testing.TB) *TestKit {
	tb.Helper()

	snapshot := snapshotFlags(RootCmd)
	logger := log.Default()
	tb.Cleanup(func() {
		Cleanup()
		restoreFlags(RootCmd, snapshot)
		RootCmd.SetArgs([]string{})
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		cliConfig = nil
		log.SetDefault(logger)
		perf.Reset()
	})

	homedir.DisableCache = true
	tb.Cleanup(func() { homedir.DisableCache = false })

	home := tb.TempDir()
	// Registered first so it runs after the environment is restored.
	tb.Cleanup(xdg.Reload)
	tb.Setenv("HOME", home)
	tb.Setenv("USERPROFILE", home)
	tb.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	xdg.Reload()
	for _, key := range []string{"DEPWHY_CACHE_DIR", "DEPWHY_LOGS_LEVEL", "DEPWHY_LOGS_FILE", "DEPWHY_REPLAY_PARALLELISM", "DEPWHY_REPLAY_TIMEOUT"} {
		tb.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	chdir(tb, tb.TempDir())

	return &TestKit{TB: tb}
}

// Execute runs RootCmd with args and returns everything written to stdout and stderr.
func (tk *TestKit) Execute(args ...string) (string, error) {
	tk.Helper()

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

// snapshotFlags records every flag of cmd and its subcommands, keyed by command path.
func snapshotFlags(cmd *cobra.Command) map[string]flagSnapshot {
	snapshot := map[string]flagSnapshot{}
	var visit func(c *cobra.Command)
	visit = func(c *cobra.Command) {
		record := func(f *pflag.Flag) {
			snapshot[c.CommandPath()+" --"+f.Name] = flagSnapshot{value: f.Value.String(), changed: f.Changed}
		}
		c.Flags().VisitAll(record)
		c.PersistentFlags().VisitAll(record)
		for _, sub := range c.Commands() {
			visit(sub)
		}
	}
	visit(cmd)
	return snapshot
}

func restoreFlags(cmd *cobra.Command, snapshot map[string]flagSnapshot) {
	var visit func(c *cobra.Command)
	visit = func(c *cobra.Command) {
		restore := func(f *pflag.Flag) {
			if snap, ok := snapshot[c.CommandPath()+" --"+f.Name]; ok {
				_ = f.Value.Set(snap.value)
				f.Changed = snap.changed
			}
		}
		c.Flags().VisitAll(restore)
		c.PersistentFlags().VisitAll(restore)
		for _, sub := range c.Commands() {
			visit(sub)
		}
	}
	visit(cmd)
}

// chdir changes the working directory to dir and restores it when tb finishes.
func chdir(tb testing.TB, dir string) {
	tb.Helper()
	prev, err := os.Getwd()
	if err != nil {
		tb.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() { _ = os.Chdir(prev) })
}
