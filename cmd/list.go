package cmd

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/filesystem"
	"github.com/cloudposse/depwhy/pkg/provenance"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked artifacts and the roots that pulled them in",
	Long:  `List every artifact of the local repository that has provenance records, with one row per request root.`,
	Example: "depwhy list\n" +
		"depwhy list --root com.acme:service:1.4.0\n" +
		"depwhy list --root 'com.acme:*:*'",
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("root", "", "Only show records whose request root matches this pattern. '*' matches within one part of group:name:version, '**' across parts")
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	matchRoot, err := rootMatcher(cmd)
	if err != nil {
		return err
	}

	entries, err := provenance.ScanCache(cliConfig.CacheDir)
	if err != nil {
		return err
	}

	// Entries are sorted by path, so directories come out sorted too.
	dirs := lo.Uniq(lo.Map(entries, func(e provenance.Entry, _ int) string {
		return e.ArtifactDir
	}))

	fsys := filesystem.NewOSFileSystem()
	layout := artifact.Layout{Basedir: cliConfig.CacheDir}
	var rows [][]string
	for _, dir := range dirs {
		records, err := provenance.ReadArtifactDir(fsys, dir)
		if err != nil {
			return err
		}

		label := dir
		if coord, ok := layout.Coordinate(dir); ok {
			label = coord.String()
		}

		for _, r := range lo.Filter(records, func(r provenance.Record, _ int) bool {
			return matchRoot(r.Root())
		}) {
			rows = append(rows, []string{label, r.Root(), r.Context()})
		}
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		_, err = fmt.Fprintf(out, "No provenance records found in %s\n", cliConfig.CacheDir)
		return err
	}
	_, err = fmt.Fprintln(out, newTable("Artifact", "Root", "Context").Rows(rows...).String())
	return err
}

// rootMatcher compiles --root into a predicate; without the flag every root matches.
func rootMatcher(cmd *cobra.Command) (func(string) bool, error) {
	pattern, _ := cmd.Flags().GetString("root")
	if pattern == "" {
		return func(string) bool { return true }, nil
	}

	g, err := glob.Compile(pattern, ':')
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidRootPattern).
			WithCause(err).
			WithContext("pattern", pattern).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	return g.Match, nil
}
