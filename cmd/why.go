package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/filesystem"
	"github.com/cloudposse/depwhy/pkg/provenance"
)

var whyCmd = &cobra.Command{
	Use:   "why <coordinate>",
	Short: "Show why an artifact was resolved into the local repository",
	Long: `Show the dependency paths recorded for an artifact, one per request root that pulled it
into the local repository. The coordinate is group:name:version.`,
	Example: "depwhy why com.google.guava:guava:33.0.0-jre\n" +
		"depwhy why org.slf4j:slf4j-api:2.0.9 --raw",
	Args: cobra.ExactArgs(1),
	RunE: runWhy,
}

func init() {
	whyCmd.Flags().Bool("raw", false, "Print the record files as stored")
	RootCmd.AddCommand(whyCmd)
}

func runWhy(cmd *cobra.Command, args []string) error {
	coord, err := artifact.ParseCoordinate(args[0])
	if err != nil {
		return err
	}

	layout := artifact.Layout{Basedir: cliConfig.CacheDir}
	records, err := provenance.ReadRecords(filesystem.NewOSFileSystem(), layout.Path(coord))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errUtils.Build(errUtils.ErrArtifactNotTracked).
			WithHintf("Check that %s is resolved by a build using the local repository at %s", coord, cliConfig.CacheDir).
			WithHint("Records are only written for artifacts resolved while the tracker is registered").
			WithContext("artifact", coord.String()).
			WithContext("cache_dir", cliConfig.CacheDir).
			Err()
	}

	out := cmd.OutOrStdout()
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		return printRawRecords(out, records)
	}
	_, err = fmt.Fprintln(out, renderWhy(coord, records))
	return err
}

// renderWhy draws one branch per record, from the request root down to the artifact's parent.
func renderWhy(coord artifact.Coordinate, records []provenance.Record) string {
	t := tree.Root(coord.String())
	for _, r := range records {
		chain := r.Chain()
		if len(chain) < 2 {
			continue
		}
		// Root first, without the artifact itself.
		ancestors := chain[1:]
		slices.Reverse(ancestors)

		branch := tree.Root(fmt.Sprintf("%s (%s)", ancestors[0], r.Context()))
		parent := branch
		for _, a := range ancestors[1:] {
			child := tree.Root(a)
			parent.Child(child)
			parent = child
		}
		t.Child(branch)
	}
	return t.String()
}

func printRawRecords(w io.Writer, records []provenance.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "# %s\n", r.Path); err != nil {
			return err
		}
		for _, line := range r.Lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
