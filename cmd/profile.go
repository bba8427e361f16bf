package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"

	"github.com/cloudposse/depwhy/pkg/perf"
)

// printProfile writes the recorded call latencies as a table.
func printProfile(w io.Writer) {
	stats := perf.Snapshot()
	if len(stats) == 0 {
		return
	}

	rows := lo.Map(stats, func(s perf.Stat, _ int) []string {
		return []string{s.Name, strconv.FormatInt(s.Count, 10), s.P50.String(), s.P99.String(), s.Max.String()}
	})
	fmt.Fprintln(w, newTable("Function", "Count", "P50", "P99", "Max").Rows(rows...).String())
}
