package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pevans/wordlist/config"
	"github.com/pevans/wordlist/runs"
)

func handleRuns(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Maximum number of runs to show")
	stage := fs.String("stage", "", "Only show runs of this stage (scrape or filter)")
	fs.Parse(args)

	store, err := runs.NewRunStore(cfg.History.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open run history: %v\n", err)
		return 1
	}
	defer store.Close()

	filter := runs.RunFilter{Limit: *limit}
	if *stage != "" {
		filter.Stage = stage
	}

	list, err := store.List(filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list runs: %v\n", err)
		return 1
	}

	printRunsTable(os.Stdout, list)
	return 0
}

// printRunsTable prints runs newest first in a fixed-width table.
func printRunsTable(out io.Writer, list []runs.Run) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return
	}

	fmt.Fprintf(out, "%-16s %-7s %-14s %6s %8s %8s  %s\n", "STARTED", "STAGE", "STATUS", "PAGES", "ENTRIES", "TOOK", "ERROR")
	fmt.Fprintln(out, "--------------------------------------------------------------------------------")

	for _, run := range list {
		errMsg := ""
		if run.Error != nil {
			errMsg = truncate(*run.Error, 40)
		}

		fmt.Fprintf(out, "%-16s %-7s %-14s %6d %8d %8s  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Stage,
			run.Status,
			run.Pages,
			run.Entries,
			formatDuration(run.Duration()),
			errMsg,
		)
	}
}
