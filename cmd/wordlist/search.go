package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pevans/wordlist/artifact"
	"github.com/pevans/wordlist/config"
	"github.com/pevans/wordlist/search"
)

func handleSearch(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("limit", search.MatchLimit, "Maximum number of matches to print")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wordlist search [-limit N] <pattern>")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	if *limit < 1 {
		fmt.Fprintln(os.Stderr, "Error: -limit must be at least 1")
		return 1
	}

	words, err := artifact.ReadLines(cfg.Output.Filtered)
	if errors.Is(err, artifact.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: word list %s not found; run 'wordlist' first\n", cfg.Output.Filtered)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	result, err := search.Search(words, fs.Arg(0), *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printSearchResult(os.Stdout, result)
	return 0
}

// printSearchResult prints one match per line followed by a count.
func printSearchResult(out io.Writer, result *search.Result) {
	for _, word := range result.Matches {
		fmt.Fprintln(out, word)
	}

	if result.Truncated {
		fmt.Fprintf(out, "\nShowing %d of %d matches\n", len(result.Matches), result.Total)
		return
	}
	fmt.Fprintf(out, "\n%d matches\n", result.Total)
}
