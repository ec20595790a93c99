package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/pevans/wordlist/artifact"
	"github.com/pevans/wordlist/config"
	"github.com/pevans/wordlist/recent"
)

func handleRecent(ctx context.Context, cfg *config.Config) int {
	known, err := artifact.ReadLines(cfg.Output.Filtered)
	if errors.Is(err, artifact.ErrNotExist) {
		known = nil
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	client := &http.Client{Timeout: cfg.Walk.Timeout}
	reader := recent.NewFeedReader(client, cfg.Walk.UserAgent)

	titles, err := reader.FetchTitles(ctx, cfg.Recent.FeedURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fresh := recent.Fresh(titles, known, cfg.Rules())
	if len(fresh) == 0 {
		fmt.Println("No new words.")
		return 0
	}
	for _, word := range fresh {
		fmt.Println(word)
	}
	return 0
}
