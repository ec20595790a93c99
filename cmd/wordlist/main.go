package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/pevans/wordlist/config"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	// SIGINT/SIGTERM cancel whatever is in flight
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	subcommand := "run"
	var args []string
	if len(os.Args) > 1 {
		subcommand = os.Args[1]
		args = os.Args[2:]
	}

	var code int
	switch subcommand {
	case "run":
		code = handleRun(ctx, cfg, logger)
	case "search":
		code = handleSearch(cfg, args)
	case "serve":
		code = handleServe(ctx, cfg, logger, args)
	case "runs":
		code = handleRuns(cfg, args)
	case "recent":
		code = handleRecent(ctx, cfg)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		code = 1
	}

	stop()
	os.Exit(code)
}

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		Prefix:          "wordlist",
	})
}

func printUsage() {
	fmt.Println("wordlist - Hebrew Wiktionary word list builder")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wordlist [command] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run        Scrape the index and filter it into a word list (default)")
	fmt.Println("  search     Search the word list with a regular expression")
	fmt.Println("  serve      Serve the word list over HTTP")
	fmt.Println("  runs       Show recent pipeline runs")
	fmt.Println("  recent     List new wiki pages missing from the word list")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  WORDLIST_CONFIG       Path to config file (default: ~/.wordlist/config.yaml)")
	fmt.Println("  WORDLIST_RAW          Path to raw scrape output (default: raw_hebrew_words.txt)")
	fmt.Println("  WORDLIST_OUTPUT       Path to filtered word list (default: hebrew_words.txt)")
	fmt.Println("  WORDLIST_HISTORY_DSN  Path to run history database (default: wordlist.db)")
	fmt.Println("  WORDLIST_ADDR         Address for serve (default: localhost:8080)")
	fmt.Println("  WORDLIST_LOG_LEVEL    Log level: debug, info, warn, error (default: info)")
}
