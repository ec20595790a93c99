package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/pevans/wordlist/config"
	"github.com/pevans/wordlist/pipeline"
	"github.com/pevans/wordlist/runs"
	"github.com/pevans/wordlist/walker"
)

var _ walker.Observer = (*progress)(nil)

// progress shows a spinner with the current page count while walking.
type progress struct {
	spinner *spinner.Spinner
}

func newProgress(w io.Writer) *progress {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " Walking index..."
	return &progress{spinner: s}
}

// PageDone implements walker.Observer.
func (p *progress) PageDone(pageURL string, page, entries int) {
	p.spinner.Lock()
	p.spinner.Suffix = pageSuffix(page, entries)
	p.spinner.Unlock()
}

func (p *progress) Start() { p.spinner.Start() }
func (p *progress) Stop()  { p.spinner.Stop() }

// Writer returns a writer to out that holds the spinner lock and clears the
// spinner line before each write, so log lines do not land inside frames.
func (p *progress) Writer(out io.Writer) io.Writer {
	return &progressWriter{spinner: p.spinner, out: out}
}

type progressWriter struct {
	spinner *spinner.Spinner
	out     io.Writer
}

func (w *progressWriter) Write(b []byte) (int, error) {
	w.spinner.Lock()
	defer w.spinner.Unlock()

	if _, err := io.WriteString(w.out, clearLine); err != nil {
		return 0, err
	}
	return w.out.Write(b)
}

const clearLine = "\r\033[K"

func pageSuffix(page, entries int) string {
	return fmt.Sprintf(" Walking index: page %d, %d entries", page, entries)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func handleRun(ctx context.Context, cfg *config.Config, logger *log.Logger) int {
	w := walker.New(cfg.WalkConfig(), logger)

	var bar *progress
	if isTerminal(os.Stderr) {
		bar = newProgress(os.Stderr)
		w.SetObserver(bar)
	}

	// History is best effort
	var recorder pipeline.Recorder
	if cfg.History.DSN != "" {
		store, err := runs.NewRunStore(cfg.History.DSN)
		if err != nil {
			logger.Warn("Run history disabled", "dsn", cfg.History.DSN, "err", err)
		} else {
			defer store.Close()
			recorder = store
		}
	}

	pl := pipeline.New(pipeline.Config{
		StartURL:     cfg.Walk.StartURL,
		RawPath:      cfg.Output.Raw,
		FilteredPath: cfg.Output.Filtered,
		Rules:        cfg.Rules(),
	}, w, recorder, logger)

	if bar != nil {
		logger.SetOutput(bar.Writer(os.Stderr))
		bar.Start()
	}
	results, err := pl.Run(ctx)
	if bar != nil {
		bar.Stop()
		logger.SetOutput(os.Stderr)
	}
	printStageResults(os.Stdout, results)

	return exitCode(err)
}

// exitCode maps a pipeline error to the process exit status. Skipped stages
// and partial scrapes are successes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

// printStageResults prints one line per stage.
func printStageResults(out io.Writer, results []pipeline.StageResult) {
	for _, r := range results {
		line := fmt.Sprintf("%-7s %-14s %s", r.Stage, r.Status, r.Path)
		switch {
		case r.Stage == pipeline.StageScrape && r.Status == pipeline.StatusWritten:
			line += fmt.Sprintf(" (%d entries from %d pages)", r.Entries, r.Pages)
		case r.Stage == pipeline.StageFilter && r.Status == pipeline.StatusWritten:
			line += fmt.Sprintf(" (%d words)", r.Entries)
		}
		if r.Err != nil {
			line += fmt.Sprintf(" [partial: %v]", r.Err)
		}
		fmt.Fprintln(out, line)
	}
}
