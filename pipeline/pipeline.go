// Package pipeline runs the scrape and filter stages that turn a remote
// listing index into a vocabulary file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pevans/wordlist/artifact"
	"github.com/pevans/wordlist/lexicon"
	"github.com/pevans/wordlist/runs"
	"github.com/pevans/wordlist/walker"
)

// ErrNothingScraped is returned when a walk failed before collecting any
// entries. No raw artifact is written in that case, so the next run retries.
var ErrNothingScraped = errors.New("walk failed before any entries were collected")

// Stage names.
const (
	StageScrape = "scrape"
	StageFilter = "filter"
)

// Status is the outcome of a stage.
type Status string

const (
	// StatusWritten means the stage produced its artifact.
	StatusWritten Status = "written"
	// StatusSkipped means the artifact already existed.
	StatusSkipped Status = "skipped"
	// StatusMissingInput means the filter stage found no raw artifact.
	StatusMissingInput Status = "missing_input"
	// StatusFailed means the stage returned an error.
	StatusFailed Status = "failed"
)

// StageResult describes what a stage did.
type StageResult struct {
	Stage   string
	Status  Status
	Path    string
	Pages   int
	Entries int
	// Err is set when a scrape was cut short but its partial results were
	// still written.
	Err error
}

// Walker is the part of walker.Walker the pipeline needs.
type Walker interface {
	Walk(ctx context.Context, start string) (*walker.WalkResult, error)
}

// Recorder stores stage outcomes. *runs.RunStore satisfies it.
type Recorder interface {
	Record(run *runs.Run) error
}

// Config holds what the pipeline needs besides its collaborators.
type Config struct {
	StartURL     string
	RawPath      string
	FilteredPath string
	Rules        *lexicon.Rules
}

// Pipeline runs the scrape stage followed by the filter stage.
type Pipeline struct {
	config   Config
	walker   Walker
	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

// New creates a pipeline. recorder may be nil. A nil logger uses the default
// logger and nil rules use lexicon.DefaultRules.
func New(config Config, w Walker, recorder Recorder, logger *log.Logger) *Pipeline {
	if config.Rules == nil {
		config.Rules = lexicon.DefaultRules()
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Pipeline{
		config:   config,
		walker:   w,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs the scrape stage and then the filter stage. The filter stage
// runs even when the scrape stage fails, so an existing raw artifact is still
// filtered.
func (p *Pipeline) Run(ctx context.Context) ([]StageResult, error) {
	scrape, scrapeErr := p.Scrape(ctx)
	if errors.Is(scrapeErr, context.Canceled) || errors.Is(scrapeErr, context.DeadlineExceeded) {
		return []StageResult{scrape}, scrapeErr
	}

	filter, filterErr := p.Filter(ctx)

	return []StageResult{scrape, filter}, errors.Join(scrapeErr, filterErr)
}

// Scrape walks the index and writes the raw artifact, unless it already
// exists. Entries collected before a fetch or parse failure are written;
// the failure is kept in the result's Err.
func (p *Pipeline) Scrape(ctx context.Context) (StageResult, error) {
	started := p.now()
	result := StageResult{Stage: StageScrape, Path: p.config.RawPath}

	exists, err := artifact.Exists(p.config.RawPath)
	if err != nil {
		return p.finish(result, started, err)
	}
	if exists {
		p.logger.Info("Raw artifact already exists, skipping scraping", "path", p.config.RawPath)
		result.Status = StatusSkipped
		return p.finish(result, started, nil)
	}

	p.logger.Info("Scraping", "start", p.config.StartURL)
	walked, walkErr := p.walker.Walk(ctx, p.config.StartURL)
	if walked == nil {
		walked = &walker.WalkResult{}
	}
	result.Pages = walked.Pages
	result.Entries = len(walked.Entries)

	if walkErr != nil {
		if ctx.Err() != nil {
			return p.finish(result, started, walkErr)
		}
		if len(walked.Entries) == 0 {
			return p.finish(result, started, fmt.Errorf("%w: %w", ErrNothingScraped, walkErr))
		}
		p.logger.Warn("Walk ended early, saving partial results", "err", walkErr, "entries", len(walked.Entries))
		result.Err = walkErr
	}

	entries := slices.Clone(walked.Entries)
	slices.Sort(entries)

	if err := artifact.WriteLines(p.config.RawPath, entries); err != nil {
		return p.finish(result, started, err)
	}

	p.logger.Info("Raw entries saved", "path", p.config.RawPath, "entries", len(entries))
	result.Status = StatusWritten
	return p.finish(result, started, nil)
}

// Filter reads the raw artifact, applies the lexical rules and writes the
// filtered artifact, unless it already exists.
func (p *Pipeline) Filter(ctx context.Context) (StageResult, error) {
	started := p.now()
	result := StageResult{Stage: StageFilter, Path: p.config.FilteredPath}

	exists, err := artifact.Exists(p.config.FilteredPath)
	if err != nil {
		return p.finish(result, started, err)
	}
	if exists {
		p.logger.Info("Filtered artifact already exists, skipping filtering", "path", p.config.FilteredPath)
		result.Status = StatusSkipped
		return p.finish(result, started, nil)
	}

	raw, err := artifact.ReadLines(p.config.RawPath)
	if errors.Is(err, artifact.ErrNotExist) {
		p.logger.Error("Input file not found", "path", p.config.RawPath)
		result.Status = StatusMissingInput
		return p.finish(result, started, nil)
	}
	if err != nil {
		return p.finish(result, started, err)
	}

	if err := ctx.Err(); err != nil {
		return p.finish(result, started, err)
	}

	words := p.config.Rules.Filter(raw)
	result.Entries = len(words)

	if err := artifact.WriteLines(p.config.FilteredPath, words); err != nil {
		return p.finish(result, started, err)
	}

	p.logger.Info("Filtered words saved", "path", p.config.FilteredPath, "raw", len(raw), "words", len(words))
	result.Status = StatusWritten
	return p.finish(result, started, nil)
}

// finish marks failed results, records the outcome and returns err.
func (p *Pipeline) finish(result StageResult, started time.Time, err error) (StageResult, error) {
	if err != nil {
		result.Status = StatusFailed
		p.logger.Error("Stage failed", "stage", result.Stage, "err", err)
	}

	p.record(result, started, err)
	return result, err
}

// record stores the outcome. History problems are logged, never returned.
func (p *Pipeline) record(result StageResult, started time.Time, err error) {
	if p.recorder == nil {
		return
	}

	run := &runs.Run{
		Stage:      result.Stage,
		Status:     string(result.Status),
		Path:       result.Path,
		Pages:      result.Pages,
		Entries:    result.Entries,
		StartedAt:  started,
		FinishedAt: p.now(),
	}

	cause := err
	if cause == nil {
		cause = result.Err
	}
	if cause != nil {
		msg := cause.Error()
		run.Error = &msg
	}

	if recErr := p.recorder.Record(run); recErr != nil {
		p.logger.Warn("Failed to record run", "stage", result.Stage, "err", recErr)
	}
}
