package walker

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pevans/wordlist/scraper"
)

// StopReason records why a walk ended.
type StopReason string

const (
	// StopExhausted means the last page had no next-page link.
	StopExhausted StopReason = "exhausted"
	// StopRevisit means the next-page link pointed at a page already walked.
	StopRevisit StopReason = "revisit"
	// StopMaxPages means the configured page bound was reached.
	StopMaxPages StopReason = "max_pages"
	// StopError means a fetch or parse failure cut the walk short.
	StopError StopReason = "error"
	// StopCanceled means the context was canceled.
	StopCanceled StopReason = "canceled"
)

// WalkResult holds everything a walk collected, including partial results
// from a walk that ended in error.
type WalkResult struct {
	// Entries are raw list-item texts in discovery order. Duplicates are kept.
	Entries []string
	Pages   int
	Stop    StopReason
}

// Observer is told about every page the walker finishes.
type Observer interface {
	PageDone(pageURL string, page, entries int)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Walker follows next-page links through a paginated listing index.
type Walker struct {
	config   *scraper.WalkConfig
	client   *http.Client
	logger   *log.Logger
	sleep    SleepFunc
	observer Observer
}

// New creates a walker. A nil config uses scraper defaults and a nil logger
// uses the default logger.
func New(config *scraper.WalkConfig, logger *log.Logger) *Walker {
	if config == nil {
		config = scraper.NewWalkConfig()
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Walker{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
		sleep:  Sleep,
	}
}

// SetClient replaces the HTTP client used for fetching pages.
func (w *Walker) SetClient(client *http.Client) {
	w.client = client
}

// SetSleep replaces the function used for the delay before each request.
func (w *Walker) SetSleep(fn SleepFunc) {
	w.sleep = fn
}

// SetObserver registers an observer for page progress.
func (w *Walker) SetObserver(o Observer) {
	w.observer = o
}

// Walk fetches start and every page reachable through next-page links,
// collecting list-item entries. The walk is sequential and pauses for the
// configured delay before every request.
//
// The returned result is never nil. When a fetch or parse fails the walk
// stops and the error (a *WalkError) is returned together with the entries
// collected so far. A canceled context returns ctx.Err().
func (w *Walker) Walk(ctx context.Context, start string) (*WalkResult, error) {
	result := &WalkResult{Entries: []string{}}
	visited := make(map[string]bool)

	// Next links come back escaped, so the start URL must be too
	cursor := start
	if cursor != "" {
		normalized, err := ResolveURL(w.config.BaseURL, start)
		if err != nil {
			return result, w.fail(result, 1, &WalkError{Kind: KindParse, URL: start, Err: err})
		}
		cursor = normalized
	}

	for cursor != "" {
		if w.config.MaxPages > 0 && result.Pages >= w.config.MaxPages {
			w.logger.Warn("Page limit reached, stopping", "max_pages", w.config.MaxPages, "next", cursor)
			result.Stop = StopMaxPages
			return result, nil
		}

		if err := w.sleep(ctx, w.config.Delay); err != nil {
			result.Stop = StopCanceled
			return result, err
		}

		visited[cursor] = true
		page := result.Pages + 1

		doc, err := FetchHTML(ctx, w.client, cursor, w.config.UserAgent)
		if err != nil {
			if ctx.Err() != nil {
				result.Stop = StopCanceled
				return result, ctx.Err()
			}
			return result, w.fail(result, page, err)
		}

		entries := ExtractEntries(doc, w.config.NavSelector)
		result.Entries = append(result.Entries, entries...)
		result.Pages = page

		w.logger.Debug("Page scraped", "page", page, "url", cursor, "entries", len(entries))
		if w.observer != nil {
			w.observer.PageDone(cursor, page, len(result.Entries))
		}

		href, found, err := NextLink(doc, w.config.NextMarker)
		if err != nil {
			return result, w.fail(result, page, &WalkError{Kind: KindParse, URL: cursor, Err: err})
		}
		if !found {
			w.logger.Info("No more pages to scrape", "pages", result.Pages)
			result.Stop = StopExhausted
			break
		}

		next, err := ResolveURL(w.config.BaseURL, href)
		if err != nil {
			return result, w.fail(result, page, &WalkError{Kind: KindParse, URL: cursor, Err: err})
		}

		if visited[next] {
			w.logger.Warn("Next page already visited, stopping", "url", next)
			result.Stop = StopRevisit
			break
		}

		w.logger.Info("Moving to next page", "url", next)
		cursor = next
	}

	w.logger.Info("Scraped entries", "entries", len(result.Entries), "pages", result.Pages)
	return result, nil
}

// fail stamps the page number on a fetch or parse error, logs it and marks
// the result as cut short.
func (w *Walker) fail(result *WalkResult, page int, err error) error {
	var we *WalkError
	if errors.As(err, &we) {
		we.Page = page
	}

	w.logger.Error("Walk stopped early", "err", err, "pages", result.Pages, "entries", len(result.Entries))
	result.Stop = StopError
	return err
}

// Sleep waits for d, returning early with ctx.Err() if ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
