// Package recent reads the wiki's new-pages feed and reports titles that
// are not yet in the vocabulary.
package recent

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/pevans/wordlist/lexicon"
)

// FeedReader fetches page titles from an RSS or Atom feed.
type FeedReader struct {
	parser *gofeed.Parser
}

// NewFeedReader creates a reader using client and userAgent. A nil client
// uses gofeed's default.
func NewFeedReader(client *http.Client, userAgent string) *FeedReader {
	fp := gofeed.NewParser()
	if client != nil {
		fp.Client = client
	}
	if userAgent != "" {
		fp.UserAgent = userAgent
	}
	return &FeedReader{parser: fp}
}

// FetchTitles fetches feedURL and returns the trimmed, non-empty item titles
// in feed order. The gofeed library handles both RSS and Atom.
func (r *FeedReader) FetchTitles(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	titles := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

// Fresh returns the titles that pass rules and are not in known, sorted and
// deduplicated.
func Fresh(titles, known []string, rules *lexicon.Rules) []string {
	if rules == nil {
		rules = lexicon.DefaultRules()
	}

	seen := make(map[string]struct{}, len(known))
	for _, word := range known {
		seen[word] = struct{}{}
	}

	fresh := []string{}
	for _, word := range rules.Filter(titles) {
		if _, ok := seen[word]; !ok {
			fresh = append(fresh, word)
		}
	}
	return fresh
}
