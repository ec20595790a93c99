// Package search matches vocabulary words against regular expressions.
package search

import (
	"errors"
	"fmt"
	"regexp"
)

// MatchLimit is the default number of matches returned.
const MatchLimit = 5000

// ErrInvalidPattern is returned for patterns that do not compile.
var ErrInvalidPattern = errors.New("invalid regular expression")

// Result holds the words matching a pattern.
type Result struct {
	Pattern string   `json:"pattern"`
	Matches []string `json:"matches"`
	// Total counts every match, including those past the limit.
	Total     int  `json:"total"`
	Truncated bool `json:"truncated"`
}

// Compile parses pattern with RE2 syntax.
func Compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return re, nil
}

// Search returns the words containing a match for pattern, in input order.
// At most limit words are returned; limit <= 0 returns all of them.
func Search(words []string, pattern string, limit int) (*Result, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	return Match(words, re, limit), nil
}

// Match is Search with an already compiled expression.
func Match(words []string, re *regexp.Regexp, limit int) *Result {
	result := &Result{
		Pattern: re.String(),
		Matches: []string{},
	}

	for _, word := range words {
		if !re.MatchString(word) {
			continue
		}
		result.Total++
		if limit > 0 && len(result.Matches) >= limit {
			result.Truncated = true
			continue
		}
		result.Matches = append(result.Matches, word)
	}

	return result
}
