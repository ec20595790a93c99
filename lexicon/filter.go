// Package lexicon decides which raw index entries are vocabulary words.
package lexicon

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HebrewAlphabet is the 22-letter base alphabet, without final forms.
const HebrewAlphabet = "אבגדהוזחטיכלמנסעפצקרשת"

// RootSuffix marks index entries that name a root rather than a word.
const RootSuffix = "(שורש)"

// Alphabet is a set of letters used to test script membership.
type Alphabet map[rune]struct{}

// NewAlphabet builds an alphabet from the runes of letters.
func NewAlphabet(letters string) Alphabet {
	a := make(Alphabet, utf8.RuneCountInString(letters))
	for _, r := range letters {
		a[r] = struct{}{}
	}
	return a
}

// Contains reports whether r is a letter of the alphabet.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a[r]
	return ok
}

// Rules is the predicate chain applied to every entry.
type Rules struct {
	Alphabet Alphabet
	// MinLength is the minimum number of runes an entry must have.
	MinLength int
	// ExcludeSuffixes lists endings that disqualify an entry.
	ExcludeSuffixes []string
}

// DefaultRules returns the rules for Hebrew vocabulary: at least two
// letters, no whitespace, no root entries, and some base alphabet letter.
func DefaultRules() *Rules {
	return &Rules{
		Alphabet:        NewAlphabet(HebrewAlphabet),
		MinLength:       2,
		ExcludeSuffixes: []string{RootSuffix},
	}
}

// Accept reports whether word, after trimming, is a vocabulary entry.
func (r *Rules) Accept(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}

	if utf8.RuneCountInString(word) < r.MinLength {
		return false
	}

	if strings.IndexFunc(word, unicode.IsSpace) >= 0 {
		return false
	}

	for _, suffix := range r.ExcludeSuffixes {
		if suffix != "" && strings.HasSuffix(word, suffix) {
			return false
		}
	}

	return strings.IndexFunc(word, r.Alphabet.Contains) >= 0
}

// Filter returns the accepted entries, trimmed, deduplicated and sorted by
// codepoint.
func (r *Rules) Filter(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !r.Accept(entry) {
			continue
		}
		seen[strings.TrimSpace(entry)] = struct{}{}
	}

	words := make([]string, 0, len(seen))
	for word := range seen {
		words = append(words, word)
	}
	// Byte order of valid UTF-8 is codepoint order.
	slices.Sort(words)

	return words
}

// Filter applies DefaultRules to entries.
func Filter(entries []string) []string {
	return DefaultRules().Filter(entries)
}
