package lexicon

import (
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFilter_Example verifies every rule on the reference input
func TestFilter_Example(t *testing.T) {
	raw := []string{"אב", "אב", "א", "גן גן", "שלום(שורש)", "בית"}

	assert.Equal(t, []string{"אב", "בית"}, Filter(raw))
}

// TestNewAlphabet verifies the base alphabet has 22 letters and no finals
func TestNewAlphabet(t *testing.T) {
	alphabet := NewAlphabet(HebrewAlphabet)

	assert.Len(t, alphabet, 22)
	for _, final := range "ךםןףץ" {
		assert.False(t, alphabet.Contains(final), "should not contain final form %q", final)
	}
	assert.True(t, alphabet.Contains('ש'))
}

// TestAccept verifies the predicate chain entry by entry
func TestAccept(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		word     string
		expected bool
	}{
		{name: "plain word", word: "שלום", expected: true},
		{name: "single letter", word: "א", expected: false},
		{name: "empty", word: "", expected: false},
		{name: "only whitespace", word: "   ", expected: false},
		{name: "trimmed to single letter", word: "  א  ", expected: false},
		{name: "trimmed word", word: "  שלום\n", expected: true},
		{name: "embedded space", word: "גן גן", expected: false},
		{name: "embedded tab", word: "גן\tגן", expected: false},
		{name: "embedded no-break space", word: "גן\u00a0גן", expected: false},
		{name: "root suffix", word: "שלום(שורש)", expected: false},
		{name: "root marker not at end", word: "(שורש)א", expected: true},
		{name: "latin only", word: "hello", expected: false},
		{name: "digits only", word: "12", expected: false},
		{name: "final forms only", word: "ךם", expected: false},
		{name: "mixed with one base letter", word: "ךא", expected: true},
		{name: "hyphenated", word: "בית-ספר", expected: true},
		{name: "with niqqud", word: "שָׁלוֹם", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rules.Accept(tt.word))
		})
	}
}

// TestAccept_LengthCountsRunes verifies a two-letter Hebrew word passes even
// though it is four bytes long and a one-letter word fails at two bytes
func TestAccept_LengthCountsRunes(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 2, len("א"))
	assert.False(t, rules.Accept("א"))
	assert.True(t, rules.Accept("אב"))
}

// TestFilter_SortedAndUnique verifies the output invariants on noisy input
func TestFilter_SortedAndUnique(t *testing.T) {
	raw := []string{"תות", "אבא", " אבא ", "גמל", "אבא", "בית", "zz", "תות", "ב ב", "ד"}

	words := Filter(raw)

	assert.Equal(t, []string{"אבא", "בית", "גמל", "תות"}, words)
	assert.True(t, slices.IsSorted(words), "should be sorted")
	assert.Len(t, words, len(uniq(words)), "should contain no duplicates")

	for _, w := range words {
		assert.Greater(t, utf8.RuneCountInString(w), 1)
		assert.False(t, strings.ContainsAny(w, " \t\n"))
		assert.False(t, strings.HasSuffix(w, RootSuffix))
	}
}

// TestFilter_Empty verifies nil and empty input
func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil))
	assert.NotNil(t, Filter(nil))
	assert.Empty(t, Filter([]string{"", " ", "א"}))
}

// TestFilter_CustomRules verifies configurable rules
func TestFilter_CustomRules(t *testing.T) {
	rules := &Rules{
		Alphabet:        NewAlphabet("abc"),
		MinLength:       3,
		ExcludeSuffixes: []string{"(root)", ""},
	}

	words := rules.Filter([]string{"ab", "abc", "cab(root)", "xyz", "zza", "abc"})

	require.Len(t, words, 2)
	assert.Equal(t, []string{"abc", "zza"}, words)
}

func uniq(words []string) map[string]bool {
	m := make(map[string]bool)
	for _, w := range words {
		m[w] = true
	}
	return m
}
