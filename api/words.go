package api

import (
	"sync"

	"github.com/pevans/wordlist/artifact"
)

// WordStore serves the filtered artifact from memory. The file is read on
// first use; a failed read is retried on the next call.
type WordStore struct {
	path  string
	mu    sync.Mutex
	words []string
}

// NewWordStore creates a store backed by the artifact at path.
func NewWordStore(path string) *WordStore {
	return &WordStore{path: path}
}

// Words returns the vocabulary. Callers must not modify the slice.
func (s *WordStore) Words() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.words != nil {
		return s.words, nil
	}

	words, err := artifact.ReadLines(s.path)
	if err != nil {
		return nil, err
	}

	s.words = words
	return s.words, nil
}
