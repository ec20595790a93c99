// Package api exposes the vocabulary over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pevans/wordlist/artifact"
	"github.com/pevans/wordlist/search"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// APIServer represents the word API server.
type APIServer struct {
	words  *WordStore
	logger *log.Logger
}

// NewAPIServer creates a new API server over words. A nil logger uses the
// default logger.
func NewAPIServer(words *WordStore, logger *log.Logger) *APIServer {
	if logger == nil {
		logger = log.Default()
	}
	return &APIServer{
		words:  words,
		logger: logger,
	}
}

// ListWordsResponse represents the response for GET /api/v1/words.
type ListWordsResponse struct {
	Words  []string `json:"words"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleListWords handles GET /api/v1/words.
func (s *APIServer) HandleListWords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	query := r.URL.Query()

	limit, ok := s.parseInt(w, query.Get("limit"), defaultListLimit, 1, "limit")
	if !ok {
		return
	}
	limit = min(limit, maxListLimit)

	offset, ok := s.parseInt(w, query.Get("offset"), 0, 0, "offset")
	if !ok {
		return
	}

	words, ok := s.loadWords(w)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, ListWordsResponse{
		Words:  paginate(words, offset, limit),
		Total:  len(words),
		Limit:  limit,
		Offset: offset,
	})
}

// HandleSearch handles GET /api/v1/words/search?q=<regex>.
func (s *APIServer) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	query := r.URL.Query()
	pattern := query.Get("q")
	if pattern == "" {
		s.writeError(w, http.StatusBadRequest, "missing_parameter", "Missing q parameter")
		return
	}

	limit, ok := s.parseInt(w, query.Get("limit"), search.MatchLimit, 1, "limit")
	if !ok {
		return
	}

	re, err := search.Compile(pattern)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_pattern", err.Error())
		return
	}

	words, ok := s.loadWords(w)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, search.Match(words, re, limit))
}

// loadWords fetches the vocabulary, writing an error response on failure.
func (s *APIServer) loadWords(w http.ResponseWriter) ([]string, bool) {
	words, err := s.words.Words()
	if errors.Is(err, artifact.ErrNotExist) {
		s.writeError(w, http.StatusServiceUnavailable, "words_unavailable", "Word list has not been generated yet")
		return nil, false
	}
	if err != nil {
		s.logger.Error("Failed to load words", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load words")
		return nil, false
	}
	return words, true
}

// parseInt parses an optional integer query parameter of at least minValue.
func (s *APIServer) parseInt(w http.ResponseWriter, raw string, defaultValue, minValue int, name string) (int, bool) {
	if raw == "" {
		return defaultValue, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < minValue {
		s.writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+name+" parameter")
		return 0, false
	}
	return value, true
}

// paginate returns a slice of words for the given offset and limit.
func paginate(words []string, offset, limit int) []string {
	if offset >= len(words) {
		return []string{}
	}

	end := min(offset+limit, len(words))

	return words[offset:end]
}

func (s *APIServer) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to write response", "err", err)
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, statusCode int, code, message string) {
	s.writeJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// Handler returns the API routes wrapped in CORS middleware.
func (s *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// Register routes - need both with and without trailing slash to avoid 301
	mux.HandleFunc("/api/v1/words", s.HandleListWords)
	mux.HandleFunc("/api/v1/words/", s.routeWords)

	return CORSMiddleware(mux)
}

// routeWords routes /api/v1/words/* requests.
func (s *APIServer) routeWords(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/words/":
		s.HandleListWords(w, r)
	case "/api/v1/words/search", "/api/v1/words/search/":
		s.HandleSearch(w, r)
	default:
		s.writeError(w, http.StatusNotFound, "not_found", "Not found")
	}
}

// Run serves the API on addr until ctx is done, then shuts down gracefully.
func (s *APIServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()
	s.logger.Info("Starting word API server", "url", "http://"+addr+"/api/v1/words")

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down word API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// CORSMiddleware adds CORS headers and answers preflight requests.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
