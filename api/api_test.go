package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/pevans/wordlist/artifact"
	"github.com/pevans/wordlist/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = []string{"אב", "אבא", "אבן", "בית", "גן", "שלום"}

// Test helper: create a test API server over a written word list
func setupTestAPIServer(t *testing.T, words []string) (http.Handler, string) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if words != nil {
		require.NoError(t, artifact.WriteLines(path, words))
	}
	server := NewAPIServer(NewWordStore(path), log.New(io.Discard))
	return server.Handler(), path
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorDetail {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// TestHandleListWords_Default verifies the full list with default paging
func TestHandleListWords_Default(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	w := doRequest(t, handler, http.MethodGet, "/api/v1/words")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ListWordsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testWords, resp.Words)
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
}

// TestHandleListWords_Pagination verifies offset and limit handling
func TestHandleListWords_Pagination(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	tests := []struct {
		name     string
		target   string
		expected []string
		limit    int
	}{
		{name: "first page", target: "/api/v1/words?limit=2", expected: []string{"אב", "אבא"}, limit: 2},
		{name: "middle page", target: "/api/v1/words?limit=2&offset=2", expected: []string{"אבן", "בית"}, limit: 2},
		{name: "past the end", target: "/api/v1/words?offset=10", expected: []string{}, limit: 100},
		{name: "limit capped", target: "/api/v1/words/?limit=5000", expected: testWords, limit: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, handler, http.MethodGet, tt.target)
			require.Equal(t, http.StatusOK, w.Code)

			var resp ListWordsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expected, resp.Words)
			assert.Equal(t, tt.limit, resp.Limit)
			assert.Equal(t, 6, resp.Total)
		})
	}
}

// TestHandleListWords_InvalidParameters verifies bad paging input
func TestHandleListWords_InvalidParameters(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	for _, target := range []string{"/api/v1/words?limit=0", "/api/v1/words?limit=abc", "/api/v1/words?offset=-1"} {
		w := doRequest(t, handler, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "invalid_parameter", decodeError(t, w).Code)
	}
}

// TestHandleListWords_Unavailable verifies a missing artifact is a 503
func TestHandleListWords_Unavailable(t *testing.T) {
	handler, path := setupTestAPIServer(t, nil)

	w := doRequest(t, handler, http.MethodGet, "/api/v1/words")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "words_unavailable", decodeError(t, w).Code)

	// Once the artifact appears it is picked up
	require.NoError(t, artifact.WriteLines(path, []string{"אב"}))
	w = doRequest(t, handler, http.MethodGet, "/api/v1/words")
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestHandleListWords_InvalidParameterBeforeLoad verifies bad input is
// reported even when the word list is missing
func TestHandleListWords_InvalidParameterBeforeLoad(t *testing.T) {
	handler, _ := setupTestAPIServer(t, nil)

	for _, target := range []string{"/api/v1/words?limit=abc", "/api/v1/words?offset=-1"} {
		w := doRequest(t, handler, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "invalid_parameter", decodeError(t, w).Code)
	}
}

// TestHandleSearch verifies regex matching over the word list
func TestHandleSearch(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	w := doRequest(t, handler, http.MethodGet, "/api/v1/words/search?q=%5E%D7%90%D7%91")
	require.Equal(t, http.StatusOK, w.Code)

	var resp search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "^אב", resp.Pattern)
	assert.Equal(t, []string{"אב", "אבא", "אבן"}, resp.Matches)
	assert.Equal(t, 3, resp.Total)
	assert.False(t, resp.Truncated)
}

// TestHandleSearch_Limit verifies truncation is reported
func TestHandleSearch_Limit(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	w := doRequest(t, handler, http.MethodGet, "/api/v1/words/search?q=.&limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Matches, 2)
	assert.Equal(t, 6, resp.Total)
	assert.True(t, resp.Truncated)
}

// TestHandleSearch_Errors verifies parameter validation
func TestHandleSearch_Errors(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{name: "missing q", target: "/api/v1/words/search", status: http.StatusBadRequest, code: "missing_parameter"},
		{name: "bad regex", target: "/api/v1/words/search?q=%28", status: http.StatusBadRequest, code: "invalid_pattern"},
		{name: "bad limit", target: "/api/v1/words/search?q=a&limit=-3", status: http.StatusBadRequest, code: "invalid_parameter"},
		{name: "unknown route", target: "/api/v1/words/nope", status: http.StatusNotFound, code: "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, handler, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

// TestMethodNotAllowed verifies only GET is served
func TestMethodNotAllowed(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	for _, target := range []string{"/api/v1/words", "/api/v1/words/search?q=a"} {
		w := doRequest(t, handler, http.MethodPost, target)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, target)
		assert.Equal(t, "method_not_allowed", decodeError(t, w).Code)
	}
}

// TestCORSMiddleware verifies headers and preflight handling
func TestCORSMiddleware(t *testing.T) {
	handler, _ := setupTestAPIServer(t, testWords)

	w := doRequest(t, handler, http.MethodOptions, "/api/v1/words")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Body.String(), "preflight should not reach the handler")

	w = doRequest(t, handler, http.MethodGet, "/api/v1/words")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
