package walker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// FetchHTML fetches the page at pageURL and parses it into a document. The
// response body is fully read and closed before parsing. Failures are
// returned as *WalkError with the kind set and Page left at zero.
func FetchHTML(ctx context.Context, client *http.Client, pageURL, userAgent string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &WalkError{Kind: KindTransport, URL: pageURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	body, err := get(client, req)
	if err != nil {
		return nil, &WalkError{Kind: KindTransport, URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &WalkError{Kind: KindParse, URL: pageURL, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	return doc, nil
}

// get performs the request and returns the body of a 2xx response.
func get(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return body, nil
}
