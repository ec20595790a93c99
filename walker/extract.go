package walker

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrMissingHref is returned when the next-page anchor has no href.
var ErrMissingHref = errors.New("next page link has no href")

// ExtractEntries returns the trimmed text of every list item that has a
// direct text value and is not inside a container matching navSelector.
func ExtractEntries(doc *goquery.Document, navSelector string) []string {
	entries := []string{}

	doc.Find("li").Each(func(i int, s *goquery.Selection) {
		text, ok := directText(s.Get(0))
		if !ok {
			return
		}

		if navSelector != "" && s.ParentsFiltered(navSelector).Length() > 0 {
			return
		}

		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		entries = append(entries, text)
	})

	return entries
}

// directText returns the text of a node whose only child is a text node, or
// an element that in turn has a direct text value. Nodes with several
// children, including whitespace between tags, have none.
func directText(n *html.Node) (string, bool) {
	if n == nil {
		return "", false
	}

	child := n.FirstChild
	if child == nil || child.NextSibling != nil {
		return "", false
	}

	switch child.Type {
	case html.TextNode:
		return child.Data, child.Data != ""
	case html.ElementNode:
		return directText(child)
	default:
		return "", false
	}
}

// NextLink returns the href of the first anchor, in document order, whose
// text contains marker. ok is false when no anchor matches.
func NextLink(doc *goquery.Document, marker string) (href string, ok bool, err error) {
	var link *goquery.Selection

	doc.Find("a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), marker) {
			link = s
			return false
		}
		return true
	})

	if link == nil {
		return "", false, nil
	}

	href, exists := link.Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return "", true, ErrMissingHref
	}

	return href, true, nil
}

// ResolveURL resolves href against base. Absolute hrefs are returned as is.
func ResolveURL(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", href, err)
	}

	return baseURL.ResolveReference(ref).String(), nil
}
