// Package scraper holds the settings for walking a paginated listing index.
package scraper

import "time"

// Defaults for walking the Hebrew Wiktionary "all pages" index.
const (
	DefaultStartURL    = "https://he.wiktionary.org/wiki/מיוחד:כל_הדפים/א"
	DefaultBaseURL     = "https://he.wiktionary.org"
	DefaultNextMarker  = "הדף הבא"
	DefaultNavSelector = "div.mw-navigation"
	DefaultDelay       = 1 * time.Second
	DefaultTimeout     = 10 * time.Second
	DefaultUserAgent   = "wordlist/1.0 (dictionary index walker)"
)

// WalkConfig defines how to walk a paginated listing index.
type WalkConfig struct {
	StartURL string `json:"start_url"`
	// BaseURL is what relative next-page links are resolved against.
	BaseURL string `json:"base_url"`
	// NextMarker is matched as a literal substring of anchor text.
	NextMarker string `json:"next_marker"`
	// NavSelector matches containers whose list items are not entries.
	NavSelector string        `json:"nav_selector"`
	Delay       time.Duration `json:"delay"`
	Timeout     time.Duration `json:"timeout"`
	UserAgent   string        `json:"user_agent"`
	// MaxPages bounds the walk. Zero means unbounded.
	MaxPages int `json:"max_pages"`
}

// NewWalkConfig creates a walk configuration with default values.
func NewWalkConfig() *WalkConfig {
	return &WalkConfig{
		StartURL:    DefaultStartURL,
		BaseURL:     DefaultBaseURL,
		NextMarker:  DefaultNextMarker,
		NavSelector: DefaultNavSelector,
		Delay:       DefaultDelay,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
	}
}
