package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pevans/wordlist/lexicon"
	"github.com/pevans/wordlist/scraper"
	"gopkg.in/yaml.v3"
)

// DefaultRecentFeedURL is the new-pages Atom feed of the Hebrew Wiktionary.
const DefaultRecentFeedURL = "https://he.wiktionary.org/w/index.php?title=Special:NewPages&feed=atom&namespace=0"

// WalkSection configures the page walker.
type WalkSection struct {
	StartURL    string        `yaml:"start_url"`
	BaseURL     string        `yaml:"base_url"`
	NextMarker  string        `yaml:"next_marker"`
	NavSelector string        `yaml:"nav_selector"`
	Delay       time.Duration `yaml:"delay"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	MaxPages    int           `yaml:"max_pages"`
}

// FilterSection configures the lexical filter.
type FilterSection struct {
	Alphabet        string   `yaml:"alphabet"`
	MinLength       int      `yaml:"min_length"`
	ExcludeSuffixes []string `yaml:"exclude_suffixes"`
}

// OutputSection holds artifact paths.
type OutputSection struct {
	Raw      string `yaml:"raw"`
	Filtered string `yaml:"filtered"`
}

// HistorySection configures the run history database.
type HistorySection struct {
	DSN string `yaml:"dsn"`
}

// ServerSection configures the word API.
type ServerSection struct {
	Addr string `yaml:"addr"`
}

// RecentSection configures the new-pages feed.
type RecentSection struct {
	FeedURL string `yaml:"feed_url"`
}

// LogSection configures logging.
type LogSection struct {
	Level string `yaml:"level"`
}

// Config represents the structure of ~/.wordlist/config.yaml.
type Config struct {
	Walk    WalkSection    `yaml:"walk"`
	Filter  FilterSection  `yaml:"filter"`
	Output  OutputSection  `yaml:"output"`
	History HistorySection `yaml:"history"`
	Server  ServerSection  `yaml:"server"`
	Recent  RecentSection  `yaml:"recent"`
	Log     LogSection     `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	walk := scraper.NewWalkConfig()

	return &Config{
		Walk: WalkSection{
			StartURL:    walk.StartURL,
			BaseURL:     walk.BaseURL,
			NextMarker:  walk.NextMarker,
			NavSelector: walk.NavSelector,
			Delay:       walk.Delay,
			Timeout:     walk.Timeout,
			UserAgent:   walk.UserAgent,
		},
		Filter: FilterSection{
			Alphabet:        lexicon.HebrewAlphabet,
			MinLength:       2,
			ExcludeSuffixes: []string{lexicon.RootSuffix},
		},
		Output: OutputSection{
			Raw:      "raw_hebrew_words.txt",
			Filtered: "hebrew_words.txt",
		},
		History: HistorySection{DSN: "wordlist.db"},
		Server:  ServerSection{Addr: "localhost:8080"},
		Recent:  RecentSection{FeedURL: DefaultRecentFeedURL},
		Log:     LogSection{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults. Fields missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadConfigFile loads configuration from ~/.wordlist/config.yaml. Returns
// nil if the file doesn't exist (not an error). Returns error if the file
// exists but cannot be parsed.
func LoadConfigFile() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".wordlist", "config.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	return Load(configPath)
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL("walk.start_url", c.Walk.StartURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL("walk.base_url", c.Walk.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL("recent.feed_url", c.Recent.FeedURL); err != nil {
		errs = append(errs, err)
	}
	if c.Walk.NextMarker == "" {
		errs = append(errs, errors.New("walk.next_marker must not be empty"))
	}
	if c.Walk.Delay < 0 {
		errs = append(errs, errors.New("walk.delay must not be negative"))
	}
	if c.Walk.Timeout < 0 {
		errs = append(errs, errors.New("walk.timeout must not be negative"))
	}
	if c.Walk.MaxPages < 0 {
		errs = append(errs, errors.New("walk.max_pages must not be negative"))
	}
	if c.Filter.Alphabet == "" {
		errs = append(errs, errors.New("filter.alphabet must not be empty"))
	}
	if c.Filter.MinLength < 0 {
		errs = append(errs, errors.New("filter.min_length must not be negative"))
	}
	if c.Output.Raw == "" || c.Output.Filtered == "" {
		errs = append(errs, errors.New("output.raw and output.filtered must be set"))
	}
	if c.Output.Raw != "" && c.Output.Raw == c.Output.Filtered {
		errs = append(errs, errors.New("output.raw and output.filtered must differ"))
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}

	return errors.Join(errs...)
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", field)
	}
	return nil
}

// WalkConfig converts the walk section for the walker.
func (c *Config) WalkConfig() *scraper.WalkConfig {
	return &scraper.WalkConfig{
		StartURL:    c.Walk.StartURL,
		BaseURL:     c.Walk.BaseURL,
		NextMarker:  c.Walk.NextMarker,
		NavSelector: c.Walk.NavSelector,
		Delay:       c.Walk.Delay,
		Timeout:     c.Walk.Timeout,
		UserAgent:   c.Walk.UserAgent,
		MaxPages:    c.Walk.MaxPages,
	}
}

// Rules converts the filter section for the lexical filter.
func (c *Config) Rules() *lexicon.Rules {
	return &lexicon.Rules{
		Alphabet:        lexicon.NewAlphabet(c.Filter.Alphabet),
		MinLength:       c.Filter.MinLength,
		ExcludeSuffixes: c.Filter.ExcludeSuffixes,
	}
}

// LogLevel returns the configured level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
