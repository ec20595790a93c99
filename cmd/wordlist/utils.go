package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pevans/wordlist/config"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig reads the config file named by WORDLIST_CONFIG, falling back to
// ~/.wordlist/config.yaml and then to defaults, and applies environment
// overrides on top.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if path := os.Getenv("WORDLIST_CONFIG"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadConfigFile()
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides config values with WORDLIST_* environment variables.
func applyEnv(cfg *config.Config) {
	cfg.Output.Raw = getEnv("WORDLIST_RAW", cfg.Output.Raw)
	cfg.Output.Filtered = getEnv("WORDLIST_OUTPUT", cfg.Output.Filtered)
	cfg.History.DSN = getEnv("WORDLIST_HISTORY_DSN", cfg.History.DSN)
	cfg.Server.Addr = getEnv("WORDLIST_ADDR", cfg.Server.Addr)
	cfg.Log.Level = getEnv("WORDLIST_LOG_LEVEL", cfg.Log.Level)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// formatDuration renders d rounded for display.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
