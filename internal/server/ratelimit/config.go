package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is a rate limit for one endpoint pattern. A Path ending in "/" matches
// by prefix, otherwise exactly. Limit <= 0 means unlimited.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter settings, normally filled from the environment.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// LoadConfig reads RATE_LIMIT_* environment variables, falling back to
// defaults that suit a single analyzer instance.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       hostSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       hostSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-endpoint limits. Analysis endpoints carry the
// real cost; taxonomy reads are in-memory lookups.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/analyze", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		// URL ingestion may spin up a headless browser, so it is stricter
		{Path: "/analyze/url", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/taxonomy/", Method: "GET", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

// matchRule finds the rule for a request. Health probes are always unlimited.
func matchRule(path, method string, rules []Rule) *Rule {
	if path == "/healthz" && method == "GET" {
		return &Rule{Path: path}
	}

	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}
	for i := range rules {
		if rules[i].Method == method && strings.HasSuffix(rules[i].Path, "/") && strings.HasPrefix(path, rules[i].Path) {
			return &rules[i]
		}
	}
	return nil
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}

// hostSet parses a comma-separated host list into a lookup set.
func hostSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, host := range strings.Split(list, ",") {
		if host = strings.TrimSpace(host); host != "" {
			set[host] = true
		}
	}
	return set
}
