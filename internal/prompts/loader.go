// Package prompts holds the model prompt templates, embedded as JSON files
// keyed by prompt name.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	mu     sync.RWMutex
	parsed = make(map[string]map[string]string)
)

// Get returns the template stored under key in the named file. The filename
// carries no path, just "narrative.json".
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}

	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for prompts the binary cannot run without.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Name}} placeholders with values from data. A
// placeholder with no binding is left in place, so a missed value shows up
// in the output instead of silently vanishing.
func Format(template string, data map[string]string) string {
	out := template
	for name, value := range data {
		out = strings.ReplaceAll(out, "{{."+name+"}}", value)
	}
	return out
}

// load parses and caches one embedded file.
func load(filename string) (map[string]string, error) {
	mu.RLock()
	templates, ok := parsed[filename]
	mu.RUnlock()
	if ok {
		return templates, nil
	}

	raw, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	mu.Lock()
	parsed[filename] = templates
	mu.Unlock()
	return templates, nil
}
