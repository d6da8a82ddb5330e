// Package alias resolves free-form model name strings to canonical identities.
//
// The resolver is built once at startup from the bundled dataset plus an
// optional user override and is immutable afterward, so it is safe to share
// across goroutines without synchronization.
package alias

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/pondus/internal/schemas"
)

//go:embed models.json
var bundledAliases []byte

// Entry is one record of the alias dataset file format: a canonical name and
// the source-specific spellings known to refer to it.
type Entry struct {
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases"`
}

// Resolver maps lowercase alias strings to lowercase canonical names.
type Resolver struct {
	toCanonical map[string]string
}

// Load builds a Resolver from the bundled dataset, then merges the override
// dataset at overridePath if given, else the default per-user location if it
// exists. Later entries overwrite earlier ones per key, so a user can redefine
// a single alias without redeclaring the rest.
//
// Malformed dataset content at either stage is a fatal error: the resolver
// cannot be constructed from invalid data.
func Load(overridePath string) (*Resolver, error) {
	toCanonical := make(map[string]string)

	if err := parseInto(bundledAliases, toCanonical); err != nil {
		return nil, fmt.Errorf("bundled alias dataset: %w", err)
	}

	path := overridePath
	if path == "" {
		path = defaultOverridePath()
	}
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No override is fine.
		case err != nil:
			return nil, fmt.Errorf("failed to read alias override %s: %w", path, err)
		default:
			if err := parseInto(content, toCanonical); err != nil {
				return nil, fmt.Errorf("alias override %s: %w", path, err)
			}
		}
	}

	return &Resolver{toCanonical: toCanonical}, nil
}

func parseInto(data []byte, m map[string]string) error {
	if err := schemas.ValidateAliases(data); err != nil {
		return err
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse alias dataset: %w", err)
	}

	for _, entry := range entries {
		canonical := strings.ToLower(entry.Canonical)
		// The canonical spelling is an alias of itself.
		m[canonical] = canonical
		for _, a := range entry.Aliases {
			m[strings.ToLower(a)] = canonical
		}
	}
	return nil
}

func defaultOverridePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pondus", "models.json")
}

// Resolve canonicalizes a model name: exact match first, then prefix match,
// then the lowercased input unchanged. It is total and never fails.
func (r *Resolver) Resolve(name string) string {
	lower := strings.ToLower(name)
	if canonical, ok := r.toCanonical[lower]; ok {
		return canonical
	}
	if canonical, ok := r.resolvePrefix(lower); ok {
		return canonical
	}
	return lower
}

// Matches reports whether a source-specific model name refers to canonical.
func (r *Resolver) Matches(sourceName, canonical string) bool {
	return r.Resolve(sourceName) == strings.ToLower(canonical)
}

// resolvePrefix finds the registered alias that is the longest proper prefix
// of the query followed by a separator. A '-', '(' or space after the alias
// marks a variant of the same model; a '.' marks a distinct version (a query
// "gpt-5.2" must not resolve against alias "gpt-5") and never matches.
// Equal-length candidates tie-break on the lexicographically smallest alias
// so resolution does not depend on map iteration order.
func (r *Resolver) resolvePrefix(lower string) (string, bool) {
	var bestAlias, bestCanonical string
	found := false

	for a, canonical := range r.toCanonical {
		if len(lower) <= len(a) || !strings.HasPrefix(lower, a) {
			continue
		}
		switch lower[len(a)] {
		case '-', '(', ' ':
		default:
			continue
		}
		if !found || len(a) > len(bestAlias) || (len(a) == len(bestAlias) && a < bestAlias) {
			bestAlias, bestCanonical = a, canonical
			found = true
		}
	}

	return bestCanonical, found
}
