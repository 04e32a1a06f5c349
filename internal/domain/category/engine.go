package category

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Match is a keyword-table hit for a description.
type Match struct {
	Keyword     string
	DisplayName string
	Category    Category
}

// Engine matches descriptions against the merchant keyword table using the
// Aho-Corasick algorithm: one pass through the text regardless of how many
// keywords are loaded. Safe for concurrent use; Build may be called at any
// time to swap in a fresh table.
type Engine struct {
	mu       sync.RWMutex
	matcher  *ahocorasick.Matcher
	keywords []Keyword
}

// NewEngine creates an engine preloaded with the given keyword table.
func NewEngine(keywords []Keyword) *Engine {
	e := &Engine{}
	e.Build(keywords)
	return e
}

// Build replaces the keyword table. Patterns are matched case-insensitively;
// empty patterns are dropped.
func (e *Engine) Build(keywords []Keyword) {
	cleaned := make([]Keyword, 0, len(keywords))
	patterns := make([][]byte, 0, len(keywords))

	for _, kw := range keywords {
		pattern := strings.ToLower(strings.TrimSpace(kw.Pattern))
		if pattern == "" {
			continue
		}
		kw.Pattern = pattern
		cleaned = append(cleaned, kw)
		patterns = append(patterns, []byte(pattern))
	}

	var matcher *ahocorasick.Matcher
	if len(patterns) > 0 {
		matcher = ahocorasick.NewMatcher(patterns)
	}

	e.mu.Lock()
	e.matcher = matcher
	e.keywords = cleaned
	e.mu.Unlock()
}

// Match returns the first keyword (in table order) whose pattern occurs in
// the description, or ok=false when nothing matches.
func (e *Engine) Match(description string) (Match, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return Match{}, false
	}

	hits := e.matcher.Match([]byte(strings.ToLower(description)))
	if len(hits) == 0 {
		return Match{}, false
	}

	// Table order encodes curation priority; take the earliest entry.
	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(e.keywords) {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		return Match{}, false
	}

	kw := e.keywords[best]
	return Match{
		Keyword:     kw.Pattern,
		DisplayName: kw.DisplayName,
		Category:    kw.Category,
	}, true
}

// Size returns the number of loaded keywords.
func (e *Engine) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.keywords)
}
