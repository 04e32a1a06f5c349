// Package resolver determines the display name and spending category for raw
// statement descriptions. Resolution tries progressively more expensive
// sources and stops at the first hit: the curated keyword table, the user's
// own prior transactions, results already computed this run, and finally the
// remote classifier.
package resolver

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/overdruiven/finance-api/internal/domain/category"
	"github.com/overdruiven/finance-api/internal/domain/import/classifier"
	"github.com/overdruiven/finance-api/internal/domain/transaction"
	"github.com/overdruiven/finance-api/internal/domain/user"
)

// HistoryEntry preserves the stored casing of a prior description so premium
// resolutions can reuse it verbatim.
type HistoryEntry struct {
	DisplayName string
	Category    category.Category
}

// History maps lowercased prior descriptions to their stored classification.
type History map[string]HistoryEntry

// BuildHistory folds a user's stored transactions into a lookup map. Later
// entries win for duplicate descriptions, which keeps the most recent
// classification when the input is ordered oldest first.
func BuildHistory(existing []transaction.Transaction) History {
	history := make(History, len(existing))
	for _, tx := range existing {
		key := strings.ToLower(strings.TrimSpace(tx.Description))
		if key == "" {
			continue
		}
		history[key] = HistoryEntry{
			DisplayName: tx.Description,
			Category:    tx.Category,
		}
	}
	return history
}

// step is one resolution source. It reports no-match by returning false so
// the resolver can fall through to the next source.
type step func(ctx context.Context, raw string) (classifier.Result, bool)

// Resolver is scoped to a single import run. Classify is safe for concurrent
// use within that run.
type Resolver struct {
	steps []step

	mu    sync.Mutex
	cache map[string]classifier.Result
}

// New builds a run-scoped resolver. The engine and history may be nil or
// empty; the remote classifier is the required last resort.
func New(engine *category.Engine, history History, tier user.Tier, remote classifier.Classifier) *Resolver {
	r := &Resolver{
		cache: make(map[string]classifier.Result),
	}
	r.steps = []step{
		r.staticStep(engine),
		r.historyStep(history, tier),
		r.cacheStep(),
		r.remoteStep(remote),
	}
	return r
}

// Classify resolves one raw description. It never fails; the remote step's
// own fallback guarantees a result even when every source misses.
func (r *Resolver) Classify(ctx context.Context, raw string) classifier.Result {
	for _, s := range r.steps {
		if result, ok := s(ctx, raw); ok {
			r.remember(raw, result)
			return result
		}
	}

	// Unreachable: the remote step always reports a match.
	return classifier.Result{
		DisplayName: classifier.CleanDescription(raw),
		Category:    category.Uncategorized,
	}
}

func (r *Resolver) remember(raw string, result classifier.Result) {
	r.mu.Lock()
	r.cache[raw] = result
	r.mu.Unlock()
}

func (r *Resolver) staticStep(engine *category.Engine) step {
	return func(_ context.Context, raw string) (classifier.Result, bool) {
		if engine == nil {
			return classifier.Result{}, false
		}
		match, ok := engine.Match(raw)
		if !ok {
			return classifier.Result{}, false
		}
		return classifier.Result{
			DisplayName: match.DisplayName,
			Category:    match.Category,
		}, true
	}
}

func (r *Resolver) historyStep(history History, tier user.Tier) step {
	// Longest key first so the most specific prior description wins, and the
	// same input classifies identically across runs regardless of map order.
	keys := make([]string, 0, len(history))
	for key := range history {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return func(_ context.Context, raw string) (classifier.Result, bool) {
		if len(keys) == 0 {
			return classifier.Result{}, false
		}

		lowered := strings.ToLower(raw)
		for _, key := range keys {
			if !strings.Contains(lowered, key) {
				continue
			}
			entry := history[key]
			result := classifier.Result{Category: entry.Category}
			if tier.IsPremium() {
				result.DisplayName = entry.DisplayName
			} else {
				result.DisplayName = classifier.CleanDescription(raw)
			}
			return result, true
		}
		return classifier.Result{}, false
	}
}

func (r *Resolver) cacheStep() step {
	return func(_ context.Context, raw string) (classifier.Result, bool) {
		r.mu.Lock()
		result, ok := r.cache[raw]
		r.mu.Unlock()
		return result, ok
	}
}

func (r *Resolver) remoteStep(remote classifier.Classifier) step {
	return func(ctx context.Context, raw string) (classifier.Result, bool) {
		return remote.Classify(ctx, raw), true
	}
}
