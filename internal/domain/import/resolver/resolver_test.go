package resolver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/overdruiven/finance-api/internal/domain/category"
	"github.com/overdruiven/finance-api/internal/domain/import/classifier"
	"github.com/overdruiven/finance-api/internal/domain/transaction"
	"github.com/overdruiven/finance-api/internal/domain/user"
)

// countingClassifier records how often the remote step is reached.
type countingClassifier struct {
	mu     sync.Mutex
	calls  int
	result classifier.Result
}

func (c *countingClassifier) Classify(_ context.Context, description string) classifier.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.result.DisplayName == "" && c.result.Category == "" {
		return classifier.Result{
			DisplayName: classifier.CleanDescription(description),
			Category:    category.Uncategorized,
		}
	}
	return c.result
}

func (c *countingClassifier) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newEngine(t *testing.T) *category.Engine {
	t.Helper()
	return category.NewEngine(category.DefaultKeywords())
}

func TestResolver_StaticTableHit(t *testing.T) {
	remote := &countingClassifier{}
	r := New(newEngine(t), nil, user.TierFree, remote)

	got := r.Classify(context.Background(), "ALBERT HEIJN 1234 AMSTERDAM")
	if got.DisplayName != "Albert Heijn" {
		t.Errorf("DisplayName = %q, want Albert Heijn", got.DisplayName)
	}
	if got.Category != category.Groceries {
		t.Errorf("Category = %q, want Groceries", got.Category)
	}
	if remote.callCount() != 0 {
		t.Errorf("remote called %d times, want 0", remote.callCount())
	}
}

func TestResolver_StaticBeatsHistory(t *testing.T) {
	history := History{
		"albert heijn": {DisplayName: "AH", Category: category.Shopping},
	}
	remote := &countingClassifier{}
	r := New(newEngine(t), history, user.TierPremium, remote)

	got := r.Classify(context.Background(), "ALBERT HEIJN 1234 AMSTERDAM")
	if got.Category != category.Groceries {
		t.Errorf("Category = %q, want the keyword table's Groceries", got.Category)
	}
	if got.DisplayName != "Albert Heijn" {
		t.Errorf("DisplayName = %q, want the curated name", got.DisplayName)
	}
}

func TestResolver_HistoryHit_Premium(t *testing.T) {
	history := History{
		"huiswerkbegeleiding de uil": {DisplayName: "Huiswerkbegeleiding De Uil", Category: category.Leisure},
	}
	remote := &countingClassifier{}
	r := New(newEngine(t), history, user.TierPremium, remote)

	got := r.Classify(context.Background(), "HUISWERKBEGELEIDING DE UIL FACTUUR 2024-113")
	if got.DisplayName != "Huiswerkbegeleiding De Uil" {
		t.Errorf("DisplayName = %q, want the stored casing", got.DisplayName)
	}
	if got.Category != category.Leisure {
		t.Errorf("Category = %q, want Leisure", got.Category)
	}
	if remote.callCount() != 0 {
		t.Errorf("remote called %d times, want 0", remote.callCount())
	}
}

func TestResolver_HistoryHit_FreeUsesCleanedName(t *testing.T) {
	history := History{
		"huiswerkbegeleiding de uil": {DisplayName: "Huiswerkbegeleiding De Uil", Category: category.Leisure},
	}
	remote := &countingClassifier{}
	r := New(newEngine(t), history, user.TierFree, remote)

	got := r.Classify(context.Background(), "HUISWERKBEGELEIDING DE UIL FACTUUR 113992")
	if got.DisplayName != "Huiswerkbegeleiding De Uil Factuur" {
		t.Errorf("DisplayName = %q, want locally cleaned name", got.DisplayName)
	}
	if got.Category != category.Leisure {
		t.Errorf("Category = %q, want Leisure", got.Category)
	}
}

func TestResolver_HistoryLongestMatchWinsEveryRun(t *testing.T) {
	history := History{
		"de uil":                     {DisplayName: "De Uil", Category: category.Shopping},
		"huiswerkbegeleiding de uil": {DisplayName: "Huiswerkbegeleiding De Uil", Category: category.Leisure},
	}

	// Map iteration order varies, so rebuild the resolver many times; the
	// longer, more specific entry must win on every attempt.
	for i := 0; i < 100; i++ {
		remote := &countingClassifier{}
		r := New(newEngine(t), history, user.TierPremium, remote)

		got := r.Classify(context.Background(), "HUISWERKBEGELEIDING DE UIL FACTUUR 2024-113")
		if got.DisplayName != "Huiswerkbegeleiding De Uil" {
			t.Fatalf("attempt %d: DisplayName = %q, want the longest history match", i, got.DisplayName)
		}
		if got.Category != category.Leisure {
			t.Fatalf("attempt %d: Category = %q, want Leisure", i, got.Category)
		}
	}
}

func TestResolver_CacheAvoidsRepeatRemoteCalls(t *testing.T) {
	remote := &countingClassifier{
		result: classifier.Result{DisplayName: "Mystery Shop", Category: category.Shopping},
	}
	r := New(newEngine(t), nil, user.TierFree, remote)

	first := r.Classify(context.Background(), "MYSTERY SHOP 42 ROTTERDAM XZ991")
	second := r.Classify(context.Background(), "MYSTERY SHOP 42 ROTTERDAM XZ991")

	if first != second {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}
	if remote.callCount() != 1 {
		t.Errorf("remote called %d times, want 1", remote.callCount())
	}
}

func TestResolver_RemoteFallback(t *testing.T) {
	remote := &countingClassifier{}
	r := New(newEngine(t), nil, user.TierFree, remote)

	got := r.Classify(context.Background(), "ONBEKENDE WINKEL 77281")
	if got.Category != category.Uncategorized {
		t.Errorf("Category = %q, want Uncategorized", got.Category)
	}
	if got.DisplayName != "Onbekende Winkel" {
		t.Errorf("DisplayName = %q, want cleaned description", got.DisplayName)
	}
	if remote.callCount() != 1 {
		t.Errorf("remote called %d times, want 1", remote.callCount())
	}
}

func TestBuildHistory(t *testing.T) {
	existing := []transaction.Transaction{
		{
			ID:          uuid.New(),
			Description: "Huiswerkbegeleiding De Uil",
			Category:    category.Leisure,
			AmountCents: 4500,
			Direction:   transaction.Expense,
			OccurredOn:  time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			Description: "",
			Category:    category.Uncategorized,
			AmountCents: 100,
			Direction:   transaction.Expense,
			OccurredOn:  time.Date(2023, 12, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	history := BuildHistory(existing)
	if len(history) != 1 {
		t.Fatalf("len(history) = %d, want 1 (empty descriptions skipped)", len(history))
	}
	entry, ok := history["huiswerkbegeleiding de uil"]
	if !ok {
		t.Fatal("expected lowercased key in history")
	}
	if entry.DisplayName != "Huiswerkbegeleiding De Uil" {
		t.Errorf("DisplayName = %q, want original casing", entry.DisplayName)
	}
}
