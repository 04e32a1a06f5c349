package category

import (
	"testing"
)

func TestEngineMatch(t *testing.T) {
	engine := NewEngine(DefaultKeywords())

	tests := []struct {
		name         string
		description  string
		wantName     string
		wantCategory Category
		wantHit      bool
	}{
		{
			name:         "known merchant with noise",
			description:  "ALBERT HEIJN 1234 AMSTERDAM",
			wantName:     "Albert Heijn",
			wantCategory: Groceries,
			wantHit:      true,
		},
		{
			name:         "lowercase input",
			description:  "betaalautomaat jumbo utrecht",
			wantName:     "Jumbo",
			wantCategory: Groceries,
			wantHit:      true,
		},
		{
			name:         "subscription",
			description:  "Netflix International B.V.",
			wantName:     "Netflix",
			wantCategory: Subscriptions,
			wantHit:      true,
		},
		{
			name:        "no match",
			description: "Onbekende Winkel Enschede",
			wantHit:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := engine.Match(tt.description)
			if ok != tt.wantHit {
				t.Fatalf("Match(%q) hit = %v, want %v", tt.description, ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if match.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", match.DisplayName, tt.wantName)
			}
			if match.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", match.Category, tt.wantCategory)
			}
		})
	}
}

func TestEngineTableOrderWins(t *testing.T) {
	// "uber eats" precedes "uber" in the table, so delivery beats rideshare.
	engine := NewEngine(DefaultKeywords())

	match, ok := engine.Match("UBER EATS NL AMSTERDAM")
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Category != DiningOut {
		t.Errorf("Category = %q, want %q", match.Category, DiningOut)
	}
}

func TestEngineRebuild(t *testing.T) {
	engine := NewEngine(nil)

	if _, ok := engine.Match("jumbo"); ok {
		t.Error("empty engine should not match")
	}

	engine.Build([]Keyword{{Pattern: "Jumbo", DisplayName: "Jumbo", Category: Groceries}})

	if engine.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", engine.Size())
	}
	if _, ok := engine.Match("JUMBO GRONINGEN"); !ok {
		t.Error("expected match after rebuild")
	}
}

func TestCoerce(t *testing.T) {
	if got := Coerce("Groceries"); got != Groceries {
		t.Errorf("Coerce(Groceries) = %q", got)
	}
	if got := Coerce("Definitely Not A Category"); got != Uncategorized {
		t.Errorf("Coerce(unknown) = %q, want Uncategorized", got)
	}
	if got := Coerce(""); got != Uncategorized {
		t.Errorf("Coerce(empty) = %q, want Uncategorized", got)
	}
}
