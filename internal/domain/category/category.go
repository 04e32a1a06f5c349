// Package category defines the closed set of spending categories and the
// static keyword engine that maps merchant descriptions onto them.
package category

// Category is a spending bucket. The set is closed: persisted transactions
// and budgets reference these strings, so members must stay stable.
type Category string

const (
	Groceries     Category = "Groceries"
	Housing       Category = "Housing"
	Salary        Category = "Salary"
	Transport     Category = "Transport"
	Subscriptions Category = "Subscriptions"
	Insurance     Category = "Insurance"
	Utilities     Category = "Utilities"
	DiningOut     Category = "Dining Out"
	Shopping      Category = "Shopping"
	Health        Category = "Health"
	Leisure       Category = "Leisure"
	Savings       Category = "Savings"
	Transfers     Category = "Transfers"
	Uncategorized Category = "Uncategorized"
)

// All lists every member of the enumeration.
func All() []Category {
	return []Category{
		Groceries, Housing, Salary, Transport, Subscriptions, Insurance,
		Utilities, DiningOut, Shopping, Health, Leisure, Savings, Transfers,
		Uncategorized,
	}
}

var members = func() map[Category]struct{} {
	m := make(map[Category]struct{})
	for _, c := range All() {
		m[c] = struct{}{}
	}
	return m
}()

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	_, ok := members[c]
	return ok
}

// Coerce returns c when it is a valid member, Uncategorized otherwise.
// Upstream classifiers are not trusted to stay inside the enumeration.
func Coerce(raw string) Category {
	c := Category(raw)
	if c.Valid() {
		return c
	}
	return Uncategorized
}

func (c Category) String() string {
	return string(c)
}
