// Package dedup builds an in-memory index of transaction identity keys so an
// import run can skip rows the user already has, including rows repeated
// inside the same file.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/overdruiven/finance-api/internal/domain/transaction"
)

// Key derives the identity fingerprint for a transaction candidate. Two rows
// collide when they share the calendar date, the absolute amount in cents and
// the display name compared case-insensitively.
func Key(occurredOn time.Time, amountCents int64, displayName string) string {
	payload := fmt.Sprintf("%s|%d|%s",
		occurredOn.Format("2006-01-02"),
		amountCents,
		strings.ToLower(strings.TrimSpace(displayName)),
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Index is a set of identity keys for one import run. It is not safe for
// concurrent use; the orchestrator consults it serially after the concurrent
// classification phase.
type Index struct {
	seen map[string]struct{}
}

func NewIndex() *Index {
	return &Index{seen: make(map[string]struct{})}
}

// BuildFromExisting seeds the index with the user's stored transactions.
func BuildFromExisting(existing []transaction.Transaction) *Index {
	idx := NewIndex()
	for _, tx := range existing {
		idx.seen[Key(tx.OccurredOn, tx.AmountCents, tx.Description)] = struct{}{}
	}
	return idx
}

// Seen reports whether the key is already in the index.
func (i *Index) Seen(key string) bool {
	_, ok := i.seen[key]
	return ok
}

// Add records a key. Adding a key twice is harmless.
func (i *Index) Add(key string) {
	i.seen[key] = struct{}{}
}

// Len returns the number of distinct keys held.
func (i *Index) Len() int {
	return len(i.seen)
}
