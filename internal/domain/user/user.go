// Package user exposes the minimal user lookup the import pipeline needs:
// who is acting, and which subscription tier they are on.
package user

import (
	"time"

	"github.com/google/uuid"
)

// Tier is the subscription level that drives classification cost control.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// IsPremium reports whether the tier buys rich remote classification.
func (t Tier) IsPremium() bool {
	return t == TierPremium
}

// User is an account holder.
type User struct {
	ID        uuid.UUID
	Email     string
	Tier      Tier
	CreatedAt time.Time
}
