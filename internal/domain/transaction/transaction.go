// Package transaction defines the stored transaction model and its
// PostgreSQL repository.
package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/overdruiven/finance-api/internal/domain/category"
)

// Direction tells whether money came in or went out. Stored amounts are
// always positive; direction alone encodes the sign.
type Direction string

const (
	Income  Direction = "income"
	Expense Direction = "expense"
)

// Transaction is a stored ledger entry, exclusively owned by one user.
// Every query and mutation must filter by UserID.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AmountCents int64 // invariant: > 0
	Direction   Direction
	Category    category.Category
	Description string
	OccurredOn  time.Time
	IsHidden    bool
	Notes       *string
	ReceiptRef  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
