package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DB is the slice of pgxpool.Pool the repository uses. Narrowed to an
// interface so tests can substitute a mock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Repository handles database operations for transactions.
type Repository struct {
	db DB
}

// NewRepository creates a new transaction repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// FindByUser fetches all transactions owned by userID, newest first.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	query := `
		SELECT id, user_id, amount_cents, direction, category, description,
		       occurred_on, is_hidden, notes, receipt_ref, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_on DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.AmountCents,
			&tx.Direction,
			&tx.Category,
			&tx.Description,
			&tx.OccurredOn,
			&tx.IsHidden,
			&tx.Notes,
			&tx.ReceiptRef,
			&tx.CreatedAt,
			&tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// BulkInsert writes a batch of transactions in one round trip using COPY.
// Returns the number of rows written. Callers own id assignment; rows with a
// nil id get one here.
func (r *Repository) BulkInsert(ctx context.Context, userID uuid.UUID, txs []Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
		rows = append(rows, []any{
			tx.ID,
			userID,
			tx.AmountCents,
			string(tx.Direction),
			tx.Category.String(),
			tx.Description,
			tx.OccurredOn,
			tx.IsHidden,
			tx.Notes,
			tx.ReceiptRef,
		})
	}

	copied, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"transactions"},
		[]string{
			"id", "user_id", "amount_cents", "direction", "category",
			"description", "occurred_on", "is_hidden", "notes", "receipt_ref",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert transactions: %w", err)
	}

	return int(copied), nil
}
