package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DB is the query surface the repository needs from pgxpool.Pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository loads the merchant keyword table from the database.
type Repository struct {
	db DB
}

// NewRepository creates a new keyword repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// GetKeywords fetches the full keyword table ordered by priority. Entries
// whose category is no longer a member of the enumeration are skipped rather
// than surfaced, so a stale row cannot poison classification.
func (r *Repository) GetKeywords(ctx context.Context) ([]Keyword, error) {
	query := `
		SELECT keyword, display_name, category
		FROM merchant_keywords
		ORDER BY priority ASC, keyword ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant keywords: %w", err)
	}
	defer rows.Close()

	var keywords []Keyword
	for rows.Next() {
		var kw Keyword
		var rawCategory string
		if err := rows.Scan(&kw.Pattern, &kw.DisplayName, &rawCategory); err != nil {
			return nil, fmt.Errorf("failed to scan merchant keyword: %w", err)
		}
		if !Category(rawCategory).Valid() {
			continue
		}
		kw.Category = Category(rawCategory)
		keywords = append(keywords, kw)
	}

	return keywords, rows.Err()
}
