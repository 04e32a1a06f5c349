// Package transactions exposes read access to stored transactions.
package transactions

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/overdruiven/finance-api/internal/domain/category"
	"github.com/overdruiven/finance-api/internal/domain/transaction"
	"github.com/overdruiven/finance-api/internal/http/middleware"
)

// Store is the read surface the handler needs.
type Store interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]transaction.Transaction, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type transactionResponse struct {
	ID          uuid.UUID             `json:"id"`
	AmountCents int64                 `json:"amountCents"`
	Direction   transaction.Direction `json:"direction"`
	Category    category.Category     `json:"category"`
	Description string                `json:"description"`
	OccurredOn  string                `json:"occurredOn"`
	IsHidden    bool                  `json:"isHidden"`
	Notes       *string               `json:"notes,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	txs, err := h.store.FindByUser(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "listing transactions failed",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, transactionResponse{
			ID:          tx.ID,
			AmountCents: tx.AmountCents,
			Direction:   tx.Direction,
			Category:    tx.Category,
			Description: tx.Description,
			OccurredOn:  tx.OccurredOn.Format("2006-01-02"),
			IsHidden:    tx.IsHidden,
			Notes:       tx.Notes,
			CreatedAt:   tx.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
