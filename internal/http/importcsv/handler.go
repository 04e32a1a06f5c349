// Package importcsv exposes the statement upload endpoint.
package importcsv

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	importservice "github.com/overdruiven/finance-api/internal/domain/import/service"
	"github.com/overdruiven/finance-api/internal/domain/import/sniffer"
	"github.com/overdruiven/finance-api/internal/http/middleware"
)

// maxUploadBytes caps statement uploads; bank exports are small.
const maxUploadBytes = 10 << 20

// ImportService runs the pipeline for one uploaded file.
type ImportService interface {
	Import(ctx context.Context, userID uuid.UUID, filename string, data []byte) (*importservice.Summary, error)
}

type Handler struct {
	svc    ImportService
	logger *slog.Logger
}

func NewHandler(svc ImportService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload", h.upload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to parse form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read file"})
		return
	}
	if len(data) > maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		return
	}

	summary, err := h.svc.Import(r.Context(), userID, header.Filename, data)
	if errors.Is(err, sniffer.ErrEmptyFile) || errors.Is(err, sniffer.ErrNoHeader) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "statement import failed",
			slog.String("user_id", userID.String()),
			slog.String("file", header.Filename),
			slog.Any("error", err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "import failed"})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
