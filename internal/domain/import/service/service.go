// Package service drives a statement import end to end: decode the file,
// parse and normalize rows, resolve classifications with bounded concurrency
// per batch, skip duplicates and bulk-insert the survivors one batch at a
// time.
package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/overdruiven/finance-api/internal/domain/category"
	"github.com/overdruiven/finance-api/internal/domain/import/classifier"
	"github.com/overdruiven/finance-api/internal/domain/import/dedup"
	"github.com/overdruiven/finance-api/internal/domain/import/parser"
	"github.com/overdruiven/finance-api/internal/domain/import/resolver"
	"github.com/overdruiven/finance-api/internal/domain/import/sniffer"
	"github.com/overdruiven/finance-api/internal/domain/transaction"
	"github.com/overdruiven/finance-api/internal/domain/user"
	"github.com/overdruiven/finance-api/internal/encoding"
	"github.com/overdruiven/finance-api/pkg/metrics"
)

// maxDisplayNameLen caps stored display names.
const maxDisplayNameLen = 255

// TransactionStore is the persistence surface the import needs.
type TransactionStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]transaction.Transaction, error)
	BulkInsert(ctx context.Context, userID uuid.UUID, txs []transaction.Transaction) (int, error)
}

// UserStore resolves the acting user's subscription tier.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// ClassifierFactory hands out the tier-appropriate remote classifier.
type ClassifierFactory interface {
	ForTier(tier user.Tier) classifier.Classifier
}

// Summary is what the upload endpoint reports back to the caller.
type Summary struct {
	Inserted         int    `json:"insertedCount"`
	SkippedDuplicate int    `json:"skippedDuplicate"`
	SkippedInvalid   int    `json:"skippedInvalid"`
	Message          string `json:"message"`
}

type Service struct {
	transactions TransactionStore
	users        UserStore
	engine       *category.Engine
	classifiers  ClassifierFactory
	batchSize    int
	logger       *slog.Logger
}

func NewService(
	transactions TransactionStore,
	users UserStore,
	engine *category.Engine,
	classifiers ClassifierFactory,
	batchSize int,
	logger *slog.Logger,
) *Service {
	if batchSize < 1 {
		batchSize = 20
	}
	return &Service{
		transactions: transactions,
		users:        users,
		engine:       engine,
		classifiers:  classifiers,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Import runs the whole pipeline for one uploaded statement. Batches commit
// independently: a failure partway through leaves earlier batches persisted
// and surfaces as an error to the caller.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, filename string, data []byte) (*Summary, error) {
	ctx, span := otel.Tracer("import").Start(ctx, "import.Run",
		trace.WithAttributes(attribute.String("file.name", filename)))
	defer span.End()

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, sniffer.ErrEmptyFile
	}

	rows, err := s.readRows(filename, data)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	summary := &Summary{}
	candidates := make([]parser.Candidate, 0, len(rows))
	for _, row := range rows {
		candidate, err := parser.Normalize(row)
		if err != nil {
			summary.SkippedInvalid++
			metrics.ImportRows.WithLabelValues("skipped_invalid").Inc()
			continue
		}
		candidates = append(candidates, *candidate)
	}

	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("loading user %s: %w", userID, err)
	}

	existing, err := s.transactions.FindByUser(ctx, userID)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("loading existing transactions: %w", err)
	}

	index := dedup.BuildFromExisting(existing)
	history := resolver.BuildHistory(existing)
	res := resolver.New(s.engine, history, usr.Tier, s.classifiers.ForTier(usr.Tier))

	span.SetAttributes(
		attribute.Int("rows.total", len(rows)),
		attribute.Int("rows.candidates", len(candidates)),
		attribute.String("user.tier", string(usr.Tier)),
	)

	for start := 0; start < len(candidates); start += s.batchSize {
		end := start + s.batchSize
		if end > len(candidates) {
			end = len(candidates)
		}

		if err := s.processBatch(ctx, userID, candidates[start:end], res, index, summary); err != nil {
			metrics.ImportRuns.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("importing batch starting at row %d: %w", start, err)
		}
	}

	summary.Message = fmt.Sprintf("Imported %d transactions (%d duplicates skipped, %d invalid rows skipped)",
		summary.Inserted, summary.SkippedDuplicate, summary.SkippedInvalid)

	s.logger.InfoContext(ctx, "statement import finished",
		slog.String("user_id", userID.String()),
		slog.Int("inserted", summary.Inserted),
		slog.Int("skipped_duplicate", summary.SkippedDuplicate),
		slog.Int("skipped_invalid", summary.SkippedInvalid),
	)
	metrics.ImportRuns.WithLabelValues("ok").Inc()

	return summary, nil
}

// processBatch classifies the batch's rows concurrently, then serially
// dedup-checks, assembles and bulk-inserts the survivors.
func (s *Service) processBatch(
	ctx context.Context,
	userID uuid.UUID,
	batch []parser.Candidate,
	res *resolver.Resolver,
	index *dedup.Index,
	summary *Summary,
) error {
	results := make([]classifier.Result, len(batch))

	var wg sync.WaitGroup
	for i := range batch {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = res.Classify(ctx, batch[i].Description)
		}(i)
	}
	wg.Wait()

	txs := make([]transaction.Transaction, 0, len(batch))
	for i, candidate := range batch {
		displayName := truncate(results[i].DisplayName, maxDisplayNameLen)

		key := dedup.Key(candidate.OccurredOn, candidate.AmountCents, displayName)
		if index.Seen(key) {
			summary.SkippedDuplicate++
			metrics.ImportRows.WithLabelValues("skipped_duplicate").Inc()
			continue
		}
		index.Add(key)

		txs = append(txs, transaction.Transaction{
			UserID:      userID,
			AmountCents: candidate.AmountCents,
			Direction:   candidate.Direction,
			Category:    results[i].Category,
			Description: displayName,
			OccurredOn:  candidate.OccurredOn,
		})
	}

	if len(txs) == 0 {
		return nil
	}

	inserted, err := s.transactions.BulkInsert(ctx, userID, txs)
	if err != nil {
		return fmt.Errorf("bulk inserting %d transactions: %w", len(txs), err)
	}
	summary.Inserted += inserted
	metrics.ImportRows.WithLabelValues("inserted").Add(float64(inserted))

	return nil
}

// readRows decodes the upload into parser rows, routing Excel workbooks and
// delimited text through their respective readers.
func (s *Service) readRows(filename string, data []byte) ([]parser.Row, error) {
	if isExcel(filename, data) {
		rows, err := parser.ReadExcelRows(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("reading workbook: %w", err)
		}
		return rows, nil
	}

	normalized, err := encoding.NormalizeUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("normalizing file encoding: %w", err)
	}

	cfg, err := sniffer.Detect(normalized)
	if err != nil {
		return nil, err
	}

	rows, err := parser.ReadRows(normalized, cfg.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("reading delimited file: %w", err)
	}
	return rows, nil
}

// xlsxMagic is the ZIP local-file-header signature; xlsx files are ZIP
// archives.
var xlsxMagic = []byte("PK\x03\x04")

func isExcel(filename string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return true
	}
	return bytes.HasPrefix(data, xlsxMagic)
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
