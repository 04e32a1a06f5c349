// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/overdruiven/finance-api/internal/domain/category"
)

// KeywordSource loads the merchant keyword table.
type KeywordSource interface {
	GetKeywords(ctx context.Context) ([]category.Keyword, error)
}

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron        *cron.Cron
	keywords    KeywordSource
	engine      *category.Engine
	refreshSpec string
	logger      *slog.Logger
}

// NewScheduler creates a new job scheduler. refreshSpec is a standard
// 5-field cron expression for the keyword table refresh.
func NewScheduler(keywords KeywordSource, engine *category.Engine, refreshSpec string, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:        c,
		keywords:    keywords,
		engine:      engine,
		refreshSpec: refreshSpec,
		logger:      logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.refreshSpec, s.refreshKeywords)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the keyword refresh (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.refreshKeywords()
}

// refreshKeywords reloads the merchant keyword table and rebuilds the
// matching engine. A failed or empty load keeps the current engine; imports
// must never lose the static table because of a transient database issue.
func (s *Scheduler) refreshKeywords() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	s.logger.Info("starting merchant keyword refresh")

	keywords, err := s.keywords.GetKeywords(ctx)
	if err != nil {
		s.logger.Error("failed to load merchant keywords", slog.Any("error", err))
		return
	}
	if len(keywords) == 0 {
		s.logger.Warn("merchant keyword table is empty, keeping current engine")
		return
	}

	s.engine.Build(keywords)

	s.logger.Info("merchant keyword refresh completed",
		slog.Int("keywords", len(keywords)),
	)
}
