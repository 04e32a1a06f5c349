package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/overdruiven/finance-api/internal/domain/category"
	"github.com/overdruiven/finance-api/internal/domain/import/classifier"
	importservice "github.com/overdruiven/finance-api/internal/domain/import/service"
	"github.com/overdruiven/finance-api/internal/domain/transaction"
	"github.com/overdruiven/finance-api/internal/domain/user"
	apihttp "github.com/overdruiven/finance-api/internal/http"
	"github.com/overdruiven/finance-api/internal/http/importcsv"
	"github.com/overdruiven/finance-api/internal/http/transactions"
	"github.com/overdruiven/finance-api/pkg/config"
	"github.com/overdruiven/finance-api/pkg/cron"
	"github.com/overdruiven/finance-api/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	TransactionRepo *transaction.Repository
	UserRepo        *user.Repository
	KeywordRepo     *category.Repository

	// Services
	KeywordEngine    *category.Engine
	ClassifierClient *classifier.Client
	ImportService    *importservice.Service
	Scheduler        *cron.Scheduler

	// Handlers
	Router http.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initServices initializes repositories and the import pipeline
func (d *Dependencies) initServices(ctx context.Context) error {
	d.TransactionRepo = transaction.NewRepository(d.DB.Pool)
	d.UserRepo = user.NewRepository(d.DB.Pool)
	d.KeywordRepo = category.NewRepository(d.DB.Pool)

	// Keyword engine: database table first, built-in table as fallback.
	keywords, err := d.KeywordRepo.GetKeywords(ctx)
	if err != nil || len(keywords) == 0 {
		if err != nil {
			d.Logger.Warn("loading merchant keywords failed, using built-in table", slog.Any("error", err))
		}
		keywords = category.DefaultKeywords()
	}
	d.KeywordEngine = category.NewEngine(keywords)

	remote, err := classifier.NewGeminiRemote(ctx, d.Config.Gemini.APIKey, d.Config.Gemini.Model)
	if err != nil {
		return fmt.Errorf("failed to init classifier: %w", err)
	}
	d.ClassifierClient = classifier.NewClient(
		remote,
		d.Config.Import.ClassifierRPS,
		d.Config.Import.ClassifierBurst,
		d.Config.Import.ClassifierTimeout,
		d.Logger,
	)

	d.ImportService = importservice.NewService(
		d.TransactionRepo,
		d.UserRepo,
		d.KeywordEngine,
		d.ClassifierClient,
		d.Config.Import.BatchSize,
		d.Logger,
	)

	// Nightly keyword table refresh.
	d.Scheduler = cron.NewScheduler(d.KeywordRepo, d.KeywordEngine, d.Config.Import.KeywordRefreshSpec, d.Logger)

	d.Logger.Info("services initialized",
		slog.Int("keywords", d.KeywordEngine.Size()),
	)
	return nil
}

// initHandlers wires the HTTP surface
func (d *Dependencies) initHandlers() {
	transactionsH := transactions.NewHandler(d.TransactionRepo, d.Logger)
	importH := importcsv.NewHandler(d.ImportService, d.Logger)

	d.Router = apihttp.New(apihttp.Config{
		JWTSecret:      []byte(d.Config.Auth.JWTSecret),
		AllowedOrigins: d.Config.Server.AllowedOrigins,
		MetricsEnabled: d.Config.Observability.MetricsEnabled,
	}, transactionsH, importH)
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
