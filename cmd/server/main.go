package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/paperdesk/internal/config"
	"github.com/mamadbah2/paperdesk/internal/repository/history"
	"github.com/mamadbah2/paperdesk/internal/repository/ledger"
	"github.com/mamadbah2/paperdesk/internal/repository/mongodb"
	"github.com/mamadbah2/paperdesk/internal/repository/sheets"
	"github.com/mamadbah2/paperdesk/internal/scheduler"
	"github.com/mamadbah2/paperdesk/internal/seed"
	"github.com/mamadbah2/paperdesk/internal/server/handlers"
	"github.com/mamadbah2/paperdesk/internal/server/router"
	"github.com/mamadbah2/paperdesk/internal/service/ordering"
	"github.com/mamadbah2/paperdesk/internal/service/orchestrator"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
	"github.com/mamadbah2/paperdesk/internal/service/quoting"
	"github.com/mamadbah2/paperdesk/pkg/clients/anthropic"
	"github.com/mamadbah2/paperdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// The ledger is in-memory unless MongoDB is configured.
	var ledgerStore ledger.Store = ledger.NewMemoryStore()
	var mongoRepo mongodb.Repository

	if cfg.MongoDB.URI != "" {
		repo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := repo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()

		ledgerStore = repo.LedgerStore()
		mongoRepo = repo
		baseLogger.Info("durable mongodb ledger enabled", zap.String("database", cfg.MongoDB.DBName))
	} else {
		baseLogger.Warn("MONGODB_URI not set, using in-memory ledger")
	}

	cat, err := seed.Bootstrap(context.Background(), ledgerStore, seed.Options{
		Seed:     cfg.Seed.Seed,
		Coverage: cfg.Seed.Coverage,
	}, baseLogger.Named("seed"))
	if err != nil {
		baseLogger.Fatal("failed to seed inventory", zap.Error(err))
	}

	historyStore := history.NewMemoryStore(nil)

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		names := make([]string, 0)
		for _, item := range cat.All() {
			names = append(names, item.ItemName)
		}
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey, names)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, natural language processing disabled")
	}

	projectionSvc := projection.NewService(ledgerStore, cat, baseLogger.Named("svc.projection"))
	quotingSvc := quoting.NewService(projectionSvc, cat, historyStore, aiClient, baseLogger.Named("svc.quoting"))
	orderingSvc := ordering.NewService(ledgerStore, cat, projectionSvc, baseLogger.Named("svc.ordering"))
	orchestratorSvc := orchestrator.NewService(aiClient, projectionSvc, quotingSvc, orderingSvc, baseLogger.Named("svc.orchestrator"))

	var exporter sheets.Exporter
	if cfg.Sheets.CredentialsPath != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("google sheets snapshot export enabled")
	}

	apiHandler := handlers.NewAPIHandler(orchestratorSvc, projectionSvc, quotingSvc, orderingSvc, baseLogger.Named("handlers.api"))
	engine := router.New(apiHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, projectionSvc, mongoRepo, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
