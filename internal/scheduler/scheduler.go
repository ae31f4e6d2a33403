package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/paperdesk/internal/config"
	"github.com/mamadbah2/paperdesk/internal/repository/mongodb"
	"github.com/mamadbah2/paperdesk/internal/repository/sheets"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
)

// Scheduler periodically snapshots the financial report so the bookkeeping
// trail survives restarts of the in-memory ledger. Snapshot targets are
// optional; the job logs the report regardless.
type Scheduler struct {
	cron       *cron.Cron
	projection *projection.Service
	repo       mongodb.Repository
	exporter   sheets.Exporter
	cfg        config.Config
	logger     *zap.Logger
	now        func() time.Time
}

// NewScheduler creates a new scheduler instance. repo and exporter may be
// nil when the corresponding backends are not configured.
func NewScheduler(cfg config.Config, proj *projection.Service, repo mongodb.Repository, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using local", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(location)),
		projection: proj,
		repo:       repo,
		exporter:   exporter,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.snapshot); err != nil {
		s.logger.Error("failed to schedule financial snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) snapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := s.now()
	report := s.projection.FinancialReport(ctx, now)
	snap := report.Snapshot(now)

	s.logger.Info("financial snapshot generated",
		zap.String("cash_balance", snap.CashBalance),
		zap.String("inventory_value", snap.InventoryValue),
		zap.String("total_assets", snap.TotalAssets))

	if s.repo != nil {
		if err := s.repo.SaveFinancialSnapshot(ctx, snap); err != nil {
			s.logger.Error("failed to persist financial snapshot", zap.Error(err))
		}
	}

	if s.exporter != nil {
		if err := s.exporter.AppendSnapshot(ctx, snap); err != nil {
			s.logger.Error("failed to export financial snapshot", zap.Error(err))
		}
	}
}
