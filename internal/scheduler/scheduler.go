package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/config"
	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/service/analytics"
	"github.com/mamadbah2/salestracker/internal/service/export"
	"github.com/mamadbah2/salestracker/pkg/clients/chrome"
)

// DashboardSource computes analytics for a period.
type DashboardSource interface {
	Dashboard(ctx context.Context, period analytics.Period) (models.Dashboard, error)
}

// AnalyticsExporter renders the analytics report.
type AnalyticsExporter interface {
	ExportAnalytics(ctx context.Context, req models.AnalyticsReportRequest, format chrome.Format) (*export.Document, error)
}

// Archiver stores rendered documents.
type Archiver interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// SummaryPublisher appends daily summaries to an external sheet.
type SummaryPublisher interface {
	PublishSummaries(ctx context.Context, period string, takenAt time.Time, summaries []models.DailySummary) error
}

// Deps are the collaborators of a snapshot. Archive and Publisher are optional.
type Deps struct {
	Dashboards DashboardSource
	Exporter   AnalyticsExporter
	Archive    Archiver
	Publisher  SummaryPublisher
}

// Scheduler runs the periodic analytics snapshot.
type Scheduler struct {
	cron     *cron.Cron
	deps     Deps
	schedule string
	period   analytics.Period
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance running in loc.
func NewScheduler(cfg config.SnapshotConfig, loc *time.Location, deps Deps, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	period, err := analytics.ParsePeriod(cfg.Period)
	if err != nil {
		return nil, fmt.Errorf("snapshot period: %w", err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		deps:     deps,
		schedule: cfg.CronSchedule,
		period:   period,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Enabled reports whether a snapshot has anywhere to go.
func (s *Scheduler) Enabled() bool {
	return s.deps.Archive != nil || s.deps.Publisher != nil
}

// Start schedules the snapshot job and starts the cron loop.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Info("no snapshot targets configured, scheduler idle")
		return nil
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("period", string(s.period)))

	if _, err := s.cron.AddFunc(s.schedule, s.runSnapshot); err != nil {
		return fmt.Errorf("schedule snapshot %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running snapshot.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.Snapshot(ctx); err != nil {
		s.logger.Error("snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("snapshot completed")
}

// Snapshot archives the analytics PDF and publishes the daily summaries for the configured period.
// Every target is attempted; their errors are joined.
func (s *Scheduler) Snapshot(ctx context.Context) error {
	takenAt := s.now().In(s.location)

	dashboard, err := s.deps.Dashboards.Dashboard(ctx, s.period)
	if err != nil {
		return fmt.Errorf("compute dashboard: %w", err)
	}

	var errs []error

	if s.deps.Archive != nil {
		if err := s.archive(ctx, dashboard); err != nil {
			errs = append(errs, err)
		}
	}

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishSummaries(ctx, string(s.period), takenAt, dashboard.Summaries); err != nil {
			errs = append(errs, fmt.Errorf("publish summaries: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *Scheduler) archive(ctx context.Context, dashboard models.Dashboard) error {
	doc, err := s.deps.Exporter.ExportAnalytics(ctx, models.AnalyticsReportRequest{
		SelectedPeriod: dashboard.Period,
		Summaries:      dashboard.Summaries,
		TopProducts:    dashboard.TopProducts,
	}, chrome.FormatPDF)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	key, err := s.deps.Archive.Put(ctx, doc.Filename, doc.ContentType, doc.Data)
	if err != nil {
		return fmt.Errorf("archive snapshot: %w", err)
	}

	s.logger.Info("snapshot archived", zap.String("key", key))
	return nil
}
