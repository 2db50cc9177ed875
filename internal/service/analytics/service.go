package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

// LedgerSource provides the current ledger snapshot.
type LedgerSource interface {
	Ledger(ctx context.Context) (models.Ledger, error)
}

// Service exposes dashboard analytics on top of the ledger.
type Service struct {
	source LedgerSource
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new analytics service instance.
func NewService(source LedgerSource, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		source: source,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// Dashboard computes the filtered summaries, product rollups and statistics
// for the requested period. Rollups always span the whole ledger.
func (s *Service) Dashboard(ctx context.Context, period Period) (models.Dashboard, error) {
	ledger, err := s.source.Ledger(ctx)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("load ledger: %w", err)
	}

	summaries := BuildDailySummaries(ledger)
	filtered := FilterByPeriod(summaries, period, s.now())
	rollups := BuildProductRollups(ledger)

	s.logger.Debug("dashboard computed",
		zap.String("period", string(period)),
		zap.Int("days", len(summaries)),
		zap.Int("filtered_days", len(filtered)),
		zap.Int("products", len(rollups)))

	return models.Dashboard{
		Period:      string(period),
		Summaries:   filtered,
		TopProducts: rollups,
		Stats:       ComputePeriodStats(filtered),
	}, nil
}
