package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/salestracker/internal/config"
	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/service/analytics"
	"github.com/mamadbah2/salestracker/internal/service/export"
	"github.com/mamadbah2/salestracker/pkg/clients/chrome"
)

type mockDashboards struct{ mock.Mock }

func (m *mockDashboards) Dashboard(ctx context.Context, period analytics.Period) (models.Dashboard, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(models.Dashboard), args.Error(1)
}

type mockExporter struct{ mock.Mock }

func (m *mockExporter) ExportAnalytics(ctx context.Context, req models.AnalyticsReportRequest, format chrome.Format) (*export.Document, error) {
	args := m.Called(ctx, req, format)
	doc, _ := args.Get(0).(*export.Document)
	return doc, args.Error(1)
}

type mockArchive struct{ mock.Mock }

func (m *mockArchive) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, name, contentType, data)
	return args.String(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishSummaries(ctx context.Context, period string, takenAt time.Time, summaries []models.DailySummary) error {
	return m.Called(ctx, period, takenAt, summaries).Error(0)
}

var snapshotConfig = config.SnapshotConfig{CronSchedule: "0 21 * * *", Period: "7days"}

func sampleDashboard() models.Dashboard {
	return models.Dashboard{
		Period:    "7days",
		Summaries: []models.DailySummary{{Date: "2024-03-31", TotalRevenue: 500}},
	}
}

func TestSnapshot_ArchivesAndPublishes(t *testing.T) {
	dashboards := new(mockDashboards)
	exporter := new(mockExporter)
	archive := new(mockArchive)
	publisher := new(mockPublisher)

	dashboard := sampleDashboard()
	doc := &export.Document{Data: []byte("%PDF"), ContentType: "application/pdf", Filename: "Analytics-Report-2024-03-31.pdf"}

	dashboards.On("Dashboard", mock.Anything, analytics.PeriodLast7Days).Return(dashboard, nil)
	exporter.On("ExportAnalytics", mock.Anything, models.AnalyticsReportRequest{
		SelectedPeriod: "7days",
		Summaries:      dashboard.Summaries,
	}, chrome.FormatPDF).Return(doc, nil)
	archive.On("Put", mock.Anything, doc.Filename, "application/pdf", doc.Data).Return("snapshots/"+doc.Filename, nil)
	publisher.On("PublishSummaries", mock.Anything, "7days", mock.AnythingOfType("time.Time"), dashboard.Summaries).Return(nil)

	s, err := NewScheduler(snapshotConfig, time.UTC, Deps{
		Dashboards: dashboards,
		Exporter:   exporter,
		Archive:    archive,
		Publisher:  publisher,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Snapshot(context.Background()))

	dashboards.AssertExpectations(t)
	exporter.AssertExpectations(t)
	archive.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSnapshot_PublisherOnly(t *testing.T) {
	dashboards := new(mockDashboards)
	exporter := new(mockExporter)
	publisher := new(mockPublisher)

	dashboards.On("Dashboard", mock.Anything, analytics.PeriodLast7Days).Return(sampleDashboard(), nil)
	publisher.On("PublishSummaries", mock.Anything, "7days", mock.Anything, mock.Anything).Return(nil)

	s, err := NewScheduler(snapshotConfig, time.UTC, Deps{Dashboards: dashboards, Exporter: exporter, Publisher: publisher}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Snapshot(context.Background()))
	exporter.AssertNotCalled(t, "ExportAnalytics", mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshot_JoinsTargetErrors(t *testing.T) {
	dashboards := new(mockDashboards)
	exporter := new(mockExporter)
	archive := new(mockArchive)
	publisher := new(mockPublisher)

	dashboards.On("Dashboard", mock.Anything, mock.Anything).Return(sampleDashboard(), nil)
	exporter.On("ExportAnalytics", mock.Anything, mock.Anything, chrome.FormatPDF).Return(nil, errors.New("chrome missing"))
	publisher.On("PublishSummaries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("quota"))

	s, err := NewScheduler(snapshotConfig, time.UTC, Deps{
		Dashboards: dashboards,
		Exporter:   exporter,
		Archive:    archive,
		Publisher:  publisher,
	}, nil)
	require.NoError(t, err)

	err = s.Snapshot(context.Background())
	assert.ErrorContains(t, err, "chrome missing")
	assert.ErrorContains(t, err, "quota")
	archive.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshot_DashboardFailure(t *testing.T) {
	dashboards := new(mockDashboards)
	dashboards.On("Dashboard", mock.Anything, mock.Anything).Return(models.Dashboard{}, errors.New("store down"))

	s, err := NewScheduler(snapshotConfig, time.UTC, Deps{Dashboards: dashboards, Publisher: new(mockPublisher)}, nil)
	require.NoError(t, err)

	assert.ErrorContains(t, s.Snapshot(context.Background()), "store down")
}

func TestNewScheduler_InvalidPeriod(t *testing.T) {
	_, err := NewScheduler(config.SnapshotConfig{CronSchedule: "@daily", Period: "fortnight"}, nil, Deps{}, nil)
	assert.ErrorIs(t, err, analytics.ErrUnknownPeriod)
}

func TestStart(t *testing.T) {
	idle, err := NewScheduler(snapshotConfig, nil, Deps{}, nil)
	require.NoError(t, err)
	assert.False(t, idle.Enabled())
	require.NoError(t, idle.Start())
	assert.Empty(t, idle.cron.Entries())

	bad, err := NewScheduler(config.SnapshotConfig{CronSchedule: "not a cron", Period: "all"}, nil, Deps{Publisher: new(mockPublisher)}, nil)
	require.NoError(t, err)
	assert.Error(t, bad.Start())

	good, err := NewScheduler(snapshotConfig, nil, Deps{Publisher: new(mockPublisher)}, nil)
	require.NoError(t, err)
	require.NoError(t, good.Start())
	assert.Len(t, good.cron.Entries(), 1)
	good.Stop()
}
