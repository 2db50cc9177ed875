package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/service/report"
	"github.com/mamadbah2/salestracker/pkg/clients/chrome"
)

// ErrInvalidRequest indicates an export payload that cannot be rendered.
var ErrInvalidRequest = errors.New("invalid export request")

// Renderer rasterizes HTML markup.
type Renderer interface {
	Render(ctx context.Context, markup string, format chrome.Format) ([]byte, error)
}

// Document is a rendered report ready to be downloaded.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

var contentTypes = map[chrome.Format]string{
	chrome.FormatPNG: "image/png",
	chrome.FormatPDF: "application/pdf",
}

var unsafePeriodChars = regexp.MustCompile(`[^a-z0-9-]+`)

// Service builds report markup and turns it into downloadable documents.
type Service struct {
	builder  *report.Builder
	renderer Renderer
	metrics  *Metrics
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires an export service. loc fixes the "today" used in filenames.
func NewService(builder *report.Builder, renderer Renderer, metrics *Metrics, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		builder:  builder,
		renderer: renderer,
		metrics:  metrics,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}
}

// ExportSales renders the single-day report of req.
func (s *Service) ExportSales(ctx context.Context, req models.SalesReportRequest, format chrome.Format) (doc *Document, err error) {
	started := time.Now()
	defer func() { s.metrics.observe(string(report.KindSales), string(format), started, err) }()

	if _, err := time.Parse(models.DateLayout, req.CurrentDate); err != nil {
		return nil, fmt.Errorf("%w: currentDate must be formatted as YYYY-MM-DD", ErrInvalidRequest)
	}
	if _, ok := contentTypes[format]; !ok {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidRequest, format)
	}

	markup, err := s.builder.Build(report.KindSales, req)
	if err != nil {
		return nil, fmt.Errorf("build sales report: %w", err)
	}

	return s.render(ctx, markup, format, fmt.Sprintf("Sales-Report-%s.%s", req.CurrentDate, format))
}

// ExportAnalytics renders the multi-day report of req.
func (s *Service) ExportAnalytics(ctx context.Context, req models.AnalyticsReportRequest, format chrome.Format) (doc *Document, err error) {
	started := time.Now()
	defer func() { s.metrics.observe(string(report.KindAnalytics), string(format), started, err) }()

	if _, ok := contentTypes[format]; !ok {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidRequest, format)
	}

	markup, err := s.builder.Build(report.KindAnalytics, req)
	if err != nil {
		return nil, fmt.Errorf("build analytics report: %w", err)
	}

	return s.render(ctx, markup, format, s.analyticsFilename(req.SelectedPeriod, format))
}

func (s *Service) render(ctx context.Context, markup string, format chrome.Format, filename string) (*Document, error) {
	data, err := s.renderer.Render(ctx, markup, format)
	if err != nil {
		s.logger.Error("failed to render report", zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}

	s.logger.Info("report exported", zap.String("filename", filename), zap.Int("bytes", len(data)))
	return &Document{
		Data:        data,
		ContentType: contentTypes[format],
		Filename:    filename,
	}, nil
}

func (s *Service) analyticsFilename(period string, format chrome.Format) string {
	today := s.now().In(s.location).Format(models.DateLayout)
	if format == chrome.FormatPDF {
		return fmt.Sprintf("Analytics-Report-%s.pdf", today)
	}
	return fmt.Sprintf("analytics-%s-%s.png", sanitizePeriod(period), today)
}

func sanitizePeriod(period string) string {
	clean := unsafePeriodChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(period)), "-")
	clean = strings.Trim(clean, "-")
	if clean == "" {
		return "all"
	}
	return clean
}
