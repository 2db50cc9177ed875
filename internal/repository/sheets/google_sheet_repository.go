package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/salestracker/internal/config"
	"github.com/mamadbah2/salestracker/internal/domain/models"
)

// Publisher appends daily summary snapshots to a spreadsheet.
type Publisher interface {
	PublishSummaries(ctx context.Context, period string, takenAt time.Time, summaries []models.DailySummary) error
}

// GoogleSheetRepository implements Publisher using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed publisher. Extra client
// options replace the credentials file.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id must not be empty")
	}
	if cfg.Range == "" {
		return nil, fmt.Errorf("sheet range must not be empty")
	}

	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsPath),
			option.WithScopes(sheetsapi.SpreadsheetsScope),
		}
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// PublishSummaries appends one row per summary. Nothing is sent for an empty slice.
func (r *GoogleSheetRepository) PublishSummaries(ctx context.Context, period string, takenAt time.Time, summaries []models.DailySummary) error {
	rows := summaryRows(period, takenAt, summaries)
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("summaries appended to sheet", zap.String("range", r.sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// summaryRows lays out snapshot time, period, date, revenue, products, units, top product, top product revenue.
func summaryRows(period string, takenAt time.Time, summaries []models.DailySummary) [][]interface{} {
	stamp := takenAt.Format(time.RFC3339)
	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []interface{}{
			stamp,
			period,
			s.Date,
			s.TotalRevenue,
			s.TotalProducts,
			s.TotalUnitsSold,
			s.TopProduct,
			s.TopProductRevenue,
		})
	}
	return rows
}

var _ Publisher = (*GoogleSheetRepository)(nil)
