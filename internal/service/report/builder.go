package report

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/service/analytics"
)

// ErrUnsupportedKind indicates an unknown report kind or a payload that does not match it.
var ErrUnsupportedKind = errors.New("unsupported report kind")

// Kind selects the report layout.
type Kind string

const (
	KindSales     Kind = "sales"
	KindAnalytics Kind = "analytics"

	maxTopProductBars = 10
)

// Builder turns aggregated payloads into self-contained HTML documents.
type Builder struct {
	currency string
	location *time.Location
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithCurrency overrides the currency glyph.
func WithCurrency(symbol string) Option {
	return func(b *Builder) {
		if symbol != "" {
			b.currency = symbol
		}
	}
}

// WithLocation sets the zone used for the generation timestamp.
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) {
		if loc != nil {
			b.location = loc
		}
	}
}

// WithClock replaces the clock used for the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a report builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		currency: DefaultCurrency,
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Currency returns the configured currency glyph.
func (b *Builder) Currency() string {
	return b.currency
}

// Build renders the report of the given kind. The payload must be the
// matching request type, by value or pointer.
func (b *Builder) Build(kind Kind, payload any) (string, error) {
	switch kind {
	case KindSales:
		switch req := payload.(type) {
		case models.SalesReportRequest:
			return b.SalesReport(req)
		case *models.SalesReportRequest:
			if req != nil {
				return b.SalesReport(*req)
			}
		}
	case KindAnalytics:
		switch req := payload.(type) {
		case models.AnalyticsReportRequest:
			return b.AnalyticsReport(req)
		case *models.AnalyticsReportRequest:
			if req != nil {
				return b.AnalyticsReport(*req)
			}
		}
	}
	return "", fmt.Errorf("%w: %s with %T", ErrUnsupportedKind, kind, payload)
}

type chip struct {
	Label string
	Value string
}

type bar struct {
	Title string
	Label string
	Value string
	Width int
}

type column struct {
	Name    string
	Numeric bool
}

type cell struct {
	Text  string
	Class string
}

type table struct {
	Columns []column
	Rows    [][]cell
}

type salesPage struct {
	Title       string
	Subtitle    string
	Chips       []chip
	ProductBars []bar
	Details     table
}

type analyticsPage struct {
	Title       string
	Subtitle    string
	Chips       []chip
	DayBars     []bar
	ProductBars []bar
	Daily       table
	Products    table
}

const (
	className = "cell name"
	classNum  = "cell num"
	classEmph = "cell num emph"
)

// SalesReport renders the single-day product report.
func (b *Builder) SalesReport(req models.SalesReportRequest) (string, error) {
	summary := analytics.SummarizeDay(req.CurrentDate, req.Products)

	avgPrice := 0.0
	if summary.TotalUnitsSold > 0 {
		avgPrice = summary.TotalRevenue / float64(summary.TotalUnitsSold)
	}

	maxRevenue := 0.0
	for _, p := range req.Products {
		maxRevenue = max(maxRevenue, p.TotalSales)
	}

	page := salesPage{
		Title: "Daily Sales Report",
		Subtitle: fmt.Sprintf("%s • Generated: %s",
			formatISODate(req.CurrentDate, longDateLayout), formatLongDate(b.now().In(b.location))),
		Chips: []chip{
			{Label: "Revenue", Value: b.money(summary.TotalRevenue, 0)},
			{Label: "Products", Value: formatCount(summary.TotalProducts)},
			{Label: "Units", Value: formatCount(summary.TotalUnitsSold)},
			{Label: "Avg Price", Value: b.money(avgPrice, 2)},
		},
		Details: table{Columns: []column{
			{Name: "Product"},
			{Name: "Initial", Numeric: true},
			{Name: "Sold", Numeric: true},
			{Name: "Price", Numeric: true},
			{Name: "Total", Numeric: true},
			{Name: "Remain", Numeric: true},
		}},
	}

	for _, p := range req.Products {
		page.ProductBars = append(page.ProductBars, bar{
			Title: p.ProductName,
			Label: truncate(p.ProductName, maxLabelRunes),
			Value: b.money(p.TotalSales, 0),
			Width: barPercent(p.TotalSales, maxRevenue),
		})
		page.Details.Rows = append(page.Details.Rows, []cell{
			{Text: p.ProductName, Class: className},
			{Text: formatCount(p.InitialQty), Class: classNum},
			{Text: formatCount(p.QtySold), Class: classNum},
			{Text: b.money(p.PricePerUnit, 2), Class: classNum},
			{Text: b.money(p.TotalSales, 0), Class: classEmph},
			{Text: formatCount(p.RemainingQty), Class: classNum},
		})
	}

	return execute(salesTmpl, page)
}

// AnalyticsReport renders the multi-day analytics report.
func (b *Builder) AnalyticsReport(req models.AnalyticsReportRequest) (string, error) {
	stats := analytics.ComputePeriodStats(req.Summaries)
	period := analytics.Period(req.SelectedPeriod)

	page := analyticsPage{
		Title: "Sales Analytics Report",
		Subtitle: fmt.Sprintf("Period: %s • Generated: %s",
			period.Label(), formatLongDate(b.now().In(b.location))),
		Chips: []chip{
			{Label: "Total Revenue", Value: b.money(stats.Total.Revenue, 0)},
			{Label: "Days", Value: formatCount(stats.Days)},
			{Label: "Units", Value: formatCount(int(stats.Total.Units))},
			{Label: "Avg Daily", Value: b.money(stats.AvgDaily.Revenue, 0)},
			{Label: "Growth", Value: formatGrowth(stats.GrowthRate)},
		},
		Daily: table{Columns: []column{
			{Name: "Date"},
			{Name: "Revenue", Numeric: true},
			{Name: "Products", Numeric: true},
			{Name: "Units", Numeric: true},
			{Name: "Top Product"},
			{Name: "Top Rev", Numeric: true},
		}},
		Products: table{Columns: []column{
			{Name: "Product"},
			{Name: "Revenue", Numeric: true},
			{Name: "Units", Numeric: true},
			{Name: "Avg Price", Numeric: true},
			{Name: "Days", Numeric: true},
			{Name: "Last Sold"},
		}},
	}

	maxDay := 0.0
	for _, d := range req.Summaries {
		maxDay = max(maxDay, d.TotalRevenue)
	}
	for _, d := range req.Summaries {
		label := formatISODate(d.Date, "Jan 2")
		page.DayBars = append(page.DayBars, bar{
			Title: d.Date,
			Label: truncate(label, maxLabelRunes),
			Value: b.money(d.TotalRevenue, 0),
			Width: barPercent(d.TotalRevenue, maxDay),
		})
		page.Daily.Rows = append(page.Daily.Rows, []cell{
			{Text: formatISODate(d.Date, "1/2/2006"), Class: className},
			{Text: b.money(d.TotalRevenue, 0), Class: classEmph},
			{Text: formatCount(d.TotalProducts), Class: classNum},
			{Text: formatCount(d.TotalUnitsSold), Class: classNum},
			{Text: d.TopProduct, Class: className},
			{Text: b.money(d.TopProductRevenue, 0), Class: classNum},
		})
	}

	top := req.TopProducts
	if len(top) > maxTopProductBars {
		top = top[:maxTopProductBars]
	}
	maxProduct := 0.0
	for _, p := range top {
		maxProduct = max(maxProduct, p.TotalRevenue)
	}
	for _, p := range top {
		page.ProductBars = append(page.ProductBars, bar{
			Title: p.ProductName,
			Label: truncate(p.ProductName, maxLabelRunes),
			Value: b.money(p.TotalRevenue, 0),
			Width: barPercent(p.TotalRevenue, maxProduct),
		})
	}

	for _, p := range req.TopProducts {
		avg := missingValue
		if p.AveragePrice != nil {
			avg = b.money(*p.AveragePrice, 2)
		}
		page.Products.Rows = append(page.Products.Rows, []cell{
			{Text: p.ProductName, Class: className},
			{Text: b.money(p.TotalRevenue, 0), Class: classEmph},
			{Text: formatCount(p.TotalUnitsSold), Class: classNum},
			{Text: avg, Class: classNum},
			{Text: formatCount(p.Appearances), Class: classNum},
			{Text: formatISODate(p.LastSold, "1/2/2006"), Class: className},
		})
	}

	return execute(analyticsTmpl, page)
}

func (b *Builder) money(value float64, decimals int) string {
	return formatMoney(b.currency, value, decimals)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
