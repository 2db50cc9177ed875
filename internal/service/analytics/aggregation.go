package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

// SummarizeDay aggregates the records of a single date. An empty list yields
// a zero summary with an empty top product.
func SummarizeDay(date string, records []models.ProductSaleRecord) models.DailySummary {
	summary := models.DailySummary{Date: date, TotalProducts: len(records)}

	revenue := decimal.Zero
	var top *models.ProductSaleRecord
	for i := range records {
		record := &records[i]
		revenue = revenue.Add(decimal.NewFromFloat(record.TotalSales))
		summary.TotalUnitsSold += record.QtySold

		// strictly greater: the first record wins a tie
		if top == nil || record.TotalSales > top.TotalSales {
			top = record
		}
	}

	summary.TotalRevenue = revenue.InexactFloat64()
	if top != nil {
		summary.TopProduct = top.ProductName
		summary.TopProductRevenue = top.TotalSales
	}
	return summary
}

// BuildDailySummaries returns one summary per date holding at least one
// record, sorted by date descending.
func BuildDailySummaries(ledger models.Ledger) []models.DailySummary {
	summaries := make([]models.DailySummary, 0, len(ledger))
	for date, records := range ledger {
		if len(records) == 0 {
			continue
		}
		summaries = append(summaries, SummarizeDay(date, records))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date > summaries[j].Date
	})
	return summaries
}

type rollupAccumulator struct {
	rollup  models.ProductRollup
	revenue decimal.Decimal
	dates   map[string]struct{}
}

// BuildProductRollups folds every record of every date into per-product
// totals keyed by the exact product name, sorted by revenue descending.
func BuildProductRollups(ledger models.Ledger) []models.ProductRollup {
	dates := sortedDates(ledger)

	index := make(map[string]*rollupAccumulator)
	order := make([]*rollupAccumulator, 0)

	for _, date := range dates {
		for _, record := range ledger[date] {
			acc, ok := index[record.ProductName]
			if !ok {
				acc = &rollupAccumulator{
					rollup:  models.ProductRollup{ProductName: record.ProductName},
					revenue: decimal.Zero,
					dates:   make(map[string]struct{}),
				}
				index[record.ProductName] = acc
				order = append(order, acc)
			}

			acc.revenue = acc.revenue.Add(decimal.NewFromFloat(record.TotalSales))
			acc.rollup.TotalUnitsSold += record.QtySold
			acc.dates[date] = struct{}{}
			// ISO dates order lexicographically
			if date > acc.rollup.LastSold {
				acc.rollup.LastSold = date
			}
		}
	}

	rollups := make([]models.ProductRollup, 0, len(order))
	for _, acc := range order {
		rollup := acc.rollup
		rollup.TotalRevenue = acc.revenue.InexactFloat64()
		rollup.Appearances = len(acc.dates)
		rollup.AveragePrice = averagePrice(acc.revenue, rollup.TotalUnitsSold)
		rollups = append(rollups, rollup)
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].TotalRevenue > rollups[j].TotalRevenue
	})
	return rollups
}

// ComputePeriodStats totals a filtered, date-descending list of summaries and
// derives the growth rate between its earlier and later halves.
func ComputePeriodStats(summaries []models.DailySummary) models.PeriodStats {
	stats := models.PeriodStats{Days: len(summaries)}

	revenue := decimal.Zero
	for _, day := range summaries {
		revenue = revenue.Add(decimal.NewFromFloat(day.TotalRevenue))
		stats.Total.Products += float64(day.TotalProducts)
		stats.Total.Units += float64(day.TotalUnitsSold)
	}
	stats.Total.Revenue = revenue.InexactFloat64()

	divisor := float64(max(len(summaries), 1))
	stats.AvgDaily = models.Totals{
		Revenue:  stats.Total.Revenue / divisor,
		Products: stats.Total.Products / divisor,
		Units:    stats.Total.Units / divisor,
	}

	stats.GrowthRate = growthRate(summaries)
	return stats
}

// growthRate compares the mean revenue of the later half (head of the
// descending list) against the earlier half (tail). With an odd count the
// earlier half holds the extra element.
func growthRate(summaries []models.DailySummary) float64 {
	if len(summaries) < 2 {
		return 0
	}

	mid := len(summaries) / 2
	earlierAvg := meanRevenue(summaries[mid:])
	laterAvg := meanRevenue(summaries[:mid])

	if earlierAvg.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return laterAvg.Sub(earlierAvg).Div(earlierAvg).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func meanRevenue(summaries []models.DailySummary) decimal.Decimal {
	total := decimal.Zero
	for _, day := range summaries {
		total = total.Add(decimal.NewFromFloat(day.TotalRevenue))
	}
	return total.Div(decimal.NewFromInt(int64(max(len(summaries), 1))))
}

func averagePrice(revenue decimal.Decimal, units int) *float64 {
	if units == 0 {
		return nil
	}
	value := revenue.Div(decimal.NewFromInt(int64(units))).InexactFloat64()
	return &value
}

func sortedDates(ledger models.Ledger) []string {
	dates := make([]string, 0, len(ledger))
	for date := range ledger {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
