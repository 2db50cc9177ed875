package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

func record(name string, initial, sold int, price float64) models.ProductSaleRecord {
	return models.ProductSaleRecord{
		ID:           name,
		ProductName:  name,
		InitialQty:   initial,
		QtySold:      sold,
		PricePerUnit: price,
		TotalSales:   float64(sold) * price,
		RemainingQty: initial - sold,
	}
}

func scenarioLedger() models.Ledger {
	return models.Ledger{
		"2024-01-01": {record("A", 10, 4, 100)},
		"2024-01-02": {record("A", 5, 5, 100)},
	}
}

func TestBuildDailySummaries_EmptyLedger(t *testing.T) {
	summaries := BuildDailySummaries(models.Ledger{})
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestBuildDailySummaries_SortedDescending(t *testing.T) {
	ledger := models.Ledger{
		"2024-01-03": {record("A", 1, 1, 10)},
		"2024-02-01": {record("B", 1, 1, 10)},
		"2023-12-31": {record("C", 1, 1, 10)},
		"2024-01-10": {},
	}

	summaries := BuildDailySummaries(ledger)

	require.Len(t, summaries, 3)
	assert.Equal(t, "2024-02-01", summaries[0].Date)
	assert.Equal(t, "2024-01-03", summaries[1].Date)
	assert.Equal(t, "2023-12-31", summaries[2].Date)
}

func TestBuildDailySummaries_RevenueMatchesLedger(t *testing.T) {
	ledger := models.Ledger{
		"2024-03-01": {record("A", 10, 3, 12.5), record("B", 4, 4, 0.1), record("C", 9, 0, 7)},
		"2024-03-02": {record("A", 2, 2, 12.5), record("D", 100, 33, 0.2)},
	}

	var expected float64
	for _, records := range ledger {
		for _, r := range records {
			expected += r.TotalSales
		}
	}

	var actual float64
	for _, s := range BuildDailySummaries(ledger) {
		actual += s.TotalRevenue
	}

	assert.InDelta(t, expected, actual, 1e-9)
}

func TestSummarizeDay_TopProductFirstSeenWinsTie(t *testing.T) {
	records := []models.ProductSaleRecord{
		record("Bread", 10, 2, 50),
		record("Milk", 10, 1, 100),
		record("Eggs", 10, 1, 40),
	}

	summary := SummarizeDay("2024-05-05", records)

	assert.Equal(t, "Bread", summary.TopProduct)
	assert.Equal(t, 100.0, summary.TopProductRevenue)
	assert.Equal(t, 240.0, summary.TotalRevenue)
	assert.Equal(t, 3, summary.TotalProducts)
	assert.Equal(t, 4, summary.TotalUnitsSold)
}

func TestSummarizeDay_EmptyRecords(t *testing.T) {
	summary := SummarizeDay("2024-05-05", nil)

	assert.Equal(t, "2024-05-05", summary.Date)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalProducts)
	assert.Empty(t, summary.TopProduct)
	assert.Zero(t, summary.TopProductRevenue)
}

func TestBuildProductRollups_Scenario(t *testing.T) {
	rollups := BuildProductRollups(scenarioLedger())

	require.Len(t, rollups, 1)
	a := rollups[0]
	assert.Equal(t, "A", a.ProductName)
	assert.Equal(t, 900.0, a.TotalRevenue)
	assert.Equal(t, 9, a.TotalUnitsSold)
	require.NotNil(t, a.AveragePrice)
	assert.Equal(t, 100.0, *a.AveragePrice)
	assert.Equal(t, 2, a.Appearances)
	assert.Equal(t, "2024-01-02", a.LastSold)
}

func TestBuildProductRollups_CaseSensitiveAndSorted(t *testing.T) {
	ledger := models.Ledger{
		"2024-01-01": {record("rice", 10, 1, 10), record("Rice", 10, 5, 10)},
		"2024-01-02": {record("Beans", 10, 10, 30)},
	}

	rollups := BuildProductRollups(ledger)

	require.Len(t, rollups, 3)
	assert.Equal(t, "Beans", rollups[0].ProductName)
	assert.Equal(t, "Rice", rollups[1].ProductName)
	assert.Equal(t, "rice", rollups[2].ProductName)
}

func TestBuildProductRollups_ZeroUnitsYieldsNilAverage(t *testing.T) {
	ledger := models.Ledger{
		"2024-01-01": {record("Unsold", 10, 0, 25)},
	}

	rollups := BuildProductRollups(ledger)

	require.Len(t, rollups, 1)
	assert.Nil(t, rollups[0].AveragePrice)
	assert.Equal(t, 1, rollups[0].Appearances)
}

func TestBuildProductRollups_RepeatedProductSameDayCountsOneAppearance(t *testing.T) {
	ledger := models.Ledger{
		"2024-01-01": {record("A", 10, 1, 10), record("A", 10, 2, 10)},
	}

	rollups := BuildProductRollups(ledger)

	require.Len(t, rollups, 1)
	assert.Equal(t, 1, rollups[0].Appearances)
	assert.Equal(t, 30.0, rollups[0].TotalRevenue)
}

func TestComputePeriodStats_Scenario(t *testing.T) {
	summaries := FilterByPeriod(BuildDailySummaries(scenarioLedger()), PeriodAll, fixedNow)

	stats := ComputePeriodStats(summaries)

	assert.Equal(t, 2, stats.Days)
	assert.Equal(t, 900.0, stats.Total.Revenue)
	assert.Equal(t, 450.0, stats.AvgDaily.Revenue)
	assert.Equal(t, 9.0, stats.Total.Units)
	// earlier day 400, later day 500
	assert.InDelta(t, 25.0, stats.GrowthRate, 1e-9)
}

func TestComputePeriodStats_EqualHalvesHaveZeroGrowth(t *testing.T) {
	ledger := models.Ledger{
		"2024-01-01": {record("A", 10, 5, 100)},
		"2024-01-02": {record("A", 5, 5, 100)},
	}

	stats := ComputePeriodStats(BuildDailySummaries(ledger))

	assert.Equal(t, 1000.0, stats.Total.Revenue)
	assert.Equal(t, 500.0, stats.AvgDaily.Revenue)
	assert.Zero(t, stats.GrowthRate)
}

func TestComputePeriodStats_SingleDayHasZeroGrowth(t *testing.T) {
	stats := ComputePeriodStats([]models.DailySummary{{Date: "2024-01-01", TotalRevenue: 300}})

	assert.Zero(t, stats.GrowthRate)
	assert.Equal(t, 300.0, stats.AvgDaily.Revenue)
}

func TestComputePeriodStats_Empty(t *testing.T) {
	stats := ComputePeriodStats(nil)

	assert.Zero(t, stats.Days)
	assert.Zero(t, stats.Total.Revenue)
	assert.Zero(t, stats.AvgDaily.Revenue)
	assert.Zero(t, stats.GrowthRate)
}

func TestComputePeriodStats_OddCountEarlierHalfTakesRemainder(t *testing.T) {
	// descending: later half = [300], earlier half = [200, 100]
	summaries := []models.DailySummary{
		{Date: "2024-01-03", TotalRevenue: 300},
		{Date: "2024-01-02", TotalRevenue: 200},
		{Date: "2024-01-01", TotalRevenue: 100},
	}

	stats := ComputePeriodStats(summaries)

	assert.InDelta(t, 100.0, stats.GrowthRate, 1e-9)
}

func TestComputePeriodStats_ZeroBaseline(t *testing.T) {
	summaries := []models.DailySummary{
		{Date: "2024-01-02", TotalRevenue: 500},
		{Date: "2024-01-01", TotalRevenue: 0},
	}

	stats := ComputePeriodStats(summaries)

	assert.Zero(t, stats.GrowthRate)
}
