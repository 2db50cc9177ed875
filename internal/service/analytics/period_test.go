package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

var fixedNow = time.Date(2024, time.March, 31, 15, 30, 0, 0, time.UTC)

func summariesFor(dates ...string) []models.DailySummary {
	out := make([]models.DailySummary, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.DailySummary{Date: d, TotalRevenue: 10})
	}
	return out
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input    string
		expected Period
		wantErr  bool
	}{
		{input: "", expected: PeriodAll},
		{input: "all", expected: PeriodAll},
		{input: "7days", expected: PeriodLast7Days},
		{input: " 30DAYS ", expected: PeriodLast30Days},
		{input: "90days", expected: PeriodLast90Days},
		{input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPeriod_Label(t *testing.T) {
	assert.Equal(t, "Last 7 Days", PeriodLast7Days.Label())
	assert.Equal(t, "All Time", PeriodAll.Label())
	assert.Equal(t, "custom", Period("custom").Label())
}

func TestFilterByPeriod_AllIsIdentity(t *testing.T) {
	summaries := summariesFor("2020-01-01", "2019-06-30")

	assert.Equal(t, summaries, FilterByPeriod(summaries, PeriodAll, fixedNow))
}

func TestFilterByPeriod_Last7Days(t *testing.T) {
	summaries := summariesFor("2024-03-31", "2024-03-25", "2024-03-24", "2024-03-23", "2024-01-01")

	filtered := FilterByPeriod(summaries, PeriodLast7Days, fixedNow)

	require.Len(t, filtered, 3)
	assert.Equal(t, "2024-03-31", filtered[0].Date)
	assert.Equal(t, "2024-03-24", filtered[2].Date)
}

func TestFilterByPeriod_Last30And90Days(t *testing.T) {
	summaries := summariesFor("2024-03-01", "2024-02-29", "2024-01-01", "2023-12-31")

	assert.Len(t, FilterByPeriod(summaries, PeriodLast30Days, fixedNow), 1)
	assert.Len(t, FilterByPeriod(summaries, PeriodLast90Days, fixedNow), 3)
}

func TestFilterByPeriod_SkipsMalformedDates(t *testing.T) {
	summaries := summariesFor("2024-03-30", "not-a-date")

	filtered := FilterByPeriod(summaries, PeriodLast7Days, fixedNow)

	require.Len(t, filtered, 1)
	assert.Equal(t, "2024-03-30", filtered[0].Date)
}

func TestFilterByPeriod_DependsOnNow(t *testing.T) {
	summaries := summariesFor("2024-03-20")

	assert.Len(t, FilterByPeriod(summaries, PeriodLast7Days, fixedNow.AddDate(0, 0, -5)), 1)
	assert.Empty(t, FilterByPeriod(summaries, PeriodLast7Days, fixedNow))
}
