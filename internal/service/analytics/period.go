package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

// ErrUnknownPeriod indicates a period value outside the supported set.
var ErrUnknownPeriod = errors.New("unknown period")

// Period is a named date window applied to daily summaries.
type Period string

const (
	PeriodAll        Period = "all"
	PeriodLast7Days  Period = "7days"
	PeriodLast30Days Period = "30days"
	PeriodLast90Days Period = "90days"
)

var periodDays = map[Period]int{
	PeriodLast7Days:  7,
	PeriodLast30Days: 30,
	PeriodLast90Days: 90,
}

var periodLabels = map[Period]string{
	PeriodAll:        "All Time",
	PeriodLast7Days:  "Last 7 Days",
	PeriodLast30Days: "Last 30 Days",
	PeriodLast90Days: "Last 90 Days",
}

// ParsePeriod maps a wire value to a Period. The empty string means PeriodAll.
func ParsePeriod(value string) (Period, error) {
	normalized := Period(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return PeriodAll, nil
	}
	if _, ok := periodLabels[normalized]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, value)
	}
	return normalized, nil
}

// Days returns the window length, or 0 for PeriodAll.
func (p Period) Days() int {
	return periodDays[p]
}

// Label returns the human readable name, falling back to the raw value.
func (p Period) Label() string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	return string(p)
}

// FilterByPeriod keeps the summaries dated on or after the start of the day
// N days before now. PeriodAll returns the input unchanged.
func FilterByPeriod(summaries []models.DailySummary, period Period, now time.Time) []models.DailySummary {
	days := period.Days()
	if days == 0 {
		return summaries
	}

	loc := now.Location()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -days)

	filtered := make([]models.DailySummary, 0, len(summaries))
	for _, summary := range summaries {
		date, err := time.ParseInLocation(models.DateLayout, summary.Date, loc)
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			filtered = append(filtered, summary)
		}
	}
	return filtered
}
