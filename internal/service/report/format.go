package report

import (
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

const (
	// DefaultCurrency is the glyph prefixed to every monetary value.
	DefaultCurrency = "₦"

	missingValue   = "—"
	longDateLayout = "Monday, January 2, 2006"
	minBarPercent  = 4
	maxLabelRunes  = 28
)

// formatMoney groups thousands and fixes the number of decimals.
// Non-finite values render as a dash.
func formatMoney(symbol string, value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return missingValue
	}

	rounded := decimal.NewFromFloat(value).Round(int32(decimals)).InexactFloat64()
	p := message.NewPrinter(language.English)
	return symbol + p.Sprint(number.Decimal(rounded, number.Scale(decimals)))
}

func formatCount(value int) string {
	return strconv.Itoa(value)
}

func formatGrowth(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return missingValue
	}
	sign := ""
	if rate >= 0 {
		sign = "+"
	}
	return sign + strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

func formatLongDate(t time.Time) string {
	return t.Format(longDateLayout)
}

// formatISODate reformats a ledger date with layout, returning the input
// unchanged when it does not parse.
func formatISODate(value, layout string) string {
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format(layout)
}

// barPercent scales value against the largest value of its set. The result
// never drops below minBarPercent so zero rows stay visible.
func barPercent(value, maxValue float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return minBarPercent
	}
	pct := int(math.Round(value / math.Max(1, maxValue) * 100))
	if pct < minBarPercent {
		return minBarPercent
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
