package models

// SalesReportRequest is the payload of the single-day export endpoints.
type SalesReportRequest struct {
	CurrentDate string              `json:"currentDate" binding:"required"`
	Products    []ProductSaleRecord `json:"products"`
}

// AnalyticsReportRequest is the payload of the multi-day export endpoints.
// It carries already-aggregated data only, never the ledger.
type AnalyticsReportRequest struct {
	SelectedPeriod string          `json:"selectedPeriod"`
	Summaries      []DailySummary  `json:"summaries"`
	TopProducts    []ProductRollup `json:"topProducts"`
}
