package models

// DailySummary is the per-date aggregate derived from a ledger entry.
type DailySummary struct {
	Date              string  `json:"date" bson:"date"`
	TotalRevenue      float64 `json:"totalRevenue" bson:"total_revenue"`
	TotalProducts     int     `json:"totalProducts" bson:"total_products"`
	TotalUnitsSold    int     `json:"totalUnitsSold" bson:"total_units_sold"`
	TopProduct        string  `json:"topProduct" bson:"top_product"`
	TopProductRevenue float64 `json:"topProductRevenue" bson:"top_product_revenue"`
}

// ProductRollup aggregates every record sharing a product name across dates.
// AveragePrice is nil when the product has no units sold.
type ProductRollup struct {
	ProductName    string   `json:"productName"`
	TotalRevenue   float64  `json:"totalRevenue"`
	TotalUnitsSold int      `json:"totalUnitsSold"`
	AveragePrice   *float64 `json:"averagePrice"`
	Appearances    int      `json:"appearances"`
	LastSold       string   `json:"lastSold"`
}

// Totals holds revenue, product and unit figures for a window.
type Totals struct {
	Revenue  float64 `json:"revenue"`
	Products float64 `json:"products"`
	Units    float64 `json:"units"`
}

// PeriodStats summarizes a filtered set of daily summaries.
type PeriodStats struct {
	Days       int     `json:"days"`
	Total      Totals  `json:"total"`
	AvgDaily   Totals  `json:"avgDaily"`
	GrowthRate float64 `json:"growthRate"`
}

// Dashboard is the analytics view served to clients.
type Dashboard struct {
	Period      string          `json:"period"`
	Summaries   []DailySummary  `json:"summaries"`
	TopProducts []ProductRollup `json:"topProducts"`
	Stats       PeriodStats     `json:"stats"`
}
