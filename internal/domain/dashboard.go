package domain

import "github.com/shopspring/decimal"

// DateRange is the optional dashboard window applied uniformly to sales
// (by sale date) and expenses (by interval overlap). A nil bound is open.
type DateRange struct {
	From *Date
	To   *Date
}

// Contains reports whether day falls inside the inclusive range.
func (r DateRange) Contains(day Date) bool {
	if r.From != nil && day.Time.Before(r.From.Time) {
		return false
	}
	if r.To != nil && day.Time.After(r.To.Time) {
		return false
	}
	return true
}

// DailySalesPoint is one day of the sales-count series.
type DailySalesPoint struct {
	Date  Date `json:"date"`
	Count int  `json:"count"`
}

// ProductProfit is one row of the per-product profit breakdown.
type ProductProfit struct {
	Product string          `json:"product"`
	Profit  decimal.Decimal `json:"profit"`
}

// DashboardSnapshot is the derived dashboard view over the sale and expense
// ledgers for a window. It is computed on demand and never persisted.
type DashboardSnapshot struct {
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TotalLoss     decimal.Decimal `json:"total_loss"`
	TotalAdSpend  decimal.Decimal `json:"total_ad_spend"`
	UnitsSold     int             `json:"units_sold"`
	UnitsReturned int             `json:"units_returned"`
	// DailySales covers the 7 most recent calendar days ending at the
	// window's upper bound (today when unbounded), oldest first,
	// including zero-sale days.
	DailySales []DailySalesPoint `json:"daily_sales"`
	// ProfitByProduct is ordered by descending summed profit, ties in
	// first-seen order.
	ProfitByProduct []ProductProfit `json:"profit_by_product"`
}
