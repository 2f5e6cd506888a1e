package response

import "tumblecup_admin/internal/domain/entities"

// AnalyticsResponse is the analytics-tab payload: the confirmed-sales
// rollup, distribution counts over the filtered set, and the cost/profit
// ratio figures.
type AnalyticsResponse struct {
	TotalSales  float64 `json:"total_sales"`
	TotalCosts  float64 `json:"total_costs"`
	TotalProfit float64 `json:"total_profit"`

	ProductBreakdown []entities.ProductBreakdownRow `json:"product_breakdown"`
	StyleBreakdown   []entities.StyleBreakdownRow   `json:"style_breakdown"`
	UncostedItems    []string                       `json:"uncosted_items,omitempty"`

	StatusDistribution  map[string]int `json:"status_distribution"`
	PaymentDistribution map[string]int `json:"payment_distribution"`

	CostPct   float64 `json:"cost_pct"`
	ProfitPct float64 `json:"profit_pct"`

	StyleContribution []entities.StyleContributionRow `json:"style_contribution,omitempty"`
}

func FromAnalyticsReport(r entities.AnalyticsReport) AnalyticsResponse {
	statusDist := make(map[string]int, len(r.StatusDistribution))
	for k, v := range r.StatusDistribution {
		statusDist[string(k)] = v
	}
	paymentDist := make(map[string]int, len(r.PaymentDistribution))
	for k, v := range r.PaymentDistribution {
		paymentDist[string(k)] = v
	}

	return AnalyticsResponse{
		TotalSales:          r.Metrics.TotalSales,
		TotalCosts:          r.Metrics.TotalCosts,
		TotalProfit:         r.Metrics.TotalProfit,
		ProductBreakdown:    r.Metrics.ProductBreakdown,
		StyleBreakdown:      r.Metrics.StyleBreakdown,
		UncostedItems:       r.Metrics.UncostedItems,
		StatusDistribution:  statusDist,
		PaymentDistribution: paymentDist,
		CostPct:             r.CostPct,
		ProfitPct:           r.ProfitPct,
		StyleContribution:   r.StyleContribution,
	}
}
