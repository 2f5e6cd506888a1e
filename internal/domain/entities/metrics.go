package entities

// ProductBreakdownRow aggregates confirmed sales for one catalog product.
type ProductBreakdownRow struct {
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	BasePrice float64 `json:"base_price"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
}

// StyleBreakdownRow aggregates the custom/hand-painted slice, grouped by
// (style, item name).
type StyleBreakdownRow struct {
	Style     string  `json:"style"`
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	BasePrice float64 `json:"base_price"`
	Cost      float64 `json:"cost"`
	Total     float64 `json:"total"`
	Profit    float64 `json:"profit"`
}

// SalesMetrics is the cost/profit rollup over a set of confirmed orders.
//
// An empty input yields zero totals and empty breakdowns; incomplete data
// degrades to zeroes rather than errors. UncostedItems lists distinct item
// names that are missing from the cost catalog, so a zero cost is visible
// instead of silently inflating profit.
type SalesMetrics struct {
	TotalSales  float64 `json:"total_sales"`
	TotalCosts  float64 `json:"total_costs"`
	TotalProfit float64 `json:"total_profit"`

	ProductBreakdown []ProductBreakdownRow `json:"product_breakdown"`
	StyleBreakdown   []StyleBreakdownRow   `json:"style_breakdown"`

	UncostedItems []string `json:"uncosted_items,omitempty"`
}

// StyleContributionRow compares custom/hand-painted styles against each
// other: profit per item plus each style's share of slice profit and volume.
type StyleContributionRow struct {
	Style         string  `json:"style"`
	Quantity      int     `json:"quantity"`
	Profit        float64 `json:"profit"`
	ProfitPerItem float64 `json:"profit_per_item"`
	ProfitPct     float64 `json:"profit_pct"`
	QuantityPct   float64 `json:"quantity_pct"`
}

// AnalyticsReport is the full analytics-tab payload: the confirmed-sales
// rollup plus status distributions and ratio figures over the filtered set.
type AnalyticsReport struct {
	Metrics SalesMetrics `json:"metrics"`

	StatusDistribution  map[OrderStatus]int   `json:"status_distribution"`
	PaymentDistribution map[PaymentStatus]int `json:"payment_distribution"`

	// Cost and profit as a percentage of total sales; zero when there are no
	// sales.
	CostPct   float64 `json:"cost_pct"`
	ProfitPct float64 `json:"profit_pct"`

	StyleContribution []StyleContributionRow `json:"style_contribution,omitempty"`
}
