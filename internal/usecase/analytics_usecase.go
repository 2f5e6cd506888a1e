package usecase

import (
	"context"
	"sort"
	"strings"

	"tumblecup_admin/internal/domain/entities"
	"tumblecup_admin/pkg/logger"
)

// IAnalyticsUseCase exposes the sales/profit analytics over the filtered
// order set.

type IAnalyticsUseCase interface {
	Analytics(ctx context.Context, f Filters) (entities.AnalyticsReport, error)
}

type AnalyticsUseCase struct {
	orders IOrderUseCase
	logger logger.Logger
}

var _ IAnalyticsUseCase = (*AnalyticsUseCase)(nil)

func NewAnalyticsUseCase(orders IOrderUseCase, log logger.Logger) *AnalyticsUseCase {
	return &AnalyticsUseCase{orders: orders, logger: log}
}

// Analytics lists the filtered order set, restricts the rollup to confirmed
// payments, and derives distribution and contribution figures over it.
func (u *AnalyticsUseCase) Analytics(ctx context.Context, f Filters) (entities.AnalyticsReport, error) {
	orders, err := u.orders.List(ctx, f)
	if err != nil {
		return entities.AnalyticsReport{}, err
	}

	confirmed := entities.Filter(orders, entities.PaymentConfirmedOnly())
	metrics := CalculateMetrics(confirmed)
	if len(metrics.UncostedItems) > 0 {
		u.logger.Warn("items missing from the cost catalog contribute zero cost",
			"items", strings.Join(metrics.UncostedItems, ", "))
	}

	report := entities.AnalyticsReport{
		Metrics:             metrics,
		StatusDistribution:  statusDistribution(orders),
		PaymentDistribution: paymentDistribution(orders),
		StyleContribution:   styleContribution(metrics.StyleBreakdown),
	}
	if metrics.TotalSales > 0 {
		report.CostPct = metrics.TotalCosts / metrics.TotalSales * 100
		report.ProfitPct = metrics.TotalProfit / metrics.TotalSales * 100
	}
	return report, nil
}

// CalculateMetrics computes the cost/profit rollup over orders the caller
// has already filtered to confirmed payments. It never fails: empty or
// incomplete input degrades to zero totals and empty breakdowns.
//
// Per line: cost = catalog unit cost * quantity, profit = line total - cost.
// Items missing from the catalog contribute zero cost and are listed in
// UncostedItems.
func CalculateMetrics(orders []entities.Order) entities.SalesMetrics {
	metrics := entities.SalesMetrics{
		ProductBreakdown: []entities.ProductBreakdownRow{},
		StyleBreakdown:   []entities.StyleBreakdownRow{},
	}
	if len(orders) == 0 {
		return metrics
	}

	products := make(map[string]*entities.ProductBreakdownRow)
	type styleKey struct{ style, item string }
	styles := make(map[styleKey]*entities.StyleBreakdownRow)
	uncosted := make(map[string]struct{})

	for _, o := range orders {
		unitCost, known := entities.CatalogCost(o.ItemName)
		if !known {
			uncosted[o.ItemName] = struct{}{}
		}
		cost := unitCost * float64(o.Quantity)
		profit := o.Total - cost

		metrics.TotalSales += o.Price
		metrics.TotalCosts += cost
		metrics.TotalProfit += profit

		row, ok := products[o.ItemName]
		if !ok {
			row = &entities.ProductBreakdownRow{ItemName: o.ItemName}
			products[o.ItemName] = row
		}
		row.Quantity += o.Quantity
		row.BasePrice += o.BasePrice
		row.Cost += cost
		row.Profit += profit

		if entities.IsCustomStyle(o.ItemStyle) {
			key := styleKey{style: o.ItemStyle, item: o.ItemName}
			srow, ok := styles[key]
			if !ok {
				srow = &entities.StyleBreakdownRow{Style: o.ItemStyle, ItemName: o.ItemName}
				styles[key] = srow
			}
			srow.Quantity += o.Quantity
			srow.BasePrice += o.BasePrice
			srow.Cost += cost
			srow.Total += o.Total
			srow.Profit += profit
		}
	}

	for _, row := range products {
		metrics.ProductBreakdown = append(metrics.ProductBreakdown, *row)
	}
	sort.Slice(metrics.ProductBreakdown, func(i, j int) bool {
		return metrics.ProductBreakdown[i].ItemName < metrics.ProductBreakdown[j].ItemName
	})

	for _, row := range styles {
		metrics.StyleBreakdown = append(metrics.StyleBreakdown, *row)
	}
	sort.Slice(metrics.StyleBreakdown, func(i, j int) bool {
		a, b := metrics.StyleBreakdown[i], metrics.StyleBreakdown[j]
		if a.Style != b.Style {
			return a.Style < b.Style
		}
		return a.ItemName < b.ItemName
	})

	for name := range uncosted {
		metrics.UncostedItems = append(metrics.UncostedItems, name)
	}
	sort.Strings(metrics.UncostedItems)

	return metrics
}

func statusDistribution(orders []entities.Order) map[entities.OrderStatus]int {
	dist := make(map[entities.OrderStatus]int)
	for _, o := range orders {
		dist[o.Status]++
	}
	return dist
}

func paymentDistribution(orders []entities.Order) map[entities.PaymentStatus]int {
	dist := make(map[entities.PaymentStatus]int)
	for _, o := range orders {
		dist[o.PaymentStatus]++
	}
	return dist
}

// styleContribution collapses the style breakdown per style and derives
// profit-per-item plus each style's share of slice profit and quantity.
func styleContribution(rows []entities.StyleBreakdownRow) []entities.StyleContributionRow {
	if len(rows) == 0 {
		return nil
	}

	byStyle := make(map[string]*entities.StyleContributionRow)
	var totalProfit float64
	var totalQuantity int
	for _, r := range rows {
		row, ok := byStyle[r.Style]
		if !ok {
			row = &entities.StyleContributionRow{Style: r.Style}
			byStyle[r.Style] = row
		}
		row.Quantity += r.Quantity
		row.Profit += r.Profit
		totalProfit += r.Profit
		totalQuantity += r.Quantity
	}

	out := make([]entities.StyleContributionRow, 0, len(byStyle))
	for _, row := range byStyle {
		if row.Quantity > 0 {
			row.ProfitPerItem = row.Profit / float64(row.Quantity)
		}
		if totalProfit != 0 {
			row.ProfitPct = row.Profit / totalProfit * 100
		}
		if totalQuantity > 0 {
			row.QuantityPct = float64(row.Quantity) / float64(totalQuantity) * 100
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Style < out[j].Style })
	return out
}
