package entities

// ProductCosts is the fixed per-unit production cost in PKR, keyed by catalog
// product name. Profit analytics derive cost as unit cost times quantity.
//
// Items sold under names outside this map get a zero cost and are reported in
// SalesMetrics.UncostedItems instead of being dropped.
var ProductCosts = map[string]float64{
	"Classic Tumbler": 1850,
	"Can Glass":       1250,
	"Coffee Mug":      1500,
}

// CatalogCost returns the unit cost for a product name and whether the name
// is part of the catalog.
func CatalogCost(itemName string) (float64, bool) {
	c, ok := ProductCosts[itemName]
	return c, ok
}
