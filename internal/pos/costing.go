package pos

import "github.com/shopspring/decimal"

// Sale price is a fixed 50% markup over recipe cost: price = 1.5x cost,
// so profit per unit sold = 0.5x cost.
var (
	priceFactor  = decimal.NewFromFloat(1.5)
	profitFactor = decimal.NewFromFloat(0.5)
)

// UnitCost returns the ingredient cost of one unit of a menu item: the sum
// over its recipe of ingredient unit cost times required amount. Pure
// function of the catalog and the ledger's current unit costs. Items without
// a recipe cost zero.
func UnitCost(item string, catalog *Catalog, ledger *Ledger) decimal.Decimal {
	recipe, ok := catalog.Recipe(item)
	if !ok {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, ingredient := range orderedIngredients(recipe) {
		total = total.Add(ledger.UnitCost(ingredient).Mul(recipe[ingredient]))
	}
	return total
}

// UnitPrice returns the sale price of one unit at the fixed markup.
func UnitPrice(item string, catalog *Catalog, ledger *Ledger) decimal.Decimal {
	return UnitCost(item, catalog, ledger).Mul(priceFactor)
}

// UnitProfit returns the profit on one unit sold at the fixed markup.
func UnitProfit(item string, catalog *Catalog, ledger *Ledger) decimal.Decimal {
	return UnitCost(item, catalog, ledger).Mul(profitFactor)
}
