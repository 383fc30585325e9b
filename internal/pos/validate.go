package pos

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Shortfall describes one ingredient's insufficiency for one menu item in an
// order: the order needs Required of the ingredient but only Available is in
// stock.
type Shortfall struct {
	Ingredient string
	MenuItem   string
	Required   decimal.Decimal
	Available  decimal.Decimal
}

// ValidationResult is the outcome of checking an order against the ledger.
// The order is accepted iff Shortfalls is empty. Warnings lists menu items
// that have no recipe in the catalog; they pass validation as consuming
// nothing, but the miss is surfaced so a catalog typo does not hide behind a
// silently free sale.
type ValidationResult struct {
	Shortfalls []Shortfall
	Warnings   []string
}

// Accepted reports whether the order can be fulfilled from current stock.
func (r ValidationResult) Accepted() bool {
	return len(r.Shortfalls) == 0
}

// Validate checks an order against current stock. It is a pure check: no
// mutation, and no short-circuit: every shortfall is accumulated so the
// caller can correct the whole order in one pass. Lines with quantity zero
// are ignored.
func Validate(order Order, ledger *Ledger, catalog *Catalog) ValidationResult {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return validateLocked(order, ledger, catalog)
}

// validateLocked is Validate for callers already holding the ledger mutex.
// Process uses it so validation and the debit set form one critical section.
func validateLocked(order Order, ledger *Ledger, catalog *Catalog) ValidationResult {
	var result ValidationResult

	for _, item := range orderedItems(order) {
		qty := order.Lines[item]
		if qty <= 0 {
			continue
		}

		recipe, ok := catalog.Recipe(item)
		if !ok {
			// No recipe: the item consumes no ingredients and always passes.
			result.Warnings = append(result.Warnings, item)
			continue
		}

		for _, ingredient := range orderedIngredients(recipe) {
			required := recipe[ingredient].Mul(decimal.NewFromInt(int64(qty)))
			available := ledger.availableLocked(ingredient)
			if required.GreaterThan(available) {
				result.Shortfalls = append(result.Shortfalls, Shortfall{
					Ingredient: ingredient,
					MenuItem:   item,
					Required:   required,
					Available:  available,
				})
			}
		}
	}

	return result
}

// orderedItems returns the order's menu items sorted by name so validation
// results are deterministic regardless of map iteration order.
func orderedItems(order Order) []string {
	items := make([]string, 0, len(order.Lines))
	for item := range order.Lines {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// orderedIngredients returns a recipe's ingredient names sorted.
func orderedIngredients(recipe Recipe) []string {
	ingredients := make([]string, 0, len(recipe))
	for name := range recipe {
		ingredients = append(ingredients, name)
	}
	sort.Strings(ingredients)
	return ingredients
}
