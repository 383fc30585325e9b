package pos

import "github.com/shopspring/decimal"

// Recipe maps ingredient name to the amount consumed per unit sold.
type Recipe map[string]decimal.Decimal

// Catalog is the static menu item to recipe mapping. It is loaded once at
// startup and never mutated by orders. Menu items may appear without a recipe;
// such items consume no ingredients.
type Catalog struct {
	items   []string
	recipes map[string]Recipe
}

// NewCatalog builds a catalog from an ordered menu item list and their recipes.
// Recipes for items not in the menu list are ignored.
func NewCatalog(items []string, recipes map[string]Recipe) *Catalog {
	c := &Catalog{
		items:   make([]string, len(items)),
		recipes: make(map[string]Recipe, len(recipes)),
	}
	copy(c.items, items)
	for _, item := range items {
		if r, ok := recipes[item]; ok {
			c.recipes[item] = r
		}
	}
	return c
}

// Items returns the menu items in catalog order.
func (c *Catalog) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// Has reports whether the menu item exists in the catalog at all.
func (c *Catalog) Has(item string) bool {
	for _, it := range c.items {
		if it == item {
			return true
		}
	}
	return false
}

// Recipe returns the recipe for a menu item. The second return is false for
// items with no recipe entry.
func (c *Catalog) Recipe(item string) (Recipe, bool) {
	r, ok := c.recipes[item]
	return r, ok
}
