package store

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fnb-control/api/internal/pos"
)

// seedHistoryDays is how many days of mock sales the generated dataset carries.
const seedHistoryDays = 30

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedCatalog returns the built-in menu and recipes. The catalog is static:
// loaded once, never mutated by orders.
func SeedCatalog() *pos.Catalog {
	return pos.NewCatalog(
		[]string{"Burger", "Fries", "Drink", "Chicken Wrap", "Pizza"},
		map[string]pos.Recipe{
			"Burger":       {"Beef": d("1"), "Bun": d("1"), "Lettuce": d("0.1"), "Tomato": d("0.1"), "Cheese": d("0.2"), "Oil": d("0.05")},
			"Fries":        {"Oil": d("0.1"), "Potato": d("0.5")},
			"Drink":        {"Syrup": d("0.1"), "Water": d("0.3")},
			"Chicken Wrap": {"Chicken": d("0.3"), "Bun": d("1"), "Lettuce": d("0.1"), "Tomato": d("0.1"), "Oil": d("0.05")},
			"Pizza":        {"Cheese": d("0.3"), "Tomato": d("0.2"), "Dough": d("0.5"), "Oil": d("0.05")},
		},
	)
}

// SeedLedger returns the default opening stock and unit costs.
func SeedLedger() []pos.Ingredient {
	return []pos.Ingredient{
		{Name: "Beef", Stock: d("100"), UnitCost: d("150")},
		{Name: "Bun", Stock: d("200"), UnitCost: d("20")},
		{Name: "Lettuce", Stock: d("50"), UnitCost: d("10")},
		{Name: "Tomato", Stock: d("60"), UnitCost: d("8")},
		{Name: "Oil", Stock: d("30"), UnitCost: d("50")},
		{Name: "Cheese", Stock: d("40"), UnitCost: d("25")},
		{Name: "Chicken", Stock: d("80"), UnitCost: d("120")},
		{Name: "Potato", Stock: d("100"), UnitCost: d("5")},
		{Name: "Syrup", Stock: d("50"), UnitCost: d("2")},
		{Name: "Water", Stock: d("50"), UnitCost: d("1")},
		{Name: "Dough", Stock: d("50"), UnitCost: d("15")},
	}
}

// SeedHistory generates seedHistoryDays of mock sales ending yesterday,
// one record per day with 10-49 units per menu item.
func SeedHistory(catalog *pos.Catalog) []pos.SalesRecord {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().Truncate(24 * time.Hour)

	records := make([]pos.SalesRecord, seedHistoryDays)
	for i := range records {
		quantities := make(map[string]int)
		for _, item := range catalog.Items() {
			quantities[item] = 10 + rng.Intn(40)
		}
		records[i] = pos.SalesRecord{
			Date:       today.AddDate(0, 0, i-seedHistoryDays),
			Quantities: quantities,
		}
	}
	return records
}
