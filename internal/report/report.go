// Package report aggregates the sales history into the dashboard's reporting
// views: per-record item sales, total sales, and profit at the fixed 50%
// markup over recipe cost. All functions are pure reads.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fnb-control/api/internal/pos"
)

// SalesRow is one sales record with its total units sold.
type SalesRow struct {
	Date       time.Time
	Quantities map[string]int
	TotalUnits int
}

// ProfitRow is one sales record's computed profit.
type ProfitRow struct {
	Date   time.Time
	Profit decimal.Decimal
}

// Sales returns per-record item quantities and total units, in history order.
func Sales(records []pos.SalesRecord, catalog *pos.Catalog) []SalesRow {
	rows := make([]SalesRow, len(records))
	for i, rec := range records {
		total := 0
		quantities := make(map[string]int, len(rec.Quantities))
		for _, item := range catalog.Items() {
			qty := rec.Quantities[item]
			quantities[item] = qty
			total += qty
		}
		rows[i] = SalesRow{Date: rec.Date, Quantities: quantities, TotalUnits: total}
	}
	return rows
}

// Profit returns per-record profit: for every item sold, quantity times unit
// profit at the fixed markup, computed against current ledger unit costs.
func Profit(records []pos.SalesRecord, catalog *pos.Catalog, ledger *pos.Ledger) []ProfitRow {
	// Unit profit per item is constant across records; compute it once.
	unitProfit := make(map[string]decimal.Decimal)
	for _, item := range catalog.Items() {
		unitProfit[item] = pos.UnitProfit(item, catalog, ledger)
	}

	rows := make([]ProfitRow, len(records))
	for i, rec := range records {
		profit := decimal.Zero
		for _, item := range catalog.Items() {
			qty := rec.Quantities[item]
			if qty == 0 {
				continue
			}
			profit = profit.Add(unitProfit[item].Mul(decimal.NewFromInt(int64(qty))))
		}
		rows[i] = ProfitRow{Date: rec.Date, Profit: profit}
	}
	return rows
}
