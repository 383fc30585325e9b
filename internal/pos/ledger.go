package pos

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// Errors returned by ledger mutations.
var (
	ErrNegativeStock    = errors.New("stock must be >= 0")
	ErrNegativeUnitCost = errors.New("unit_cost must be >= 0")
	ErrEmptyName        = errors.New("ingredient name is required")
)

// Ingredient is one stock row: current quantity on hand and the cost of one unit.
type Ingredient struct {
	Name     string
	Stock    decimal.Decimal
	UnitCost decimal.Decimal
}

// Ledger holds current stock and unit cost per ingredient, keyed by name for
// O(1) lookup. The mutex guards the validate-then-debit sequence in Process:
// without it, two concurrent orders could both pass validation against the
// same stock and jointly oversell it.
type Ledger struct {
	mu    sync.Mutex
	rows  map[string]*Ingredient
	names []string // insertion order, for stable listings and exports
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{rows: make(map[string]*Ingredient)}
}

// Upsert adds an ingredient row or overwrites the existing one with the same name.
func (l *Ledger) Upsert(ing Ingredient) error {
	if ing.Name == "" {
		return ErrEmptyName
	}
	if ing.Stock.IsNegative() {
		return ErrNegativeStock
	}
	if ing.UnitCost.IsNegative() {
		return ErrNegativeUnitCost
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.upsertLocked(ing)
	return nil
}

// Replace swaps the full ledger contents for the given rows.
// Used by the inventory edit endpoint and the persistence loader.
func (l *Ledger) Replace(rows []Ingredient) error {
	for _, ing := range rows {
		if ing.Name == "" {
			return ErrEmptyName
		}
		if ing.Stock.IsNegative() {
			return ErrNegativeStock
		}
		if ing.UnitCost.IsNegative() {
			return ErrNegativeUnitCost
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = make(map[string]*Ingredient, len(rows))
	l.names = l.names[:0]
	for _, ing := range rows {
		l.upsertLocked(ing)
	}
	return nil
}

func (l *Ledger) upsertLocked(ing Ingredient) {
	if existing, ok := l.rows[ing.Name]; ok {
		*existing = ing
		return
	}
	row := ing
	l.rows[ing.Name] = &row
	l.names = append(l.names, ing.Name)
}

// Get returns the current row for an ingredient.
func (l *Ledger) Get(name string) (Ingredient, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[name]
	if !ok {
		return Ingredient{}, false
	}
	return *row, true
}

// Rows returns a copy of every row in insertion order.
func (l *Ledger) Rows() []Ingredient {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Ingredient, 0, len(l.names))
	for _, name := range l.names {
		out = append(out, *l.rows[name])
	}
	return out
}

// LowStock returns the rows whose stock is below the given threshold,
// in insertion order.
func (l *Ledger) LowStock(threshold decimal.Decimal) []Ingredient {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Ingredient
	for _, name := range l.names {
		if l.rows[name].Stock.LessThan(threshold) {
			out = append(out, *l.rows[name])
		}
	}
	return out
}

// UnitCost returns the unit cost for an ingredient, or zero if the ledger
// has no row for it.
func (l *Ledger) UnitCost(name string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[name]
	if !ok {
		return decimal.Zero
	}
	return row.UnitCost
}

// debitLocked subtracts amount from an ingredient's stock. Callers must hold
// the ledger mutex and must have validated sufficiency first.
func (l *Ledger) debitLocked(name string, amount decimal.Decimal) {
	if row, ok := l.rows[name]; ok {
		row.Stock = row.Stock.Sub(amount)
	}
}

// availableLocked reads an ingredient's stock. Callers must hold the ledger mutex.
// Missing rows read as zero stock, which validation reports as a shortfall.
func (l *Ledger) availableLocked(name string) decimal.Decimal {
	if row, ok := l.rows[name]; ok {
		return row.Stock
	}
	return decimal.Zero
}
