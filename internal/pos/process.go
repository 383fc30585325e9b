package pos

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RejectedError carries the complete shortfall set for a rejected order.
// Rejection is a full no-op: ledger, history, and queue are untouched.
type RejectedError struct {
	Shortfalls []Shortfall
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("insufficient stock: %d shortfall(s)", len(e.Shortfalls))
}

// ProcessResult is the outcome of an accepted order.
type ProcessResult struct {
	Record   SalesRecord
	Ticket   Ticket
	Warnings []string // menu items sold without a catalog recipe
}

// BatchItem is the per-order outcome of a batch submission. Exactly one of
// Result and Err is set.
type BatchItem struct {
	Result *ProcessResult
	Err    error
}

// Processor runs the order-fulfillment transaction: validate against the
// ledger, debit stock, append a sales record, enqueue a kitchen ticket.
type Processor struct {
	state *State

	now func() time.Time
}

// NewProcessor creates a Processor borrowing the given session state.
func NewProcessor(state *State) *Processor {
	return &Processor{state: state, now: time.Now}
}

// Process validates and fulfills one order.
//
// On rejection it returns a *RejectedError with every shortfall and performs
// no side effect. On acceptance it debits each touched ingredient by exactly
// recipe_amount * order_quantity, appends exactly one sales record (zeros
// included for untouched menu items), and enqueues exactly one pending
// kitchen ticket with the non-zero lines.
//
// Validation and the debit set run under the ledger mutex as one critical
// section, so a concurrent order can never pass validation against stock
// this order is about to consume.
func (p *Processor) Process(order Order) (*ProcessResult, error) {
	if err := order.Check(); err != nil {
		return nil, err
	}

	ledger, catalog := p.state.Ledger, p.state.Catalog

	ledger.mu.Lock()
	validation := validateLocked(order, ledger, catalog)
	if !validation.Accepted() {
		ledger.mu.Unlock()
		return nil, &RejectedError{Shortfalls: validation.Shortfalls}
	}

	// Validation guaranteed sufficiency for every ingredient, so no debit in
	// this set can drive stock negative.
	for _, item := range orderedItems(order) {
		qty := order.Lines[item]
		if qty <= 0 {
			continue
		}
		recipe, ok := catalog.Recipe(item)
		if !ok {
			continue
		}
		for _, ingredient := range orderedIngredients(recipe) {
			amount := recipe[ingredient].Mul(decimal.NewFromInt(int64(qty)))
			ledger.debitLocked(ingredient, amount)
		}
	}
	ledger.mu.Unlock()

	at := p.now()
	record := SalesRecord{
		Date:       at,
		Quantities: make(map[string]int, len(catalog.items)),
	}
	for _, item := range catalog.Items() {
		record.Quantities[item] = order.Lines[item]
	}
	p.state.History.Append(record)

	var lines []TicketLine
	for _, item := range orderedItems(order) {
		if qty := order.Lines[item]; qty > 0 {
			lines = append(lines, TicketLine{MenuItem: item, Quantity: qty})
		}
	}
	ticket := p.state.Tickets.Enqueue(lines, at)

	return &ProcessResult{
		Record:   record,
		Ticket:   ticket,
		Warnings: validation.Warnings,
	}, nil
}

// ProcessBatch fulfills each order independently, in submission order. A
// later order sees the ledger state left by all earlier orders in the batch;
// running out of stock part-way through rejects only the orders that
// individually fail, never the whole batch.
func (p *Processor) ProcessBatch(orders []Order) []BatchItem {
	out := make([]BatchItem, len(orders))
	for i, order := range orders {
		result, err := p.Process(order)
		out[i] = BatchItem{Result: result, Err: err}
	}
	return out
}
