package pos

import (
	"sync"
	"time"
)

// SalesRecord is one fulfilled order: the quantity sold of every menu item,
// zeros included so every record carries the same columns as the persisted
// sales table. Records are never mutated after creation.
type SalesRecord struct {
	Date       time.Time
	Quantities map[string]int
}

// History is the append-only record of fulfilled orders, consumed by the
// reporting and forecast collaborators.
type History struct {
	mu      sync.Mutex
	records []SalesRecord
}

// NewHistory creates an empty sales history.
func NewHistory() *History {
	return &History{}
}

// Append adds one record. Records are kept in append order, which for normal
// operation is chronological.
func (h *History) Append(rec SalesRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
}

// Records returns a copy of all records in append order.
func (h *History) Records() []SalesRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]SalesRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Series returns the ordered per-record quantities for one menu item, as
// floats for the forecast collaborator.
func (h *History) Series(item string) []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]float64, len(h.records))
	for i, rec := range h.records {
		out[i] = float64(rec.Quantities[item])
	}
	return out
}

// LastDate returns the date of the most recent record, or the zero time for
// an empty history.
func (h *History) LastDate() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.records) == 0 {
		return time.Time{}
	}
	return h.records[len(h.records)-1].Date
}
