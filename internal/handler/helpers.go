package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/fnb-control/api/internal/pos"
)

// StateSaver persists the ledger and sales history after successful
// mutations. Satisfied by *store.Store; narrow interface for testability.
type StateSaver interface {
	SaveLedger(ledger *pos.Ledger) error
	SaveHistory(history *pos.History, catalog *pos.Catalog) error
}

// TicketNotifier pushes ticket and stock events to the kitchen displays.
// Satisfied by *ws.Notifier; narrow interface for testability.
type TicketNotifier interface {
	TicketCreated(t pos.Ticket)
	TicketCompleted(t pos.Ticket)
	LowStock(rows []pos.Ingredient)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
