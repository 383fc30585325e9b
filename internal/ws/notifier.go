package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fnb-control/api/internal/pos"
)

// Notifier converts ticket and stock events into hub broadcasts. Handlers
// hold it behind narrow interfaces so they never touch the hub directly.
type Notifier struct {
	hub *Hub
}

// NewNotifier creates a Notifier over the given hub.
func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

type ticketPayload struct {
	ID        uuid.UUID    `json:"id"`
	Status    string       `json:"status"`
	Lines     []ticketLine `json:"lines"`
	CreatedAt time.Time    `json:"created_at"`
}

type ticketLine struct {
	MenuItem string `json:"menu_item"`
	Quantity int    `json:"quantity"`
}

type lowStockPayload struct {
	Ingredients []lowStockRow `json:"ingredients"`
}

type lowStockRow struct {
	Name  string `json:"name"`
	Stock string `json:"stock"`
}

// TicketCreated announces a new pending ticket to the kitchen displays.
func (n *Notifier) TicketCreated(t pos.Ticket) {
	n.send(EventTicketCreated, toTicketPayload(t))
}

// TicketCompleted announces a ticket leaving the queue.
func (n *Notifier) TicketCompleted(t pos.Ticket) {
	n.send(EventTicketCompleted, toTicketPayload(t))
}

// LowStock announces ingredients that dropped below the alert threshold.
func (n *Notifier) LowStock(rows []pos.Ingredient) {
	payload := lowStockPayload{Ingredients: make([]lowStockRow, len(rows))}
	for i, row := range rows {
		payload.Ingredients[i] = lowStockRow{Name: row.Name, Stock: row.Stock.String()}
	}
	n.send(EventLowStock, payload)
}

func (n *Notifier) send(eventType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: marshal %s payload: %v", eventType, err)
		return
	}
	n.hub.Broadcast(Event{Type: eventType, Payload: raw})
}

func toTicketPayload(t pos.Ticket) ticketPayload {
	p := ticketPayload{
		ID:        t.ID,
		Status:    t.Status,
		Lines:     make([]ticketLine, len(t.Lines)),
		CreatedAt: t.CreatedAt,
	}
	for i, line := range t.Lines {
		p.Lines[i] = ticketLine{MenuItem: line.MenuItem, Quantity: line.Quantity}
	}
	return p
}
