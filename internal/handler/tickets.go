package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fnb-control/api/internal/pos"
)

// TicketQueue defines the queue methods needed by ticket handlers.
// Satisfied by *pos.TicketQueue; narrow interface for testability.
type TicketQueue interface {
	Pending() []pos.Ticket
	Complete(id uuid.UUID) (pos.Ticket, error)
}

// TicketHandler handles kitchen ticket endpoints.
type TicketHandler struct {
	queue  TicketQueue
	notify TicketNotifier
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(queue TicketQueue, notify TicketNotifier) *TicketHandler {
	return &TicketHandler{queue: queue, notify: notify}
}

// RegisterRoutes registers ticket endpoints on the given Chi router.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/{id}/complete", h.Complete)
}

// --- Response types ---

type ticketResponse struct {
	ID        uuid.UUID            `json:"id"`
	Status    string               `json:"status"`
	Lines     []ticketLineResponse `json:"lines"`
	CreatedAt time.Time            `json:"created_at"`
}

type ticketLineResponse struct {
	MenuItem string `json:"menu_item"`
	Quantity int    `json:"quantity"`
}

type ticketListResponse struct {
	Tickets []ticketResponse `json:"tickets"`
}

// --- Handlers ---

// List handles GET /tickets.
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	pending := h.queue.Pending()
	resp := ticketListResponse{Tickets: make([]ticketResponse, len(pending))}
	for i, t := range pending {
		resp.Tickets[i] = toTicketResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Complete handles POST /tickets/{id}/complete. Completion is the only
// transition a ticket has; it removes the ticket from the queue for good.
func (h *TicketHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ticket ID"})
		return
	}

	ticket, err := h.queue.Complete(id)
	if err != nil {
		if errors.Is(err, pos.ErrTicketNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "ticket not found"})
			return
		}
		log.Printf("ERROR: complete ticket: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.notify.TicketCompleted(ticket)
	writeJSON(w, http.StatusOK, toTicketResponse(ticket))
}

// --- Helpers ---

func toTicketResponse(t pos.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:        t.ID,
		Status:    t.Status,
		Lines:     make([]ticketLineResponse, len(t.Lines)),
		CreatedAt: t.CreatedAt,
	}
	for i, line := range t.Lines {
		resp.Lines[i] = ticketLineResponse{MenuItem: line.MenuItem, Quantity: line.Quantity}
	}
	return resp
}
