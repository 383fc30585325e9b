package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fnb-control/api/internal/handler"
	"github.com/fnb-control/api/internal/pos"
)

func setupTicketRouter(state *pos.State, notify *mockNotifier) *chi.Mux {
	h := handler.NewTicketHandler(state.Tickets, notify)
	r := chi.NewRouter()
	r.Route("/tickets", h.RegisterRoutes)
	return r
}

func TestTicketList(t *testing.T) {
	state := newTestState(t)
	state.Tickets.Enqueue([]pos.TicketLine{{MenuItem: "Fries", Quantity: 2}}, time.Now())
	state.Tickets.Enqueue([]pos.TicketLine{{MenuItem: "Cola", Quantity: 1}}, time.Now())
	router := setupTicketRouter(state, &mockNotifier{})

	rr := doRequest(t, router, "GET", "/tickets", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rr)
	tickets := resp["tickets"].([]interface{})
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(tickets))
	}

	first := tickets[0].(map[string]interface{})
	if first["status"] != pos.TicketPending {
		t.Errorf("status: got %v, want %s", first["status"], pos.TicketPending)
	}
	lines := first["lines"].([]interface{})
	if lines[0].(map[string]interface{})["menu_item"] != "Fries" {
		t.Errorf("expected oldest ticket first, got %v", lines[0])
	}
}

func TestTicketComplete(t *testing.T) {
	state := newTestState(t)
	ticket := state.Tickets.Enqueue([]pos.TicketLine{{MenuItem: "Fries", Quantity: 2}}, time.Now())
	notify := &mockNotifier{}
	router := setupTicketRouter(state, notify)

	rr := doRequest(t, router, "POST", "/tickets/"+ticket.ID.String()+"/complete", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["status"] != pos.TicketDone {
		t.Errorf("status: got %v, want %s", resp["status"], pos.TicketDone)
	}
	if state.Tickets.Len() != 0 {
		t.Errorf("completed ticket still pending")
	}
	if len(notify.completed) != 1 {
		t.Errorf("ticket.completed events: got %d, want 1", len(notify.completed))
	}
}

func TestTicketComplete_InvalidID(t *testing.T) {
	state := newTestState(t)
	router := setupTicketRouter(state, &mockNotifier{})

	rr := doRequest(t, router, "POST", "/tickets/not-a-uuid/complete", nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestTicketComplete_NotFound(t *testing.T) {
	state := newTestState(t)
	notify := &mockNotifier{}
	router := setupTicketRouter(state, notify)

	rr := doRequest(t, router, "POST", "/tickets/"+uuid.NewString()+"/complete", nil)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if len(notify.completed) != 0 {
		t.Errorf("missing ticket emitted a completed event")
	}
}
