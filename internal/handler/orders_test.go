package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fnb-control/api/internal/handler"
	"github.com/fnb-control/api/internal/pos"
)

// --- Mocks ---

type mockSaver struct {
	ledgerSaves  int
	historySaves int
	failLedger   error
}

func (m *mockSaver) SaveLedger(_ *pos.Ledger) error {
	m.ledgerSaves++
	return m.failLedger
}

func (m *mockSaver) SaveHistory(_ *pos.History, _ *pos.Catalog) error {
	m.historySaves++
	return nil
}

type mockNotifier struct {
	created   []pos.Ticket
	completed []pos.Ticket
	lowStock  [][]pos.Ingredient
}

func (m *mockNotifier) TicketCreated(t pos.Ticket)   { m.created = append(m.created, t) }
func (m *mockNotifier) TicketCompleted(t pos.Ticket) { m.completed = append(m.completed, t) }
func (m *mockNotifier) LowStock(rows []pos.Ingredient) {
	m.lowStock = append(m.lowStock, rows)
}

// --- Helpers ---

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

// newTestState builds a two-item state: Fries (0.2 Potato, 0.01 Oil per unit)
// and Cola (1 Cola Can per unit).
func newTestState(t *testing.T) *pos.State {
	t.Helper()
	ledger := pos.NewLedger()
	rows := []pos.Ingredient{
		{Name: "Potato", Stock: mustDecimal(t, "100"), UnitCost: mustDecimal(t, "0.5")},
		{Name: "Oil", Stock: mustDecimal(t, "30"), UnitCost: mustDecimal(t, "2")},
		{Name: "Cola Can", Stock: mustDecimal(t, "50"), UnitCost: mustDecimal(t, "0.6")},
	}
	if err := ledger.Replace(rows); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	catalog := pos.NewCatalog(
		[]string{"Fries", "Cola"},
		map[string]pos.Recipe{
			"Fries": {"Potato": mustDecimal(t, "0.2"), "Oil": mustDecimal(t, "0.01")},
			"Cola":  {"Cola Can": mustDecimal(t, "1")},
		},
	)

	return pos.NewState(ledger, catalog, pos.NewHistory())
}

func setupOrderRouter(state *pos.State, saver *mockSaver, notify *mockNotifier) *chi.Mux {
	h := handler.NewOrderHandler(pos.NewProcessor(state), state, saver, notify)
	r := chi.NewRouter()
	r.Route("/orders", h.RegisterRoutes)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// --- Submit tests ---

func TestOrderSubmit_Accepted(t *testing.T) {
	state := newTestState(t)
	saver := &mockSaver{}
	notify := &mockNotifier{}
	router := setupOrderRouter(state, saver, notify)

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"items":   map[string]int{"Fries": 2},
		"payment": "CASH",
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["status"] != "ACCEPTED" {
		t.Errorf("status field: got %v, want ACCEPTED", resp["status"])
	}
	if resp["ticket"] == nil {
		t.Error("expected a ticket in the response")
	}

	potato, _ := state.Ledger.Get("Potato")
	if !potato.Stock.Equal(mustDecimal(t, "99.6")) {
		t.Errorf("potato stock after order: got %s, want 99.6", potato.Stock)
	}
	if state.Tickets.Len() != 1 {
		t.Errorf("pending tickets: got %d, want 1", state.Tickets.Len())
	}
	if saver.ledgerSaves != 1 || saver.historySaves != 1 {
		t.Errorf("saves: got ledger=%d history=%d, want 1 each", saver.ledgerSaves, saver.historySaves)
	}
	if len(notify.created) != 1 {
		t.Errorf("ticket.created events: got %d, want 1", len(notify.created))
	}
}

func TestOrderSubmit_RejectedWithShortfalls(t *testing.T) {
	state := newTestState(t)
	saver := &mockSaver{}
	notify := &mockNotifier{}
	router := setupOrderRouter(state, saver, notify)

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"items": map[string]int{"Cola": 60},
	})

	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusConflict, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["status"] != "REJECTED" {
		t.Errorf("status field: got %v, want REJECTED", resp["status"])
	}
	shortfalls, ok := resp["shortfalls"].([]interface{})
	if !ok || len(shortfalls) != 1 {
		t.Fatalf("expected 1 shortfall, got %v", resp["shortfalls"])
	}
	sf := shortfalls[0].(map[string]interface{})
	if sf["ingredient"] != "Cola Can" || sf["required"] != "60" || sf["available"] != "50" {
		t.Errorf("unexpected shortfall: %v", sf)
	}

	// Rejection is a no-op: nothing saved, nothing queued.
	if saver.ledgerSaves != 0 {
		t.Errorf("rejected order saved the ledger %d times", saver.ledgerSaves)
	}
	if state.Tickets.Len() != 0 {
		t.Errorf("rejected order enqueued a ticket")
	}
}

func TestOrderSubmit_EmptyOrder(t *testing.T) {
	state := newTestState(t)
	router := setupOrderRouter(state, &mockSaver{}, &mockNotifier{})

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"items": map[string]int{},
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestOrderSubmit_InvalidBody(t *testing.T) {
	state := newTestState(t)
	router := setupOrderRouter(state, &mockSaver{}, &mockNotifier{})

	req := httptest.NewRequest("POST", "/orders", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestOrderSubmit_DefaultsToCash(t *testing.T) {
	state := newTestState(t)
	router := setupOrderRouter(state, &mockSaver{}, &mockNotifier{})

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"items": map[string]int{"Cola": 1},
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
}

func TestOrderSubmit_Batch(t *testing.T) {
	state := newTestState(t)
	saver := &mockSaver{}
	notify := &mockNotifier{}
	router := setupOrderRouter(state, saver, notify)

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"orders": []map[string]interface{}{
			{"items": map[string]int{"Cola": 30}, "payment": "CARD"},
			{"items": map[string]int{"Cola": 30}},
			{"items": map[string]int{"Fries": 1}},
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["accepted"] != float64(2) || resp["rejected"] != float64(1) {
		t.Fatalf("counts: got accepted=%v rejected=%v, want 2/1", resp["accepted"], resp["rejected"])
	}

	results := resp["results"].([]interface{})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	second := results[1].(map[string]interface{})
	if second["status"] != "REJECTED" {
		t.Errorf("second order: got %v, want REJECTED", second["status"])
	}

	// One persistence pass per submission, one ticket event per accepted order.
	if saver.ledgerSaves != 1 || saver.historySaves != 1 {
		t.Errorf("saves: got ledger=%d history=%d, want 1 each", saver.ledgerSaves, saver.historySaves)
	}
	if len(notify.created) != 2 {
		t.Errorf("ticket.created events: got %d, want 2", len(notify.created))
	}
}

func TestOrderSubmit_LowStockPush(t *testing.T) {
	state := newTestState(t)
	notify := &mockNotifier{}
	router := setupOrderRouter(state, &mockSaver{}, notify)

	// 47 colas leave 3 cans, below the threshold of 5.
	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"items": map[string]int{"Cola": 47},
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if len(notify.lowStock) != 1 {
		t.Fatalf("low stock events: got %d, want 1", len(notify.lowStock))
	}
	if len(notify.lowStock[0]) != 1 || notify.lowStock[0][0].Name != "Cola Can" {
		t.Errorf("unexpected low stock rows: %v", notify.lowStock[0])
	}
}
