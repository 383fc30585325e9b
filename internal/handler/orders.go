package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fnb-control/api/internal/pos"
)

// lowStockThreshold is the stock level below which an ingredient is flagged
// on the dashboard and pushed to the kitchen displays.
var lowStockThreshold = decimal.NewFromInt(5)

// OrderProcessor defines the transaction methods needed by order handlers.
// Satisfied by *pos.Processor; narrow interface for testability.
type OrderProcessor interface {
	Process(order pos.Order) (*pos.ProcessResult, error)
	ProcessBatch(orders []pos.Order) []pos.BatchItem
}

// OrderHandler handles order submission endpoints.
type OrderHandler struct {
	proc   OrderProcessor
	state  *pos.State
	saver  StateSaver
	notify TicketNotifier
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(proc OrderProcessor, state *pos.State, saver StateSaver, notify TicketNotifier) *OrderHandler {
	return &OrderHandler{proc: proc, state: state, saver: saver, notify: notify}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Submit)
}

// --- Request / Response types ---

type orderRequest struct {
	Items   map[string]int `json:"items"`
	Payment string         `json:"payment"`
}

// submitRequest accepts a single order or a batch. When Orders is non-empty
// the top-level fields are ignored and every order is processed
// independently, in submission order.
type submitRequest struct {
	Items   map[string]int `json:"items"`
	Payment string         `json:"payment"`
	Orders  []orderRequest `json:"orders"`
}

type shortfallResponse struct {
	Ingredient string `json:"ingredient"`
	MenuItem   string `json:"menu_item"`
	Required   string `json:"required"`
	Available  string `json:"available"`
}

type salesRecordResponse struct {
	Date       time.Time      `json:"date"`
	Quantities map[string]int `json:"quantities"`
}

type orderResultResponse struct {
	Status     string               `json:"status"`
	Ticket     *ticketResponse      `json:"ticket,omitempty"`
	Record     *salesRecordResponse `json:"record,omitempty"`
	Warnings   []string             `json:"warnings,omitempty"`
	Shortfalls []shortfallResponse  `json:"shortfalls,omitempty"`
	Error      string               `json:"error,omitempty"`
}

type batchResponse struct {
	Results  []orderResultResponse `json:"results"`
	Accepted int                   `json:"accepted"`
	Rejected int                   `json:"rejected"`
}

const (
	statusAccepted = "ACCEPTED"
	statusRejected = "REJECTED"
)

// --- Handlers ---

// Submit handles POST /orders for single orders and batches.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if len(req.Orders) > 0 {
		h.submitBatch(w, req.Orders)
		return
	}
	h.submitSingle(w, orderRequest{Items: req.Items, Payment: req.Payment})
}

func (h *OrderHandler) submitSingle(w http.ResponseWriter, req orderRequest) {
	result, err := h.proc.Process(toOrder(req))
	if err != nil {
		var rejected *pos.RejectedError
		if errors.As(err, &rejected) {
			writeJSON(w, http.StatusConflict, orderResultResponse{
				Status:     statusRejected,
				Shortfalls: toShortfallResponses(rejected.Shortfalls),
			})
			return
		}
		if isOrderBoundaryError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: process order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.afterAccepted(1, []*pos.ProcessResult{result})
	writeJSON(w, http.StatusCreated, toResultResponse(result))
}

func (h *OrderHandler) submitBatch(w http.ResponseWriter, orders []orderRequest) {
	batch := make([]pos.Order, len(orders))
	for i, req := range orders {
		batch[i] = toOrder(req)
	}

	items := h.proc.ProcessBatch(batch)

	resp := batchResponse{Results: make([]orderResultResponse, len(items))}
	var accepted []*pos.ProcessResult
	for i, item := range items {
		if item.Err != nil {
			resp.Rejected++
			resp.Results[i] = toErrorResponse(item.Err)
			continue
		}
		resp.Accepted++
		accepted = append(accepted, item.Result)
		resp.Results[i] = toResultResponse(item.Result)
	}

	h.afterAccepted(len(accepted), accepted)
	writeJSON(w, http.StatusOK, resp)
}

// afterAccepted persists state and pushes kitchen events once at least one
// order in the submission went through. A failed write is logged, not
// surfaced: the sale already happened in the session, and the next
// successful batch rewrites the full state anyway.
func (h *OrderHandler) afterAccepted(count int, results []*pos.ProcessResult) {
	if count == 0 {
		return
	}

	if err := h.saver.SaveLedger(h.state.Ledger); err != nil {
		log.Printf("ERROR: save ledger: %v", err)
	}
	if err := h.saver.SaveHistory(h.state.History, h.state.Catalog); err != nil {
		log.Printf("ERROR: save sales history: %v", err)
	}

	for _, result := range results {
		h.notify.TicketCreated(result.Ticket)
	}
	if low := h.state.Ledger.LowStock(lowStockThreshold); len(low) > 0 {
		h.notify.LowStock(low)
	}
}

// --- Helpers ---

func toOrder(req orderRequest) pos.Order {
	payment := req.Payment
	if payment == "" {
		payment = pos.PaymentCash
	}
	return pos.Order{Lines: req.Items, Payment: payment}
}

// isOrderBoundaryError checks if the error is a malformed-input error that
// should result in 400 Bad Request.
func isOrderBoundaryError(err error) bool {
	return errors.Is(err, pos.ErrEmptyOrder) ||
		errors.Is(err, pos.ErrNegativeQuantity) ||
		errors.Is(err, pos.ErrInvalidPayment)
}

func toResultResponse(result *pos.ProcessResult) orderResultResponse {
	ticket := toTicketResponse(result.Ticket)
	return orderResultResponse{
		Status: statusAccepted,
		Ticket: &ticket,
		Record: &salesRecordResponse{
			Date:       result.Record.Date,
			Quantities: result.Record.Quantities,
		},
		Warnings: result.Warnings,
	}
}

func toErrorResponse(err error) orderResultResponse {
	var rejected *pos.RejectedError
	if errors.As(err, &rejected) {
		return orderResultResponse{
			Status:     statusRejected,
			Shortfalls: toShortfallResponses(rejected.Shortfalls),
		}
	}
	return orderResultResponse{Status: statusRejected, Error: err.Error()}
}

func toShortfallResponses(shortfalls []pos.Shortfall) []shortfallResponse {
	out := make([]shortfallResponse, len(shortfalls))
	for i, sf := range shortfalls {
		out[i] = shortfallResponse{
			Ingredient: sf.Ingredient,
			MenuItem:   sf.MenuItem,
			Required:   sf.Required.String(),
			Available:  sf.Available.String(),
		}
	}
	return out
}
