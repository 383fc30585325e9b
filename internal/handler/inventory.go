package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fnb-control/api/internal/pos"
)

// InventoryStore defines the ledger methods needed by inventory handlers.
// Satisfied by *pos.Ledger; narrow interface for testability.
type InventoryStore interface {
	Rows() []pos.Ingredient
	LowStock(threshold decimal.Decimal) []pos.Ingredient
	Upsert(ing pos.Ingredient) error
	Replace(rows []pos.Ingredient) error
}

// InventoryHandler handles ingredient stock endpoints.
type InventoryHandler struct {
	ledger InventoryStore
	saver  StateSaver
	state  *pos.State
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(ledger InventoryStore, saver StateSaver, state *pos.State) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, saver: saver, state: state}
}

// RegisterRoutes registers inventory endpoints on the given Chi router.
func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Put("/", h.Replace)
	r.Post("/", h.Upsert)
}

// --- Request/Response types ---

type ingredientRequest struct {
	Name     string `json:"name"`
	Stock    string `json:"stock"`
	UnitCost string `json:"unit_cost"`
}

type replaceInventoryRequest struct {
	Ingredients []ingredientRequest `json:"ingredients"`
}

type ingredientResponse struct {
	Name     string `json:"name"`
	Stock    string `json:"stock"`
	UnitCost string `json:"unit_cost"`
}

type inventoryResponse struct {
	Ingredients []ingredientResponse `json:"ingredients"`
	LowStock    []ingredientResponse `json:"low_stock"`
}

// --- Handlers ---

// List handles GET /inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, inventoryResponse{
		Ingredients: toIngredientResponses(h.ledger.Rows()),
		LowStock:    toIngredientResponses(h.ledger.LowStock(lowStockThreshold)),
	})
}

// Replace handles PUT /inventory. The request body carries the full ledger;
// rows absent from it are dropped.
func (h *InventoryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req replaceInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	rows := make([]pos.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		row, err := toIngredient(ing)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		rows = append(rows, row)
	}

	if err := h.ledger.Replace(rows); err != nil {
		h.writeLedgerError(w, err)
		return
	}

	h.persist()
	h.List(w, r)
}

// Upsert handles POST /inventory.
func (h *InventoryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	row, err := toIngredient(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.ledger.Upsert(row); err != nil {
		h.writeLedgerError(w, err)
		return
	}

	h.persist()
	writeJSON(w, http.StatusOK, toIngredientResponse(row))
}

// --- Helpers ---

func toIngredient(req ingredientRequest) (pos.Ingredient, error) {
	stock, err := decimal.NewFromString(req.Stock)
	if err != nil {
		return pos.Ingredient{}, errors.New("invalid stock value")
	}
	unitCost, err := decimal.NewFromString(req.UnitCost)
	if err != nil {
		return pos.Ingredient{}, errors.New("invalid unit_cost value")
	}
	return pos.Ingredient{Name: req.Name, Stock: stock, UnitCost: unitCost}, nil
}

func toIngredientResponse(ing pos.Ingredient) ingredientResponse {
	return ingredientResponse{
		Name:     ing.Name,
		Stock:    ing.Stock.String(),
		UnitCost: ing.UnitCost.String(),
	}
}

func toIngredientResponses(rows []pos.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, len(rows))
	for i, ing := range rows {
		out[i] = toIngredientResponse(ing)
	}
	return out
}

func (h *InventoryHandler) writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pos.ErrEmptyName),
		errors.Is(err, pos.ErrNegativeStock),
		errors.Is(err, pos.ErrNegativeUnitCost):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: update inventory: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (h *InventoryHandler) persist() {
	if err := h.saver.SaveLedger(h.state.Ledger); err != nil {
		log.Printf("ERROR: save ledger: %v", err)
	}
}
