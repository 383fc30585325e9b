package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fnb-control/api/internal/pos"
)

// RecipeHandler serves the menu catalog and per-item costing.
type RecipeHandler struct {
	catalog *pos.Catalog
	ledger  *pos.Ledger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(catalog *pos.Catalog, ledger *pos.Ledger) *RecipeHandler {
	return &RecipeHandler{catalog: catalog, ledger: ledger}
}

// RegisterRoutes registers recipe endpoints on the given Chi router.
func (h *RecipeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{item}/cost", h.Cost)
}

// --- Response types ---

type recipeResponse struct {
	MenuItem    string            `json:"menu_item"`
	Ingredients map[string]string `json:"ingredients"`
}

type recipeListResponse struct {
	Recipes []recipeResponse `json:"recipes"`
}

type costResponse struct {
	MenuItem   string `json:"menu_item"`
	UnitCost   string `json:"unit_cost"`
	UnitPrice  string `json:"unit_price"`
	UnitProfit string `json:"unit_profit"`
}

// --- Handlers ---

// List handles GET /recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.Items()
	resp := recipeListResponse{Recipes: make([]recipeResponse, 0, len(items))}
	for _, item := range items {
		recipe, _ := h.catalog.Recipe(item)
		ingredients := make(map[string]string, len(recipe))
		for name, qty := range recipe {
			ingredients[name] = qty.String()
		}
		resp.Recipes = append(resp.Recipes, recipeResponse{MenuItem: item, Ingredients: ingredients})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Cost handles GET /recipes/{item}/cost. Price is cost plus a fixed 50% markup,
// so profit per unit is half the ingredient cost.
func (h *RecipeHandler) Cost(w http.ResponseWriter, r *http.Request) {
	item := chi.URLParam(r, "item")
	if !h.catalog.Has(item) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}

	writeJSON(w, http.StatusOK, costResponse{
		MenuItem:   item,
		UnitCost:   pos.UnitCost(item, h.catalog, h.ledger).String(),
		UnitPrice:  pos.UnitPrice(item, h.catalog, h.ledger).String(),
		UnitProfit: pos.UnitProfit(item, h.catalog, h.ledger).String(),
	})
}
