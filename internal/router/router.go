package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fnb-control/api/internal/config"
	"github.com/fnb-control/api/internal/handler"
	"github.com/fnb-control/api/internal/pos"
	"github.com/fnb-control/api/internal/store"
	"github.com/fnb-control/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, state *pos.State, st *store.Store, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket route for the kitchen displays
	r.Get("/ws/kitchen", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	notify := ws.NewNotifier(hub)

	// Orders
	orderHandler := handler.NewOrderHandler(pos.NewProcessor(state), state, st, notify)
	r.Route("/orders", orderHandler.RegisterRoutes)

	// Inventory
	inventoryHandler := handler.NewInventoryHandler(state.Ledger, st, state)
	r.Route("/inventory", inventoryHandler.RegisterRoutes)

	// Recipes
	recipeHandler := handler.NewRecipeHandler(state.Catalog, state.Ledger)
	r.Route("/recipes", recipeHandler.RegisterRoutes)

	// Kitchen tickets
	ticketHandler := handler.NewTicketHandler(state.Tickets, notify)
	r.Route("/tickets", ticketHandler.RegisterRoutes)

	// Reports
	reportHandler := handler.NewReportHandler(state)
	r.Route("/reports", reportHandler.RegisterRoutes)

	log.Println("Router initialized with all handlers")
	return r
}
