package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fnb-control/api/internal/export"
	"github.com/fnb-control/api/internal/forecast"
	"github.com/fnb-control/api/internal/pos"
	"github.com/fnb-control/api/internal/report"
)

const dateLayout = "2006-01-02"

// ReportHandler serves the sales, profit, forecast, and export views over the
// recorded history.
type ReportHandler struct {
	state *pos.State
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(state *pos.State) *ReportHandler {
	return &ReportHandler{state: state}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales", h.Sales)
	r.Get("/profit", h.Profit)
	r.Get("/forecast", h.Forecast)
	r.Get("/export", h.Export)
}

// --- Response types ---

type salesRowResponse struct {
	Date       string         `json:"date"`
	Quantities map[string]int `json:"quantities"`
	TotalUnits int            `json:"total_units"`
}

type salesReportResponse struct {
	Rows []salesRowResponse `json:"rows"`
}

type profitRowResponse struct {
	Date   string `json:"date"`
	Profit string `json:"profit"`
}

type profitReportResponse struct {
	Rows []profitRowResponse `json:"rows"`
}

type forecastItemResponse struct {
	MenuItem string         `json:"menu_item"`
	Values   map[string]int `json:"values"`
}

type forecastResponse struct {
	Horizon int                    `json:"horizon"`
	Items   []forecastItemResponse `json:"items"`
}

// --- Handlers ---

// Sales handles GET /reports/sales.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	rows := report.Sales(h.state.History.Records(), h.state.Catalog)
	resp := salesReportResponse{Rows: make([]salesRowResponse, len(rows))}
	for i, row := range rows {
		resp.Rows[i] = salesRowResponse{
			Date:       row.Date.Format(dateLayout),
			Quantities: row.Quantities,
			TotalUnits: row.TotalUnits,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Profit handles GET /reports/profit.
func (h *ReportHandler) Profit(w http.ResponseWriter, r *http.Request) {
	rows := report.Profit(h.state.History.Records(), h.state.Catalog, h.state.Ledger)
	resp := profitReportResponse{Rows: make([]profitRowResponse, len(rows))}
	for i, row := range rows {
		resp.Rows[i] = profitRowResponse{
			Date:   row.Date.Format(dateLayout),
			Profit: row.Profit.StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Forecast handles GET /reports/forecast. Each projected step is keyed by its
// calendar date, continuing one day after the last recorded sale.
func (h *ReportHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	items := h.state.Catalog.Items()
	last := h.state.History.LastDate()

	resp := forecastResponse{
		Horizon: forecast.Horizon,
		Items:   make([]forecastItemResponse, len(items)),
	}
	for i, item := range items {
		projected := forecast.Project(h.state.History.Series(item), forecast.Horizon)
		values := make(map[string]int, len(projected))
		for step, qty := range projected {
			values[last.AddDate(0, 0, step+1).Format(dateLayout)] = qty
		}
		resp.Items[i] = forecastItemResponse{MenuItem: item, Values: values}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles GET /reports/export?format=csv|xlsx, streaming a sales and
// profit sheet as a file download. Format defaults to csv.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	records := h.state.History.Records()
	stamp := time.Now().Format(dateLayout)

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sales_%s.csv", stamp))
		if err := export.WriteCSV(w, records, h.state.Catalog, h.state.Ledger); err != nil {
			log.Printf("ERROR: export csv: %v", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sales_%s.xlsx", stamp))
		if err := export.WriteXLSX(w, records, h.state.Catalog, h.state.Ledger); err != nil {
			log.Printf("ERROR: export xlsx: %v", err)
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported format: " + format})
	}
}
