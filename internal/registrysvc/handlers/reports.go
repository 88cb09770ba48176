package handlers

import (
	"net/http"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
)

type dashboardResponse struct {
	models.DashboardTotals
	Message string `json:"message"`
}

// Dashboard handles GET /painel_administrativo.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reports.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dashboardResponse{
		DashboardTotals: totals,
		Message:         "admin panel updated with contributions",
	})
}

// Summary handles GET /relatorios.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.reports.Summary(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []models.DriverSummary{}
	}
	h.writeJSON(w, http.StatusOK, summaries)
}
