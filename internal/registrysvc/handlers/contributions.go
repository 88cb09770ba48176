package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/shopspring/decimal"
)

type contributionRequest struct {
	DriverID *int64          `json:"driverId"`
	Amount   json.RawMessage `json:"amount"`
}

// parseAmount accepts a bare JSON number only; decimal alone would also take
// a quoted string.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be a number", models.ErrBadRequest)
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be a number", models.ErrBadRequest)
	}
	return amount, nil
}

// RecordContribution handles POST /contribuir.
func (h *Handler) RecordContribution(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.DriverID == nil || len(req.Amount) == 0 || string(req.Amount) == "null" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "required fields: driverId, amount"})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.contributions.RecordContribution(r.Context(), *req.DriverID, amount); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, messageResponse{Message: "contribution recorded successfully"})
}

// ListContributions handles GET /contribuicoes?driverId=&dateFrom=&dateTo=.
func (h *Handler) ListContributions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseContributionFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items, err := h.contributions.ListContributions(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []models.ContributionDetail{}
	}
	h.writeJSON(w, http.StatusOK, items)
}

// parseContributionFilter reads the optional query filters. Empty values are
// treated as absent.
func parseContributionFilter(r *http.Request) (models.ContributionFilter, error) {
	var filter models.ContributionFilter
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("driverId")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid driverId %q", models.ErrBadRequest, v)
		}
		filter.DriverID = &id
	}
	if v := q.Get("dateFrom"); strings.TrimSpace(v) != "" {
		from, err := models.ParseBound(v, false)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if v := q.Get("dateTo"); strings.TrimSpace(v) != "" {
		to, err := models.ParseBound(v, true)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}

	return filter, nil
}
