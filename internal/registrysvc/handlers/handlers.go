package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

const welcomeText = "Bem-vindo ao COPBRAZIL!"

type Handler struct {
	drivers       *service.DriverService
	contributions *service.ContributionService
	reports       *service.ReportService
	serviceName   string
}

func NewHandler(drivers *service.DriverService, contributions *service.ContributionService, reports *service.ReportService) *Handler {
	return &Handler{
		drivers:       drivers,
		contributions: contributions,
		reports:       reports,
		serviceName:   "registry",
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// writeError maps domain errors to a status code and an error payload.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrBadRequest):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrDuplicateKey):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "nationalId already registered"})
	case errors.Is(err, models.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "driver not found"})
	default:
		log.WithField("request_id", middleware.GetReqID(r.Context())).
			Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: malformed JSON body: %v", models.ErrBadRequest, err)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid driver id", models.ErrBadRequest)
	}
	return id, nil
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, welcomeText); err != nil {
		log.Errorf("Failed to write welcome text: %v", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, Response{
		Message: h.serviceName + " service is running",
		Code:    http.StatusOK,
	})
}
