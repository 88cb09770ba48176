package handlers

import (
	"fmt"
	"net/http"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
)

type registerDriverRequest struct {
	Name       *string `json:"name"`
	NationalID *string `json:"nationalId"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
}

// editDriverRequest uses OptionalString everywhere so a null can be told
// apart from an absent key.
type editDriverRequest struct {
	Name       models.OptionalString `json:"name"`
	NationalID models.OptionalString `json:"nationalId"`
	Phone      models.OptionalString `json:"phone"`
	Email      models.OptionalString `json:"email"`
}

func (req editDriverRequest) toUpdate() (models.DriverUpdate, error) {
	for field, v := range map[string]models.OptionalString{
		"name":       req.Name,
		"nationalId": req.NationalID,
		"phone":      req.Phone,
	} {
		if v.Set && v.Value == nil {
			return models.DriverUpdate{}, fmt.Errorf("%w: %s cannot be null", models.ErrBadRequest, field)
		}
	}
	return models.DriverUpdate{
		Name:       req.Name.Value,
		NationalID: req.NationalID.Value,
		Phone:      req.Phone.Value,
		Email:      req.Email,
	}, nil
}

// RegisterDriver handles POST /cadastro.
func (h *Handler) RegisterDriver(w http.ResponseWriter, r *http.Request) {
	var req registerDriverRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name == nil || req.NationalID == nil || req.Phone == nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "required fields: name, nationalId, phone"})
		return
	}

	_, err := h.drivers.RegisterDriver(r.Context(), models.Driver{
		Name:       *req.Name,
		NationalID: *req.NationalID,
		Phone:      *req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, messageResponse{Message: "driver registered successfully"})
}

// ListDrivers handles GET /motoristas.
func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.drivers.ListDrivers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	h.writeJSON(w, http.StatusOK, drivers)
}

// EditDriver handles PUT /editar_motorista/{id}.
func (h *Handler) EditDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req editDriverRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.drivers.UpdateDriver(r.Context(), id, update); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Message: "driver updated successfully"})
}

// DeleteDriver handles DELETE /excluir_motorista/{id}.
func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.drivers.DeleteDriver(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Message: "driver deleted successfully"})
}
