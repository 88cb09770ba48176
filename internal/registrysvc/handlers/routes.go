package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/health", h.HealthHandler)

	r.Post("/cadastro", h.RegisterDriver)
	r.Get("/motoristas", h.ListDrivers)
	r.Put("/editar_motorista/{id}", h.EditDriver)
	r.Delete("/excluir_motorista/{id}", h.DeleteDriver)

	r.Post("/contribuir", h.RecordContribution)
	r.Get("/contribuicoes", h.ListContributions)

	r.Get("/painel_administrativo", h.Dashboard)
	r.Get("/relatorios", h.Summary)
}
