package routes

import (
	"github.com/avvvet/copbrazil-services/internal/feedsvc/handlers"
	"github.com/avvvet/copbrazil-services/internal/feedsvc/ws"
	"github.com/go-chi/chi"
)

func SetRoutes(r chi.Router, ws *ws.Ws) {
	h := handlers.NewHandler(ws)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/ws", h.HandleWebSocket)
		r.Get("/health", h.HealthHandler)
	})
}
