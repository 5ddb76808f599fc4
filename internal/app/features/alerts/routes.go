// internal/app/features/alerts/routes.go
package alerts

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the alert routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/clear", h.HandleClear)
	r.Post("/simulate", h.HandleSimulate)
	r.Post("/{alertID}/acknowledge", h.HandleAcknowledge)
	r.Post("/{alertID}/resolve", h.HandleResolve)
	r.Post("/stream/ticket", h.HandleTicket)
	r.Get("/stream", h.HandleStream)
}
