// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the dashboard routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.HandleSnapshot)
	r.Post("/tab", h.HandleTab)
}
