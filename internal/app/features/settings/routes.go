// internal/app/features/settings/routes.go
package settings

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the settings routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/notifications", h.HandleGet)
	r.Put("/notifications", h.HandlePut)
}
