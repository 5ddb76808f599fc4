// internal/app/features/interventions/routes.go
package interventions

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the intervention routes. Expected to be mounted under
// /students/{studentID}/interventions.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Patch("/{interventionID}", h.HandleUpdate)
	r.Delete("/{interventionID}", h.HandleDelete)
}
