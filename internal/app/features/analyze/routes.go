// internal/app/features/analyze/routes.go
package analyze

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the analysis routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.HandleUpload)
	r.Post("/sample", h.HandleSample)
}
