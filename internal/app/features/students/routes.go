// internal/app/features/students/routes.go
package students

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the student routes on the given router. The
// interventions feature mounts its own subtree under /students/{studentID}.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Get("/summary", h.HandleSummary)
	r.Get("/{studentID}", h.HandleGet)
	r.Post("/{studentID}/select", h.HandleSelect)
}
