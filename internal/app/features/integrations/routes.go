// internal/app/features/integrations/routes.go
package integrations

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the integration routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Get("/google/callback", h.HandleGoogleCallback)
	r.Post("/{provider}/connect", h.HandleConnect)
	r.Post("/{provider}/disconnect", h.HandleDisconnect)
}
