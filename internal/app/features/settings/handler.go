// internal/app/features/settings/handler.go
package settings

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	notifysettingsstore "github.com/dalemusser/riskwatch/internal/app/store/notifysettings"
	"github.com/dalemusser/riskwatch/internal/app/system/viewer"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
)

// Handler owns the notification settings endpoints.
type Handler struct {
	Store  *notifysettingsstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	// OnSave, when set, is told about every saved settings document. The
	// alert channel uses it to pick up kill-switch changes immediately.
	OnSave func(models.NotificationSettings)
}

// NewHandler constructs a settings Handler.
func NewHandler(store *notifysettingsstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}

// HandleGet handles GET /settings/notifications.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	settings, err := h.Store.Get(r.Context(), viewerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load notification settings failed", err, "A database error occurred.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, settings)
}

// HandlePut handles PUT /settings/notifications. The whole settings document
// is replaced; there are no partial updates.
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	var settings models.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse settings body failed", err, "Invalid JSON body.")
		return
	}
	if settings.RiskThreshold < 0 || settings.RiskThreshold > 1 {
		h.ErrLog.LogBadRequest(w, r, "risk threshold out of range", nil, "risk_threshold must be between 0 and 1.")
		return
	}

	if err := h.Store.Save(r.Context(), viewerID, settings); err != nil {
		h.ErrLog.LogServerError(w, r, "save notification settings failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("notification settings saved",
		zap.Bool("enabled", settings.EnableNotifications),
		zap.Float64("threshold", settings.RiskThreshold))

	settings.ViewerID = viewerID
	if h.OnSave != nil {
		h.OnSave(settings)
	}

	saved, err := h.Store.Get(r.Context(), viewerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reload notification settings failed", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, saved)
}
