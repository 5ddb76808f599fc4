// internal/app/features/dashboard/handler.go
package dashboard

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"github.com/dalemusser/riskwatch/internal/app/notify"
	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/app/system/normalize"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the dashboard snapshot and the tab switcher.
type Handler struct {
	State   *state.Store
	Channel *notify.Channel
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(st *state.Store, channel *notify.Channel, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		State:   st,
		Channel: channel,
		Log:     logger,
		ErrLog:  errLog,
	}
}

// snapshotResponse is the JSON shape for GET /dashboard.
type snapshotResponse struct {
	Tab             state.Tab                           `json:"tab"`
	Progress        int                                 `json:"progress"`
	Summary         models.CategoryCounts               `json:"summary"`
	SelectedStudent *models.StudentRecord               `json:"selected_student,omitempty"`
	Integrations    map[string]models.IntegrationStatus `json:"integrations"`
	Notifications   notify.StatusInfo                   `json:"notifications"`
	Modal           state.ModalState                    `json:"modal"`
}

// HandleSnapshot handles GET /dashboard: one call giving the page everything
// it needs to render.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.State.Snapshot()

	uierrors.WriteJSON(w, http.StatusOK, snapshotResponse{
		Tab:             snap.CurrentTab,
		Progress:        snap.UI.Progress,
		Summary:         models.Summarize(snap.Students),
		SelectedStudent: snap.SelectedStudent,
		Integrations:    snap.Integrations,
		Notifications:   h.Channel.Info(),
		Modal:           snap.UI.Modal,
	})
}

// tabRequest is the body for POST /dashboard/tab.
type tabRequest struct {
	Tab string `json:"tab"`
}

// HandleTab handles POST /dashboard/tab: switches the workflow tab. Progress
// is derived from the tab, never set by the caller.
func (h *Handler) HandleTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse tab body failed", err, "Invalid JSON body.")
		return
	}

	tab := state.Tab(normalize.Tab(req.Tab))
	if !state.ValidTab(tab) {
		h.ErrLog.LogBadRequest(w, r, "unknown tab", nil, "tab must be upload, connect, analyze, dashboard, or insights.")
		return
	}

	h.State.Apply(state.Update{CurrentTab: &tab})
	h.Log.Debug("tab switched", zap.String("tab", string(tab)))

	snap := h.State.Snapshot()
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"tab":      snap.CurrentTab,
		"progress": snap.UI.Progress,
	})
}
