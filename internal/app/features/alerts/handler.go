// internal/app/features/alerts/handler.go
package alerts

import (
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"github.com/dalemusser/riskwatch/internal/app/notify"
	"github.com/dalemusser/riskwatch/internal/app/system/streamauth"
	"github.com/dalemusser/riskwatch/internal/app/system/viewer"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler owns the alert endpoints and the browser stream.
type Handler struct {
	Channel *notify.Channel
	Hub     *Hub
	Tickets *streamauth.Issuer
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger

	upgrader websocket.Upgrader
}

// NewHandler constructs an alerts Handler.
func NewHandler(channel *notify.Channel, hub *Hub, tickets *streamauth.Issuer, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Channel: channel,
		Hub:     hub,
		Tickets: tickets,
		Log:     logger,
		ErrLog:  errLog,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The ticket is the auth boundary; the dashboard may be served
			// from a different origin than the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// listResponse is the JSON shape for GET /alerts.
type listResponse struct {
	Alerts []models.Alert    `json:"alerts"`
	Status notify.StatusInfo `json:"status"`
}

// HandleList handles GET /alerts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Alerts: h.Channel.Alerts(),
		Status: h.Channel.Info(),
	})
}

// HandleAcknowledge handles POST /alerts/{alertID}/acknowledge.
func (h *Handler) HandleAcknowledge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "alertID")

	if err := h.Channel.Acknowledge(r.Context(), id); err != nil {
		h.respondActionError(w, r, "acknowledge alert failed", err)
		return
	}

	h.Hub.NotifyUpdate(id, true, false)
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"alert_id": id, "acknowledged": true})
}

// HandleResolve handles POST /alerts/{alertID}/resolve.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "alertID")

	if err := h.Channel.Resolve(r.Context(), id); err != nil {
		h.respondActionError(w, r, "resolve alert failed", err)
		return
	}

	h.Hub.NotifyUpdate(id, false, true)
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"alert_id": id, "resolved": true})
}

func (h *Handler) respondActionError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	if errors.Is(err, notify.ErrNoActions) {
		h.ErrLog.LogUnavailable(w, r, logMsg, err, "Alert actions are not configured.")
		return
	}
	h.ErrLog.LogUnavailable(w, r, logMsg, err, "The alert service is unavailable. Try again shortly.")
}

// simulateRequest is the body for POST /alerts/simulate.
type simulateRequest struct {
	StudentName string  `json:"student_name"`
	RiskScore   float64 `json:"risk_score"`
}

// HandleSimulate handles POST /alerts/simulate: fabricates an alert and runs
// it through the normal ingestion path. Demo tooling.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse simulate body failed", err, "Invalid JSON body.")
		return
	}
	if req.StudentName == "" {
		req.StudentName = "Test Student"
	}
	if req.RiskScore < 0 || req.RiskScore > 1 {
		h.ErrLog.LogBadRequest(w, r, "simulate risk score out of range", nil, "risk_score must be between 0 and 1.")
		return
	}

	alert := h.Channel.Simulate(req.StudentName, req.RiskScore)
	uierrors.WriteJSON(w, http.StatusCreated, alert)
}

// HandleClear handles POST /alerts/clear: empties the local active list.
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.Channel.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

// HandleTicket handles POST /alerts/stream/ticket: issues a short-lived
// signed ticket the browser presents when dialing the stream.
func (h *Handler) HandleTicket(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	ticket, err := h.Tickets.Issue(viewerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "issue stream ticket failed", err, "Could not issue a stream ticket.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"ticket": ticket})
}

// HandleStream handles GET /alerts/stream?ticket=…: verifies the ticket,
// upgrades to WebSocket, and joins the fan-out hub. The read loop exists
// only to notice the browser going away.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	ticket := r.URL.Query().Get("ticket")
	viewerID, err := h.Tickets.Verify(ticket)
	if err != nil {
		h.Log.Debug("stream ticket rejected", zap.Error(err))
		uierrors.WriteError(w, http.StatusUnauthorized, "Invalid or expired stream ticket.")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.Log.Debug("stream upgrade failed", zap.Error(err))
		return
	}

	h.Hub.Register(conn)
	h.Log.Debug("stream joined", zap.String("viewer_id", viewerID))

	if err := conn.WriteJSON(streamEvent{
		Type:         "connected",
		ActiveAlerts: h.Channel.Info().ActiveAlerts,
	}); err != nil {
		h.Hub.Unregister(conn)
		return
	}

	go func() {
		defer h.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
