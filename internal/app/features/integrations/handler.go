// internal/app/features/integrations/handler.go
package integrations

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	integrationstore "github.com/dalemusser/riskwatch/internal/app/store/integrations"
	"github.com/dalemusser/riskwatch/internal/app/store/oauthstate"
	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/app/system/normalize"
	"github.com/dalemusser/riskwatch/internal/app/system/timeouts"
	"github.com/dalemusser/riskwatch/internal/app/system/viewer"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler owns the LMS integration endpoints. Canvas and PowerSchool take a
// token form; Google goes through the OAuth2 authorization-code flow.
type Handler struct {
	Store      *integrationstore.Store
	StateStore *oauthstate.Store
	AppState   *state.Store
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger

	// Google OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://riskwatch.example.com/integrations/google/callback"
}

// NewHandler constructs an integrations Handler.
func NewHandler(store *integrationstore.Store, stateStore *oauthstate.Store, appState *state.Store,
	clientID, clientSecret, baseURL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:        store,
		StateStore:   stateStore,
		AppState:     appState,
		Log:          logger,
		ErrLog:       errLog,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/integrations/google/callback",
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleConfigured returns true if Google OAuth is configured.
func (h *Handler) GoogleConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// HandleList handles GET /integrations.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	statuses, err := h.Store.List(r.Context(), viewerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list integrations failed", err, "A database error occurred.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"integrations": statuses})
}

// HandleConnect handles POST /integrations/{provider}/connect.
//
// For canvas and powerschool, the body carries the account and token and the
// connection is recorded immediately. For google, the response carries the
// consent-screen URL and the real work happens in the callback.
func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	provider := normalize.Provider(providerParam(r))
	if !models.ValidProvider(provider) {
		h.ErrLog.LogBadRequest(w, r, "unknown integration provider", nil, "Unknown provider.")
		return
	}

	if provider == models.ProviderGoogle {
		h.startGoogleFlow(w, r, viewerID)
		return
	}

	h.connectWithToken(w, r, viewerID, provider)
}

// HandleDisconnect handles POST /integrations/{provider}/disconnect.
func (h *Handler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	provider := normalize.Provider(providerParam(r))
	if !models.ValidProvider(provider) {
		h.ErrLog.LogBadRequest(w, r, "unknown integration provider", nil, "Unknown provider.")
		return
	}

	if err := h.Store.Disconnect(r.Context(), viewerID, provider); err != nil {
		h.ErrLog.LogServerError(w, r, "disconnect integration failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("integration disconnected", zap.String("provider", provider))
	h.syncAppState(r.Context(), viewerID)

	w.WriteHeader(http.StatusNoContent)
}

// syncAppState mirrors the viewer's integration statuses into the shared
// application state so dashboard snapshots stay current.
func (h *Handler) syncAppState(ctx context.Context, viewerID string) {
	if h.AppState == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	statuses, err := h.Store.List(ctx, viewerID)
	if err != nil {
		h.Log.Warn("refresh integration state failed", zap.Error(err))
		return
	}
	h.AppState.Apply(state.Update{Integrations: &statuses})
}
