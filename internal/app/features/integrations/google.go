// internal/app/features/integrations/google.go
package integrations

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"github.com/dalemusser/riskwatch/internal/app/system/timeouts"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// startGoogleFlow answers the connect request with Google's consent-screen
// URL. The browser navigates there; Google sends the user back to the
// callback with a code.
func (h *Handler) startGoogleFlow(w http.ResponseWriter, r *http.Request, viewerID string) {
	if !h.GoogleConfigured() {
		h.Log.Warn("Google OAuth not configured")
		uierrors.WriteError(w, http.StatusServiceUnavailable, "Google Classroom is not configured on this server.")
		return
	}

	state, err := generateState()
	if err != nil {
		h.ErrLog.LogServerError(w, r, "generate OAuth state failed", err, "Could not start the Google connect flow.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, viewerID, expiresAt); err != nil {
		h.ErrLog.LogServerError(w, r, "save OAuth state failed", err, "Could not start the Google connect flow.")
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google connect flow", zap.String("redirect_url", url))
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"auth_url": url})
}

// HandleGoogleCallback handles GET /integrations/google/callback: validates
// the state token, exchanges the code, reads the account email, and records
// the connection. Browsers land here from Google, so failures redirect back
// to the dashboard with an error tag instead of answering JSON.
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/?connect_error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/?connect_error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	viewerID, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("validate OAuth state failed", zap.Error(err))
		http.Redirect(w, r, "/?connect_error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/?connect_error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/?connect_error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("exchange OAuth code failed", zap.Error(err))
		http.Redirect(w, r, "/?connect_error=token_exchange", http.StatusSeeOther)
		return
	}

	account, err := fetchGoogleAccount(ctx, token)
	if err != nil {
		h.Log.Error("fetch Google account failed", zap.Error(err))
		http.Redirect(w, r, "/?connect_error=user_info", http.StatusSeeOther)
		return
	}

	if err := h.Store.Connect(ctxTimeout, viewerID, models.ProviderGoogle, account, nil); err != nil {
		h.Log.Error("record google connection failed", zap.Error(err))
		http.Redirect(w, r, "/?connect_error=internal", http.StatusSeeOther)
		return
	}

	h.Log.Info("integration connected",
		zap.String("provider", models.ProviderGoogle),
		zap.String("account", account))
	h.syncAppState(ctx, viewerID)

	http.Redirect(w, r, "/?connected=google", http.StatusSeeOther)
}

type googleAccountInfo struct {
	Email string `json:"email"`
}

// fetchGoogleAccount reads the account email from Google's userinfo endpoint.
func fetchGoogleAccount(ctx context.Context, token *oauth2.Token) (string, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return "", fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleAccountInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode user info: %w", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("user info response had no email")
	}
	return info.Email, nil
}

// generateState returns a cryptographically secure OAuth state token.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
